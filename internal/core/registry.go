package core

import (
	"fmt"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"
)

// SettingsStore is the persisted key-value store. Values are arbitrary
// JSON-serialisable documents. GetSetting returns false for keys never set.
type SettingsStore interface {
	GetSetting(key string, v any) (bool, error)
	SetSetting(key string, v any) error
	DeleteSetting(key string) error
}

// Registry is the durable list of known mods, kept under the "mods" key
type Registry struct {
	store SettingsStore
}

// NewRegistry creates a registry over store
func NewRegistry(store SettingsStore) *Registry {
	return &Registry{store: store}
}

// List returns all entries in registry order
func (r *Registry) List() ([]domain.ModEntry, error) {
	var mods []domain.ModEntry
	if _, err := r.store.GetSetting(domain.KeyMods, &mods); err != nil {
		return nil, fmt.Errorf("loading mods: %w", err)
	}
	if mods == nil {
		mods = []domain.ModEntry{}
	}
	return mods, nil
}

// Save replaces the stored list
func (r *Registry) Save(mods []domain.ModEntry) error {
	if mods == nil {
		mods = []domain.ModEntry{}
	}
	if err := r.store.SetSetting(domain.KeyMods, mods); err != nil {
		return fmt.Errorf("saving mods: %w", err)
	}
	return nil
}

// Get returns the entry with the given id
func (r *Registry) Get(id string) (*domain.ModEntry, error) {
	mods, err := r.List()
	if err != nil {
		return nil, err
	}
	i := indexByID(mods, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrModNotFound, id)
	}
	return &mods[i], nil
}

// Update merges upd into the entry with the given id and returns the updated list
func (r *Registry) Update(id string, upd domain.ModUpdate) ([]domain.ModEntry, error) {
	mods, err := r.List()
	if err != nil {
		return nil, err
	}
	i := indexByID(mods, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrModNotFound, id)
	}
	if upd.IsEmpty() {
		return mods, nil
	}

	upd.Apply(&mods[i])
	if err := r.Save(mods); err != nil {
		return nil, err
	}
	return mods, nil
}

// Delete removes the entry with the given id. It returns the removed entry and the remaining list.
func (r *Registry) Delete(id string) (domain.ModEntry, []domain.ModEntry, error) {
	mods, err := r.List()
	if err != nil {
		return domain.ModEntry{}, nil, err
	}
	i := indexByID(mods, id)
	if i < 0 {
		return domain.ModEntry{}, nil, fmt.Errorf("%w: %s", domain.ErrModNotFound, id)
	}

	removed := mods[i]
	mods = append(mods[:i], mods[i+1:]...)
	if err := r.Save(mods); err != nil {
		return domain.ModEntry{}, nil, err
	}
	return removed, mods, nil
}

// RecordTargets sets TargetPath on the entries named by id in targets. The stored
// list is re-read first so edits made since a batch loaded its snapshot survive;
// ids no longer registered are skipped.
func (r *Registry) RecordTargets(targets map[string]string) error {
	mods, err := r.List()
	if err != nil {
		return err
	}
	for i := range mods {
		if target, ok := targets[mods[i].ID]; ok {
			mods[i].TargetPath = target
		}
	}
	return r.Save(mods)
}

// FindByFileName returns the index of the entry registered under fileName, or -1
func FindByFileName(mods []domain.ModEntry, fileName string) int {
	for i := range mods {
		if domain.SameFileName(mods[i].FileName, fileName) {
			return i
		}
	}
	return -1
}

func indexByID(mods []domain.ModEntry, id string) int {
	for i := range mods {
		if mods[i].ID == id {
			return i
		}
	}
	return -1
}
