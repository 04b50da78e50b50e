package core_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DonovanMods/bundle-mod-manager/internal/core"
	"github.com/DonovanMods/bundle-mod-manager/internal/domain"
	"github.com/DonovanMods/bundle-mod-manager/internal/storage/config"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	gameExe  = "/games/Heroes/Heroes.exe"
	dataRoot = "/games/Heroes/Heroes_Data"
	dataDir  = "/data"
)

var errDiskFull = errors.New("no space left on device")

// memStore is an in-memory SettingsStore
type memStore struct {
	data    map[string][]byte
	failSet error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) GetSetting(key string, v any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

func (m *memStore) SetSetting(key string, v any) error {
	if m.failSet != nil {
		return m.failSet
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memStore) DeleteSetting(key string) error {
	delete(m.data, key)
	return nil
}

// faultyFs fails chosen operations on chosen paths
type faultyFs struct {
	afero.Fs
	failWrite  map[string]bool // OpenFile with O_CREATE
	failRename map[string]bool // Rename from this path
	failOpen   map[string]bool // Open, which also blocks directory listing
}

func newFaultyFs(base afero.Fs) *faultyFs {
	return &faultyFs{
		Fs:         base,
		failWrite:  make(map[string]bool),
		failRename: make(map[string]bool),
		failOpen:   make(map[string]bool),
	}
}

func (f *faultyFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&os.O_CREATE != 0 && f.failWrite[filepath.Clean(name)] {
		return nil, &os.PathError{Op: "open", Path: name, Err: errDiskFull}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *faultyFs) Create(name string) (afero.File, error) {
	return f.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
}

func (f *faultyFs) Rename(oldname, newname string) error {
	if f.failRename[filepath.Clean(oldname)] {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: os.ErrPermission}
	}
	return f.Fs.Rename(oldname, newname)
}

func (f *faultyFs) Open(name string) (afero.File, error) {
	if f.failOpen[filepath.Clean(name)] {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Open(name)
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func exists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, path)
	require.NoError(t, err)
	return ok
}

type testEnv struct {
	fs       afero.Fs
	store    *memStore
	svc      *core.Service
	launched []string
}

// newEnv builds a service over fs with the game executable present but not yet configured
func newEnv(t *testing.T, fs afero.Fs) *testEnv {
	t.Helper()
	env := &testEnv{fs: fs, store: newMemStore()}
	writeFile(t, fs, gameExe, "MZ")
	require.NoError(t, fs.MkdirAll(dataRoot, 0755))

	env.svc = core.New(core.Deps{
		Fs:      fs,
		Store:   env.store,
		Config:  &config.Config{LinkMethod: domain.LinkCopy, ScanDepth: 4},
		DataDir: dataDir,
		Launch: func(exe string) error {
			env.launched = append(env.launched, exe)
			return nil
		},
	})
	return env
}

// newServiceWithLogger builds a second service over env's filesystem and store
func newServiceWithLogger(env *testEnv, log *zap.Logger) *core.Service {
	return core.New(core.Deps{
		Fs:      env.fs,
		Store:   env.store,
		Config:  &config.Config{LinkMethod: domain.LinkCopy, ScanDepth: 4},
		DataDir: dataDir,
		Logger:  log,
	})
}

// newGameEnv is newEnv with the installation configured
func newGameEnv(t *testing.T, fs afero.Fs) *testEnv {
	t.Helper()
	env := newEnv(t, fs)
	_, err := env.svc.SetGamePath(gameExe)
	require.NoError(t, err)
	return env
}

// importMod writes a source file and imports it
func (e *testEnv) importMod(t *testing.T, fileName, content string) domain.ModEntry {
	t.Helper()
	src := filepath.Join("/incoming", fileName)
	writeFile(t, e.fs, src, content)
	res, err := e.svc.ImportMods([]string{src})
	require.NoError(t, err)
	require.Len(t, res.Added, 1)
	return res.Added[0]
}

func (e *testEnv) setEnabled(t *testing.T, id string, enabled bool) {
	t.Helper()
	_, err := e.svc.UpdateMod(id, domain.ModUpdate{Enabled: &enabled})
	require.NoError(t, err)
}
