package core_test

import (
	"path/filepath"
	"testing"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport_SkinBundleScenario(t *testing.T) {
	env := newEnv(t, afero.NewMemMapFs())
	writeFile(t, env.fs, "/tmp/skin.bundle", "MOD PAYLOAD")

	res, err := env.svc.ImportMods([]string{"/tmp/skin.bundle"})
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Mods, 1)

	m := res.Mods[0]
	assert.Equal(t, "skin.bundle", m.FileName)
	assert.Equal(t, "skin", m.DisplayName)
	assert.True(t, m.Enabled)
	assert.Equal(t, filepath.Join(dataDir, "library", "skin.bundle"), m.StoragePath)
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.ImportedAt.IsZero())

	assert.Equal(t, "MOD PAYLOAD", readFile(t, env.fs, m.StoragePath))
}

func TestImport_DuplicateNamesRegisterOnce(t *testing.T) {
	env := newEnv(t, afero.NewMemMapFs())
	writeFile(t, env.fs, "/one/skin.bundle", "FIRST")
	writeFile(t, env.fs, "/two/skin.bundle", "SECOND")
	writeFile(t, env.fs, "/three/SKIN.bundle", "THIRD")

	res, err := env.svc.ImportMods([]string{"/one/skin.bundle", "/two/skin.bundle", "/three/SKIN.bundle"})
	require.NoError(t, err)
	assert.Len(t, res.Added, 1)
	assert.Empty(t, res.Errors, "duplicates are skipped silently")

	mods, err := env.svc.ListMods()
	require.NoError(t, err)
	require.Len(t, mods, 1)
	assert.Equal(t, "FIRST", readFile(t, env.fs, mods[0].StoragePath), "registered payload is never overwritten")

	// A later batch is deduplicated against the registry too
	res, err = env.svc.ImportMods([]string{"/two/skin.bundle"})
	require.NoError(t, err)
	assert.Empty(t, res.Added)
	assert.Len(t, res.Mods, 1)
}

func TestImport_MissingSourceDoesNotStopBatch(t *testing.T) {
	env := newEnv(t, afero.NewMemMapFs())
	writeFile(t, env.fs, "/tmp/b.bundle", "B")
	require.NoError(t, env.fs.MkdirAll("/tmp/folder.bundle", 0755))

	res, err := env.svc.ImportMods([]string{"/tmp/gone.bundle", "/tmp/folder.bundle", "/tmp/b.bundle"})
	require.NoError(t, err)

	require.Len(t, res.Errors, 2)
	assert.Equal(t, "/tmp/gone.bundle", res.Errors[0].Path)
	assert.Contains(t, res.Errors[0].Error, domain.ErrImportSourceMissing.Error())
	assert.Equal(t, "/tmp/folder.bundle", res.Errors[1].Path)

	require.Len(t, res.Added, 1)
	assert.Equal(t, "b.bundle", res.Added[0].FileName)
}

func TestImport_IDsAreUnique(t *testing.T) {
	env := newEnv(t, afero.NewMemMapFs())
	a := env.importMod(t, "a.bundle", "A")
	b := env.importMod(t, "b.bundle", "B")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestImport_RegistrySaveFailure(t *testing.T) {
	env := newEnv(t, afero.NewMemMapFs())
	writeFile(t, env.fs, "/tmp/a.bundle", "A")
	env.store.failSet = assert.AnError

	_, err := env.svc.ImportMods([]string{"/tmp/a.bundle"})
	assert.ErrorIs(t, err, assert.AnError)
}
