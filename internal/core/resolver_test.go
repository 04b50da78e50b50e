package core_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DonovanMods/bundle-mod-manager/internal/core"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_FindsNestedCaseInsensitive(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, dataRoot+"/StreamingAssets/Resource/Skin.Bundle", "ORIGINAL")

	r := core.NewResolver(fs, nil)
	path, ok := r.Resolve(dataRoot, "skin.bundle")
	assert.True(t, ok)
	assert.Equal(t, dataRoot+"/StreamingAssets/Resource/Skin.Bundle", path)
}

func TestResolver_NotFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, dataRoot+"/Resource/other.bundle", "x")

	r := core.NewResolver(fs, nil)
	_, ok := r.Resolve(dataRoot, "skin.bundle")
	assert.False(t, ok)

	_, ok = r.Resolve("/no/such/root", "skin.bundle")
	assert.False(t, ok, "a missing root is not an error")

	_, ok = r.Resolve(dataRoot, "")
	assert.False(t, ok)
}

func TestResolver_IgnoresDirectoriesWithMatchingName(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, dataRoot+"/a/skin.bundle/inner.txt", "x")
	writeFile(t, fs, dataRoot+"/b/skin.bundle", "ORIGINAL")

	path, ok := core.NewResolver(fs, nil).Resolve(dataRoot, "skin.bundle")
	assert.True(t, ok)
	assert.Equal(t, dataRoot+"/b/skin.bundle", path)
}

func TestResolver_FirstMatchWins(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, dataRoot+"/b/skin.bundle", "B")
	writeFile(t, fs, dataRoot+"/a/skin.bundle", "A")

	path, ok := core.NewResolver(fs, nil).Resolve(dataRoot, "skin.bundle")
	assert.True(t, ok)
	assert.Equal(t, dataRoot+"/a/skin.bundle", path)
}

func TestResolver_SkipsUnreadableDirectories(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, dataRoot+"/a_locked/skin.bundle", "LOCKED")
	writeFile(t, base, dataRoot+"/b/skin.bundle", "ORIGINAL")

	fs := newFaultyFs(base)
	fs.failOpen[dataRoot+"/a_locked"] = true

	path, ok := core.NewResolver(fs, nil).Resolve(dataRoot, "skin.bundle")
	assert.True(t, ok, "resolution continues into sibling directories")
	assert.Equal(t, dataRoot+"/b/skin.bundle", path)
}

func TestResolver_UnreadableRoot(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, dataRoot+"/skin.bundle", "ORIGINAL")

	fs := newFaultyFs(base)
	fs.failOpen[dataRoot] = true

	_, ok := core.NewResolver(fs, nil).Resolve(dataRoot, "skin.bundle")
	assert.False(t, ok)
}

func TestResolver_FollowsSymlinkedDataRoot(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real_data")
	require.NoError(t, os.MkdirAll(filepath.Join(real, "Resource"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(real, "Resource", "skin.bundle"), []byte("ORIGINAL"), 0644))

	root := filepath.Join(dir, "Game_Data")
	require.NoError(t, os.Symlink(real, root))

	r := core.NewResolver(afero.NewOsFs(), nil)
	path, ok := r.Resolve(root, "skin.bundle")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "Resource", "skin.bundle"), path, "match is reported under the configured root")

	// Relative link targets resolve against the link's directory
	rel := filepath.Join(dir, "Rel_Data")
	require.NoError(t, os.Symlink("real_data", rel))
	path, ok = r.Resolve(rel, "SKIN.bundle")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(rel, "Resource", "skin.bundle"), path)
}

func TestResolver_DanglingSymlinkRoot(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "Game_Data")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), root))

	_, ok := core.NewResolver(afero.NewOsFs(), nil).Resolve(root, "skin.bundle")
	assert.False(t, ok)
}
