package prefs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type failingStore struct {
	getErr error
	setErr error
}

func (s failingStore) Get(string) (string, bool, error) { return "", false, s.getErr }
func (s failingStore) Set(string, string) error         { return s.setErr }

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("k", "v"))
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	assert.ErrorIs(t, s.Set("", "v"), ErrEmptyKey)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	s, err := NewFileStore(path, quietLogger())
	require.NoError(t, err)

	_, ok, err := s.Get(FavoritesKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(FavoritesKey, `["memory"]`))
	require.NoError(t, s.Set("theme", "dark"))

	reopened, err := NewFileStore(path, quietLogger())
	require.NoError(t, err)
	v, ok, err := reopened.Get(FavoritesKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["memory"]`, v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(fileMode), info.Mode().Perm())
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))

	s, err := NewFileStore(path, quietLogger())
	require.NoError(t, err)
	_, _, err = s.Get(FavoritesKey)
	assert.ErrorIs(t, err, ErrCorruptFile)
}

func TestFileStoreSetReplacesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))

	logger, hook := test.NewNullLogger()
	s, err := NewFileStore(path, logger)
	require.NoError(t, err)

	require.NoError(t, s.Set("theme", "dark"))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	v, ok, err := s.Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestNewFileStoreEmptyPath(t *testing.T) {
	_, err := NewFileStore("", quietLogger())
	assert.Error(t, err)
}

func TestLoadFavoritesDefaults(t *testing.T) {
	fav := LoadFavorites(NewMemoryStore(), quietLogger())
	assert.Equal(t, DefaultFavorites, fav.List())
	assert.True(t, fav.Contains("snake"))
	assert.False(t, fav.Contains("memory"))
}

func TestLoadFavoritesCorruptValueFallsBack(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(FavoritesKey, "{not json"))

	logger, hook := test.NewNullLogger()
	fav := LoadFavorites(store, logger)

	assert.Equal(t, DefaultFavorites, fav.List())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestLoadFavoritesReadErrorFallsBack(t *testing.T) {
	fav := LoadFavorites(failingStore{getErr: errors.New("disk gone")}, quietLogger())
	assert.Equal(t, DefaultFavorites, fav.List())
}

func TestLoadFavoritesDropsDuplicates(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(FavoritesKey, `["puzzle","puzzle","","memory"]`))

	fav := LoadFavorites(store, quietLogger())
	assert.Equal(t, []string{"puzzle", "memory"}, fav.List())
}

func TestToggleOnThenOffRestoresSet(t *testing.T) {
	fav := LoadFavorites(NewMemoryStore(), quietLogger())
	before := fav.List()

	added, err := fav.Toggle("memory")
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, fav.Contains("memory"))

	added, err = fav.Toggle("memory")
	require.NoError(t, err)
	assert.False(t, added)
	assert.ElementsMatch(t, before, fav.List())
}

func TestTogglePersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	store, err := NewFileStore(path, quietLogger())
	require.NoError(t, err)

	fav := LoadFavorites(store, quietLogger())
	_, err = fav.Toggle("puzzle")
	require.NoError(t, err)
	_, err = fav.Toggle("snake")
	require.NoError(t, err)

	reopened, err := NewFileStore(path, quietLogger())
	require.NoError(t, err)
	reloaded := LoadFavorites(reopened, quietLogger())
	assert.ElementsMatch(t, []string{"tictactoe", "puzzle"}, reloaded.List())
}

func TestToggleWriteFailureKeepsSet(t *testing.T) {
	fav := LoadFavorites(failingStore{setErr: errors.New("read-only")}, quietLogger())

	added, err := fav.Toggle("memory")
	assert.Error(t, err)
	assert.False(t, added)
	assert.Equal(t, DefaultFavorites, fav.List())
}

func TestToggleRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))

	store, err := NewFileStore(path, quietLogger())
	require.NoError(t, err)
	fav := LoadFavorites(store, quietLogger())
	assert.Equal(t, DefaultFavorites, fav.List())

	added, err := fav.Toggle("memory")
	require.NoError(t, err)
	assert.True(t, added)

	reopened, err := NewFileStore(path, quietLogger())
	require.NoError(t, err)
	reloaded := LoadFavorites(reopened, quietLogger())
	assert.Equal(t, []string{"tictactoe", "snake", "memory"}, reloaded.List())
}
