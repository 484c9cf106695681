package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveWordsPositional(t *testing.T) {
	words, err := resolveWords([]string{" Mind ", "boba", ""}, "")
	require.NoError(t, err)
	require.Equal(t, []string{"mind", "boba"}, words)
}

func TestResolveWordsRejectsNonAlphabetic(t *testing.T) {
	_, err := resolveWords([]string{"mind!"}, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-alphabetic")
}

func TestResolveWordsRequiresInput(t *testing.T) {
	_, err := resolveWords(nil, "")
	require.Error(t, err)
}

func TestResolveWordsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# header\nmind\n\nBoba\n"), 0o600))

	words, err := resolveWords(nil, path)
	require.NoError(t, err)
	require.Equal(t, []string{"mind", "boba"}, words)
}

func TestResolveWordsFileAndPositionalConflict(t *testing.T) {
	_, err := resolveWords([]string{"mind"}, "words.txt")
	require.Error(t, err)
}

func TestResolveWordsFileLineError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("mind\nnot a word\n"), 0o600))

	_, err := resolveWords(nil, path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}
