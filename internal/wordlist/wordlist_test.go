package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tprotect/internal/cipher"
	"github.com/verte-zerg/tprotect/internal/frequency"
)

func TestLoadDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.txt")
	require.NoError(t, os.WriteFile(path, []byte("the\n  Attack \n\nco-op\ndawn\n"), 0o644))

	dict, err := LoadDictionary(path)
	require.NoError(t, err)
	assert.Equal(t, 3, dict.Len())
	assert.True(t, dict.Contains("ATTACK"))
	assert.False(t, dict.Contains("co-op"))
}

func TestReadDictionaryEmpty(t *testing.T) {
	_, err := ReadDictionary(strings.NewReader("\n \nnaïve\n"))
	assert.Error(t, err)
}

func TestLoadDictionaryMissing(t *testing.T) {
	_, err := LoadDictionary(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestHitsAndScore(t *testing.T) {
	dict := NewDictionary("attack", "at", "dawn")
	hits, total := dict.Hits("Attack at dusk!")
	assert.Equal(t, 2, hits)
	assert.Equal(t, 3, total)
	assert.InDelta(t, -2.0/3, dict.Score("Attack at dusk!"), 1e-9)
	assert.Zero(t, dict.Score("1234 !!"))
}

func TestDictionaryRanksBruteForceCandidates(t *testing.T) {
	dict := NewDictionary("attack", "at", "dawn")
	enc, err := cipher.NewShift(11).Encrypt("attack at dawn")
	require.NoError(t, err)

	ranked := frequency.RankCandidatesBy(cipher.DecryptAllShifts(enc), dict.Score)
	require.NotEmpty(t, ranked)
	assert.Equal(t, 11, ranked[0].Shift)
	assert.Equal(t, "attack at dawn", ranked[0].Text)
}
