package frequency

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/verte-zerg/tprotect/internal/cipher"
)

func TestAnalyzeEmpty(t *testing.T) {
	assert.Empty(t, Analyze("", false))
	assert.Empty(t, Analyze("123 !?", true))
}

func TestAnalyzeSingleLetter(t *testing.T) {
	got := Analyze("aaa", false)
	require.Len(t, got, 1)
	assert.Equal(t, LetterFrequency{Letter: 'A', Count: 3, Percentage: 100}, got[0])
}

func TestAnalyzeCaseSensitiveTieOrder(t *testing.T) {
	got := Analyze("AaBb", true)
	require.Len(t, got, 4)
	letters := make([]byte, len(got))
	for i, f := range got {
		letters[i] = f.Letter
		assert.Equal(t, 1, f.Count)
		assert.InDelta(t, 25.0, f.Percentage, 1e-9)
	}
	assert.Equal(t, []byte("ABab"), letters)
}

func TestAnalyzeCaseInsensitiveFolds(t *testing.T) {
	got := Analyze("Hello, World!", false)
	require.NotEmpty(t, got)
	assert.Equal(t, byte('L'), got[0].Letter)
	assert.Equal(t, 3, got[0].Count)
	assert.InDelta(t, 30.0, got[0].Percentage, 1e-9)
	assert.Equal(t, byte('O'), got[1].Letter)
	assert.Equal(t, 2, got[1].Count)
	// Remaining single counts stay in alphabet order.
	rest := make([]byte, 0, len(got)-2)
	for _, f := range got[2:] {
		rest = append(rest, f.Letter)
	}
	assert.Equal(t, []byte("DEHRW"), rest)
}

func TestAnalyzePercentagesOfLettersOnly(t *testing.T) {
	got := Analyze("a1b2 c3!!", false)
	require.Len(t, got, 3)
	for _, f := range got {
		assert.InDelta(t, 100.0/3, f.Percentage, 1e-9)
	}
}

func TestAnalyzeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")
		caseSensitive := rapid.Bool().Draw(t, "case_sensitive")

		got := Analyze(text, caseSensitive)
		letters := 0
		for i := 0; i < len(text); i++ {
			if cipher.IsLetter(text[i]) {
				letters++
			}
		}
		if letters == 0 {
			assert.Empty(t, got)
			return
		}

		sum := 0
		pct := 0.0
		for i, f := range got {
			assert.Positive(t, f.Count)
			if !caseSensitive {
				assert.True(t, cipher.IsUpper(f.Letter))
			}
			if i > 0 {
				prev := got[i-1]
				assert.GreaterOrEqual(t, prev.Count, f.Count)
				if prev.Count == f.Count {
					assert.Less(t, cipher.LetterIndex(prev.Letter), cipher.LetterIndex(f.Letter))
				}
			}
			sum += f.Count
			pct += f.Percentage
		}
		assert.Equal(t, letters, sum)
		assert.InDelta(t, 100.0, pct, 1e-6)
	})
}

func TestEnglishFrequencies(t *testing.T) {
	table := EnglishFrequencies()
	assert.InDelta(t, 8.17, table[0], 1e-9)
	assert.InDelta(t, 12.70, table[4], 1e-9)
	assert.InDelta(t, 0.07, table[25], 1e-9)

	total := 0.0
	for _, v := range table {
		total += v
	}
	assert.InDelta(t, 100.0, total, 0.1)

	e, ok := EnglishFrequency('e')
	require.True(t, ok)
	assert.InDelta(t, 12.70, e, 1e-9)
	_, ok = EnglishFrequency('!')
	assert.False(t, ok)

	// Returned table is a copy.
	table[0] = 0
	assert.InDelta(t, 8.17, EnglishFrequencies()[0], 1e-9)
}

func TestChiSquared(t *testing.T) {
	assert.True(t, math.IsInf(ChiSquared("1234"), 1))
	english := ChiSquared("the quick brown fox jumps over the lazy dog and then rests in the shade")
	garbled := ChiSquared("zzq xqj vkz qqz jjx zzv kxq")
	assert.Less(t, english, garbled)
}
