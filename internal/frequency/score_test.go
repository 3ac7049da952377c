package frequency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tprotect/internal/cipher"
)

func TestRankCandidatesFindsShift(t *testing.T) {
	plain := "Attack at dawn. The enemy is weakest before the sun rises over the eastern hills."
	enc, err := cipher.NewShift(7).Encrypt(plain)
	require.NoError(t, err)

	ranked := RankCandidates(cipher.DecryptAllShifts(enc))
	require.Len(t, ranked, 25)
	assert.Equal(t, 7, ranked[0].Shift)
	assert.Equal(t, plain, ranked[0].Text)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRankCandidatesByStableOnTies(t *testing.T) {
	ranked := RankCandidatesBy([]string{"a", "b", "c"}, func(string) float64 { return 1 })
	require.Len(t, ranked, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Shift, ranked[1].Shift, ranked[2].Shift})
}

func TestCompare(t *testing.T) {
	cmp := Compare(Analyze("EeEt", true))
	require.Len(t, cmp, 26)
	assert.Equal(t, byte('A'), cmp[0].Letter)
	assert.InDelta(t, 75.0, cmp[4].Observed, 1e-9)
	assert.InDelta(t, 12.70, cmp[4].Expected, 1e-9)
	assert.InDelta(t, 25.0, cmp[19].Observed, 1e-9)
	assert.Zero(t, cmp[0].Observed)
}
