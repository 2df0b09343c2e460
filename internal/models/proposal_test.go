package models

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageDeadlineIsExactSum(t *testing.T) {
	cases := []struct {
		start, voting, veto int64
	}{
		{0, 0, 0},
		{1_700_000_000, 7 * 86400, 2 * 86400},
		{1_650_000_123, 1, 59},
	}
	for _, tc := range cases {
		got, err := StageDeadline(big.NewInt(tc.start), big.NewInt(tc.voting), big.NewInt(tc.veto))
		require.NoError(t, err)
		assert.Equal(t, tc.start+tc.voting+tc.veto, got.Unix())
		assert.Equal(t, (tc.start+tc.voting+tc.veto)*1000, got.UnixMilli())
	}
}

func TestStageDeadlineNilOperands(t *testing.T) {
	got, err := StageDeadline(big.NewInt(100), nil, big.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, int64(105), got.Unix())
}

func TestStageDeadlineRejectsOversizedPeriods(t *testing.T) {
	maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	twoTo64 := new(big.Int).Lsh(big.NewInt(1), 64)
	start := big.NewInt(1_700_000_000)

	for _, period := range []*big.Int{maxUint256, twoTo64, big.NewInt(math.MaxInt64 / 1000)} {
		_, err := StageDeadline(start, big.NewInt(3600), period)
		assert.ErrorIs(t, err, ErrDeadlineOutOfRange, "period %s", period)
	}
}

func TestStageDeadlineLargestRepresentable(t *testing.T) {
	got, err := StageDeadline(big.NewInt(math.MaxInt64/1000), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64/1000)*1000, got.UnixMilli())
}

func TestProposalStageDeadline(t *testing.T) {
	p := &Proposal{
		StartTime: big.NewInt(1000),
		ConfigurationOptions: ConfigurationOptions{
			VotingPeriod: big.NewInt(200),
			VetoPeriod:   big.NewInt(30),
		},
	}
	got, err := p.StageDeadline()
	require.NoError(t, err)
	assert.Equal(t, int64(1230), got.Unix())
}

func TestEnumsMarshalByName(t *testing.T) {
	out, err := json.Marshal(struct {
		Status ProposalStatus `json:"status"`
		Type   ProposalType   `json:"type"`
	}{ProposalStatusVeto, ProposalTypeTakedown})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"VETO","type":"TAKEDOWN"}`, string(out))
	assert.Equal(t, "UNKNOWN", ProposalStatus(42).String())
}
