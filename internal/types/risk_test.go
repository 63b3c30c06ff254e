package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRisk_KoreanLabels(t *testing.T) {
	cases := map[string]Risk{
		"안전형": RiskSafe,
		"중립형": RiskNeutral,
		"공격형": RiskAggressive,
	}
	for label, want := range cases {
		got, err := ParseRisk(label)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseRisk_EnglishCaseInsensitive(t *testing.T) {
	got, err := ParseRisk(" Aggressive ")
	require.NoError(t, err)
	assert.Equal(t, RiskAggressive, got)
}

func TestParseRisk_Unknown(t *testing.T) {
	_, err := ParseRisk("초고위험")
	assert.Error(t, err)
}

func TestParseRiskTag_UnknownFallsBackToNeutral(t *testing.T) {
	assert.Equal(t, RiskNeutral, ParseRiskTag(""))
	assert.Equal(t, RiskNeutral, ParseRiskTag("bogus"))
	assert.Equal(t, RiskSafe, ParseRiskTag("안전형"))
}

func TestRisk_KoreanLabelRoundTrip(t *testing.T) {
	for _, r := range []Risk{RiskSafe, RiskNeutral, RiskAggressive} {
		parsed, err := ParseRisk(r.KoreanLabel())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
}

func TestRisk_Valid(t *testing.T) {
	assert.True(t, RiskSafe.Valid())
	assert.False(t, Risk("reckless").Valid())
	assert.False(t, Risk("").Valid())
}
