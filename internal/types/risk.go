package types

import (
	"fmt"
	"strings"
)

// Risk classifies investment risk appetite. It is used both as a company
// attribute (the dataset's Risk_Tag column) and as a user preference.
type Risk string

// Risk categories. The dataset labels companies with the Korean terms;
// both Korean and English spellings parse to the same category.
const (
	RiskSafe       Risk = "safe"
	RiskNeutral    Risk = "neutral"
	RiskAggressive Risk = "aggressive"
)

// Korean survey labels for the three risk categories.
const (
	riskLabelSafe       = "안전형"
	riskLabelNeutral    = "중립형"
	riskLabelAggressive = "공격형"
)

// ParseRisk maps a risk label to its category. Accepts the Korean dataset
// labels and the English category names, case-insensitively.
func ParseRisk(label string) (Risk, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case riskLabelSafe, string(RiskSafe):
		return RiskSafe, nil
	case riskLabelNeutral, string(RiskNeutral):
		return RiskNeutral, nil
	case riskLabelAggressive, string(RiskAggressive):
		return RiskAggressive, nil
	default:
		return "", fmt.Errorf("unknown risk label %q", label)
	}
}

// ParseRiskTag maps a dataset Risk_Tag value to a category.
// Unrecognized tags fall back to neutral: the dataset is upstream data we
// do not control, and an odd tag must not exclude a company from ranking.
func ParseRiskTag(tag string) Risk {
	risk, err := ParseRisk(tag)
	if err != nil {
		return RiskNeutral
	}
	return risk
}

// KoreanLabel returns the survey-facing Korean label for a risk category.
func (r Risk) KoreanLabel() string {
	switch r {
	case RiskSafe:
		return riskLabelSafe
	case RiskAggressive:
		return riskLabelAggressive
	default:
		return riskLabelNeutral
	}
}

// Valid reports whether r is one of the three known categories.
func (r Risk) Valid() bool {
	return r == RiskSafe || r == RiskNeutral || r == RiskAggressive
}
