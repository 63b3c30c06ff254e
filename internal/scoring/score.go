// Package scoring computes the match score between one company record and
// the user's weighted goal selections.
package scoring

import (
	"errors"

	"github.com/minji/esg-compass/internal/tabular"
	"github.com/minji/esg-compass/internal/types"
)

// ErrNoGoalsSelected is returned when the preference carries zero goals.
// Scoring against an empty selection is a caller precondition violation;
// the engine never silently falls back to all 17 goals.
var ErrNoGoalsSelected = errors.New("scoring: no goals selected")

// Risk affinity multipliers. This is a hand-tuned table, not a formula:
// exactly six user/company pairings deviate from 1.0.
const (
	multiplierSafeSafe             = 1.2
	multiplierSafeAggressive       = 0.8
	multiplierAggressiveAggressive = 1.2
	multiplierAggressiveSafe       = 0.9
	multiplierNeutralNeutral       = 1.1
	multiplierDefault              = 1.0
)

// Result holds the score for one company and the selected goal that
// contributed most to it.
type Result struct {
	Score     float64
	TopGoalID int
}

// Score computes the weighted match score of a record against the user's
// preference. The base score is the sum over the selected goals of
// mentions x sentiment x importance; missing metrics read as 0. The base
// is then scaled by the risk affinity multiplier. Scores are comparable
// only within one run over one table, and may be negative when sentiment
// is negative. Deterministic and side-effect free.
func Score(record tabular.Record, req *types.RankingRequest) (Result, error) {
	if len(req.SelectedGoals) == 0 {
		return Result{}, ErrNoGoalsSelected
	}

	base := 0.0
	topGoalID := req.SelectedGoals[0].GoalID
	topProduct := record.Mentions(topGoalID) * record.Sentiment(topGoalID)

	for i, sel := range req.SelectedGoals {
		product := record.Mentions(sel.GoalID) * record.Sentiment(sel.GoalID)
		base += product * float64(sel.Importance)

		// Strict > keeps ties on the earliest goal in selection order.
		if i > 0 && product > topProduct {
			topProduct = product
			topGoalID = sel.GoalID
		}
	}

	return Result{
		Score:     base * riskMultiplier(req.RiskPreference, record.RiskTag()),
		TopGoalID: topGoalID,
	}, nil
}

// riskMultiplier maps a user preference / company tag pairing to its
// affinity multiplier. Preserve these six cases exactly; everything else
// is 1.0.
func riskMultiplier(user, company types.Risk) float64 {
	switch user {
	case types.RiskSafe:
		switch company {
		case types.RiskSafe:
			return multiplierSafeSafe
		case types.RiskAggressive:
			return multiplierSafeAggressive
		}
	case types.RiskAggressive:
		switch company {
		case types.RiskAggressive:
			return multiplierAggressiveAggressive
		case types.RiskSafe:
			return multiplierAggressiveSafe
		}
	case types.RiskNeutral:
		if company == types.RiskNeutral {
			return multiplierNeutralNeutral
		}
	}
	return multiplierDefault
}
