// Package ranking scores every company in a loaded table and returns the
// top-N matches for a user's preference.
package ranking

import (
	"errors"
	"fmt"
	"sort"

	"github.com/minji/esg-compass/internal/scoring"
	"github.com/minji/esg-compass/internal/tabular"
	"github.com/minji/esg-compass/internal/types"
)

// DefaultTopN is the number of companies the survey dashboard shows.
const DefaultTopN = 3

// ErrNoRecords is returned when ranking is attempted against zero loaded
// records. An empty table means the load already failed; returning an
// empty ranking would dress that failure up as a real result.
var ErrNoRecords = errors.New("ranking: no company records loaded")

// ScoredCompany pairs a record with its computed score and top goal.
type ScoredCompany struct {
	Record    tabular.Record
	Score     float64
	TopGoalID int
}

// TopGoalCode returns the Gnn code of the company's top matched goal.
func (s ScoredCompany) TopGoalCode() string {
	return types.GoalCode(s.TopGoalID)
}

// Rank scores every record against the preference, sorts descending by
// score, and truncates to topN. Every row is a candidate: records with
// missing metric columns score with 0 defaults rather than being
// filtered. The sort is stable, so equal scores keep their original
// table order.
func Rank(records []tabular.Record, req *types.RankingRequest, topN int) ([]ScoredCompany, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if topN < 1 {
		return nil, fmt.Errorf("ranking: topN must be positive, got %d", topN)
	}

	scored := make([]ScoredCompany, 0, len(records))
	for _, record := range records {
		result, err := scoring.Score(record, req)
		if err != nil {
			return nil, fmt.Errorf("failed to score %s: %w", record.CompanyName(), err)
		}
		scored = append(scored, ScoredCompany{
			Record:    record,
			Score:     result.Score,
			TopGoalID: result.TopGoalID,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topN > len(scored) {
		topN = len(scored)
	}
	return scored[:topN], nil
}
