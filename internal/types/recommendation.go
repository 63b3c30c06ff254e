package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// GoalSelection is one user-selected goal with its importance weight (1-5).
type GoalSelection struct {
	GoalID     int `json:"goal_id" validate:"min=1,max=17"`
	Importance int `json:"importance" validate:"min=1,max=5"`
}

// RankingRequest is the input contract of the recommendation core: the
// user's weighted goal selections plus risk preference. Selection order is
// meaningful (it breaks ties when picking a company's top goal), so the
// slice order is preserved end to end.
type RankingRequest struct {
	SelectedGoals  []GoalSelection `json:"selected_goals" validate:"required,min=1,dive"`
	RiskPreference Risk            `json:"risk_preference" validate:"required"`
	TopN           int             `json:"top_n,omitempty" validate:"omitempty,min=1"`
}

// Validate checks the ranking request. A request with zero selected goals
// is rejected here, before any scoring happens.
func (r *RankingRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if !r.RiskPreference.Valid() {
		return fmt.Errorf("invalid risk preference %q", r.RiskPreference)
	}
	seen := make(map[int]bool, len(r.SelectedGoals))
	for _, sel := range r.SelectedGoals {
		if seen[sel.GoalID] {
			return fmt.Errorf("duplicate goal id %d in selection", sel.GoalID)
		}
		seen[sel.GoalID] = true
	}
	return nil
}

// Recommendation is one ranked company merged with its enrichment output.
// JSON field names follow the dashboard wire shape.
type Recommendation struct {
	CompanyName            string    `json:"corp_name"`
	CorpCode               string    `json:"corp_code"`
	MatchScore             float64   `json:"match_score"`
	TopGoalCode            string    `json:"top_sdg"`
	Explanation            string    `json:"explanation"`
	InvestmentReport       string    `json:"investment_report"`
	SocialPost             string    `json:"sns_promotion"`
	ImageReferenceSentence string    `json:"image_reference_sentence"`
	ImageDataURL           string    `json:"image_data_url,omitempty"`
	AlignmentVector        []float64 `json:"sdg_alignment"`
}

// RankingResponse is the ordered recommendation set produced by one run.
type RankingResponse struct {
	Recommendations []Recommendation `json:"recommended_companies"`
}
