// Package survey models the guided-survey flow as an explicit state
// machine over named steps. Each step owns the data it collects; the
// ranking core is invoked through the request/response contract when the
// survey completes.
package survey

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/minji/esg-compass/internal/types"
)

// Step names one screen of the survey flow.
type Step string

// The survey steps, in their forward order.
const (
	StepStart      Step = "start"
	StepSDGSelect  Step = "sdg-select"
	StepSDGScore   Step = "sdg-score"
	StepInvestment Step = "investment"
	StepLoading    Step = "loading"
	StepDashboard  Step = "dashboard"
	StepVideoIntro Step = "video-intro"
	StepDetail     Step = "detail"
)

// MaxSelectedGoals is the survey's selection cap. The engine itself
// accepts any non-empty subset of the 17; the cap is a flow rule.
const MaxSelectedGoals = 3

// VideoState tracks the intro-video generation for the selected company.
type VideoState string

// Video generation states.
const (
	VideoPending VideoState = "pending"
	VideoReady   VideoState = "ready"
	VideoAbsent  VideoState = "absent"
)

// Ranker runs the recommendation pipeline for a completed survey.
type Ranker func(ctx context.Context, req *types.RankingRequest) (*types.RankingResponse, error)

// ErrWrongStep reports an operation attempted outside its step.
type ErrWrongStep struct {
	Current  Step
	Expected Step
}

func (e *ErrWrongStep) Error() string {
	return fmt.Sprintf("survey is at step %q, operation requires %q", e.Current, e.Expected)
}

// Session is one user's pass through the survey. All methods are safe for
// concurrent use; the video generation goroutine and HTTP handlers share it.
type Session struct {
	ID uuid.UUID

	mu                   sync.Mutex
	step                 Step
	selectedGoalIDs      []int
	goalScores           []types.GoalSelection
	riskPreference       types.Risk
	investmentExperience []string
	investmentPeriod     string
	recommendations      []types.Recommendation
	selected             *types.Recommendation
	videoState           VideoState
	videoURL             string
	lastError            string
}

// NewSession creates a session at the start step.
func NewSession() *Session {
	return &Session{
		ID:   uuid.New(),
		step: StepStart,
	}
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// LastError returns the message of the last failed ranking attempt, empty
// when none.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Begin advances start → sdg-select.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepStart {
		return &ErrWrongStep{Current: s.step, Expected: StepStart}
	}
	s.step = StepSDGSelect
	return nil
}

// SelectGoals records the chosen goal ids and advances sdg-select → sdg-score.
func (s *Session) SelectGoals(goalIDs []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepSDGSelect {
		return &ErrWrongStep{Current: s.step, Expected: StepSDGSelect}
	}
	if len(goalIDs) == 0 {
		return fmt.Errorf("at least one goal must be selected")
	}
	if len(goalIDs) > MaxSelectedGoals {
		return fmt.Errorf("at most %d goals may be selected, got %d", MaxSelectedGoals, len(goalIDs))
	}
	seen := make(map[int]bool, len(goalIDs))
	for _, id := range goalIDs {
		if _, ok := types.GoalByID(id); !ok {
			return fmt.Errorf("unknown goal id %d", id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate goal id %d", id)
		}
		seen[id] = true
	}
	s.selectedGoalIDs = append([]int(nil), goalIDs...)
	s.step = StepSDGScore
	return nil
}

// ScoreGoals records importance scores for the selected goals and
// advances sdg-score → investment. Scores must cover exactly the selected
// goals, in selection order.
func (s *Session) ScoreGoals(scores []types.GoalSelection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepSDGScore {
		return &ErrWrongStep{Current: s.step, Expected: StepSDGScore}
	}
	if len(scores) != len(s.selectedGoalIDs) {
		return fmt.Errorf("expected scores for %d goals, got %d", len(s.selectedGoalIDs), len(scores))
	}
	for i, sc := range scores {
		if sc.GoalID != s.selectedGoalIDs[i] {
			return fmt.Errorf("score %d targets goal %d, expected %d", i, sc.GoalID, s.selectedGoalIDs[i])
		}
		if sc.Importance < 1 || sc.Importance > 5 {
			return fmt.Errorf("importance for goal %d must be 1-5, got %d", sc.GoalID, sc.Importance)
		}
	}
	s.goalScores = append([]types.GoalSelection(nil), scores...)
	s.step = StepInvestment
	return nil
}

// CompleteSurvey records the investment answers, runs the ranking, and
// advances investment → loading → dashboard. A ranking failure returns
// the session to the investment step with the error message retained, so
// the user can retry.
func (s *Session) CompleteSurvey(ctx context.Context, risk types.Risk, experience []string, period string, rank Ranker) error {
	s.mu.Lock()
	if s.step != StepInvestment {
		current := s.step
		s.mu.Unlock()
		return &ErrWrongStep{Current: current, Expected: StepInvestment}
	}
	if !risk.Valid() {
		s.mu.Unlock()
		return fmt.Errorf("invalid risk preference %q", risk)
	}
	s.riskPreference = risk
	s.investmentExperience = append([]string(nil), experience...)
	s.investmentPeriod = period
	s.step = StepLoading
	s.lastError = ""
	req := &types.RankingRequest{
		SelectedGoals:  append([]types.GoalSelection(nil), s.goalScores...),
		RiskPreference: risk,
	}
	s.mu.Unlock()

	// Ranking runs outside the lock; it may take a while.
	response, err := rank(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.step = StepInvestment
		s.lastError = err.Error()
		return fmt.Errorf("ranking failed: %w", err)
	}
	s.recommendations = response.Recommendations
	s.step = StepDashboard
	return nil
}

// Recommendations returns the dashboard payload.
func (s *Session) Recommendations() ([]types.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepDashboard && s.step != StepVideoIntro && s.step != StepDetail {
		return nil, &ErrWrongStep{Current: s.step, Expected: StepDashboard}
	}
	return append([]types.Recommendation(nil), s.recommendations...), nil
}

// SelectCompany picks one recommended company by corp code and advances
// dashboard → video-intro. Video generation is owned by the caller; the
// session starts in the pending state.
func (s *Session) SelectCompany(corpCode string) (types.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepDashboard {
		return types.Recommendation{}, &ErrWrongStep{Current: s.step, Expected: StepDashboard}
	}
	for i := range s.recommendations {
		if s.recommendations[i].CorpCode == corpCode {
			s.selected = &s.recommendations[i]
			s.step = StepVideoIntro
			s.videoState = VideoPending
			s.videoURL = ""
			return s.recommendations[i], nil
		}
	}
	return types.Recommendation{}, fmt.Errorf("corp code %q is not among the recommendations", corpCode)
}

// Selected returns the currently selected company.
func (s *Session) Selected() (types.Recommendation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return types.Recommendation{}, false
	}
	return *s.selected, true
}

// SetVideoResult records the outcome of the intro-video generation. An
// empty URL means no video is available; the flow proceeds either way.
func (s *Session) SetVideoResult(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if url == "" {
		s.videoState = VideoAbsent
		s.videoURL = ""
		return
	}
	s.videoState = VideoReady
	s.videoURL = url
}

// Video returns the intro-video state and URL.
func (s *Session) Video() (VideoState, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoState, s.videoURL
}

// CompleteVideo advances video-intro → detail. The user may skip a
// still-pending generation; the video is not waited on.
func (s *Session) CompleteVideo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepVideoIntro {
		return &ErrWrongStep{Current: s.step, Expected: StepVideoIntro}
	}
	s.step = StepDetail
	return nil
}

// Back returns detail or video-intro → dashboard, clearing the selection.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepDetail && s.step != StepVideoIntro {
		return &ErrWrongStep{Current: s.step, Expected: StepDetail}
	}
	s.selected = nil
	s.videoState = ""
	s.videoURL = ""
	s.step = StepDashboard
	return nil
}

// Restart clears all collected data and returns to the start step. Valid
// from any step.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = StepStart
	s.selectedGoalIDs = nil
	s.goalScores = nil
	s.riskPreference = ""
	s.investmentExperience = nil
	s.investmentPeriod = ""
	s.recommendations = nil
	s.selected = nil
	s.videoState = ""
	s.videoURL = ""
	s.lastError = ""
}
