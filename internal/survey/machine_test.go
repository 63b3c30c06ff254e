package survey

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minji/esg-compass/internal/types"
)

func okRanker(recs ...types.Recommendation) Ranker {
	return func(ctx context.Context, req *types.RankingRequest) (*types.RankingResponse, error) {
		return &types.RankingResponse{Recommendations: recs}, nil
	}
}

func failRanker(msg string) Ranker {
	return func(ctx context.Context, req *types.RankingRequest) (*types.RankingResponse, error) {
		return nil, errors.New(msg)
	}
}

// advanceToInvestment walks a fresh session up to the investment step.
func advanceToInvestment(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	require.NoError(t, s.Begin())
	require.NoError(t, s.SelectGoals([]int{7, 13}))
	require.NoError(t, s.ScoreGoals([]types.GoalSelection{
		{GoalID: 7, Importance: 5},
		{GoalID: 13, Importance: 3},
	}))
	return s
}

func advanceToDashboard(t *testing.T, recs ...types.Recommendation) *Session {
	t.Helper()
	s := advanceToInvestment(t)
	require.NoError(t, s.CompleteSurvey(context.Background(), types.RiskSafe, nil, "", okRanker(recs...)))
	return s
}

func TestSession_StartsAtStart(t *testing.T) {
	assert.Equal(t, StepStart, NewSession().Step())
}

func TestSession_ForwardFlow(t *testing.T) {
	rec := types.Recommendation{CompanyName: "한화솔루션", CorpCode: "009830"}
	s := advanceToDashboard(t, rec)
	assert.Equal(t, StepDashboard, s.Step())

	got, err := s.Recommendations()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "009830", got[0].CorpCode)

	selected, err := s.SelectCompany("009830")
	require.NoError(t, err)
	assert.Equal(t, "한화솔루션", selected.CompanyName)
	assert.Equal(t, StepVideoIntro, s.Step())

	state, _ := s.Video()
	assert.Equal(t, VideoPending, state)

	require.NoError(t, s.CompleteVideo())
	assert.Equal(t, StepDetail, s.Step())
}

func TestSession_BeginTwiceRejected(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Begin())

	err := s.Begin()
	var wrong *ErrWrongStep
	require.ErrorAs(t, err, &wrong)
	assert.Equal(t, StepSDGSelect, wrong.Current)
}

func TestSession_SelectGoalsValidation(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Begin())

	assert.Error(t, s.SelectGoals(nil), "empty selection")
	assert.Error(t, s.SelectGoals([]int{1, 2, 3, 4}), "over the cap")
	assert.Error(t, s.SelectGoals([]int{7, 7}), "duplicate")
	assert.Error(t, s.SelectGoals([]int{18}), "unknown goal")
	assert.Equal(t, StepSDGSelect, s.Step(), "failed selection does not advance")
}

func TestSession_ScoreGoalsMustMatchSelection(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Begin())
	require.NoError(t, s.SelectGoals([]int{7, 13}))

	assert.Error(t, s.ScoreGoals([]types.GoalSelection{{GoalID: 7, Importance: 5}}),
		"missing a selected goal")
	assert.Error(t, s.ScoreGoals([]types.GoalSelection{
		{GoalID: 13, Importance: 5},
		{GoalID: 7, Importance: 3},
	}), "wrong order")
	assert.Error(t, s.ScoreGoals([]types.GoalSelection{
		{GoalID: 7, Importance: 0},
		{GoalID: 13, Importance: 3},
	}), "importance out of range")
}

func TestSession_CompleteSurveyFailureReturnsToInvestment(t *testing.T) {
	s := advanceToInvestment(t)

	err := s.CompleteSurvey(context.Background(), types.RiskNeutral, nil, "", failRanker("dataset unreachable"))
	require.Error(t, err)
	assert.Equal(t, StepInvestment, s.Step())
	assert.Contains(t, s.LastError(), "dataset unreachable")

	// Retry succeeds and clears the retained error.
	require.NoError(t, s.CompleteSurvey(context.Background(), types.RiskNeutral, nil, "", okRanker()))
	assert.Equal(t, StepDashboard, s.Step())
	assert.Empty(t, s.LastError())
}

func TestSession_CompleteSurveyInvalidRisk(t *testing.T) {
	s := advanceToInvestment(t)
	err := s.CompleteSurvey(context.Background(), types.Risk("reckless"), nil, "", okRanker())
	assert.Error(t, err)
	assert.Equal(t, StepInvestment, s.Step())
}

func TestSession_SelectCompanyUnknownCode(t *testing.T) {
	s := advanceToDashboard(t, types.Recommendation{CorpCode: "001"})

	_, err := s.SelectCompany("999")
	assert.Error(t, err)
	assert.Equal(t, StepDashboard, s.Step())
}

func TestSession_VideoResult(t *testing.T) {
	s := advanceToDashboard(t, types.Recommendation{CorpCode: "001"})
	_, err := s.SelectCompany("001")
	require.NoError(t, err)

	s.SetVideoResult("https://example.com/video.mp4")
	state, url := s.Video()
	assert.Equal(t, VideoReady, state)
	assert.Equal(t, "https://example.com/video.mp4", url)

	s.SetVideoResult("")
	state, url = s.Video()
	assert.Equal(t, VideoAbsent, state)
	assert.Empty(t, url, "ready URL is retained only while ready")
}

func TestSession_BackClearsSelection(t *testing.T) {
	s := advanceToDashboard(t, types.Recommendation{CorpCode: "001"})
	_, err := s.SelectCompany("001")
	require.NoError(t, err)
	require.NoError(t, s.CompleteVideo())

	require.NoError(t, s.Back())
	assert.Equal(t, StepDashboard, s.Step())
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestSession_RestartFromAnyStep(t *testing.T) {
	s := advanceToDashboard(t, types.Recommendation{CorpCode: "001"})
	s.Restart()
	assert.Equal(t, StepStart, s.Step())
	_, err := s.Recommendations()
	assert.Error(t, err, "recommendations are cleared")

	// The full flow works again after restart.
	require.NoError(t, s.Begin())
	require.NoError(t, s.SelectGoals([]int{1}))
}
