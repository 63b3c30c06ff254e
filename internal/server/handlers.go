package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/minji/esg-compass/internal/survey"
	"github.com/minji/esg-compass/internal/types"
)

// videoTimeout bounds the background intro-video generation.
const videoTimeout = 5 * time.Minute

// SessionResponse summarizes a survey session's state.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Step      string `json:"step"`
	Error     string `json:"error,omitempty"`
}

// SelectGoalsRequest is the body for POST /sessions/{id}/sdgs.
type SelectGoalsRequest struct {
	GoalIDs []int `json:"goal_ids"`
}

// ScoreGoalsRequest is the body for POST /sessions/{id}/scores.
type ScoreGoalsRequest struct {
	Scores []types.GoalSelection `json:"scores"`
}

// CompleteSurveyRequest is the body for POST /sessions/{id}/survey.
type CompleteSurveyRequest struct {
	RiskPreference       string   `json:"risk_preference"`
	InvestmentExperience []string `json:"investment_experience,omitempty"`
	InvestmentPeriod     string   `json:"investment_period,omitempty"`
}

// VideoResponse reports the intro-video generation state.
type VideoResponse struct {
	State    string `json:"state"`
	VideoURL string `json:"video_url,omitempty"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListGoals returns the SDG catalog for survey UIs.
func (s *Server) handleListGoals(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"goals": types.SDGList})
}

// handleRecommendations runs one ranking directly, without a session.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req types.RankingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	response, err := s.runPipeline(r.Context(), &req, req.TopN)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, response)
}

// session resolves the {id} path value to a live session.
func (s *Server) session(r *http.Request) (*survey.Session, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, &ErrValidation{Message: "invalid session id"}
	}
	session, ok := s.sessions.Get(id)
	if !ok {
		return nil, &ErrSessionNotFound{ID: id}
	}
	return session, nil
}

func (s *Server) sessionResponse(session *survey.Session) SessionResponse {
	return SessionResponse{
		SessionID: session.ID.String(),
		Step:      string(session.Step()),
		Error:     session.LastError(),
	}
}

// handleCreateSession starts a new survey session.
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	session := s.sessions.Create()
	s.jsonResponse(w, http.StatusCreated, s.sessionResponse(session))
}

// handleGetSession reports a session's current step.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(session))
}

// handleDeleteSession discards a session.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.sessions.Delete(session.ID)
	w.WriteHeader(http.StatusNoContent)
}

// handleBegin advances start → sdg-select.
func (s *Server) handleBegin(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := session.Begin(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(session))
}

// handleSelectGoals records the chosen goals.
func (s *Server) handleSelectGoals(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	var req SelectGoalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := session.SelectGoals(req.GoalIDs); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(session))
}

// handleScoreGoals records importance scores for the chosen goals.
func (s *Server) handleScoreGoals(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	var req ScoreGoalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := session.ScoreGoals(req.Scores); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(session))
}

// handleCompleteSurvey records the investment answers and runs the ranking.
func (s *Server) handleCompleteSurvey(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	var req CompleteSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	risk, err := types.ParseRisk(req.RiskPreference)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	err = session.CompleteSurvey(r.Context(), risk, req.InvestmentExperience, req.InvestmentPeriod,
		func(ctx context.Context, rankReq *types.RankingRequest) (*types.RankingResponse, error) {
			return s.runPipeline(ctx, rankReq, 0)
		})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(session))
}

// handleSessionRecommendations returns the dashboard payload.
func (s *Server) handleSessionRecommendations(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	recommendations, err := session.Recommendations()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, types.RankingResponse{Recommendations: recommendations})
}

// handleSelectCompany picks a recommended company and starts intro-video
// generation in the background. The flow never waits on the video.
func (s *Server) handleSelectCompany(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	rec, err := session.SelectCompany(r.PathValue("corp_code"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), videoTimeout)
		defer cancel()
		url, err := s.generator.GenerateVideo(ctx, rec.ImageReferenceSentence, rec.CompanyName)
		if err != nil {
			log.Printf("Warning: video generation failed for %s: %v", rec.CompanyName, err)
			url = ""
		}
		session.SetVideoResult(url)
	}()

	s.jsonResponse(w, http.StatusOK, s.sessionResponse(session))
}

// handleVideo reports the intro-video state.
func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	state, url := session.Video()
	if state == "" {
		s.errorResponse(w, http.StatusConflict, "no company selected")
		return
	}
	s.jsonResponse(w, http.StatusOK, VideoResponse{State: string(state), VideoURL: url})
}

// handleCompleteVideo advances video-intro → detail.
func (s *Server) handleCompleteVideo(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := session.CompleteVideo(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(session))
}

// handleBack returns to the dashboard.
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := session.Back(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(session))
}

// handleRestart clears the session back to the start step.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	session.Restart()
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(session))
}
