package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minji/esg-compass/internal/enrichment"
	"github.com/minji/esg-compass/internal/llm"
	"github.com/minji/esg-compass/internal/pipeline"
	"github.com/minji/esg-compass/internal/server/ratelimit"
	"github.com/minji/esg-compass/internal/survey"
	"github.com/minji/esg-compass/internal/types"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	generator   enrichment.Generator
	modelClient llm.Client
	sessions    *survey.Manager
	rateLimiter *ratelimit.Limiter

	dataset     string
	topN        int
	databaseURL string
	verbose     bool
}

// Config holds server configuration
type Config struct {
	Port        int
	Dataset     string
	TopN        int
	APIKey      string
	Mode        string // "live" or "mock"
	DatabaseURL string
	Verbose     bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Dataset == "" {
		return nil, fmt.Errorf("dataset source is required")
	}

	s := &Server{
		sessions:    survey.NewManager(),
		rateLimiter: ratelimit.NewLimiter(nil),
		dataset:     cfg.Dataset,
		topN:        cfg.TopN,
		databaseURL: cfg.DatabaseURL,
		verbose:     cfg.Verbose,
	}

	mode := enrichment.Mode(cfg.Mode)
	if mode == "" {
		mode = enrichment.ModeMock
	}
	if mode == enrichment.ModeLive {
		client, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create model client: %w", err)
		}
		s.modelClient = client
	}
	generator, err := enrichment.New(mode, s.modelClient)
	if err != nil {
		return nil, err
	}
	s.generator = generator

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /goals", s.handleListGoals)
	mux.HandleFunc("POST /recommendations", s.handleRecommendations)

	// Survey session endpoints
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /sessions/{id}/begin", s.handleBegin)
	mux.HandleFunc("POST /sessions/{id}/sdgs", s.handleSelectGoals)
	mux.HandleFunc("POST /sessions/{id}/scores", s.handleScoreGoals)
	mux.HandleFunc("POST /sessions/{id}/survey", s.handleCompleteSurvey)
	mux.HandleFunc("GET /sessions/{id}/recommendations", s.handleSessionRecommendations)
	mux.HandleFunc("POST /sessions/{id}/select/{corp_code}", s.handleSelectCompany)
	mux.HandleFunc("GET /sessions/{id}/video", s.handleVideo)
	mux.HandleFunc("POST /sessions/{id}/video/complete", s.handleCompleteVideo)
	mux.HandleFunc("POST /sessions/{id}/back", s.handleBack)
	mux.HandleFunc("POST /sessions/{id}/restart", s.handleRestart)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for ranking runs with live enrichment
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.modelClient != nil {
		_ = s.modelClient.Close()
	}
	log.Println("Server stopped")
	return nil
}

// runPipeline executes one recommendation run with the server's settings.
func (s *Server) runPipeline(ctx context.Context, req *types.RankingRequest, topN int) (*types.RankingResponse, error) {
	if topN == 0 {
		topN = s.topN
	}
	return pipeline.Run(ctx, pipeline.RunOptions{
		DatasetSource: s.dataset,
		Request:       req,
		TopN:          topN,
		Generator:     s.generator,
		DatabaseURL:   s.databaseURL,
		Verbose:       s.verbose,
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit rejects clients that exceed their request budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow(r) {
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// jsonResponse writes a JSON response with the given status
func (s *Server) jsonResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// errorResponse writes a JSON error response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
