package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gradecv/gradecv/internal/adapter/observability"
	"github.com/gradecv/gradecv/internal/config"
	"github.com/gradecv/gradecv/internal/domain"
	"github.com/gradecv/gradecv/internal/roles"
	"github.com/gradecv/gradecv/internal/scoring"
)

// ScoreService is the scoring engine surface the handlers depend on.
type ScoreService interface {
	Score(ctx context.Context, req scoring.Request) (domain.ScoreResult, error)
}

// RoleLister exposes the role directory listing.
type RoleLister interface {
	List() []roles.Entry
}

// Server aggregates handler dependencies.
type Server struct {
	Cfg    config.Config
	Engine ScoreService
	Roles  RoleLister
	Drift  *observability.DriftMonitor
}

// NewServer constructs an HTTP server with all handlers wired.
func NewServer(cfg config.Config, engine ScoreService, roleList RoleLister, drift *observability.DriftMonitor) *Server {
	return &Server{Cfg: cfg, Engine: engine, Roles: roleList, Drift: drift}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

type scoreRequest struct {
	Resume         *domain.ResumeDocument `json:"resume" validate:"required"`
	JobDescription string                 `json:"jobDescription" validate:"max=50000"`
	Role           string                 `json:"role" validate:"max=200"`
	Level          string                 `json:"level" validate:"max=100"`
	Mode           string                 `json:"mode"`
}

// ScoreHandler evaluates a structured resume and returns the score report.
func (s *Server) ScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
			writeError(w, r, fmt.Errorf("%w: content-type must be application/json", domain.ErrInvalidArgument), nil)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, s.Cfg.MaxBodyBytes)

		var req scoreRequest
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&req); err != nil {
			if strings.Contains(err.Error(), "request body too large") {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{
					Code:    "INVALID_ARGUMENT",
					Message: "payload too large",
					Details: map[string]int64{"max_bytes": s.Cfg.MaxBodyBytes},
				}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		mode, err := domain.ParseMode(req.Mode)
		if err != nil {
			writeError(w, r, err, map[string]string{"field": "mode"})
			return
		}

		start := time.Now()
		res, err := s.Engine.Score(r.Context(), scoring.Request{
			Resume:         *req.Resume,
			JobDescription: req.JobDescription,
			Role:           req.Role,
			Level:          req.Level,
			Mode:           mode,
		})
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		elapsed := time.Since(start)

		observability.ObserveScore(string(res.Mode), res.OverallScore, res.AutoReject, elapsed)
		if s.Drift != nil {
			s.Drift.Record(string(res.Mode), res.OverallScore)
		}
		LoggerFrom(r).Info("resume scored",
			slog.String("mode", string(res.Mode)),
			slog.Float64("overall_score", res.OverallScore),
			slog.Bool("auto_reject", res.AutoReject),
			slog.String("role", req.Role),
			slog.Duration("duration", elapsed),
		)
		writeJSON(w, http.StatusOK, res)
	}
}

// RolesHandler lists the roles and levels the taxonomy knows.
func (s *Server) RolesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"roles": s.Roles.List()})
	}
}

// HealthzHandler is the liveness probe.
func HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyzHandler reports readiness: the engine and role taxonomy must be wired.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Engine == nil || s.Roles == nil {
			writeError(w, r, fmt.Errorf("%w: scoring engine not ready", domain.ErrInternal), nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
