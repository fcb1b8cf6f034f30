// Package api exposes masked-sequence generation over HTTP: a single
// POST /v1/generate endpoint plus a health check, served with echo.
package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"golang.org/x/time/rate"

	"github.com/samcharles93/demask/internal/decoder"
	"github.com/samcharles93/demask/internal/logger"
)

// MaxBatchSize caps the number of sequences a single request may ask
// for.
const MaxBatchSize = 64

// Generator is the slice of the decoder the server depends on.
// *decoder.Controller satisfies it.
type Generator interface {
	Generate(opts decoder.GenerateOptions) ([][]int, error)
	MaxSeqLen() int
	Steps() int
}

// BuildFunc constructs a Generator seeded for one request. A fresh
// generator per request keeps every response reproducible from its
// reported seed.
type BuildFunc func(seed int64) Generator

// Config configures the server. Build is required; the rate limit
// defaults to 10 requests per second with a burst of 10.
type Config struct {
	Build      BuildFunc
	RatePerSec float64
	Burst      int
	Log        logger.Logger
}

// Server handles the generation API.
type Server struct {
	build   BuildFunc
	limiter *rate.Limiter
	log     logger.Logger
	clock   func() time.Time
}

// NewServer builds a Server from cfg.
func NewServer(cfg Config) *Server {
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	log := cfg.Log
	if log == nil {
		log = logger.Default()
	}
	return &Server{
		build:   cfg.Build,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.Burst),
		log:     log,
		clock:   time.Now,
	}
}

// Register mounts the API routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/healthz", s.handleHealth)
	e.POST("/v1/generate", s.handleGenerate)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(c *echo.Context) error {
	if !s.limiter.Allow() {
		return writeError(c, http.StatusTooManyRequests, "rate_limit_error", "too many requests")
	}
	req, err := decodeJSON[GenerateRequest](c.Request().Body)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error())
	}
	if req.BatchSize < 0 || req.BatchSize > MaxBatchSize {
		return writeError(c, http.StatusBadRequest, "invalid_request_error",
			fmt.Sprintf("batch_size must be in [0, %d]", MaxBatchSize))
	}
	if req.FilterThres != nil && (*req.FilterThres < 0 || *req.FilterThres >= 1) {
		return writeError(c, http.StatusBadRequest, "invalid_request_error",
			"filter_thres must be in [0, 1)")
	}

	seed := s.clock().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	gen := s.build(seed)

	start := s.clock()
	seqs, err := gen.Generate(decoder.GenerateOptions{
		BatchSize:   req.BatchSize,
		Temperature: req.Temperature,
		FilterThres: req.FilterThres,
		Args:        req.Args,
	})
	if err != nil {
		s.log.Error("generation failed", "error", err)
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
	}

	resp := GenerateResponse{
		ID:        "gen-" + uuid.NewString(),
		Object:    "generation",
		Created:   s.clock().Unix(),
		Seed:      seed,
		Steps:     gen.Steps(),
		SeqLen:    gen.MaxSeqLen(),
		Sequences: seqs,
	}
	s.log.Info("generation complete",
		"id", resp.ID,
		"batch", len(seqs),
		"duration", time.Since(start).String())
	return writeJSON(c, http.StatusOK, resp)
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var v T
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return v, fmt.Errorf("invalid JSON body: %w", err)
	}
	return v, nil
}

func writeJSON(c *echo.Context, status int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Blob(status, echo.MIMEApplicationJSON, data)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return writeJSON(c, status, map[string]any{
		"error": ResponseError{Message: msg, Type: errType},
	})
}
