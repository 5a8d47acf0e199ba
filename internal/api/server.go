package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/JakeFAU/sha256digest/internal/codec"
	"github.com/JakeFAU/sha256digest/internal/config"
	"github.com/JakeFAU/sha256digest/internal/digest"
	"github.com/JakeFAU/sha256digest/internal/dispatcher"
	"github.com/JakeFAU/sha256digest/internal/logging"
	"github.com/JakeFAU/sha256digest/internal/metrics"
	"github.com/JakeFAU/sha256digest/internal/policy/ratelimit"
	core "github.com/JakeFAU/sha256digest/pkg/sha256"
)

// Server wires HTTP handlers to the digest dispatcher.
type Server struct {
	router     chi.Router
	dispatcher *dispatcher.Dispatcher
	idGen      digest.IDGenerator
	clock      digest.Clock
	cfg        config.Config
	logger     *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(
	dispatch *dispatcher.Dispatcher,
	idGen digest.IDGenerator,
	clock digest.Clock,
	cfg config.Config,
	logger *zap.Logger,
) *Server {
	s := &Server{
		dispatcher: dispatch,
		idGen:      idGen,
		clock:      clock,
		cfg:        cfg,
		logger:     logging.OrNop(logger),
	}
	metrics.Init()
	// Build the constant table before handlers run concurrently.
	core.DefaultTable()

	r := chi.NewRouter()
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(metrics.Middleware)
	r.Use(timeoutMiddleware(cfg.RequestTimeout()))
	if cfg.Auth.Enabled {
		r.Use(apiKeyMiddleware(cfg.Auth.APIKey))
	}

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		limiter := ratelimit.New(ratelimit.Config{
			DefaultRPS:   cfg.Server.RateLimitRPS,
			DefaultBurst: cfg.Server.RateLimitBurst,
		})
		if !limiter.Unlimited() {
			r.Use(rateLimitMiddleware(limiter, cfg.Auth.Enabled))
		}
		r.Post("/v1/digest", s.digestBody)
		r.Post("/v1/digest/batch", s.digestBatch)
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

type digestResponse struct {
	RequestID  string    `json:"request_id"  cbor:"request_id"`
	Digest     string    `json:"digest"      cbor:"digest"`
	Size       int       `json:"size"        cbor:"size"`
	Encoding   string    `json:"encoding"    cbor:"encoding"`
	ComputedAt time.Time `json:"computed_at" cbor:"computed_at"`
}

type batchRequest struct {
	Messages []string `json:"messages"`
}

type batchResponse struct {
	RequestID  string          `json:"request_id"  cbor:"request_id"`
	Results    []digest.Result `json:"results"     cbor:"results"`
	ComputedAt time.Time       `json:"computed_at" cbor:"computed_at"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) digestBody(w http.ResponseWriter, r *http.Request) {
	enc, err := codec.ParseEncoding(r.Header.Get("Content-Encoding"))
	if err != nil {
		s.respondError(w, r, http.StatusUnsupportedMediaType, err.Error())
		return
	}

	limit := s.cfg.Server.MaxBodyBytes
	body := http.MaxBytesReader(w, r.Body, limit)
	msg, err := codec.ReadAll(body, enc, limit)
	if err != nil {
		s.respondError(w, r, readStatus(err), err.Error())
		return
	}

	results, err := s.dispatcher.Run(r.Context(), []digest.Input{{Label: "body", Message: msg}})
	if err != nil {
		s.respondError(w, r, digestStatus(err), err.Error())
		return
	}

	s.respond(w, r, http.StatusOK, digestResponse{
		RequestID:  requestIDFrom(r),
		Digest:     results[0].Digest,
		Size:       results[0].Size,
		Encoding:   string(enc),
		ComputedAt: s.clock.Now(),
	})
}

func (s *Server) digestBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.respondError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.Messages) == 0 {
		s.respondError(w, r, http.StatusBadRequest, "messages required")
		return
	}

	inputs := make([]digest.Input, len(req.Messages))
	for i, msg := range req.Messages {
		inputs[i] = digest.Input{Label: strconv.Itoa(i), Message: []byte(msg)}
	}
	results, err := s.dispatcher.Run(r.Context(), inputs)
	if err != nil {
		s.respondError(w, r, digestStatus(err), err.Error())
		return
	}

	s.respond(w, r, http.StatusOK, batchResponse{
		RequestID:  requestIDFrom(r),
		Results:    results,
		ComputedAt: s.clock.Now(),
	})
}

func readStatus(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), errors.Is(err, codec.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, codec.ErrUnsupportedEncoding):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}

func digestStatus(err error) int {
	if errors.Is(err, core.ErrMessageTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// respond writes payload as CBOR when the client accepts it, JSON otherwise.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if codec.AcceptsCBOR(r.Header.Get("Accept")) {
		data, err := codec.MarshalCBOR(payload)
		if err != nil {
			s.logger.Error("encode CBOR failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "encode response"}, s.logger)
			return
		}
		w.Header().Set("Content-Type", codec.ContentTypeCBOR)
		w.WriteHeader(status)
		if _, err := w.Write(data); err != nil {
			s.logger.Error("write CBOR failed", zap.Error(err))
		}
		return
	}
	writeJSON(w, status, payload, s.logger)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.respond(w, r, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("write JSON failed", zap.Error(err))
	}
}
