package backend

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/setinbound/chatkit/internal/chat"
	"github.com/setinbound/chatkit/internal/config"
)

// slowRequestThreshold is the duration above which requests are logged at WARN level.
const slowRequestThreshold = 100 * time.Millisecond

// chatRequest is the inbound /proxy/chat payload.
type chatRequest struct {
	SessionID string      `json:"sessionId"`
	ChatInput string      `json:"chatInput"`
	Source    chat.Source `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
}

type chatResponse struct {
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Server is the development chat backend.
type Server struct {
	responder Responder
	limiter   *limiterPool
	logger    *slog.Logger
	addr      string

	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

// New creates a server for the given responder.
func New(cfg config.Config, responder Responder, logger *slog.Logger) *Server {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chatkit_backend_requests_total",
		Help: "Chat requests handled, by status code.",
	}, []string{"code"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "chatkit_backend_request_duration_seconds",
		Help:    "Chat request handling time.",
		Buckets: prometheus.DefBuckets,
	})
	registry.MustRegister(requests, duration)

	return &Server{
		responder: responder,
		limiter:   newLimiterPool(cfg.RateRPS, cfg.RateBurst),
		logger:    logger,
		addr:      cfg.ListenAddr,
		registry:  registry,
		requests:  requests,
		duration:  duration,
	}
}

// Handler returns the server's HTTP handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/proxy/chat", s.logged(http.HandlerFunc(s.handleChat)))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("backend listening", "addr", s.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSON(w, http.StatusMethodNotAllowed, chatResponse{Error: "method not allowed"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, chatResponse{Error: "invalid request body"})
		return
	}

	if err := chat.Validate(req.ChatInput); err != nil {
		s.writeJSON(w, http.StatusBadRequest, chatResponse{Error: err.Error()})
		return
	}

	key := req.SessionID
	if key == "" {
		key = strings.Split(r.RemoteAddr, ":")[0]
	}
	if !s.limiter.Allow(key) {
		s.writeJSON(w, http.StatusTooManyRequests, chatResponse{Error: "Too many requests. Please slow down."})
		return
	}

	output, err := s.responder.Reply(r.Context(), req.SessionID, strings.TrimSpace(req.ChatInput))
	if err != nil {
		s.logger.Error("responder failed", "error", err, "session", req.SessionID)
		s.writeJSON(w, http.StatusInternalServerError, chatResponse{Error: "failed to generate reply"})
		return
	}

	s.writeJSON(w, http.StatusOK, chatResponse{Output: output})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body chatResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logged wraps a handler with request logging and metrics. Slow requests
// (>100ms) are logged at WARN level.
func (s *Server) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		s.requests.WithLabelValues(strconv.Itoa(rec.status)).Inc()
		s.duration.Observe(elapsed.Seconds())

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		}
		switch {
		case rec.status >= 500:
			s.logger.Error("request failed", attrs...)
		case elapsed > slowRequestThreshold:
			s.logger.Warn("slow request", attrs...)
		default:
			s.logger.Debug("request completed", attrs...)
		}
	})
}
