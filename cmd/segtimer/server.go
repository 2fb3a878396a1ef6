package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/segtimer/segtimer-go/pkg/control"
	"github.com/segtimer/segtimer-go/pkg/eventlog"
	"github.com/segtimer/segtimer-go/pkg/history"
	"github.com/segtimer/segtimer-go/pkg/render"
	"github.com/segtimer/segtimer-go/pkg/version"
)

// Control endpoint paths.
const (
	PathTimerStatus   = "/timerStatus"
	PathTimerInterval = "/timerInterval"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// APIVersionHeader names the API version a client speaks. The server always
// answers with its own.
const APIVersionHeader = "X-API-Version"

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Listen  string
	Version string
}

// LoopStats reports render loop counters.
type LoopStats interface {
	Stats() render.Stats
}

// Server is the HTTP control surface of the timer.
type Server struct {
	config  ServerConfig
	mux     *http.ServeMux
	server  *http.Server
	ctl     *control.Controller
	loop    LoopStats
	store   *history.Store
	logger  *slog.Logger
	started time.Time
}

// NewServer creates a server. loop and store may be nil.
func NewServer(cfg ServerConfig, ctl *control.Controller, loop LoopStats, store *history.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		config:  cfg,
		mux:     http.NewServeMux(),
		ctl:     ctl,
		loop:    loop,
		store:   store,
		logger:  logger,
		started: time.Now(),
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.withRequestID(s.withAPIVersion(s.mux)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc(PathTimerStatus, s.handleTimerStatus)
	s.mux.HandleFunc(PathTimerInterval, s.handleTimerInterval)

	s.mux.HandleFunc("/api/v1/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/timer", s.handleTimer)
	s.mux.HandleFunc("/api/v1/runs", s.handleRuns)
	s.mux.HandleFunc("/api/v1/runs/", s.handleRunByID)
}

// infoResponse is the body of every control endpoint response.
type infoResponse struct {
	Info string `json:"info"`
}

// withRequestID tags the request context with an id and the control origin.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := eventlog.WithOrigin(r.Context(), eventlog.Origin{
			Source:    eventlog.SourceControl,
			RequestID: id,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withAPIVersion rejects clients whose API major version differs from ours.
// Requests without the header are accepted.
func (s *Server) withAPIVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(APIVersionHeader, version.Current)

		if v := r.Header.Get(APIVersionHeader); v != "" && !version.Supports(v) {
			s.logger.Info("rejected client api version", "version", v,
				"request_id", eventlog.OriginFrom(r.Context()).RequestID)
			writeJSON(w, http.StatusBadRequest, infoResponse{Info: "Unsupported API version " + v})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allowGet writes 405 for anything but GET.
func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, infoResponse{Info: "Method not allowed"})
		return false
	}
	return true
}

// handleTimerStatus starts or stops the countdown (?a=start|stop).
func (s *Server) handleTimerStatus(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	err := s.ctl.HandleTimerStatus(r.Context(), r.URL.Query().Get("a"))
	s.writeControlResult(w, err)
}

// handleTimerInterval sets the countdown duration (?seconds=N).
func (s *Server) handleTimerInterval(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	err := s.ctl.HandleTimerInterval(r.Context(), r.URL.Query().Get("seconds"))
	s.writeControlResult(w, err)
}

func (s *Server) writeControlResult(w http.ResponseWriter, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, infoResponse{Info: "ok"})
		return
	}

	var verr *control.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, infoResponse{Info: verr.Message})
		return
	}
	s.logger.Error("control request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, infoResponse{Info: "Internal error"})
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	v := s.config.Version
	if v == "" {
		v = "dev"
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": v,
		"api":     version.Current,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

// TimerResponse is the response for GET /api/v1/timer.
type TimerResponse struct {
	Phase            string        `json:"phase"`
	Running          bool          `json:"running"`
	Digits           string        `json:"digits"`
	Display          string        `json:"display"`
	RemainingSeconds int           `json:"remaining_seconds"`
	DefaultSeconds   int           `json:"default_seconds"`
	RunID            string        `json:"run_id,omitempty"`
	Loop             *render.Stats `json:"loop,omitempty"`
}

// handleTimer returns the current timer state.
func (s *Server) handleTimer(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	snap := s.ctl.Status()
	resp := TimerResponse{
		Phase:            snap.Phase.String(),
		Running:          snap.Running,
		Digits:           snap.Clock.String(),
		Display:          snap.Clock.Format(),
		RemainingSeconds: snap.Clock.Seconds(),
		DefaultSeconds:   snap.DefaultSeconds,
		RunID:            snap.RunID,
	}
	if s.loop != nil {
		stats := s.loop.Stats()
		resp.Loop = &stats
	}
	writeJSON(w, http.StatusOK, resp)
}

// RunListResponse is the response for GET /api/v1/runs.
type RunListResponse struct {
	Runs  []history.Run `json:"runs"`
	Stats history.Stats `json:"stats"`
}

// handleRuns lists recorded runs (?limit=&offset=).
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, infoResponse{Info: "History disabled"})
		return
	}

	limit, ok1 := queryInt(r, "limit", 100)
	offset, ok2 := queryInt(r, "offset", 0)
	if !ok1 || !ok2 {
		writeJSON(w, http.StatusBadRequest, infoResponse{Info: control.MsgInvalidArgument})
		return
	}

	runs, err := s.store.ListRuns(limit, offset)
	if err != nil {
		s.internalError(w, "list runs", err)
		return
	}
	stats, err := s.store.Stats()
	if err != nil {
		s.internalError(w, "run stats", err)
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}

	writeJSON(w, http.StatusOK, RunListResponse{Runs: runs, Stats: stats})
}

// handleRunByID returns one run.
func (s *Server) handleRunByID(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, infoResponse{Info: "History disabled"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/runs/")
	run, err := s.store.GetRun(id)
	if err != nil {
		s.internalError(w, "get run", err)
		return
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, infoResponse{Info: "Run not found"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error("request failed", "op", op, "error", err)
	writeJSON(w, http.StatusInternalServerError, infoResponse{Info: "Internal error"})
}

func queryInt(r *http.Request, key string, def int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ListenAndServe starts the HTTP server and blocks until Shutdown.
func (s *Server) ListenAndServe() error {
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
