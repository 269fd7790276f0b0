package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pebblebed/kugel/pkg/config"
	"github.com/pebblebed/kugel/pkg/core"
	"github.com/pebblebed/kugel/pkg/deck"
	"github.com/pebblebed/kugel/pkg/validation"
)

// Server is the local development server for inspecting a reactor model.
// The config is reloaded on every request so edits show up immediately.
type Server struct {
	configPath string
	addr       string
	logger     *zap.Logger
}

// New creates a server for the given config file or project directory. An
// empty path serves the default model.
func New(configPath, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		configPath: configPath,
		addr:       addr,
		logger:     logger,
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/deck", s.handleDeck)
	mux.HandleFunc("GET /api/heights", s.handleHeights)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /api/config", s.handleConfig)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return s.logRequests(mux)
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("kugel server starting",
		zap.String("url", "http://localhost"+s.addr),
		zap.String("config", s.configPath),
	)
	return http.ListenAndServe(s.addr, s.Handler())
}

// load reads the config and applies ?set=key=value overrides.
func (s *Server) load(r *http.Request) (*config.ReactorConfig, error) {
	cfg, err := config.LoadPath(s.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(r.URL.Query()["set"]); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>kugel</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>kugel</h1>
<p><a style="color:#8cf" href="/api/deck">deck</a> &middot;
<a style="color:#8cf" href="/api/heights">heights</a> &middot;
<a style="color:#8cf" href="/api/validation">validation</a> &middot;
<a style="color:#8cf" href="/api/config">config</a></p>
</div>
</body></html>`)
}

func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.load(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	asm, err := core.New(cfg, core.WithLogger(s.logger))
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := deck.NewTextWriter(w).WriteCore(asm.Build()); err != nil {
		s.logger.Warn("deck write failed", zap.Error(err))
	}
}

// heightsView is the JSON shape of /api/heights.
type heightsView struct {
	Simple      bool           `json:"simple"`
	LowerModel  float64        `json:"lower_model"`
	ModelUpper  float64        `json:"model_upper"`
	Segments    []core.Segment `json:"segments"`
	PebbleShoot core.Segment   `json:"pebble_shoot"`
	ControlRod  core.Segment   `json:"control_rod"`
	Riser       core.Segment   `json:"riser"`
}

func newHeightsView(cfg *config.ReactorConfig) heightsView {
	eff := cfg.Effective()
	h := core.ComputeHeights(eff.Heights)
	return heightsView{
		Simple:      eff.Options.SimpleCore,
		LowerModel:  h.LowerModel,
		ModelUpper:  h.ModelUpper,
		Segments:    h.AxialSegments(eff.Options.SimpleCore),
		PebbleShoot: h.PebbleShoot,
		ControlRod:  h.ControlRod,
		Riser:       h.Riser,
	}
}

func (s *Server) handleHeights(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.load(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newHeightsView(cfg))
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.load(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	report := validation.ValidateConfig(cfg)
	if report.Valid {
		// Config errors are already in the report; only build when they pass.
		if asm, err := core.New(cfg, core.WithLogger(s.logger)); err == nil {
			report.Merge(core.ValidateBuild(asm.Build()))
		}
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.load(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encoding response failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
