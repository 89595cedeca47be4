package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mgomes/nexuslang/nexus"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the playground backend",
	Long: `serve exposes the front end over HTTP for the browser playground:

  GET  /api/health   liveness and version
  POST /api/compile  check a source payload, respond with the full report
  GET  /ws/check     websocket variant for live checking while typing`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadServeConfig(serveConfigPath)
		if err != nil {
			return err
		}
		return runServer(cfg)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "TOML config file (default ./nexus.toml if present)")
}

type server struct {
	cfg    ServeConfig
	logger *slog.Logger
}

func runServer(cfg ServeConfig) error {
	s := &server{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/compile", s.handleCompile)
	mux.HandleFunc("GET /ws/check", s.handleWebSocket)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withCORS(mux),
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
	}

	s.logger.Info("playground backend listening", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.CORS.Enabled {
			origin := "*"
			if len(s.cfg.CORS.AllowedOrigins) > 0 {
				origin = s.cfg.CORS.AllowedOrigins[0]
				for _, allowed := range s.cfg.CORS.AllowedOrigins {
					if allowed == r.Header.Get("Origin") {
						origin = allowed
						break
					}
				}
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type healthResponse struct {
	Status   string `json:"status"`
	Language string `json:"language"`
	Version  string `json:"version"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Language: "nexus",
		Version:  version,
	})
}

type compileRequest struct {
	Code     string `json:"code"`
	Filename string `json:"filename"`
}

type compileResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	nexus.Report
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleCompile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxSourceBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "source too large"})
		return
	}

	var req compileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.Code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: `missing "code" field in request body`})
		return
	}
	if req.Filename == "" {
		req.Filename = "unnamed.nx"
	}

	report := checkSource(req.Code)
	s.logger.Info("compile request",
		"filename", req.Filename,
		"bytes", len(req.Code),
		"errors", report.ErrorCount,
	)

	writeJSON(w, http.StatusOK, compileResponse{
		Success:  !report.HasErrors,
		Filename: req.Filename,
		Report:   report,
	})
}

func checkSource(code string) nexus.Report {
	parser := nexus.New(code)
	root := parser.Parse()
	return nexus.NewReport(parser, root)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// --- websocket live checking ---

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the CORS config guards the REST surface; ws is local-playground only
	},
}

type wsMessage struct {
	Type    string          `json:"type"` // "check", "ping"
	Payload json.RawMessage `json:"payload"`
}

type wsCheckPayload struct {
	Code string `json:"code"`
}

type wsResponse struct {
	Type    string `json:"type"` // "report", "error", "pong"
	Payload any    `json:"payload"`
}

type wsErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	session := uuid.NewString()
	logger := s.logger.With("session", session, "remote", conn.RemoteAddr().String())
	logger.Info("websocket session opened")

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Error("websocket read error", "error", err)
			} else {
				logger.Info("websocket session closed")
			}
			return
		}

		switch msg.Type {
		case "ping":
			s.send(conn, logger, wsResponse{Type: "pong"})

		case "check":
			var payload wsCheckPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				s.send(conn, logger, wsResponse{Type: "error", Payload: wsErrorPayload{
					Code:    "invalid_payload",
					Message: "check payload must carry a code field",
				}})
				continue
			}
			if int64(len(payload.Code)) > s.cfg.MaxSourceBytes {
				s.send(conn, logger, wsResponse{Type: "error", Payload: wsErrorPayload{
					Code:    "source_too_large",
					Message: fmt.Sprintf("source exceeds %d bytes", s.cfg.MaxSourceBytes),
				}})
				continue
			}
			report := checkSource(payload.Code)
			s.send(conn, logger, wsResponse{Type: "report", Payload: report})

		default:
			s.send(conn, logger, wsResponse{Type: "error", Payload: wsErrorPayload{
				Code:    "unknown_type",
				Message: fmt.Sprintf("unknown message type %q", msg.Type),
			}})
		}
	}
}

func (s *server) send(conn *websocket.Conn, logger *slog.Logger, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		logger.Error("websocket write failed", "error", err)
	}
}
