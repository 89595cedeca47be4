package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) *server {
	t.Helper()
	return &server{
		cfg:    defaultServeConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Language != "nexus" {
		t.Fatalf("unexpected health payload %+v", resp)
	}
}

func TestCompileHandler(t *testing.T) {
	s := newTestServer(t)

	body, _ := json.Marshal(compileRequest{Code: "main { var int x; x = 5; }", Filename: "ok.nx"})
	rec := httptest.NewRecorder()
	s.handleCompile(rec, httptest.NewRequest(http.MethodPost, "/api/compile", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["success"] != true || resp["filename"] != "ok.nx" {
		t.Fatalf("unexpected response %v", resp)
	}
	// The report fields ride alongside success/filename.
	if resp["hasErrors"] != false {
		t.Fatalf("expected embedded report, got %v", resp)
	}
	if _, ok := resp["symbolTable"].(map[string]any); !ok {
		t.Fatalf("expected symbolTable object, got %v", resp["symbolTable"])
	}
}

func TestCompileHandlerReportsDiagnostics(t *testing.T) {
	s := newTestServer(t)

	body, _ := json.Marshal(compileRequest{Code: "main { x = 1; }"})
	rec := httptest.NewRecorder()
	s.handleCompile(rec, httptest.NewRequest(http.MethodPost, "/api/compile", bytes.NewReader(body)))

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["success"] != false {
		t.Fatalf("faulty source must not report success: %v", resp)
	}
	errs := resp["errors"].([]any)
	if len(errs) == 0 {
		t.Fatalf("expected error entries")
	}
}

func TestCompileHandlerRejectsBadRequests(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleCompile(rec, httptest.NewRequest(http.MethodPost, "/api/compile", strings.NewReader("not json")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.handleCompile(rec, httptest.NewRequest(http.MethodPost, "/api/compile", strings.NewReader(`{"filename":"x"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing code, got %d", rec.Code)
	}
}

func TestWebSocketCheckRoundTrip(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(http.HandlerFunc(s.handleWebSocket))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := conn.WriteJSON(map[string]any{"type": "ping"}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	var pong map[string]any
	if err := conn.ReadJSON(&pong); err != nil {
		t.Fatalf("read pong: %v", err)
	}
	if pong["type"] != "pong" {
		t.Fatalf("expected pong, got %v", pong)
	}

	check := map[string]any{
		"type":    "check",
		"payload": map[string]any{"code": "main { var int x; var int x; }"},
	}
	if err := conn.WriteJSON(check); err != nil {
		t.Fatalf("write check: %v", err)
	}

	var resp struct {
		Type    string `json:"type"`
		Payload struct {
			HasErrors  bool `json:"hasErrors"`
			ErrorCount int  `json:"errorCount"`
		} `json:"payload"`
	}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read report: %v", err)
	}
	if resp.Type != "report" || !resp.Payload.HasErrors || resp.Payload.ErrorCount != 1 {
		t.Fatalf("unexpected report response %+v", resp)
	}
}

func TestWebSocketUnknownType(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(http.HandlerFunc(s.handleWebSocket))
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := conn.WriteJSON(map[string]any{"type": "bogus"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp map[string]any
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp["type"] != "error" {
		t.Fatalf("expected error response, got %v", resp)
	}
}

func TestLoadServeConfig(t *testing.T) {
	cfg, err := loadServeConfig("")
	if err != nil {
		t.Fatalf("defaults must load: %v", err)
	}
	if cfg.Addr != "localhost:8450" {
		t.Fatalf("unexpected default addr %q", cfg.Addr)
	}

	path := filepath.Join(t.TempDir(), "nexus.toml")
	contents := `
addr = "127.0.0.1:9000"
read_timeout = "30s"
max_source_bytes = 2048

[cors]
enabled = false
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err = loadServeConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %q", cfg.Addr)
	}
	if cfg.ReadTimeout.Duration != 30*time.Second {
		t.Fatalf("unexpected read timeout %v", cfg.ReadTimeout)
	}
	if cfg.MaxSourceBytes != 2048 {
		t.Fatalf("unexpected max source bytes %d", cfg.MaxSourceBytes)
	}
	if cfg.CORS.Enabled {
		t.Fatalf("cors must be disabled by the file")
	}

	if _, err := loadServeConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("explicit missing config must error")
	}
}
