package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	"eshopadmin/internal/config"
	"eshopadmin/internal/http/handlers"
	applog "eshopadmin/internal/log"
	"eshopadmin/internal/repos"
)

func newTestApp(t *testing.T) (*fiber.App, *repos.Gateway) {
	t.Helper()
	g, err := repos.OpenDB(repos.Options{Driver: "sqlite", DSN: ":memory:", EnsureSchema: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = g.Close() })
	cfg := config.Config{TemplatesDir: "../../web/templates"}
	return handlers.NewApp(cfg, g), g
}

// client keeps the session cookie between requests, like a browser.
type client struct {
	t   *testing.T
	app *fiber.App
	sid string
}

func newClient(t *testing.T, app *fiber.App) *client {
	return &client{t: t, app: app}
}

func (c *client) do(method, path string, body any) (*http.Response, []byte) {
	c.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	case []byte:
		r = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			c.t.Fatal(err)
		}
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: c.sid})
	}
	resp, err := c.app.Test(req, -1)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == "sid" {
			c.sid = ck.Value
		}
	}
	out, _ := io.ReadAll(resp.Body)
	return resp, out
}

// expect fails the test unless the response has the wanted status.
func (c *client) expect(want int, method, path string, body any) []byte {
	c.t.Helper()
	resp, out := c.do(method, path, body)
	if resp.StatusCode != want {
		c.t.Fatalf("%s %s: want %d, got %d body=%s", method, path, want, resp.StatusCode, out)
	}
	return out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
	return v
}

type logEntry struct {
	Level  string         `json:"level"`
	Kind   string         `json:"kind"`
	Action string         `json:"action"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

// captureLogs collects the JSON log lines written while fn runs. Access log
// lines are not JSON and are skipped.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	buf := &lockedBuf{}
	restore := applog.SetOutput(buf)
	fn()
	restore()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil && e.Action != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
