package preview

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ryferguson/cornwand/internal/errors"
)

const indexDoc = `{
  "doctype": true,
  "root": {"tag": "html", "content": [
    {"tag": "body", "content": [{"tag": "p", "text": "a < b"}]}
  ]}
}`

func newTestServer(t *testing.T, opts Options) (*Server, *httptest.Server) {
	t.Helper()
	if opts.Dir == "" {
		opts.Dir = t.TempDir()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (int, string, http.Header) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body), resp.Header
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(Options{Dir: filepath.Join(t.TempDir(), "nope")})
	if err == nil {
		t.Fatal("expected error for missing dir")
	}
	we := errors.FromError(err, "")
	if we.Code != "W302" {
		t.Errorf("code = %q, want W302", we.Code)
	}
}

func TestServer_Page(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.json"), indexDoc)
	writeFile(t, filepath.Join(dir, "broken.json"), `{"root":{"attrs":{}}}`)

	_, ts := newTestServer(t, Options{Dir: dir})

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "renders document",
			path:       "/p/index",
			wantStatus: http.StatusOK,
			wantBody:   "<!doctype html><html><body><p>a &lt; b</p></body></html>",
		},
		{
			name:       "missing document",
			path:       "/p/missing",
			wantStatus: http.StatusNotFound,
			wantBody:   "missing.json",
		},
		{
			name:       "invalid document",
			path:       "/p/broken",
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "<h1>Invalid document</h1>",
		},
		{
			name:       "hidden name",
			path:       "/p/.secret",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body, header := get(t, ts.URL+tt.path)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if ct := header.Get("Content-Type"); ct != contentTypeHTML {
				t.Errorf("Content-Type = %q", ct)
			}
			if !strings.Contains(body, tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", body, tt.wantBody)
			}
			if strings.Contains(body, ReloadScript) {
				t.Error("reload script injected with live reload off")
			}
		})
	}
}

func TestServer_Index(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.json"), indexDoc)
	writeFile(t, filepath.Join(dir, "a&b.json"), indexDoc)
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")

	_, ts := newTestServer(t, Options{Dir: dir})

	status, body, _ := get(t, ts.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	want := `<ul><li><a href="/p/a&amp;b">a&amp;b</a></li><li><a href="/p/b">b</a></li></ul>`
	if !strings.Contains(body, want) {
		t.Errorf("body = %q, want list %q", body, want)
	}
	if strings.Contains(body, "notes") {
		t.Error("non-document listed")
	}
}

func TestServer_IndexEmpty(t *testing.T) {
	_, ts := newTestServer(t, Options{})

	_, body, _ := get(t, ts.URL+"/")
	if !strings.Contains(body, "<p>No documents in <code>") {
		t.Errorf("body = %q", body)
	}
}

func TestServer_Metrics(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.json"), indexDoc)

	reg := prometheus.NewRegistry()
	_, ts := newTestServer(t, Options{Dir: dir, Registerer: reg, MetricsPath: "/metrics"})

	get(t, ts.URL+"/p/index")
	get(t, ts.URL+"/p/index")
	get(t, ts.URL+"/p/missing")

	status, body, _ := get(t, ts.URL+"/metrics")
	if status != http.StatusOK {
		t.Fatalf("metrics status = %d", status)
	}
	for _, want := range []string{
		`cornwand_renders_total{status="ok"} 2`,
		`cornwand_renders_total{status="not_found"} 1`,
		"cornwand_render_duration_seconds_count 3",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestServer_MetricsDisabled(t *testing.T) {
	_, ts := newTestServer(t, Options{MetricsPath: "-"})

	status, _, _ := get(t, ts.URL+"/metrics")
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestServer_LiveReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.json")
	writeFile(t, path, indexDoc)

	s, ts := newTestServer(t, Options{Dir: dir, LiveReload: true, MetricsPath: "/metrics"})

	_, body, _ := get(t, ts.URL+"/p/index")
	if !strings.HasSuffix(body, "</p>"+ReloadScript+"</body></html>") {
		t.Errorf("reload script not inserted before </body>: %q", body)
	}

	conn := dialHub(t, s.hub, ts.URL+ReloadPath)

	_, metricsBody, _ := get(t, ts.URL+"/metrics")
	if !strings.Contains(metricsBody, "cornwand_reload_clients 1") {
		t.Errorf("connected client not reported:\n%s", metricsBody)
	}

	s.handleChange(Change{Path: path})
	if msg := readMessage(t, conn); msg.Type != ReloadTypeFull || msg.File != "index" {
		t.Errorf("got %+v, want reload of index", msg)
	}

	writeFile(t, path, `{"root":`)
	s.handleChange(Change{Path: path})
	msg := readMessage(t, conn)
	if msg.Type != ReloadTypeError || msg.Error == "" {
		t.Errorf("got %+v, want error message", msg)
	}

	s.handleChange(Change{Path: path, Removed: true})
	if msg := readMessage(t, conn); msg.Type != ReloadTypeFull {
		t.Errorf("got %+v, want reload after removal", msg)
	}

	_, metricsBody, _ = get(t, ts.URL+"/metrics")
	if !strings.Contains(metricsBody, "cornwand_reloads_total 2") {
		t.Errorf("reloads not counted:\n%s", metricsBody)
	}
}

func TestInjectScript(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"before body end", "<html><body><p>x</p></body></html>", "<html><body><p>x</p><s></body></html>"},
		{"last body wins", "<body><pre></body></pre></body>", "<body><pre></body></pre><s></body>"},
		{"no body appends", "<p>x</p>", "<p>x</p><s>"},
		{"self-closed body appends", "<html><body/></html>", "<html><body/></html><s>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := injectScript(tt.html, "<s>"); got != tt.want {
				t.Errorf("injectScript(%q) = %q, want %q", tt.html, got, tt.want)
			}
		})
	}
}

func TestServer_LiveReloadWithoutBody(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "frag.json"), `{"root":{"tag":"p","content":["x"]}}`)

	_, ts := newTestServer(t, Options{Dir: dir, LiveReload: true})

	_, body, _ := get(t, ts.URL+"/p/frag")
	if body != "<p>x</p>"+ReloadScript {
		t.Errorf("body = %q", body)
	}
}

func TestServer_Serve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.json"), indexDoc)

	s, err := New(Options{
		Dir:    dir,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatal(err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, ln)
	}()

	status, _, _ := get(t, "http://"+ln.Addr().String()+"/p/index")
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
