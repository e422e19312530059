package preview

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ryferguson/cornwand/internal/errors"
	"github.com/ryferguson/cornwand/pkg/page"
	"github.com/ryferguson/cornwand/pkg/wand"
)

const (
	// DefaultMetricsNamespace prefixes every metric name.
	DefaultMetricsNamespace = "cornwand"

	// TracerName is the instrumentation name used for render spans.
	TracerName = "github.com/ryferguson/cornwand/internal/preview"

	contentTypeHTML = "text/html; charset=utf-8"
	shutdownTimeout = 5 * time.Second
)

// Options configures a preview server.
type Options struct {
	// Dir is the directory holding *.json documents.
	Dir string

	// Addr is the listen address used by Start.
	Addr string

	// LiveReload enables the watcher and the reload WebSocket.
	LiveReload bool

	// PollInterval is how often the watcher polls Dir.
	PollInterval time.Duration

	// MetricsPath is where metrics are served. Empty or "-" disables the
	// endpoint.
	MetricsPath string

	// Registerer receives the render metrics. Defaults to a fresh registry.
	Registerer prometheus.Registerer

	// Gatherer serves MetricsPath. Defaults to Registerer when it is also a
	// Gatherer.
	Gatherer prometheus.Gatherer

	// TracerProvider overrides the global OpenTelemetry provider.
	TracerProvider trace.TracerProvider

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server renders documents from a directory.
type Server struct {
	opts    Options
	logger  *slog.Logger
	router  chi.Router
	hub     *ReloadHub
	watcher *Watcher
	metrics *metrics
	tracer  trace.Tracer
}

// New creates a preview server. Dir must exist.
func New(opts Options) (*Server, error) {
	info, err := os.Stat(opts.Dir)
	if err != nil {
		return nil, errors.New("W302").
			WithLocation(opts.Dir, "").
			Wrap(err)
	}
	if !info.IsDir() {
		return nil, errors.New("W302").
			WithLocation(opts.Dir, "").
			WithDetail(opts.Dir + " is a file, not a directory.")
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registerer == nil {
		reg := prometheus.NewRegistry()
		opts.Registerer = reg
		if opts.Gatherer == nil {
			opts.Gatherer = reg
		}
	}
	if opts.Gatherer == nil {
		if g, ok := opts.Registerer.(prometheus.Gatherer); ok {
			opts.Gatherer = g
		} else {
			opts.Gatherer = prometheus.DefaultGatherer
		}
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	hub := NewReloadHub()
	s := &Server{
		opts:    opts,
		logger:  opts.Logger,
		hub:     hub,
		metrics: newMetrics(opts.Registerer, DefaultMetricsNamespace, hub.ClientCount),
		tracer:  tp.Tracer(TracerName),
	}

	if opts.LiveReload {
		s.watcher = NewWatcher(opts.Dir, opts.PollInterval)
		s.watcher.OnChange(s.handleChange)
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/", s.handleIndex)
	r.Get("/p/{name}", s.handlePage)
	if s.opts.LiveReload {
		r.Get(ReloadPath, s.hub.HandleWebSocket)
	}
	if p := s.opts.MetricsPath; p != "" && p != "-" {
		r.Method(http.MethodGet, p,
			promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on Options.Addr and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return errors.New("W301").
			WithDetail("Cannot listen on " + s.opts.Addr + ".").
			WithSuggestion("Pick another port with --port or preview.port in wand.json").
			Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watcher != nil {
		go s.watcher.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("preview server started",
		"addr", ln.Addr().String(),
		"dir", s.opts.Dir,
		"live_reload", s.opts.LiveReload,
	)

	select {
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()

		s.hub.Close()
		err := srv.Shutdown(shutdownCtx)
		<-errCh
		s.logger.Info("preview server stopped")
		return err
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.New("W301").Wrap(err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	names, err := s.documents()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Cannot list documents", err.Error())
		return
	}

	items := make([]any, 0, len(names))
	for _, name := range names {
		link := wand.Tag("a", wand.Attrs{wand.A("href", "/p/"+name)}, wand.Esc(name))
		items = append(items, wand.Tag("li", link))
	}

	var list string
	if len(items) == 0 {
		list = wand.P("No documents in ", wand.Tag("code", wand.Esc(s.opts.Dir)), ".")
	} else {
		list = wand.Tag("ul", items...)
	}

	s.writeHTML(w, http.StatusOK, wand.HTML5(
		wand.Head(
			wand.Meta(wand.Attrs{wand.A("charset", "utf-8")}),
			wand.Title("Documents"),
		),
		wand.Body(wand.Tag("h1", "Documents"), list),
	))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !validName(name) {
		s.writeError(w, http.StatusNotFound, "Not found", name)
		return
	}

	html, err := s.render(r.Context(), name)
	switch {
	case err == nil:
	case stderrors.Is(err, fs.ErrNotExist):
		s.writeError(w, http.StatusNotFound, "Not found", name+DocumentExt)
		return
	default:
		s.logger.Warn("document failed to render", "name", name, "error", err)
		s.writeError(w, http.StatusUnprocessableEntity, "Invalid document", err.Error())
		return
	}

	s.writeHTML(w, http.StatusOK, html)
}

// render decodes and renders one document inside a span.
func (s *Server) render(ctx context.Context, name string) (string, error) {
	_, span := s.tracer.Start(ctx, "page.render",
		trace.WithAttributes(attribute.String("page.name", name)),
	)
	defer span.End()

	start := time.Now()
	doc, err := page.ParseFile(s.path(name))
	if err != nil {
		status := statusInvalid
		if stderrors.Is(err, fs.ErrNotExist) {
			status = statusNotFound
		}
		s.metrics.observeRender(status, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	html := doc.Render()
	s.metrics.observeRender(statusOK, time.Since(start))
	span.SetAttributes(attribute.Int("page.bytes", len(html)))
	return html, nil
}

func (s *Server) handleChange(c Change) {
	name := strings.TrimSuffix(filepath.Base(c.Path), DocumentExt)
	if !c.Removed {
		if _, err := page.ParseFile(c.Path); err != nil {
			s.logger.Warn("document changed but does not parse", "name", name, "error", err)
			s.hub.NotifyError(name, err.Error())
			return
		}
	}

	sent := s.hub.NotifyReload(name)
	s.metrics.reloads.Inc()
	s.logger.Debug("document changed", "name", name, "removed", c.Removed, "clients", sent)
}

func (s *Server) writeHTML(w http.ResponseWriter, status int, html string) {
	if s.opts.LiveReload {
		html = injectScript(html, ReloadScript)
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	io.WriteString(w, html)
}

func (s *Server) writeError(w http.ResponseWriter, status int, title, msg string) {
	s.writeHTML(w, status, errorPage(title, msg))
}

// documents lists document names in Dir, sorted.
func (s *Server) documents() ([]string, error) {
	entries, err := os.ReadDir(s.opts.Dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !isDocument(entry.Name()) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), DocumentExt))
	}
	sort.Strings(names)
	return names, nil
}

func (s *Server) path(name string) string {
	return filepath.Join(s.opts.Dir, name+DocumentExt)
}

// injectScript inserts script before the last </body>, or appends it when
// the page has no body element.
func injectScript(html, script string) string {
	i := strings.LastIndex(html, "</body>")
	if i < 0 {
		return html + script
	}
	return html[:i] + script + html[i:]
}

func validName(name string) bool {
	return name != "" &&
		!strings.HasPrefix(name, ".") &&
		!strings.ContainsAny(name, `/\`)
}

func errorPage(title, msg string) string {
	return wand.HTML5(
		wand.Head(
			wand.Meta(wand.Attrs{wand.A("charset", "utf-8")}),
			wand.Title(wand.Esc(title)),
		),
		wand.Body(
			wand.Tag("h1", wand.Esc(title)),
			wand.Tag("pre", wand.Esc(msg)),
		),
	)
}

// requestLogger logs each request at debug level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
