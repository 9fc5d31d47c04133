// Package webui exposes a minimal HTTP server for triggering imports and
// seeing the resulting summary and age report without the CLI.
//
// Routes:
//
//	GET  /           → form (path, batch size, storage kind, DSN)
//	POST /import     → runs the import; renders summary + report inline
//	GET  /api/import → machine-friendly variant, returns JSON
//
// Each request runs its own import with its own repository; concurrent
// requests against different files are fully independent.
package webui

import (
	"context"
	_ "embed"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"csvnest/internal/config"
	"csvnest/internal/datasource/file"
	"csvnest/internal/importer"
	"csvnest/internal/storage"
)

// Config controls server startup.
type Config struct {
	Addr string
}

// Server wraps http.Server with the import routes and embedded template.
type Server struct {
	cfg  Config
	mux  *http.ServeMux
	srv  *http.Server
	tmpl *template.Template
}

// NewServer constructs a Server with routes and the embedded template.
func NewServer(cfg Config) *Server {
	s := &Server{
		cfg:  cfg,
		mux:  http.NewServeMux(),
		tmpl: template.Must(template.New("index").Parse(indexHTML)),
	}
	s.routes()
	s.srv = &http.Server{Addr: cfg.Addr, Handler: s.mux}
	return s
}

// ListenAndServe starts the HTTP server and blocks until Shutdown or error.
func (s *Server) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/import", s.handleImport)
	s.mux.HandleFunc("/api/import", s.handleAPIImport)
}

// handleIndex renders the input form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	_ = s.tmpl.Execute(w, resultView{})
}

// specFromValues assembles an import spec from form/query values.
func specFromValues(get func(string) string) config.Import {
	batch, _ := strconv.Atoi(strings.TrimSpace(get("batch_size")))
	kind := get("storage")
	if kind == "" {
		kind = "sqlite"
	}
	return config.Import{
		Job:    "webui",
		Source: config.Source{Kind: "file", File: config.SourceFile{Path: strings.TrimSpace(get("path"))}},
		Parser: config.Parser{Options: config.Options{
			"batch_size": batch,
			"dedupe":     get("dedupe") == "on" || get("dedupe") == "true",
		}},
		Storage: config.Storage{
			Kind: kind,
			DB: config.DBConfig{
				DSN:             strings.TrimSpace(get("dsn")),
				Table:           strings.TrimSpace(get("table")),
				AutoCreateTable: true,
			},
		},
		Report: config.Report{Enabled: true},
	}
}

// runImport validates the spec, opens storage, and executes the run.
func runImport(ctx context.Context, spec config.Import) (importer.Summary, *importer.Distribution, error) {
	for _, iss := range config.ValidateImport(spec) {
		if iss.Severity == config.SeverityError {
			return importer.Summary{}, nil, iss
		}
	}
	if !file.Exists(spec.Source.File.Path) {
		return importer.Summary{}, nil, &config.Issue{
			Severity: config.SeverityError,
			Path:     "source.file.path",
			Message:  "no such file: " + spec.Source.File.Path,
		}
	}
	repo, err := storage.New(ctx, storage.Config{
		Kind:            spec.Storage.Kind,
		DSN:             spec.Storage.DB.DSN,
		Table:           spec.Storage.DB.Table,
		AutoCreateTable: spec.Storage.DB.AutoCreateTable,
	})
	if err != nil {
		return importer.Summary{}, nil, err
	}
	defer repo.Close()
	if spec.Storage.DB.AutoCreateTable {
		if err := repo.EnsureSchema(ctx); err != nil {
			return importer.Summary{}, nil, err
		}
	}
	return importer.RunWithReport(ctx, spec, repo)
}

// resultView is the template payload; Summary is nil on the bare form page.
type resultView struct {
	Path    string
	Summary *importer.Summary
	Report  []string
}

// handleImport processes the form and renders a results page.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form: "+err.Error(), http.StatusBadRequest)
		return
	}
	spec := specFromValues(r.FormValue)
	sum, dist, err := runImport(r.Context(), spec)
	if err != nil {
		http.Error(w, "import failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	data := resultView{
		Path:    spec.Source.File.Path,
		Summary: &sum,
		Report:  dist.Table(),
	}
	if err := s.tmpl.Execute(w, data); err != nil {
		log.Println("template error:", err)
	}
}

// handleAPIImport returns JSON so scripts can curl it easily.
func (s *Server) handleAPIImport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec := specFromValues(q.Get)
	sum, dist, err := runImport(r.Context(), spec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(struct {
		Summary importer.Summary `json:"summary"`
		Report  []string         `json:"report"`
	}{sum, dist.Table()})
}

// indexHTML is an embedded, minimal page with vanilla styling.
//
//go:embed index.tmpl.html
var indexHTML string
