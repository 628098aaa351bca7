// Package web serves the analysis report as a small local web application.
// Every page is built from the same markdown the report command prints, then
// converted to HTML.
package web

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/tzuhan/psa"
	"github.com/tzuhan/psa/renderer"
)

// DefaultAddr is where the local application listens.
const DefaultAddr = "localhost:8501"

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="zh-Hant">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
nav a { margin-right: 1rem; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.8rem; text-align: left; }
</style>
</head>
<body>
<nav>
<a href="/">總覽</a>
<a href="/performance">績效分析</a>
<a href="/risk">風險分析</a>
<a href="/compare">策略比較</a>
<a href="/diagnose">穩定性診斷</a>
</nav>
{{.Body}}
</body>
</html>
`))

// Server renders one Comparison over HTTP.
type Server struct {
	comparison *psa.Comparison
	md         goldmark.Markdown
	srv        *http.Server
}

// NewServer returns a server for the given analysis, listening on addr once
// started. An empty addr means DefaultAddr.
func NewServer(addr string, c *psa.Comparison) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	s := &Server{
		comparison: c,
		// GFM gives us the tables the report is made of.
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
	s.srv = &http.Server{Addr: addr, Handler: s.Handler()}
	return s
}

// Handler returns the route table, also used directly by tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", s.page("投資組合策略分析", renderer.ReportMarkdown))
	mux.HandleFunc("/performance", s.page("績效分析", renderer.PerformanceMarkdown))
	mux.HandleFunc("/risk", s.page("風險分析", renderer.RiskMarkdown))
	mux.HandleFunc("/compare", s.page("策略比較", renderer.CompareMarkdown))
	mux.HandleFunc("/diagnose", s.page("穩定性診斷", renderer.DiagnoseMarkdown))
	return mux
}

// page adapts a markdown section renderer into an HTML handler.
func (s *Server) page(title string, render func(*psa.Comparison) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		if err := s.md.Convert([]byte(render(s.comparison)), &body); err != nil {
			http.Error(w, fmt.Sprintf("cannot render %s: %v", title, err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := page.Execute(w, struct {
			Title string
			Body  template.HTML
		}{Title: title, Body: template.HTML(body.String())})
		if err != nil {
			log.Printf("render %s: %v", r.URL.Path, err)
		}
	}
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string { return s.srv.Addr }

// ListenAndServe blocks serving the application until Shutdown is called.
func (s *Server) ListenAndServe() error {
	log.Printf("serving the analysis on http://%s", s.srv.Addr)
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server, letting inflight requests finish.
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
