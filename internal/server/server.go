// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"mime"
	"net"
	"net/http"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/matt-FFFFFF/codeviewx/internal/ctxlog"
	"github.com/matt-FFFFFF/codeviewx/internal/i18n"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultHost is the interface the viewer binds to.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the port the viewer listens on.
	DefaultPort = 5000
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout = 5 * time.Second

	pageTemplate      = "page.html"
	readHeaderTimeout = 10 * time.Second
)

var (
	// ErrDocsDirMissing is returned when the documentation directory does not exist.
	ErrDocsDirMissing = errors.New("documentation directory does not exist")
	// ErrServe is returned when the HTTP server fails.
	ErrServe = errors.New("documentation server failed")
)

//go:embed templates/*.html
var templates embed.FS

// Server renders a documentation directory.
type Server struct {
	fs      afero.Fs
	root    string
	engine  *gin.Engine
	render  *renderer
	cache   *pageCache
	t       i18n.Translator
	lang    string
	cacheSz int
}

// Option configures a Server.
type Option func(*Server)

// WithTranslator sets the translator for the table of contents title and error pages.
func WithTranslator(t i18n.Translator) Option {
	return func(s *Server) {
		s.t = t
	}
}

// WithCacheSize sets the number of rendered pages to keep.
func WithCacheSize(n int) Option {
	return func(s *Server) {
		s.cacheSz = n
	}
}

type pageData struct {
	Lang  string
	Title string
	Tree  []Entry
	Body  template.HTML
}

// New creates a viewer for the documentation directory root.
func New(root string, opts ...Option) (*Server, error) {
	base := FsFactory()

	info, err := base.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.Join(ErrDocsDirMissing, err)
	}

	s := &Server{
		fs:      afero.NewBasePathFs(base, root),
		root:    root,
		t:       i18n.Default(),
		cacheSz: DefaultCacheSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	if l, ok := s.t.(interface{ Language() string }); ok {
		s.lang = l.Language()
	}

	s.render = newRenderer(s.t.T(i18n.TableOfContents))

	if s.cache, err = newPageCache(s.cacheSz); err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFS(templates, "templates/"+pageTemplate)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), requestLogger())
	s.engine.SetHTMLTemplate(tmpl)
	s.engine.GET("/*filepath", s.handlePage)

	return s, nil
}

// Root returns the documentation directory.
func (s *Server) Root() string {
	return s.root
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Join(ErrServe, err)
	}

	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(ErrServe, err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()

		ctxlog.Debug(ctx, "shutting down documentation server")

		return srv.Shutdown(sctx)
	})

	return g.Wait()
}

func (s *Server) handlePage(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("filepath"), "/")
	if name == "" {
		name = IndexFile
	}

	if slices.Contains(strings.Split(name, "/"), "..") {
		c.String(http.StatusForbidden, http.StatusText(http.StatusForbidden))
		return
	}

	name = path.Clean(name)
	p := "/" + name

	info, err := s.fs.Stat(p)
	if err != nil || info.IsDir() {
		c.String(http.StatusNotFound, s.t.T(i18n.NotFound, name))
		return
	}

	if !isMarkdown(name) {
		s.serveFile(c, p, name)
		return
	}

	body, err := s.page(p, info.ModTime(), info.Size())
	if err != nil {
		ctxlog.Error(c.Request.Context(), "failed to render page", "path", name, "error", err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))

		return
	}

	tree, err := FileTree(s.fs, "/", name)
	if err != nil {
		ctxlog.Warn(c.Request.Context(), "failed to list documents", "error", err)
	}

	title := Title(s.fs, p)
	if title == "" {
		title = name
	}

	c.HTML(http.StatusOK, pageTemplate, pageData{
		Lang:  s.lang,
		Title: title,
		Tree:  tree,
		Body:  template.HTML(body), //nolint:gosec
	})
}

func (s *Server) page(p string, modTime time.Time, size int64) ([]byte, error) {
	if body, ok := s.cache.get(p, modTime, size); ok {
		return body, nil
	}

	src, err := afero.ReadFile(s.fs, p)
	if err != nil {
		return nil, err
	}

	body, err := s.render.Render(src)
	if err != nil {
		return nil, err
	}

	s.cache.put(p, modTime, size, body)

	return body, nil
}

func (s *Server) serveFile(c *gin.Context, p, name string) {
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		c.String(http.StatusNotFound, s.t.T(i18n.NotFound, name))
		return
	}

	ct := mime.TypeByExtension(path.Ext(name))
	if ct == "" {
		ct = http.DetectContentType(data)
	}

	c.Data(http.StatusOK, ct, data)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		ctxlog.Debug(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
