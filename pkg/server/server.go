// Package server exposes content generation, HTML export and animation
// configuration over HTTP using gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gonewx/folio/internal/animation"
	"github.com/gonewx/folio/pkg/archive"
	"github.com/gonewx/folio/pkg/config"
	"github.com/gonewx/folio/pkg/export"
	"github.com/gonewx/folio/pkg/generate"
	"github.com/gonewx/folio/pkg/store"
)

// Generator turns a request into HTML content.
type Generator interface {
	Generate(ctx context.Context, req generate.Request) (string, error)
}

// Archive stores exported documents.
type Archive interface {
	Save(ctx context.Context, e archive.Export) (int64, error)
	List(ctx context.Context, limit int) ([]archive.Summary, error)
	Get(ctx context.Context, id int64) (archive.Export, error)
	Delete(ctx context.Context, id int64) error
}

// Config 服务依赖。Generator 必填，其余为 nil 时对应路由不注册
type Config struct {
	Generator       Generator
	GenerateTimeout time.Duration
	Archive         Archive
	Store           *store.AnimationStore
	Presets         config.ParticlePresets
}

// Server wraps the gin engine.
type Server struct {
	engine *gin.Engine
	cfg    Config
}

// New builds the router.
func New(cfg Config) *Server {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	s := &Server{engine: r, cfg: cfg}

	api := r.Group("/api")
	api.POST("/generate", s.handleGenerate)
	api.POST("/export", s.handleExport)
	api.GET("/themes", s.handleThemes)
	api.GET("/animations/options", s.handleAnimationOptions)

	if cfg.Archive != nil {
		api.GET("/exports", s.handleListExports)
		api.GET("/exports/:id", s.handleGetExport)
		api.DELETE("/exports/:id", s.handleDeleteExport)
	}
	if cfg.Store != nil {
		api.GET("/animations", s.handleAnimationState)
		api.DELETE("/animations", s.handleResetAll)
		api.POST("/animations/preview", s.handleTogglePreview)
		api.GET("/animations/:section", s.handleGetSection)
		api.PATCH("/animations/:section/:kind", s.handlePatchSection)
		api.POST("/animations/:section/reset", s.handleResetSection)
	}
	if len(cfg.Presets) > 0 {
		api.GET("/particles/presets", s.handlePresets)
	}
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
const ShutdownTimeout = 10 * time.Second

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	log.Printf("[Server] Listening on %s", addr)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Printf("[Server] Stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[Server] %s %s -> %d (%v)", c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start).Round(time.Microsecond))
	}
}

func abortError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generate.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	if s.cfg.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.GenerateTimeout)
		defer cancel()
	}

	content, err := s.cfg.Generator.Generate(ctx, req)
	if err != nil {
		log.Printf("[Server] Generate failed: %v", err)
		abortError(c, generateStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}

func generateStatus(err error) int {
	switch {
	case errors.Is(err, generate.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, generate.ErrMissingAPIKey):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

type exportRequest struct {
	Content export.Content `json:"content"`
	Options export.Options `json:"options"`
}

func (s *Server) handleExport(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, err)
		return
	}

	html, err := export.Render(req.Content, req.Options)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, export.ErrNoContent) || errors.Is(err, export.ErrUnknownTheme) {
			status = http.StatusBadRequest
		}
		abortError(c, status, err)
		return
	}

	name := export.FileName(req.Content)
	if s.cfg.Archive != nil {
		theme, _ := config.FindTheme(req.Options.Theme)
		id, err := s.cfg.Archive.Save(c.Request.Context(), archive.Export{
			FileName: name,
			Theme:    theme.Name,
			Template: req.Options.Template,
			HTML:     html,
		})
		if err != nil {
			// 归档失败不影响本次下载
			log.Printf("[Server] Warning: failed to archive %s: %v", name, err)
		} else {
			c.Header("X-Export-ID", strconv.FormatInt(id, 10))
		}
	}
	sendDocument(c, name, html)
}

func sendDocument(c *gin.Context, name, html string) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handleThemes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"themes": config.Themes, "default": config.DefaultTheme})
}

func (s *Server) handleAnimationOptions(c *gin.Context) {
	c.JSON(http.StatusOK, animation.Options())
}

func (s *Server) handleListExports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := s.cfg.Archive.List(c.Request.Context(), limit)
	if err != nil {
		abortError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exports": list})
}

func exportID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortError(c, http.StatusBadRequest, errors.New("invalid export id"))
		return 0, false
	}
	return id, true
}

func archiveStatus(err error) int {
	if errors.Is(err, archive.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) handleGetExport(c *gin.Context) {
	id, ok := exportID(c)
	if !ok {
		return
	}
	e, err := s.cfg.Archive.Get(c.Request.Context(), id)
	if err != nil {
		abortError(c, archiveStatus(err), err)
		return
	}
	sendDocument(c, e.FileName, e.HTML)
}

func (s *Server) handleDeleteExport(c *gin.Context) {
	id, ok := exportID(c)
	if !ok {
		return
	}
	if err := s.cfg.Archive.Delete(c.Request.Context(), id); err != nil {
		abortError(c, archiveStatus(err), err)
		return
	}
	c.Status(http.StatusNoContent)
}

type animationState struct {
	ActiveSection string                                 `json:"activeSection"`
	PreviewMode   bool                                   `json:"previewMode"`
	Sections      map[string]animation.SectionAnimations `json:"sections"`
}

func (s *Server) handleAnimationState(c *gin.Context) {
	st := s.cfg.Store
	ids := st.Sections()
	state := animationState{
		ActiveSection: st.ActiveSection(),
		PreviewMode:   st.PreviewMode(),
		Sections:      make(map[string]animation.SectionAnimations, len(ids)),
	}
	for _, id := range ids {
		state.Sections[id] = st.GetSectionAnimations(id)
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleGetSection(c *gin.Context) {
	c.JSON(http.StatusOK, s.cfg.Store.GetSectionAnimations(c.Param("section")))
}

func (s *Server) handlePatchSection(c *gin.Context) {
	kind := animation.Kind(c.Param("kind"))
	if !kind.Valid() {
		abortError(c, http.StatusBadRequest, errors.New("kind must be entrance, hover or scroll"))
		return
	}
	var patch animation.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortError(c, http.StatusBadRequest, err)
		return
	}

	section := c.Param("section")
	s.cfg.Store.UpdateAnimationConfig(section, kind, patch)
	c.JSON(http.StatusOK, s.cfg.Store.GetSectionAnimations(section))
}

func (s *Server) handleResetSection(c *gin.Context) {
	section := c.Param("section")
	s.cfg.Store.ResetSectionAnimations(section)
	c.JSON(http.StatusOK, s.cfg.Store.GetSectionAnimations(section))
}

func (s *Server) handleResetAll(c *gin.Context) {
	s.cfg.Store.ResetAllAnimations()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleTogglePreview(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"previewMode": s.cfg.Store.TogglePreviewMode()})
}

func (s *Server) handlePresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"names": s.cfg.Presets.Names(), "presets": s.cfg.Presets})
}
