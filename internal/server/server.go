// Package server exposes the template management and preview HTTP API.
package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/billcraft/printgen/internal/observability/logger"
	"github.com/billcraft/printgen/internal/templatestore"
	"github.com/billcraft/printgen/pkg/preview"
	"github.com/billcraft/printgen/pkg/render"
	"github.com/billcraft/printgen/pkg/schema"
)

const orgHeader = "X-Org-ID"

// Server wires the template service and preview orchestrator into a gin
// router.
type Server struct {
	templates    templatestore.Service
	orchestrator *preview.Orchestrator
	log          *zap.Logger
}

// New builds a Server. A nil logger falls back to the process global.
func New(templates templatestore.Service, orchestrator *preview.Orchestrator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.L()
	}
	return &Server{templates: templates, orchestrator: orchestrator, log: log}
}

// Router returns the configured gin engine.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware(s.log))

	router.GET("/healthz", s.health)

	api := router.Group("/api", s.requireOrg)
	{
		api.GET("/capabilities", s.capabilities)

		api.POST("/templates", s.createTemplate)
		api.GET("/templates", s.listTemplates)
		api.GET("/templates/default", s.getDefaultTemplate)
		api.POST("/templates/seed", s.seedTemplates)
		api.GET("/templates/:id", s.getTemplate)
		api.PATCH("/templates/:id", s.updateTemplate)
		api.DELETE("/templates/:id", s.deleteTemplate)
		api.POST("/templates/:id/default", s.setDefaultTemplate)
		api.POST("/templates/:id/preview", s.previewTemplate)

		api.POST("/preview", s.previewAdHoc)
	}
	return router
}

// requireOrg resolves the tenant from the X-Org-ID header.
func (s *Server) requireOrg(c *gin.Context) {
	raw := strings.TrimSpace(c.GetHeader(orgHeader))
	if raw == "" {
		abortBadRequest(c, "missing "+orgHeader+" header")
		return
	}
	orgID, err := snowflake.ParseString(raw)
	if err != nil || orgID == 0 {
		abortBadRequest(c, "invalid "+orgHeader+" header")
		return
	}
	c.Set("org_id", orgID)
	c.Next()
}

func orgID(c *gin.Context) snowflake.ID {
	id, _ := c.MustGet("org_id").(snowflake.ID)
	return id
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) capabilities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"engines":   s.orchestrator.Engines(),
		"renderers": s.orchestrator.Renderers(),
	})
}

func (s *Server) createTemplate(c *gin.Context) {
	var req templatestore.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}
	tmpl, err := s.templates.Create(c.Request.Context(), orgID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tmpl)
}

func (s *Server) listTemplates(c *gin.Context) {
	var req templatestore.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortBadRequest(c, "invalid query parameters")
		return
	}
	list, err := s.templates.List(c.Request.Context(), orgID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": list})
}

func (s *Server) getTemplate(c *gin.Context) {
	tmpl, err := s.templates.GetByID(c.Request.Context(), orgID(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

func (s *Server) getDefaultTemplate(c *gin.Context) {
	tmpl, err := s.templates.GetDefault(c.Request.Context(), orgID(c), c.Query("voucher_type"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

func (s *Server) updateTemplate(c *gin.Context) {
	var req templatestore.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}
	req.ID = c.Param("id")
	tmpl, err := s.templates.Update(c.Request.Context(), orgID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

func (s *Server) setDefaultTemplate(c *gin.Context) {
	tmpl, err := s.templates.SetDefault(c.Request.Context(), orgID(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

func (s *Server) deleteTemplate(c *gin.Context) {
	if err := s.templates.Delete(c.Request.Context(), orgID(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) seedTemplates(c *gin.Context) {
	if err := s.templates.Seed(c.Request.Context(), orgID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type previewRequest struct {
	Template string         `json:"template"`
	Engine   string         `json:"engine"`
	Renderer string         `json:"renderer"`
	Data     map[string]any `json:"data"`
	Options  render.Options `json:"options"`
}

type previewResponse struct {
	Document    string         `json:"document"`
	ContentType string         `json:"content_type"`
	Issues      []schema.Issue `json:"issues,omitempty"`
}

// previewTemplate renders a stored template against posted voucher data.
func (s *Server) previewTemplate(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}

	tmpl, err := s.templates.GetByID(c.Request.Context(), orgID(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	s.runPreview(c, preview.Request{
		Template: tmpl.Content,
		Engine:   tmpl.Engine,
		Renderer: req.Renderer,
		Data:     req.Data,
		Options:  styleOptions(tmpl.Style, req.Options),
	})
}

// previewAdHoc renders template source straight from the request body,
// for the admin console's live editor.
func (s *Server) previewAdHoc(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Template) == "" {
		abortBadRequest(c, "template is required")
		return
	}

	s.runPreview(c, preview.Request{
		Template: req.Template,
		Engine:   req.Engine,
		Renderer: req.Renderer,
		Data:     req.Data,
		Options:  req.Options,
	})
}

func (s *Server) runPreview(c *gin.Context, req preview.Request) {
	result, err := s.orchestrator.Preview(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, previewResponse{
		Document:    string(result.Document),
		ContentType: result.ContentType,
		Issues:      result.Issues,
	})
}

// styleOptions lifts stored template style onto render options; explicit
// request options win.
func styleOptions(style map[string]any, req render.Options) render.Options {
	opts := req
	if opts.Title == "" {
		if v, ok := style["title"].(string); ok {
			opts.Title = v
		}
	}
	if opts.PrimaryColor == "" {
		if v, ok := style["primary_color"].(string); ok {
			opts.PrimaryColor = v
		}
	}
	if opts.FontFamily == "" {
		if v, ok := style["font_family"].(string); ok {
			opts.FontFamily = v
		}
	}
	return opts
}

// Run starts the HTTP server on addr and shuts it down when ctx ends.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
