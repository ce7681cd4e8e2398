package server

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danmuck/petty/internal/auth"
	"github.com/danmuck/petty/internal/render"
	"github.com/danmuck/petty/internal/store"
	"github.com/danmuck/petty/internal/symbols"
	"github.com/danmuck/petty/internal/terms"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func (s *Server) RegisterRoutes() {
	r := s.router
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": version,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/ready", func(c *gin.Context) {
		if _, err := s.store.Load(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": version,
		})
	})

	r.POST("/render", s.handleRender)
	r.POST("/filters/*hook", s.handleFilter)

	r.GET("/terms", s.handleListTerms)
	admin := r.Group("/", s.requireAdmin())
	admin.PUT("/terms", s.handleReplaceTerms)
	admin.PUT("/terms/:term", s.handlePutTerm)
	admin.DELETE("/terms/:term", s.handleDeleteTerm)
	admin.POST("/terms/defaults", s.handleDefaults)
	admin.GET("/admin", s.handleAdminPage)
	admin.POST("/admin", s.handleAdminSubmit)
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.admin.Validate(auth.RequestToken(c.Request)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Next()
	}
}

type renderResponse struct {
	Page     render.Page `json:"page"`
	Degraded bool        `json:"degraded"`
}

func (s *Server) handleRender(c *gin.Context) {
	s.limitBody(c)
	var page render.Page
	if err := c.ShouldBindJSON(&page); err != nil {
		c.JSON(bodyErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	out, err := s.renderer.Page(c.Request.Context(), page)
	if err != nil {
		log.Warn().Err(err).Str("post_type", page.PostType).Msg("render degraded to identity")
		c.JSON(http.StatusOK, renderResponse{Page: page, Degraded: true})
		return
	}
	c.JSON(http.StatusOK, renderResponse{Page: out})
}

func (s *Server) limitBody(c *gin.Context) {
	if s.maxBody > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody)
	}
}

func bodyErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// handleFilter runs a raw text body through one named hook.
func (s *Server) handleFilter(c *gin.Context) {
	hook := strings.Trim(c.Param("hook"), "/")
	pass := s.renderer.NewPass(c.Request.Context())
	hooks := pass.Hooks()
	if !hooks.Has(hook) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown hook", "hooks": hooks.Names()})
		return
	}
	s.limitBody(c)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(bodyErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if s.renderer.Excluded(c.Query("post_type")) {
		c.Data(http.StatusOK, "text/plain; charset=utf-8", body)
		return
	}
	out := hooks.Apply(hook, string(body))
	if err := pass.Err(); err != nil {
		log.Warn().Err(err).Str("hook", hook).Msg("filter degraded to identity")
		c.Header("X-Petty-Degraded", "true")
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(out))
}

func (s *Server) handleListTerms(c *gin.Context) {
	m, err := s.store.Load(c.Request.Context())
	if err != nil {
		s.storeFailure(c, "load", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"terms": m})
}

type replaceTermsRequest struct {
	Terms []terms.Row `json:"terms"`
}

func (s *Server) handleReplaceTerms(c *gin.Context) {
	var req replaceTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, rejected := terms.Sanitize(req.Terms)
	if err := s.store.Save(c.Request.Context(), m); err != nil {
		s.storeFailure(c, "save", err)
		return
	}
	log.Info().Int("terms", m.Len()).Int("rejected", len(rejected)).Msg("terms replaced")
	c.JSON(http.StatusOK, gin.H{"terms": m, "rejected": rejected})
}

type putTermRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

func (s *Server) handlePutTerm(c *gin.Context) {
	term := terms.SanitizeText(c.Param("term"))
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is empty"})
		return
	}
	var req putTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sym, err := symbols.Parse(req.Symbol)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	m, err := s.store.Load(ctx)
	if err != nil {
		s.storeFailure(c, "load", err)
		return
	}
	m = m.Set(term, sym.Entity())
	if err := s.store.Save(ctx, m); err != nil {
		s.storeFailure(c, "save", err)
		return
	}
	log.Info().Str("term", term).Str("symbol", sym.Name()).Msg("term set")
	c.JSON(http.StatusOK, gin.H{"term": term, "symbol": sym.Entity()})
}

func (s *Server) handleDeleteTerm(c *gin.Context) {
	term := c.Param("term")
	ctx := c.Request.Context()
	m, err := s.store.Load(ctx)
	if err != nil {
		s.storeFailure(c, "load", err)
		return
	}
	if _, ok := m.Get(term); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "term not found"})
		return
	}
	if err := s.store.Save(ctx, m.Remove(term)); err != nil {
		s.storeFailure(c, "save", err)
		return
	}
	log.Info().Str("term", term).Msg("term removed")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleDefaults(c *gin.Context) {
	added, err := store.Activate(c.Request.Context(), s.store)
	if err != nil {
		s.storeFailure(c, "activate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

func (s *Server) storeFailure(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	if ctxErr := c.Request.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		status = http.StatusServiceUnavailable
	}
	log.Error().Err(err).Str("op", op).Str("server", s.Name).Msg("term store failure")
	c.JSON(status, gin.H{"error": "term store " + op + " failed"})
}
