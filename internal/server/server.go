package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/petty/internal/auth"
	"github.com/danmuck/petty/internal/observability"
	"github.com/danmuck/petty/internal/render"
	"github.com/danmuck/petty/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const version = "0.1.0"

type Options struct {
	CorsOrigins []string
	// AdminToken guards the administrative routes. Empty leaves them open.
	AdminToken string
	// MaxBodyBytes rejects larger render and filter bodies with 413.
	// Zero accepts any size.
	MaxBodyBytes int64
}

type Server struct {
	Name     string    `json:"name"`
	Addr     string    `json:"addr"`
	Appeared time.Time `json:"appeared"`

	store    store.Store
	renderer *render.Renderer
	admin    auth.Validator
	maxBody  int64
	router   *gin.Engine
}

// Appear builds a server. s should be the same store r reads from so admin
// writes are visible to the next render.
func Appear(name, addr string, s store.Store, r *render.Renderer, opts Options) *Server {
	observability.RegisterMetrics()
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.RequestID())
	router.Use(observability.RequestLogger(log.Logger))
	router.Use(observability.RequestMetricsMiddleware(name))
	router.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(opts.CorsOrigins),
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", observability.HeaderRequestID},
		MaxAge:       12 * time.Hour,
	}))
	_ = router.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	router.SetHTMLTemplate(adminTemplate)

	return &Server{
		Name:     name,
		Addr:     addr,
		Appeared: time.Now(),
		store:    s,
		renderer: r,
		admin:    auth.Admin(opts.AdminToken),
		maxBody:  opts.MaxBodyBytes,
		router:   router,
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

// Serve registers routes and listens until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	s.RegisterRoutes()
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
