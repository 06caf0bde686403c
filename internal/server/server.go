// Package server wires the HTTP API: public auth endpoints, the
// authorization gate, and the owner-scoped app and subscription routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"appdeck/internal/apps"
	"appdeck/internal/auth"
	"appdeck/internal/stats"
)

type Server struct {
	engine  *gin.Engine
	log     *logrus.Logger
	tracker *stats.Tracker

	creds    *auth.CredentialStore
	tokens   *auth.TokenStore
	registry *apps.Registry
	subs     *apps.Subscriptions
}

// New builds a Server on top of an opened database handle. The stores are
// created here and passed down explicitly; nothing holds global state.
func New(db *gorm.DB, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}

	s := &Server{
		log:      log,
		tracker:  stats.New(100),
		creds:    auth.NewCredentialStore(db),
		tokens:   auth.NewTokenStore(db),
		registry: apps.NewRegistry(db),
		subs:     apps.NewSubscriptions(db),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	s.routes(engine)
	s.engine = engine
	return s
}

// Handler exposes the engine for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.POST("/signup", s.signup)
	r.POST("/login", s.login)

	authed := r.Group("/", s.requireAuth())
	authed.POST("/logout", s.logout)
	authed.POST("/change_pass", s.changePassword)

	app := authed.Group("/app")
	app.GET("/", s.listApps)
	app.POST("/", s.createApp)
	app.GET("/:id/", s.getApp)
	app.PUT("/:id/", s.updateApp)
	app.DELETE("/:id/", s.deleteApp)
	app.PUT("/sub/:id/", s.upsertSubscription)
	app.DELETE("/sub/:id/", s.deactivateSubscription)
}

func (s *Server) health(c *gin.Context) {
	snap := s.tracker.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": int64(snap.Uptime.Seconds()),
		"total_requests": snap.TotalRequests,
		"client_errors":  snap.ClientErrors,
		"server_errors":  snap.ServerErrors,
		"p50_ms":         snap.P50.Milliseconds(),
		"p90_ms":         snap.P90.Milliseconds(),
	})
}
