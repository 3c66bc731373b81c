package server

import (
	"context"
	"net/http"
	"time"

	"github.com/boxofficehq/boxoffice/internal/config"
	"github.com/boxofficehq/boxoffice/internal/observability"
	obsmiddleware "github.com/boxofficehq/boxoffice/internal/observability/logger"
	obsmetrics "github.com/boxofficehq/boxoffice/internal/observability/metrics"
	obstracing "github.com/boxofficehq/boxoffice/internal/observability/tracing"
	"github.com/boxofficehq/boxoffice/internal/ticketing"
	ticketingdomain "github.com/boxofficehq/boxoffice/internal/ticketing/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	ticketing.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(RunHTTP),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	ticketingSvc ticketingdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	TicketingSvc ticketingdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		ticketingSvc: p.TicketingSvc,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// RegisterRoutes mounts the ticketing API.
func (s *Server) RegisterRoutes() {
	s.engine.POST("/seed", s.Seed)
	s.engine.GET("/ticket-types/:ticketTypeId/available-quantity", s.AvailableQuantity)
	s.engine.GET("/customers/:customerId/order-summary", s.OrderSummaries)
	s.engine.PUT("/ticket-types/:ticketTypeId/adjust-quantity", s.AdjustQuantity)
}

func registerRoutes(s *Server) {
	s.RegisterRoutes()
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
