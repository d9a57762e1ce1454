package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prompthub/api/internal/authtoken"
	"github.com/prompthub/api/internal/config"
	"github.com/prompthub/api/internal/observability"
	obslogger "github.com/prompthub/api/internal/observability/logger"
	obsmetrics "github.com/prompthub/api/internal/observability/metrics"
	"github.com/prompthub/api/internal/ranking"
	rankingdomain "github.com/prompthub/api/internal/ranking/domain"
	"github.com/prompthub/api/internal/template"
	templatedomain "github.com/prompthub/api/internal/template/domain"
	"github.com/prompthub/api/internal/usage"
	usagedomain "github.com/prompthub/api/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	authtoken.Module,
	template.Module,
	usage.Module,
	ranking.Module,
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log, obslogger.MiddlewareConfig{Debug: obsCfg.Debug()}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	log        *zap.Logger
	verifier   *authtoken.Verifier
	tmplSvc    templatedomain.Service
	usageSvc   usagedomain.Service
	rankingSvc rankingdomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	Log        *zap.Logger
	Verifier   *authtoken.Verifier
	TmplSvc    templatedomain.Service
	UsageSvc   usagedomain.Service
	RankingSvc rankingdomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		log:        p.Log.Named("server"),
		verifier:   p.Verifier,
		tmplSvc:    p.TmplSvc,
		usageSvc:   p.UsageSvc,
		rankingSvc: p.RankingSvc,
	}

	s.registerAPIRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.verifier.Required())

	// -------- Templates --------
	api.GET("/templates", s.ListTemplates)
	api.POST("/templates", s.CreateTemplate)
	api.GET("/templates/:id", s.GetTemplateByID)
	api.PUT("/templates/:id", s.UpdateTemplate)
	api.DELETE("/templates/:id", s.DeleteTemplate)
	api.POST("/templates/:id/clone", s.CloneTemplate)

	// -------- Usage --------
	api.POST("/usage", s.RecordUsage)

	// -------- Rankings --------
	api.GET("/rankings/weekly", s.GetWeeklyRanking)
}
