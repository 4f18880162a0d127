package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"radio-box-ng/business/usecase"
	"radio-box-ng/pkg/logger"
)

type Config struct {
	Addr  string
	Debug bool
}

// RestartFunc is invoked after /api/save_config has been answered; the
// daemon is expected to exit and be brought back by its supervisor.
type RestartFunc func()

type Server struct {
	cfg     *Config
	log     *logger.Zerolog
	radio   *usecase.RadioUseCase
	catalog *usecase.Catalog
	restart RestartFunc
	router  *gin.Engine
}

func NewServer(cfg *Config, radio *usecase.RadioUseCase, catalog *usecase.Catalog,
	restart RestartFunc, log *logger.Zerolog) *Server {

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		log:     log,
		radio:   radio,
		catalog: catalog,
		restart: restart,
		router:  gin.New(),
	}
	s.router.Use(gin.Recovery())

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}

	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "radio-box-ng"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		api.GET("/play", s.Play)
		api.GET("/start_last", s.StartLast)
		api.GET("/stop", s.Stop)
		api.GET("/volume", s.Volume)
		api.GET("/sleep_timer", s.SleepTimer)
		api.GET("/status", s.Status)
		api.GET("/stations", s.Stations)
		api.GET("/add_station", s.AddStation)
		api.GET("/remove_station", s.RemoveStation)
		api.GET("/save_config", s.SaveConfig)
	}
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	return s.router.Run(s.cfg.Addr)
}
