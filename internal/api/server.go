package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/romangod6/sitemapgen/internal/storage"
)

type Server struct {
	router *gin.Engine
	port   int
	server *http.Server
}

// NewServer exposes the generated sitemaps under outputDir and, when store
// is set, the run history.
func NewServer(port int, store storage.Store, outputDir, sitemapsDir string) *Server {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	handler := NewHandler(store, outputDir, sitemapsDir)

	router.GET("/sitemap.xml", handler.ServeIndex)
	router.GET("/"+strings.Trim(sitemapsDir, "/")+"/:file", handler.ServeChunk)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		runs := api.Group("/runs")
		{
			runs.GET("", handler.ListRuns)
			runs.GET("/:id", handler.GetRun)
		}
	}

	return &Server{
		router: router,
		port:   port,
	}
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
