package gin

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bobinette/raddaran/log"
)

// Server wraps a gin router so that plain http.Handler values, such as the
// go-kit handlers, can be registered on gin routes.
type Server struct {
	router *gin.Engine
	logger log.Logger
}

func New(env string, logger log.Logger) *Server {
	if env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	} else if env == "test" {
		gin.SetMode(gin.TestMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))

	// CORS
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:    []string{"Accept-Language", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	// Unknown route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
	})

	// Ping
	router.GET("/raddaran/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"data": "ok"})
	})

	return &Server{
		router: router,
		logger: logger,
	}
}

// RegisterHandler registers h for the method on path. The path parameters
// are stored in the request context under "params".
func (s *Server) RegisterHandler(path, method string, h http.Handler) {
	s.router.Handle(method, path, func(c *gin.Context) {
		params := make(map[string]string)
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}

		ctx := context.WithValue(c.Request.Context(), "params", params)
		h.ServeHTTP(c.Writer, c.Request.WithContext(ctx))
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr until ctx is done, then shuts the server down.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Printf("server started, listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
