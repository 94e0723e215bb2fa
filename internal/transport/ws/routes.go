package ws

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sKeLeTr0n/OBSRemote/internal/dispatch"
	"github.com/sKeLeTr0n/OBSRemote/internal/queue"
	"github.com/sKeLeTr0n/OBSRemote/internal/version"
)

// Health is the /healthz body.
type Health struct {
	Status   string         `json:"status"`
	Version  string         `json:"version"`
	Protocol float64        `json:"protocol"`
	Hub      HubStats       `json:"hub"`
	Dispatch dispatch.Stats `json:"dispatch"`
	Updates  queue.Stats    `json:"updates"`
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/ws", s.handleWS)
	r.GET("/healthz", s.handleHealth)
	return r
}

func (s *Server) handleWS(c *gin.Context) {
	s.ServeWS(c.Writer, c.Request)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, Health{
		Status:   "ok",
		Version:  version.Version,
		Protocol: version.Protocol,
		Hub:      s.hub.Stats(),
		Dispatch: s.dispatcher.Stats(),
		Updates:  s.updates.Stats(),
	})
}

// requestLogger logs each HTTP request. Upgraded connections are logged
// when the session ends.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
