package gin

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bobinette/raddaran/log"
)

// RequestLogger logs one line per request once it has been served.
func RequestLogger(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debugf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
