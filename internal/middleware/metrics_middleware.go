package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/ctf-arena/internal/metrics"
)

// MetricsMiddleware собирает метрики HTTP-запросов.
// Лейбл path - шаблон маршрута (c.FullPath), а не сырой URL: иначе
// кардинальность взрывается на каждом ID в пути.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		startTime := time.Now()
		c.Next()

		duration := time.Since(startTime).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		metrics.RequestCounter.WithLabelValues(status, method, path).Inc()
		metrics.RequestDuration.WithLabelValues(status, method, path).Observe(duration)
	}
}
