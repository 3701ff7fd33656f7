package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver учитывает обработанные HTTP-запросы
type RequestObserver interface {
	ObserveRequest(method, path, status string, duration time.Duration)
	RequestStarted()
	RequestFinished()
}

// Metrics собирает метрики запросов по шаблону маршрута, а не по сырому URL
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		observer.RequestStarted()
		defer observer.RequestFinished()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		observer.ObserveRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
