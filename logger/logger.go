package logger

import (
	"os"
	"strings"
	"time"

	"ledgerconsole/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// L 进程级日志实例
var L = logrus.New()

// Init 按配置初始化日志级别和输出格式
func Init(cfg config.LogConfig) *logrus.Logger {
	L.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	L.SetLevel(level)

	if cfg.Format == "json" {
		L.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		L.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}
	return L
}

// Middleware 请求日志中间件，替代 gin 默认 Logger
func Middleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry.Error(c.Errors.String())
			return
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
