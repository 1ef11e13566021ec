package web

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shreyaw333/portfolio/internal/clock"
	"github.com/shreyaw333/portfolio/internal/logger"
)

// newSalt returns a per-process salt so visitor hashes cannot be joined
// across restarts.
func newSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashIP returns a short stable token for ip under salt.
func hashIP(salt, ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// requestLogger logs page and API requests. Asset requests are skipped.
// Clients sending DNT: 1 are logged without a visitor hash. Handlers find
// a request-scoped logger with logger.FromContext.
func requestLogger(log *slog.Logger, clk clock.Clock, salt string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/favicon") {
			c.Next()
			return
		}

		reqLog := log
		if c.GetHeader("DNT") != "1" {
			reqLog = log.With("visitor", hashIP(salt, c.ClientIP()))
		}
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLog))

		start := clk.Now()
		c.Next()

		reqLog.Info("Request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", clk.Now().Sub(start),
		)
	}
}
