package web

import (
	"html"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shreyaw333/portfolio/internal/logger"
	"github.com/shreyaw333/portfolio/internal/typewriter"
)

// SSE event names.
const (
	EventConnected = "connected"
	EventText      = "text"
)

// handleTypewriterStream runs one typewriter for the lifetime of the
// connection and pushes its text as "text" events. The data is HTML
// escaped so htmx can swap it in directly.
func (s *Server) handleTypewriterStream(c *gin.Context) {
	session := uuid.NewString()
	ctx := logger.WithValues(c.Request.Context(), "session", session)
	log := logger.FromContext(ctx)

	driver, err := typewriter.New(s.typewriter,
		typewriter.WithClock(s.clock),
		typewriter.WithLogger(log),
	)
	if err != nil {
		log.Error("Failed to create typewriter", "err", err)
		c.String(http.StatusInternalServerError, "typewriter unavailable")
		return
	}
	defer driver.Close()

	updates, unsubscribe := driver.Subscribe()
	defer unsubscribe()

	if err := driver.Start(); err != nil {
		log.Error("Failed to start typewriter", "err", err)
		c.String(http.StatusInternalServerError, "typewriter unavailable")
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	opened := s.clock.Now()
	log.Info("Typewriter stream opened")
	c.SSEvent(EventConnected, session)

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case state, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent(EventText, html.EscapeString(state.Text))
			return true
		}
	})

	log.Info("Typewriter stream closed", "duration", s.clock.Now().Sub(opened))
}
