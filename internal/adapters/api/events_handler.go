package api

import (
	"io"

	"github.com/gin-gonic/gin"
	"weatherdeck.app/internal/ports"
)

// streamEvents handles GET /api/events, a Server-Sent Events stream of store changes.
// The first event is a full snapshot so a client never starts from a blank state.
func (s *HTTPServerAdapter) streamEvents(c *gin.Context) {
	id, events := s.store.Subscribe()
	defer s.store.Unsubscribe(id)

	s.logger.Debug("Event stream opened", ports.F("subscriber", id))

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("snapshot", s.store.Snapshot())
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Kind), ev)
			return true
		}
	})

	s.logger.Debug("Event stream closed", ports.F("subscriber", id))
}
