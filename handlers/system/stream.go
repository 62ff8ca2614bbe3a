package system

import (
	"bufio"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/utils/response"
	"github.com/educhanakya/campus-api/utils/sse"
)

const keepAliveInterval = 15 * time.Second

// StreamCollection streams full collection snapshots over SSE. The client
// receives the current snapshot immediately and a new one after every write.
func (h *SystemHandler) StreamCollection(c *fiber.Ctx) error {
	name := c.Params("collection")
	if !knownCollections[name] {
		return response.NotFound(c, "Unknown collection")
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	store := h.store
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		// Latest-wins buffer so a slow client never blocks writers
		updates := make(chan []json.RawMessage, 1)
		dispose, err := store.Subscribe(name, func(snapshot []json.RawMessage) {
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- snapshot:
			default: // lost a race to a concurrent publish; that one is newer
			}
		})
		if err != nil {
			sse.SendError(w, err)
			return
		}
		defer dispose()

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case snapshot := <-updates:
				if err := sse.SendSnapshot(w, snapshot); err != nil {
					return
				}
			case <-ticker.C:
				if err := sse.SendKeepAlive(w); err != nil {
					return
				}
			}
		}
	})

	return nil
}

// StreamAuditLog streams activity log snapshots over SSE
func (h *SystemHandler) StreamAuditLog(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	audit := h.audit
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		updates := make(chan []string, 1)
		dispose := audit.Subscribe(func(entries []string) {
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- entries:
			default:
			}
		})
		defer dispose()

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case entries := <-updates:
				if err := sse.SendSnapshot(w, entries); err != nil {
					return
				}
			case <-ticker.C:
				if err := sse.SendKeepAlive(w); err != nil {
					return
				}
			}
		}
	})

	return nil
}
