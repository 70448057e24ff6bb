package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// sseKeepAlive intervalo de comentarios vacíos; una escritura fallida detecta al cliente desconectado.
const sseKeepAlive = 15 * time.Second

// streamSnapshots responde text/event-stream con un evento "snapshot" por cada valor de ch.
// cancel se llama al terminar el stream (cliente desconectado o canal cerrado) y libera la suscripción.
// render corre fuera del handler: no debe tocar c.
func streamSnapshots[T any](c *fiber.Ctx, ch <-chan T, cancel context.CancelFunc, render func(T) any) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(sseKeepAlive)
		defer ticker.Stop()
		id := 0
		for {
			select {
			case snap, ok := <-ch:
				if !ok {
					return
				}
				id++
				if err := writeEvent(w, id, "snapshot", render(snap)); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, id int, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", id, event, data); err != nil {
		return err
	}
	return w.Flush()
}
