package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/TOLUWALASE007/worldclock/internal/catalog"
	"github.com/TOLUWALASE007/worldclock/internal/cityinfo"
	"github.com/TOLUWALASE007/worldclock/internal/display"
	"github.com/TOLUWALASE007/worldclock/internal/metrics"
)

// streamDisplay serves a display View as server-sent events: one "analog" and
// one "digital" event per tick, plus "bundle" or "unavailable" once the city
// information settles.
func streamDisplay(c *fiber.Ctx, service *cityinfo.Service, city catalog.City, opts Options) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		view := display.NewView(context.Background(), service, opts.ClockInterval)
		defer view.Close()

		metrics.ActiveStreams.Inc()
		defer metrics.ActiveStreams.Dec()

		logger := log.With().Str("city", city.City).Str("timezone", city.TimeZone).Logger()
		logger.Debug().Msg("display stream opened")
		defer logger.Debug().Msg("display stream closed")

		view.Select(city)

		keepAlive := time.NewTicker(opts.KeepAlive)
		defer keepAlive.Stop()

		for {
			select {
			case ev, ok := <-view.Events():
				if !ok {
					return
				}
				if err := writeEvent(w, ev); err != nil {
					logger.Warn().Err(err).Msg("failed to encode display event")
					return
				}
			case <-keepAlive.C:
				if _, err := w.WriteString(": keep-alive\n\n"); err != nil {
					return
				}
			}
			// A failed flush means the client went away.
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
	return nil
}

func writeEvent(w *bufio.Writer, ev display.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data)
	return err
}
