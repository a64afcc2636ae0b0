package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
	"github.com/oaworkspace/oaclient/internal/i18n"
)

const streamKeepAlive = 15 * time.Second

type StatusHandler struct {
	source ports.StatusSource
	diag   ports.Diagnostician
	lang   ports.LanguagePreference
}

func NewStatusHandler(source ports.StatusSource, diag ports.Diagnostician, lang ports.LanguagePreference) *StatusHandler {
	return &StatusHandler{source: source, diag: diag, lang: lang}
}

// Current returns the last observed backend connection status, with the
// offline banner text while the backend is unreachable.
//
// @Summary      Connection status
// @Tags         status
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /api/status [get]
func (h *StatusHandler) Current(c echo.Context) error {
	s := h.source.Current()
	resp := statusResponse{ConnectionStatus: s}
	if s.State == domain.ConnectionOffline {
		resp.Notice = i18n.OfflineNotice(h.lang.Get(c.Request().Context()))
	}
	return c.JSON(http.StatusOK, resp)
}

// Stream pushes connection status changes as server-sent events. The
// current status is sent first.
//
// @Summary      Connection status stream
// @Tags         status
// @Produce      text/event-stream
// @Success      200
// @Router       /api/status/stream [get]
func (h *StatusHandler) Stream(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Latest value wins: a slow client skips intermediate states.
	updates := make(chan domain.ConnectionStatus, 1)
	unsubscribe := h.source.Subscribe(func(s domain.ConnectionStatus) {
		for {
			select {
			case updates <- s:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-updates:
			b, err := json.Marshal(s)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "event: status\ndata: %s\n\n", b); err != nil {
				return nil
			}
			w.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

// Diagnostics probes the backend without and with credentials.
//
// @Summary      Connection diagnostics
// @Tags         status
// @Produce      json
// @Success      200  {object}  diagnosticsResponse
// @Router       /api/diagnostics [get]
func (h *StatusHandler) Diagnostics(c echo.Context) error {
	ctx := c.Request().Context()
	return c.JSON(http.StatusOK, diagnosticsResponse{
		Basic:        h.diag.Diagnose(ctx, false),
		Credentialed: h.diag.Diagnose(ctx, true),
	})
}
