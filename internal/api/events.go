package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (h *handler) registerEventEndpoints(rest *echo.Echo) {
	rest.GET("/events/", h.getEvents)
}

// returns the latest status changes, ?limit=n selects how many
func (h *handler) getEvents(c echo.Context) error {
	snapshot, err := h.snapshot(c)
	if snapshot == nil {
		return err
	}
	if h.events == nil {
		return returnError(c, errors.New("no event history available"))
	}

	limit := defaultEventLimit
	if text := c.QueryParam(queryParamLimit); text != "" {
		if limit, err = strconv.Atoi(text); err != nil {
			return returnBadRequest(c, err)
		}
	}
	events, err := h.events.LoadEvents(snapshot.Platform, limit)
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, events, indentationChar)
}
