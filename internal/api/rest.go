package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ufispace/onlp2go/internal/inventory"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/state"
)

const (
	urlParamId      = "id"
	queryParamLimit = "limit"
	indentationChar = "  "

	defaultEventLimit = 100
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}

	// Source provides the last known component state
	Source interface {
		Latest() *inventory.Snapshot
		Thermal(id onlp.Oid) (state.ThermalStats, bool)
	}

	// EventSource provides the recorded status changes of a platform
	EventSource interface {
		LoadEvents(platform string, limit int) ([]inventory.StatusChange, error)
	}
)

type handler struct {
	source Source
	events EventSource
}

// CreateRestService creates the read only rest api of the component state.
// events may be nil if no history is kept.
func CreateRestService(source Source, events EventSource, registerer prometheus.Registerer) *echo.Echo {
	echoRest := CreateWebserver(registerer)
	h := &handler{source: source, events: events}

	echoRest.GET("/alive/", isAlive)

	h.registerThermalEndpoints(echoRest)
	h.registerFanEndpoints(echoRest)
	h.registerComponentEndpoints(echoRest)
	h.registerEventEndpoints(echoRest)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// snapshot returns the latest snapshot or writes a 503 if there is none yet
func (h *handler) snapshot(c echo.Context) (*inventory.Snapshot, error) {
	snapshot := h.source.Latest()
	if snapshot == nil {
		return nil, c.JSONPretty(http.StatusServiceUnavailable, &Result{
			Name:    "Not ready",
			Message: "No data has been collected yet",
		}, indentationChar)
	}
	return snapshot, nil
}

// parseOid accepts a plain id like "3" as well as the "thermal-3" notation
func parseOid(text string, oidType onlp.OidType) (onlp.Oid, error) {
	if id, err := strconv.Atoi(text); err == nil {
		return onlp.NewOid(oidType, id), nil
	}
	oid, err := onlp.ParseOid(text)
	if err != nil {
		return 0, err
	}
	if oid.Type() != oidType {
		return 0, errors.New("'" + text + "' is not a " + oidType.String())
	}
	return oid, nil
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return a "bad request" message
func returnBadRequest(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Bad Request",
		Message: e.Error(),
	}, indentationChar)
}

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}
