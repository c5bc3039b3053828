package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/state"
	"github.com/ufispace/onlp2go/internal/util"
)

type ThermalResponse struct {
	onlp.ThermalInfo
	Level string              `json:"level,omitempty"`
	Stats *state.ThermalStats `json:"stats,omitempty"`
}

func (h *handler) registerThermalEndpoints(rest *echo.Echo) {
	group := rest.Group("/thermal")

	group.GET("/", h.getThermals)
	group.GET("/:"+urlParamId+"/", h.getThermal)
}

func (h *handler) thermalResponse(info onlp.ThermalInfo) ThermalResponse {
	response := ThermalResponse{ThermalInfo: info, Level: info.Level()}
	if stats, ok := h.source.Thermal(info.Header.Id); ok {
		response.Stats = &stats
	}
	return response
}

// returns a list of all thermal sensors
func (h *handler) getThermals(c echo.Context) error {
	snapshot, err := h.snapshot(c)
	if snapshot == nil {
		return err
	}
	var data []ThermalResponse
	for _, id := range util.SortedKeys(snapshot.Thermals) {
		data = append(data, h.thermalResponse(snapshot.Thermals[id]))
	}
	return c.JSONPretty(http.StatusOK, reprint.This(data), indentationChar)
}

func (h *handler) getThermal(c echo.Context) error {
	snapshot, err := h.snapshot(c)
	if snapshot == nil {
		return err
	}
	text := c.Param(urlParamId)
	id, err := parseOid(text, onlp.OidTypeThermal)
	if err != nil {
		return returnBadRequest(c, err)
	}
	info, exists := snapshot.Thermals[id]
	if !exists {
		return returnNotFound(c, text)
	}
	return c.JSONPretty(http.StatusOK, reprint.This(h.thermalResponse(info)), indentationChar)
}
