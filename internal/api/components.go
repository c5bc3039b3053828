package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/util"
)

type SfpResponse struct {
	Ports   []int `json:"ports"`
	Present []int `json:"present"`
	RxLos   []int `json:"rxLos"`
}

type AttributeResponse struct {
	Onie  *onlp.OnieInfo  `json:"onie,omitempty"`
	Asset *onlp.AssetInfo `json:"asset,omitempty"`
}

func (h *handler) registerComponentEndpoints(rest *echo.Echo) {
	rest.GET("/led/", h.getLeds)
	rest.GET("/psu/", h.getPsus)
	rest.GET("/sfp/", h.getSfps)
	rest.GET("/attribute/", h.getAttributes)
}

func (h *handler) getLeds(c echo.Context) error {
	snapshot, err := h.snapshot(c)
	if snapshot == nil {
		return err
	}
	var data []onlp.LedInfo
	for _, id := range util.SortedKeys(snapshot.Leds) {
		data = append(data, snapshot.Leds[id])
	}
	return c.JSONPretty(http.StatusOK, reprint.This(data), indentationChar)
}

func (h *handler) getPsus(c echo.Context) error {
	snapshot, err := h.snapshot(c)
	if snapshot == nil {
		return err
	}
	var data []onlp.PsuInfo
	for _, id := range util.SortedKeys(snapshot.Psus) {
		data = append(data, snapshot.Psus[id])
	}
	return c.JSONPretty(http.StatusOK, reprint.This(data), indentationChar)
}

// returns the port bitmaps, optionally filtered with ?present=true
func (h *handler) getSfps(c echo.Context) error {
	snapshot, err := h.snapshot(c)
	if snapshot == nil {
		return err
	}
	data := SfpResponse{
		Ports:   snapshot.SfpPorts,
		Present: snapshot.SfpPresent,
		RxLos:   snapshot.SfpRxLos,
	}
	if text := c.QueryParam("present"); text != "" {
		onlyPresent, err := strconv.ParseBool(text)
		if err != nil {
			return returnBadRequest(c, err)
		}
		if onlyPresent {
			data.Ports = snapshot.SfpPresent
		}
	}
	return c.JSONPretty(http.StatusOK, reprint.This(data), indentationChar)
}

func (h *handler) getAttributes(c echo.Context) error {
	snapshot, err := h.snapshot(c)
	if snapshot == nil {
		return err
	}
	if snapshot.Onie == nil && snapshot.Asset == nil {
		return returnNotFound(c, onlp.OidChassis.String())
	}
	data := AttributeResponse{Onie: snapshot.Onie, Asset: snapshot.Asset}
	return c.JSONPretty(http.StatusOK, reprint.This(data), indentationChar)
}
