package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/util"
)

func (h *handler) registerFanEndpoints(rest *echo.Echo) {
	group := rest.Group("/fan")

	group.GET("/", h.getFans)
	group.GET("/:"+urlParamId+"/", h.getFan)
}

// returns a list of all fans
func (h *handler) getFans(c echo.Context) error {
	snapshot, err := h.snapshot(c)
	if snapshot == nil {
		return err
	}
	var data []onlp.FanInfo
	for _, id := range util.SortedKeys(snapshot.Fans) {
		data = append(data, snapshot.Fans[id])
	}
	return c.JSONPretty(http.StatusOK, reprint.This(data), indentationChar)
}

func (h *handler) getFan(c echo.Context) error {
	snapshot, err := h.snapshot(c)
	if snapshot == nil {
		return err
	}
	text := c.Param(urlParamId)
	id, err := parseOid(text, onlp.OidTypeFan)
	if err != nil {
		return returnBadRequest(c, err)
	}
	data, exists := snapshot.Fans[id]
	if !exists {
		return returnNotFound(c, text)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
