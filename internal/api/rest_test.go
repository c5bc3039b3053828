package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/ufispace/onlp2go/internal/inventory"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/state"
)

type staticSource struct {
	snapshot *inventory.Snapshot
}

func (s staticSource) Latest() *inventory.Snapshot {
	return s.snapshot
}

func (s staticSource) Thermal(id onlp.Oid) (state.ThermalStats, bool) {
	if id == onlp.ThermalOid(1) {
		return state.ThermalStats{Current: 42.5, Average: 41, Max: 43}, true
	}
	return state.ThermalStats{}, false
}

type fakeEvents struct {
	platform string
	limit    int
	err      error
}

func (f *fakeEvents) LoadEvents(platform string, limit int) ([]inventory.StatusChange, error) {
	f.platform = platform
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return []inventory.StatusChange{
		{Id: onlp.FanOid(2), Description: "Fan 2", Old: onlp.StatusPresent, New: onlp.StatusUnplugged},
	}, nil
}

func newSnapshot() *inventory.Snapshot {
	thermal := onlp.ThermalInfo{
		Header:       onlp.OidHeader{Id: onlp.ThermalOid(1), Description: "CPU", Parent: onlp.OidChassis, Status: onlp.StatusPresent},
		Caps:         onlp.ThermalCapsAll,
		MilliCelsius: 42500,
		Thresholds:   onlp.DefaultThresholds,
	}
	fan := onlp.FanInfo{
		Header: onlp.OidHeader{Id: onlp.FanOid(1), Description: "Fan 1", Parent: onlp.OidChassis, Status: onlp.StatusPresent},
		Rpm:    8000,
	}
	return &inventory.Snapshot{
		Platform:   "x86-64-ufispace-s9700-23d-r0",
		Thermals:   map[onlp.Oid]onlp.ThermalInfo{thermal.Header.Id: thermal},
		Fans:       map[onlp.Oid]onlp.FanInfo{fan.Header.Id: fan},
		SfpPorts:   []int{0, 1},
		SfpPresent: []int{1},
	}
}

func serve(t *testing.T, source Source, events EventSource, target string) *httptest.ResponseRecorder {
	t.Helper()
	rest := CreateRestService(source, events, prometheus.NewRegistry())
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	rest.ServeHTTP(rec, req)
	return rec
}

func TestAlive(t *testing.T) {
	// WHEN
	rec := serve(t, staticSource{}, nil, "/alive")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotReady(t *testing.T) {
	// WHEN
	rec := serve(t, staticSource{}, nil, "/thermal")

	// THEN
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetThermals(t *testing.T) {
	// WHEN
	rec := serve(t, staticSource{newSnapshot()}, nil, "/thermal/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result []ThermalResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result, 1)
	assert.Equal(t, 42500, result[0].MilliCelsius)
	assert.Equal(t, 41.0, result[0].Stats.Average)
}

func TestGetThermal(t *testing.T) {
	// GIVEN
	source := staticSource{newSnapshot()}

	// WHEN
	byId := serve(t, source, nil, "/thermal/1")
	byName := serve(t, source, nil, "/thermal/thermal-1")
	missing := serve(t, source, nil, "/thermal/7")
	wrongType := serve(t, source, nil, "/thermal/fan-1")

	// THEN
	assert.Equal(t, http.StatusOK, byId.Code)
	assert.Equal(t, http.StatusOK, byName.Code)
	assert.Equal(t, byId.Body.String(), byName.Body.String())
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, http.StatusBadRequest, wrongType.Code)
}

func TestGetFan(t *testing.T) {
	// WHEN
	rec := serve(t, staticSource{newSnapshot()}, nil, "/fan/fan-1")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result onlp.FanInfo
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 8000, result.Rpm)
	assert.Equal(t, onlp.OidChassis, result.Header.Parent)
}

func TestGetSfps(t *testing.T) {
	// GIVEN
	source := staticSource{newSnapshot()}

	// WHEN
	all := serve(t, source, nil, "/sfp/")
	present := serve(t, source, nil, "/sfp/?present=true")
	invalid := serve(t, source, nil, "/sfp/?present=maybe")

	// THEN
	var allResult, presentResult SfpResponse
	assert.NoError(t, json.Unmarshal(all.Body.Bytes(), &allResult))
	assert.NoError(t, json.Unmarshal(present.Body.Bytes(), &presentResult))
	assert.Equal(t, []int{0, 1}, allResult.Ports)
	assert.Equal(t, []int{1}, presentResult.Ports)
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
}

func TestGetAttributes_NotFound(t *testing.T) {
	// WHEN
	rec := serve(t, staticSource{newSnapshot()}, nil, "/attribute/")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetEvents(t *testing.T) {
	// GIVEN
	events := &fakeEvents{}

	// WHEN
	rec := serve(t, staticSource{newSnapshot()}, events, "/events/?limit=5")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "x86-64-ufispace-s9700-23d-r0", events.platform)
	assert.Equal(t, 5, events.limit)
	var result []inventory.StatusChange
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, onlp.FanOid(2), result[0].Id)
	assert.Equal(t, onlp.StatusUnplugged, result[0].New)
}

func TestGetEvents_Errors(t *testing.T) {
	// GIVEN
	source := staticSource{newSnapshot()}

	// WHEN
	noHistory := serve(t, source, nil, "/events/")
	failing := serve(t, source, &fakeEvents{err: errors.New("db locked")}, "/events/")
	badLimit := serve(t, source, &fakeEvents{}, "/events/?limit=x")

	// THEN
	assert.Equal(t, http.StatusInternalServerError, noHistory.Code)
	assert.Equal(t, http.StatusInternalServerError, failing.Code)
	assert.Equal(t, http.StatusBadRequest, badLimit.Code)
}
