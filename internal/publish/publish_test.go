package publish

import (
	"errors"
	"fmt"
	"testing"

	"github.com/garyburd/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/ufispace/onlp2go/internal/inventory"
	"github.com/ufispace/onlp2go/internal/onlp"
)

type recordingConn struct {
	commands []string
	doErr    error
	closed   bool
}

func (c *recordingConn) Close() error {
	c.closed = true
	return nil
}

func (c *recordingConn) Err() error { return nil }

func (c *recordingConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	if cmd != "" {
		c.commands = append(c.commands, fmt.Sprint(append([]interface{}{cmd}, args...)...))
	}
	return nil, c.doErr
}

func (c *recordingConn) Send(cmd string, args ...interface{}) error {
	c.commands = append(c.commands, fmt.Sprintln(append([]interface{}{cmd}, args...)...))
	return nil
}

func (c *recordingConn) Flush() error { return nil }

func (c *recordingConn) Receive() (interface{}, error) { return nil, nil }

func newSnapshot(rpm int) *inventory.Snapshot {
	fan := onlp.FanInfo{
		Header: onlp.OidHeader{Id: onlp.FanOid(1), Description: "Fan 1", Status: onlp.StatusPresent | onlp.StatusOperational},
		Rpm:    rpm,
	}
	return &inventory.Snapshot{
		Platform:   "x86-64-ufispace-s9600-72xc-r0",
		Headers:    map[onlp.Oid]onlp.OidHeader{fan.Header.Id: fan.Header},
		Fans:       map[onlp.Oid]onlp.FanInfo{fan.Header.Id: fan},
		SfpPorts:   []int{0, 1, 2},
		SfpPresent: []int{0, 2},
	}
}

func TestFields(t *testing.T) {
	// WHEN
	fields := Fields(newSnapshot(8000))

	// THEN
	assert.Equal(t, map[string]string{
		"platform":          "x86-64-ufispace-s9600-72xc-r0",
		"fan-1.status":      "PRESENT|OPERATIONAL",
		"fan-1.description": "Fan 1",
		"fan-1.rpm":         "8000",
		"fan-1.percentage":  "0",
		"sfp.present":       "0,2",
		"sfp.rx_los":        "",
	}, fields)
}

func TestPublish_OnlyChangedFields(t *testing.T) {
	// GIVEN
	conn := &recordingConn{}
	dials := 0
	p := NewWithDial("onlp", func() (redis.Conn, error) {
		dials++
		conn.commands = nil
		return conn, nil
	})
	change := inventory.StatusChange{Id: onlp.FanOid(1), Description: "Fan 1", Old: onlp.StatusPresent, New: onlp.StatusPresent | onlp.StatusOperational}

	// WHEN
	err1 := p.Publish(newSnapshot(8000), nil)
	first := len(conn.commands)
	err2 := p.Publish(newSnapshot(8000), nil)
	err3 := p.Publish(newSnapshot(9000), []inventory.StatusChange{change})

	// THEN
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.NoError(t, err3)
	assert.Equal(t, 7, first)
	assert.Equal(t, 2, dials)
	assert.Equal(t, []string{
		"HSET onlp fan-1.rpm 9000\n",
		"PUBLISH onlp.events fan-1 (Fan 1): PRESENT -> PRESENT|OPERATIONAL\n",
	}, conn.commands)
	assert.True(t, conn.closed)
}

func TestPublish_FailureIsRetried(t *testing.T) {
	// GIVEN
	conn := &recordingConn{doErr: errors.New("connection reset")}
	p := NewWithDial("onlp", func() (redis.Conn, error) {
		return conn, nil
	})

	// WHEN
	err1 := p.Publish(newSnapshot(8000), nil)
	conn.doErr = nil
	conn.commands = nil
	err2 := p.Publish(newSnapshot(8000), nil)

	// THEN
	assert.Error(t, err1)
	assert.NoError(t, err2)
	assert.Len(t, conn.commands, 7)
}

func TestPublish_DialError(t *testing.T) {
	// GIVEN
	p := NewWithDial("onlp", func() (redis.Conn, error) {
		return nil, errors.New("connection refused")
	})

	// WHEN
	err := p.Publish(newSnapshot(8000), nil)

	// THEN
	assert.ErrorContains(t, err, "connection refused")
}

func TestPublish_EventsOfFailedPublishAreResent(t *testing.T) {
	// GIVEN
	conn := &recordingConn{}
	p := NewWithDial("onlp", func() (redis.Conn, error) {
		return nil, errors.New("connection refused")
	})
	unplugged := inventory.StatusChange{Id: onlp.FanOid(1), Description: "Fan 1", Old: onlp.StatusPresent, New: onlp.StatusUnplugged}
	replugged := inventory.StatusChange{Id: onlp.FanOid(1), Description: "Fan 1", Old: onlp.StatusUnplugged, New: onlp.StatusPresent}

	// WHEN
	err1 := p.Publish(newSnapshot(8000), []inventory.StatusChange{unplugged})
	p.dial = func() (redis.Conn, error) { return conn, nil }
	err2 := p.Publish(newSnapshot(8000), []inventory.StatusChange{replugged})
	sent := conn.commands
	conn.commands = nil
	err3 := p.Publish(newSnapshot(8000), nil)

	// THEN
	assert.Error(t, err1)
	assert.NoError(t, err2)
	assert.NoError(t, err3)
	assert.Len(t, sent, 9)
	assert.Equal(t, []string{
		"PUBLISH onlp.events fan-1 (Fan 1): PRESENT -> UNPLUGGED\n",
		"PUBLISH onlp.events fan-1 (Fan 1): UNPLUGGED -> PRESENT\n",
	}, sent[7:])
	assert.Empty(t, conn.commands)
}
