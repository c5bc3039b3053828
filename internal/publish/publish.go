package publish

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/garyburd/redigo/redis"
	"github.com/ufispace/onlp2go/internal/inventory"
	"github.com/ufispace/onlp2go/internal/ui"
)

const (
	Timeout = 3 * time.Second
	// MaxPendingEvents is the number of unsent events kept for the next publish
	MaxPendingEvents = 1000

	eventsSuffix = ".events"
)

// Publisher mirrors the component state into a redis hash. Only fields
// that changed since the last successful publish are written.
type Publisher struct {
	key  string
	dial func() (redis.Conn, error)
	last map[string]string
	// events that could not be sent yet, oldest first
	pending []inventory.StatusChange
}

func New(address string, key string) *Publisher {
	return NewWithDial(key, func() (redis.Conn, error) {
		return redis.Dial("tcp", address,
			redis.DialConnectTimeout(Timeout),
			redis.DialReadTimeout(Timeout),
			redis.DialWriteTimeout(Timeout),
		)
	})
}

func NewWithDial(key string, dial func() (redis.Conn, error)) *Publisher {
	return &Publisher{
		key:  key,
		dial: dial,
		last: map[string]string{},
	}
}

func joinPorts(ports []int) string {
	parts := make([]string, len(ports))
	for i, port := range ports {
		parts[i] = strconv.Itoa(port)
	}
	return strings.Join(parts, ",")
}

// Fields flattens a snapshot into "<oid>.<attribute>" hash fields
func Fields(snapshot *inventory.Snapshot) map[string]string {
	fields := map[string]string{
		"platform": snapshot.Platform,
	}
	for id, hdr := range snapshot.Headers {
		fields[id.String()+".status"] = hdr.Status.String()
		fields[id.String()+".description"] = hdr.Description
	}
	for id, info := range snapshot.Thermals {
		fields[id.String()+".mcelsius"] = strconv.Itoa(info.MilliCelsius)
	}
	for id, info := range snapshot.Fans {
		fields[id.String()+".rpm"] = strconv.Itoa(info.Rpm)
		fields[id.String()+".percentage"] = strconv.Itoa(info.Percentage)
	}
	for id, info := range snapshot.Leds {
		fields[id.String()+".mode"] = string(info.Mode)
	}
	for id, info := range snapshot.Psus {
		fields[id.String()+".power_good"] = strconv.FormatBool(info.PowerGood)
	}
	if len(snapshot.SfpPorts) > 0 {
		fields["sfp.present"] = joinPorts(snapshot.SfpPresent)
		fields["sfp.rx_los"] = joinPorts(snapshot.SfpRxLos)
	}
	if snapshot.Onie != nil {
		fields["onie.product_name"] = snapshot.Onie.ProductName
		fields["onie.serial_number"] = snapshot.Onie.SerialNumber
	}
	return fields
}

// Publish writes the changed fields of snapshot and announces every status
// change on the "<key>.events" channel. Events of a failed publish are
// sent with the next one.
func (p *Publisher) Publish(snapshot *inventory.Snapshot, changes []inventory.StatusChange) (err error) {
	events := append(p.pending, changes...)
	if excess := len(events) - MaxPendingEvents; excess > 0 {
		ui.Warning("Dropping %d unsent redis events", excess)
		events = events[excess:]
	}
	p.pending = nil
	defer func() {
		if err != nil {
			p.pending = events
		}
	}()

	fields := Fields(snapshot)
	var changed []string
	for field, value := range fields {
		if last, ok := p.last[field]; ok && last == value {
			continue
		}
		changed = append(changed, field)
	}
	if len(changed) == 0 && len(events) == 0 {
		return nil
	}

	conn, err := p.dial()
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer conn.Close()

	for _, field := range changed {
		if err := conn.Send("HSET", p.key, field, fields[field]); err != nil {
			return err
		}
	}
	for _, change := range events {
		if err := conn.Send("PUBLISH", p.key+eventsSuffix, change.String()); err != nil {
			return err
		}
	}
	if _, err := conn.Do(""); err != nil {
		return fmt.Errorf("publish to redis: %w", err)
	}

	for _, field := range changed {
		p.last[field] = fields[field]
	}
	ui.Debug("Published %d fields and %d events to redis", len(changed), len(events))
	return nil
}
