package eventchannel

import (
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Snapshot is a point-in-time view of a channel.
type Snapshot struct {
	ID            string          `json:"id"`
	Name          string          `json:"name,omitempty"`
	CreatedAt     strfmt.DateTime `json:"created_at"`
	Destroyed     bool            `json:"destroyed"`
	QueueDepth    int             `json:"queue_depth"`
	PushConsumers int             `json:"push_consumers"`
	PushSuppliers int             `json:"push_suppliers"`
	PullConsumers int             `json:"pull_consumers"`
	PullSuppliers int             `json:"pull_suppliers"`
}

// Snapshot captures the channel's current counts. The counts are read
// independently and may be mutually inconsistent under concurrent use.
func (c *Channel[T]) Snapshot() Snapshot {
	return Snapshot{
		ID:            c.id,
		Name:          c.name,
		CreatedAt:     strfmt.DateTime(c.createdAt),
		Destroyed:     c.Destroyed(),
		QueueDepth:    c.queue.Len(),
		PushConsumers: c.pushConsumers.Len(),
		PushSuppliers: c.pushSuppliers.Len(),
		PullConsumers: c.pullConsumers.Len(),
		PullSuppliers: c.pullSuppliers.Len(),
	}
}

// MarshalJSON implements custom JSON marshaling for Snapshot
func (s Snapshot) MarshalJSON() ([]byte, error) {
	result := []byte(`{"type":"eventchannel.snapshot"}`)

	fields := []struct {
		path  string
		value any
	}{
		{"id", s.ID},
		{"created_at", s.CreatedAt.String()},
		{"destroyed", s.Destroyed},
		{"queue_depth", s.QueueDepth},
		{"proxies.push_consumers", s.PushConsumers},
		{"proxies.push_suppliers", s.PushSuppliers},
		{"proxies.pull_consumers", s.PullConsumers},
		{"proxies.pull_suppliers", s.PullSuppliers},
	}
	if s.Name != "" {
		fields = append(fields, struct {
			path  string
			value any
		}{"name", s.Name})
	}

	var err error
	for _, f := range fields {
		result, err = sjson.SetBytes(result, f.path, f.value)
		if err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", f.path, err)
		}
	}
	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Snapshot
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	msgType := gjson.GetBytes(data, "type")
	if !msgType.Exists() || msgType.String() != "eventchannel.snapshot" {
		return fmt.Errorf("missing or invalid type, expected 'eventchannel.snapshot'")
	}

	id := gjson.GetBytes(data, "id")
	if !id.Exists() {
		return fmt.Errorf("missing required field 'id'")
	}
	s.ID = id.String()
	s.Name = gjson.GetBytes(data, "name").String()

	if createdAt := gjson.GetBytes(data, "created_at"); createdAt.Exists() {
		if err := s.CreatedAt.UnmarshalText([]byte(createdAt.String())); err != nil {
			return fmt.Errorf("invalid created_at: %w", err)
		}
	}

	s.Destroyed = gjson.GetBytes(data, "destroyed").Bool()
	s.QueueDepth = int(gjson.GetBytes(data, "queue_depth").Int())

	proxies := gjson.GetBytes(data, "proxies")
	s.PushConsumers = int(proxies.Get("push_consumers").Int())
	s.PushSuppliers = int(proxies.Get("push_suppliers").Int())
	s.PullConsumers = int(proxies.Get("pull_consumers").Int())
	s.PullSuppliers = int(proxies.Get("pull_suppliers").Int())
	return nil
}
