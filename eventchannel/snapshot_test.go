package eventchannel

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestSnapshot_JSON(t *testing.T) {
	clk := clock.NewMock()
	clk.Set(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	c := newTestChannel(t, WithName("snap"), WithClock(clk))
	in, _, _, _ := obtainAll(t, c)
	require.NoError(t, in.Push(context.Background(), "queued"))

	snap := c.Snapshot()
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	parsed := gjson.ParseBytes(data)
	assert.Equal(t, "eventchannel.snapshot", parsed.Get("type").String())
	assert.Equal(t, c.ID(), parsed.Get("id").String())
	assert.Equal(t, "snap", parsed.Get("name").String())
	assert.Equal(t, int64(1), parsed.Get("queue_depth").Int())
	assert.Equal(t, int64(1), parsed.Get("proxies.pull_suppliers").Int())
	assert.False(t, parsed.Get("destroyed").Bool())

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, snap.ID, decoded.ID)
	assert.Equal(t, snap.Name, decoded.Name)
	assert.Equal(t, snap.QueueDepth, decoded.QueueDepth)
	assert.Equal(t, snap.PushConsumers, decoded.PushConsumers)
	assert.True(t, time.Time(snap.CreatedAt).Equal(time.Time(decoded.CreatedAt)))
}

func TestSnapshot_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"type":`},
		{"wrong type", `{"type":"other","id":"x"}`},
		{"missing id", `{"type":"eventchannel.snapshot"}`},
		{"bad timestamp", `{"type":"eventchannel.snapshot","id":"x","created_at":"yesterday"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Snapshot
			assert.Error(t, s.UnmarshalJSON([]byte(tt.data)))
		})
	}
}

func TestSnapshot_OmitsEmptyName(t *testing.T) {
	c := newTestChannel(t)
	data, err := c.Snapshot().MarshalJSON()
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(data, "name").Exists())
}
