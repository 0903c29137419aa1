package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_EmptyURLReturnsNilPublisher(t *testing.T) {
	p, err := Connect("", "cv-events")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestNilPublisher_Noops(t *testing.T) {
	var p *Publisher

	// Must not panic.
	p.Publish(KindCreated, uuid.New(), uuid.New(), "layout-a")
	assert.NoError(t, p.Close())
}

func TestEvent_Serialization(t *testing.T) {
	event := Event{
		Kind:       KindUpdated,
		DocumentID: uuid.MustParse("0d9b48e3-23a0-4fbd-9125-a29c1e0c09b1"),
		UserID:     uuid.MustParse("a3d4cc3b-9c1b-4f56-9c0e-5cf0cf9be41c"),
		LayoutID:   "layout-b",
		OccurredAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	body, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, event, decoded)
}
