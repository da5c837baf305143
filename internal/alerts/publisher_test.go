package alerts

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ukydev/vehicle-safety/internal/models"
)

func TestTopicFor(t *testing.T) {
	assert.Equal(t, "safety/alerts/1HGCM82633A004352", TopicFor("1HGCM82633A004352"))
}

func TestAlertPayload(t *testing.T) {
	alert := Alert{
		VIN:         "1HGCM82633A004352",
		Make:        "HONDA",
		Model:       "Accord",
		ModelYear:   2003,
		Status:      models.StatusAttention,
		OpenRecalls: 2,
		Timestamp:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	payload, err := json.Marshal(alert)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "attention", decoded["status"])
	assert.Equal(t, float64(2), decoded["open_recalls"])
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), Alert{VIN: "X"}))
}
