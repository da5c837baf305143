// Package alerts pushes safety alerts to the surrounding product's
// notification pipeline over MQTT. A lookup whose derived status is
// "attention" produces one alert; everything else stays quiet.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/vehicle-safety/internal/models"
)

// Alert is the payload published when a vehicle needs attention.
type Alert struct {
	VIN            string              `json:"vin"`
	Make           string              `json:"make"`
	Model          string              `json:"model"`
	ModelYear      int                 `json:"model_year"`
	Status         models.SafetyStatus `json:"status"`
	OpenRecalls    int                 `json:"open_recalls"`
	Investigations int                 `json:"investigations"`
	Timestamp      time.Time           `json:"timestamp"`
}

// Publisher pushes safety alerts outward.
type Publisher interface {
	Publish(ctx context.Context, alert Alert) error
}

// TopicFor returns the MQTT topic an alert for the given VIN is published
// to.
func TopicFor(vin string) string {
	return "safety/alerts/" + vin
}

// MQTTPublisher publishes alerts to an MQTT broker.
type MQTTPublisher struct {
	client mqtt.Client
}

// NewMQTTPublisher connects to the broker and returns a publisher.
func NewMQTTPublisher(brokerURL, clientID string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timed out for %s", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect failed: %w", err)
	}

	log.WithField("broker", brokerURL).Info("connected to MQTT broker")
	return &MQTTPublisher{client: client}, nil
}

// Publish sends one alert. Failures are the caller's to log; a lookup never
// fails because its alert could not be delivered.
func (p *MQTTPublisher) Publish(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	token := p.client.Publish(TopicFor(alert.VIN), 1, false, payload)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

// Publish discards the alert.
func (NoopPublisher) Publish(ctx context.Context, alert Alert) error {
	log.WithField("vin", alert.VIN).Debug("alert publishing disabled, dropping alert")
	return nil
}
