// Package notify publishes record lifecycle events so field devices can react
// to new and resolved breakdowns without polling the sheet.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
)

// Event types emitted by the service layer.
const (
	EventCreated  = "created"
	EventUpdated  = "updated"
	EventResolved = "resolved"
)

// Event is the JSON payload published for each record change.
type Event struct {
	EventID   string        `json:"event_id"`
	Type      string        `json:"type"`
	RecordID  string        `json:"record_id"`
	Status    models.Status `json:"status"`
	Actor     string        `json:"actor"`
	Timestamp string        `json:"timestamp"`
}

// NewEvent builds an event for a record change.
func NewEvent(eventType string, rec models.BreakdownRecord, actor string) Event {
	return Event{
		EventID:   uuid.NewString(),
		Type:      eventType,
		RecordID:  rec.ID,
		Status:    rec.Status,
		Actor:     actor,
		Timestamp: rec.LastUpdated,
	}
}

// Notifier publishes record events. Publishing is best-effort: the service
// layer logs failures and never rolls back a persisted record.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// NoopNotifier discards events. Used when no broker is configured.
type NoopNotifier struct{}

func (NoopNotifier) Publish(ctx context.Context, event Event) error { return nil }
func (NoopNotifier) Close()                                         {}

// MQTTNotifier publishes events to <topicPrefix>/<event-type>.
type MQTTNotifier struct {
	client      mqtt.Client
	topicPrefix string
}

// NewMQTTNotifier connects to the broker and returns a ready notifier.
func NewMQTTNotifier(brokerURL, clientID, topicPrefix string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", brokerURL, err)
	}
	return &MQTTNotifier{client: client, topicPrefix: topicPrefix}, nil
}

// Publish sends one event as JSON at QoS 0.
func (n *MQTTNotifier) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	topic := n.topicPrefix + "/" + event.Type
	token := n.client.Publish(topic, 0, false, payload)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
