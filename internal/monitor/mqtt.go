// Package monitor implements optional live-observability surfaces for the
// receiver: a websocket status feed and an MQTT event publisher, both
// grounded on the teacher's own websocket.go and mqtt_publisher.go.
package monitor

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// MQTTConfig configures the optional --mqtt-broker publish path.
type MQTTConfig struct {
	Broker string
	Topic  string
	QoS    byte
	Retain bool
}

// Event is one CARRIER/NOCARRIER/decoded-byte notification published to
// MQTT and/or the websocket feed.
type Event struct {
	Timestamp int64  `json:"timestamp"`
	ClientID  string `json:"client_id"`
	Kind      string `json:"kind"` // "carrier", "nocarrier", "data"
	Data      string `json:"data,omitempty"`
}

// MQTTPublisher publishes Events to an MQTT broker, mirroring the
// teacher's MQTTPublisher/generateClientID pattern.
type MQTTPublisher struct {
	client   mqtt.Client
	cfg      MQTTConfig
	clientID string
}

func generateClientID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "fskmodem-" + uuid.NewString()
	}
	return "fskmodem-" + hex.EncodeToString(b)
}

// NewMQTTPublisher connects to cfg.Broker and returns a ready publisher.
func NewMQTTPublisher(cfg MQTTConfig) (*MQTTPublisher, error) {
	clientID := generateClientID()

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("monitor: mqtt connect: %w", token.Error())
	}

	return &MQTTPublisher{client: client, cfg: cfg, clientID: clientID}, nil
}

// Publish sends one event as a JSON payload to the configured topic.
func (p *MQTTPublisher) Publish(kind, data string) error {
	ev := Event{
		Timestamp: time.Now().Unix(),
		ClientID:  p.clientID,
		Kind:      kind,
		Data:      data,
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("monitor: marshal event: %w", err)
	}

	token := p.client.Publish(p.cfg.Topic, p.cfg.QoS, p.cfg.Retain, payload)
	token.Wait()
	return token.Error()
}

// Close disconnects the MQTT client.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
