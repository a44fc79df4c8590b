// Package publish sends maintenance reports to an MQTT broker.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// qos 1: the broker acknowledges every report.
const qos byte = 1

var ErrNotConnected = errors.New("mqtt client not connected")

// Publisher delivers a report to an external consumer.
type Publisher interface {
	Publish(ctx context.Context, report models.MaintenanceReport) error
	Close()
}

// MQTTPublisher publishes reports as JSON on a single topic.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
}

// NewMQTTPublisher connects to broker and returns a publisher for topic.
func NewMQTTPublisher(broker, clientID, topic string, timeout time.Duration) (*MQTTPublisher, error) {
	if broker == "" {
		return nil, fmt.Errorf("mqtt broker is empty")
	}
	if topic == "" {
		return nil, fmt.Errorf("mqtt topic is empty")
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(timeout).
		SetAutoReconnect(false)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		client.Disconnect(0)
		return nil, fmt.Errorf("mqtt connect to %s timed out after %s", broker, timeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", broker, err)
	}

	log.WithFields(log.Fields{"broker": broker, "topic": topic}).Debug("Connected to MQTT broker")
	return newPublisher(client, topic), nil
}

func newPublisher(client mqtt.Client, topic string) *MQTTPublisher {
	return &MQTTPublisher{client: client, topic: topic}
}

// Publish sends report and waits for the broker acknowledgement or ctx.
func (p *MQTTPublisher) Publish(ctx context.Context, report models.MaintenanceReport) error {
	if !p.client.IsConnected() {
		return ErrNotConnected
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	token := p.client.Publish(p.topic, qos, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("mqtt publish to %s: %w", p.topic, ctx.Err())
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish to %s: %w", p.topic, err)
	}

	log.WithFields(log.Fields{
		"topic":          p.topic,
		"reference_date": report.ReferenceDate,
		"bytes":          len(payload),
	}).Debug("Published maintenance report")
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
