package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/tonhe/mgce/internal/card"
	"go.uber.org/zap"
)

// QoS used for configuration messages.
const QoS byte = 1

// DefaultTimeout bounds connect and publish waits.
const DefaultTimeout = 5 * time.Second

// MQTTOptions configures an MQTT sink.
type MQTTOptions struct {
	URL      string
	ClientID string
	Username string
	Password string
	Topic    string
	Timeout  time.Duration
}

// DefaultTopic derives a topic from the card file name.
func DefaultTopic(cardPath string) string {
	base := filepath.Base(cardPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return "mgce/" + base + "/config"
}

// client is the subset of mqtt.Client the sink uses.
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTT publishes the configuration as retained JSON.
type MQTT struct {
	client  client
	topic   string
	timeout time.Duration
	log     *zap.Logger
}

// DialMQTT connects to the broker.
func DialMQTT(opts MQTTOptions, log *zap.Logger) (*MQTT, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Topic == "" {
		return nil, fmt.Errorf("mqtt topic is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ClientID == "" {
		opts.ClientID = "mgce-" + uuid.NewString()[:8]
	}

	co := mqtt.NewClientOptions()
	co.AddBroker(opts.URL)
	co.SetClientID(opts.ClientID)
	if opts.Username != "" {
		co.SetUsername(opts.Username)
	}
	if opts.Password != "" {
		co.SetPassword(opts.Password)
	}
	co.SetAutoReconnect(true)
	co.SetCleanSession(true)
	co.SetConnectTimeout(opts.Timeout)

	c := mqtt.NewClient(co)
	tok := c.Connect()
	if !tok.WaitTimeout(opts.Timeout) {
		return nil, fmt.Errorf("connecting to %s: timed out", opts.URL)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", opts.URL, err)
	}
	log.Info("mqtt connected",
		zap.String("broker", opts.URL),
		zap.String("client_id", opts.ClientID),
		zap.String("topic", opts.Topic))
	return newMQTT(c, opts.Topic, opts.Timeout, log), nil
}

func newMQTT(c client, topic string, timeout time.Duration, log *zap.Logger) *MQTT {
	return &MQTT{client: c, topic: topic, timeout: timeout, log: log.Named("mqtt")}
}

// Topic is the topic configurations are published to.
func (m *MQTT) Topic() string {
	return m.topic
}

// Payload encodes cfg as published.
func Payload(cfg card.Configuration) ([]byte, error) {
	return json.Marshal(cfg.ToMap())
}

// Publish implements Publisher.
func (m *MQTT) Publish(ctx context.Context, cfg card.Configuration) error {
	payload, err := Payload(cfg)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}
	tok := m.client.Publish(m.topic, QoS, true, payload)
	select {
	case <-tok.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.timeout):
		return fmt.Errorf("publishing to %s: timed out", m.topic)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", m.topic, err)
	}
	m.log.Debug("published", zap.String("topic", m.topic), zap.Int("bytes", len(payload)))
	return nil
}

// Close disconnects from the broker.
func (m *MQTT) Close() error {
	m.client.Disconnect(250)
	return nil
}
