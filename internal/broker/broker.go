// Package broker stores MQTT broker profiles in an encrypted file.
package broker

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/tonhe/mgce/internal/publish"
)

// Broker is a named MQTT connection profile.
type Broker struct {
	Name     string `json:"name"`
	URL      string `json:"url"` // tcp://host:1883, ssl://host:8883, ws://...
	ClientID string `json:"client_id,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Topic    string `json:"topic,omitempty"` // overrides the per-card default
}

// Summary is a Broker without its password.
type Summary struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Username string `json:"username,omitempty"`
	Topic    string `json:"topic,omitempty"`
}

var schemes = map[string]bool{"tcp": true, "ssl": true, "tls": true, "ws": true, "wss": true, "mqtt": true, "mqtts": true}

// Validate checks the profile is usable.
func (b Broker) Validate() error {
	if b.Name == "" {
		return errors.New("broker name is required")
	}
	u, err := url.Parse(b.URL)
	if err != nil {
		return fmt.Errorf("broker url: %w", err)
	}
	if !schemes[u.Scheme] || u.Host == "" {
		return fmt.Errorf("broker url %q: expected scheme://host:port", b.URL)
	}
	return nil
}

// Summarize drops the password.
func (b Broker) Summarize() Summary {
	return Summary{Name: b.Name, URL: b.URL, Username: b.Username, Topic: b.Topic}
}

// Options builds sink options. topic is used when the profile sets none.
func (b Broker) Options(topic string, timeout time.Duration) publish.MQTTOptions {
	if b.Topic != "" {
		topic = b.Topic
	}
	return publish.MQTTOptions{
		URL:      b.URL,
		ClientID: b.ClientID,
		Username: b.Username,
		Password: b.Password,
		Topic:    topic,
		Timeout:  timeout,
	}
}

// Provider is a broker profile store.
type Provider interface {
	List() ([]Summary, error)
	Get(name string) (*Broker, error)
	Add(b Broker) error
	Update(name string, b Broker) error
	Remove(name string) error
}
