// Package publish delivers republished card configurations to their
// sinks: the card file and, optionally, an MQTT broker.
package publish

import (
	"context"
	"errors"

	"github.com/tonhe/mgce/internal/card"
)

// Publisher accepts a complete configuration.
type Publisher interface {
	Publish(ctx context.Context, cfg card.Configuration) error
	Close() error
}

// FileSink writes the configuration to a card file.
type FileSink struct {
	Path string
}

// Publish saves cfg to the sink's path.
func (f FileSink) Publish(_ context.Context, cfg card.Configuration) error {
	return card.SaveCard(&cfg, f.Path)
}

// Close is a no-op.
func (FileSink) Close() error { return nil }

// Multi publishes to every sink in order. All sinks are tried; their
// errors are joined.
type Multi []Publisher

// Publish implements Publisher.
func (m Multi) Publish(ctx context.Context, cfg card.Configuration) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, cfg.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink.
func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
