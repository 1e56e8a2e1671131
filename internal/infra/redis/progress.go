// Package redis implements the progress sink over Redis pub/sub so
// dashboards and back-office tooling can follow a pass live.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/midwestsb/autobooks/internal/pipeline"
	"github.com/midwestsb/autobooks/pkg/logger"
)

// DefaultChannel is the pub/sub channel progress events go to.
const DefaultChannel = "autobooks:classification:progress"

// ProgressPublisher publishes pipeline progress events to a Redis channel.
type ProgressPublisher struct {
	client  *redis.Client
	channel string
	logger  *logger.Logger
}

// NewProgressPublisher creates a progress publisher on the given channel.
// An empty channel falls back to DefaultChannel.
func NewProgressPublisher(client *redis.Client, channel string, log *logger.Logger) *ProgressPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &ProgressPublisher{
		client:  client,
		channel: channel,
		logger:  log.WithField("component", "progress"),
	}
}

// Publish sends one progress event. Subscribers may come and go; events to
// an empty channel are dropped by Redis, which is fine.
func (p *ProgressPublisher) Publish(ctx context.Context, event pipeline.Progress) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal progress event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish progress event: %w", err)
	}
	return nil
}
