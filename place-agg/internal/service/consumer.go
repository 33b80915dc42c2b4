package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodcart/place-agg/internal/domain"

	"go.uber.org/zap"
)

// Consumer geocodes the delivery address of every registered order ahead
// of time, so the manager pages find it in the places table.
type Consumer struct {
	Reader   MessageReader
	Resolver PlaceResolver
	Logger   *zap.SugaredLogger
	// RetryDelay is the first pause after a failed read. It doubles on
	// every consecutive failure up to maxRetryDelay.
	RetryDelay time.Duration
}

const maxRetryDelay = 30 * time.Second

func NewConsumer(reader MessageReader, resolver PlaceResolver, logger *zap.SugaredLogger) *Consumer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Consumer{
		Reader:     reader,
		Resolver:   resolver,
		Logger:     logger,
		RetryDelay: time.Second,
	}
}

// Start reads the topic until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.Logger.Infow("Starting place aggregation consumer...")
	delay := c.RetryDelay
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.Logger.Infow("place aggregation consumer stopped")
				return
			}
			c.Logger.Errorw("error reading message", "error", err, "retry_in", delay)
			select {
			case <-ctx.Done():
				c.Logger.Infow("place aggregation consumer stopped")
				return
			case <-time.After(delay):
			}
			delay = min(delay*2, maxRetryDelay)
			continue
		}
		delay = c.RetryDelay

		var msg domain.KafkaMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			c.Logger.Errorw("error unmarshaling message", "offset", message.Offset, "error", err)
			continue
		}

		if err := c.ProcessOrder(ctx, msg); err != nil {
			c.Logger.Errorw("error processing order", "order_id", msg.OrderID, "error", err)
		}
	}
}

func (c *Consumer) ProcessOrder(ctx context.Context, msg domain.KafkaMessage) error {
	if msg.Type != domain.EventOrderRegistered {
		return nil
	}

	place, err := c.Resolver.Resolve(ctx, msg.Address)
	if err != nil {
		return fmt.Errorf("resolve address of order %d: %w", msg.OrderID, err)
	}

	if _, ok := place.Coordinates(); !ok {
		c.Logger.Warnw("order address not recognised", "order_id", msg.OrderID, "address", msg.Address)
		return nil
	}
	c.Logger.Infow("order address resolved", "order_id", msg.OrderID, "address", msg.Address)
	return nil
}
