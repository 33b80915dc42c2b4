package service

import (
	"context"

	"foodcart/geocoding"
	"foodcart/place-agg/internal/domain"

	"github.com/segmentio/kafka-go"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type PlaceResolver interface {
	Resolve(ctx context.Context, address string) (*geocoding.Place, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessOrder(ctx context.Context, msg domain.KafkaMessage) error
}

var (
	_ MessageReader     = (*kafka.Reader)(nil)
	_ PlaceResolver     = (*geocoding.Resolver)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
