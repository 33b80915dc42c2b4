package domain

import "time"

const EventOrderRegistered = "order_registered"

// KafkaMessage is an event published on the orders topic.
type KafkaMessage struct {
	Type      string    `json:"type"`
	OrderID   int       `json:"order_id"`
	Address   string    `json:"address"`
	Timestamp time.Time `json:"timestamp"`
}
