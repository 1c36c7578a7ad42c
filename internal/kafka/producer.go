package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// RequestEvent is published on every flight-request insert and dashboard
// update so downstream consumers can pick up state changes without polling
// the store.
type RequestEvent struct {
	Type        string    `json:"type"`
	RequestID   string    `json:"request_id"`
	SubmittedBy string    `json:"submitted_by"`
	Status      string    `json:"status"`
	PNR         string    `json:"pnr,omitempty"`
	At          time.Time `json:"at"`
}

const (
	EventRequestCreated = "request_created"
	EventRequestHeld    = "request_held"
	EventRequestError   = "request_error"
	EventRequestUpdated = "request_updated"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
