package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/segmentio/kafka-go"
)

// EventTypeBalanceRecalculated is sent in the event-type header of every message.
const EventTypeBalanceRecalculated = "balance.recalculated"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes balance events to a single topic, keyed by container so
// every event of one container lands on the same partition in order.
type Publisher struct {
	writer messageWriter
}

var _ portssvc.EventPublisher = (*Publisher)(nil)

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *Publisher) PublishBalanceRecalculated(ctx context.Context, events ...domain.BalanceRecalculatedEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", event.EventID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(MessageKey(event)),
			Value: data,
			Time:  event.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event-type", Value: []byte(EventTypeBalanceRecalculated)},
				{Key: "trigger", Value: []byte(event.Trigger)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka publish of %d events: %w", len(msgs), err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// MessageKey identifies the container an event belongs to.
func MessageKey(event domain.BalanceRecalculatedEvent) string {
	return event.OrganizationID + "/" + string(event.ContainerKind) + "/" + event.ContainerID
}
