package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultPayrollRunProcessedTopic = "hr.payroll.run.processed.v1"
	EventTypePayrollRunProcessed    = "payroll.run.processed"
	aggregateTypePayrollRun         = "payroll_run"
)

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type noopEventPublisher struct{}

func NewNoopPublisher() payroll.EventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) PublishRunProcessed(context.Context, payroll.RunProcessedEvent) error {
	return nil
}

type kafkaEventPublisher struct {
	writer MessageWriter
	topic  string
}

// NewKafkaWriter builds a writer for the given brokers. Topics are set per message.
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}

func NewKafkaEventPublisher(writer MessageWriter, topic string) payroll.EventPublisher {
	if strings.TrimSpace(topic) == "" {
		topic = DefaultPayrollRunProcessedTopic
	}
	return &kafkaEventPublisher{writer: writer, topic: topic}
}

func (p *kafkaEventPublisher) PublishRunProcessed(ctx context.Context, event payroll.RunProcessedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.RunID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypePayrollRunProcessed)},
			{Key: "aggregate_type", Value: []byte(aggregateTypePayrollRun)},
		},
	}); err != nil {
		return fmt.Errorf("failed to publish %s: %w", EventTypePayrollRunProcessed, err)
	}
	return nil
}
