package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	ErrKafkaTopicRequired   = errors.New("messaging: kafka topic is required")
	ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")
)

// KafkaConfig configures NewKafka. Zero values keep kafka-go defaults.
type KafkaConfig struct {
	Brokers                []string
	WriteTimeout           time.Duration
	RequiredAcks           kafka.RequiredAcks
	AllowAutoTopicCreation bool
}

// Kafka writes through one kafka-go Writer; the topic travels on each
// message so a single writer serves every destination.
type Kafka struct {
	closeGuard
	writer *kafka.Writer
}

// NewKafka does not dial; the first Publish does.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	var brokers []string
	for _, b := range cfg.Brokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	return &Kafka{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		WriteTimeout:           cfg.WriteTimeout,
		RequiredAcks:           cfg.RequiredAcks,
		AllowAutoTopicCreation: cfg.AllowAutoTopicCreation,
	}}, nil
}

func (k *Kafka) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := k.check(ctx, destination, ErrKafkaTopicRequired); err != nil {
		return PublishResult{}, err
	}

	km := kafka.Message{Topic: destination, Key: msg.Key, Value: msg.Body, Time: time.Now()}
	for _, h := range msg.Headers {
		if h.Key != "" {
			km.Headers = append(km.Headers, kafka.Header{Key: h.Key, Value: h.Value})
		}
	}

	if err := k.writer.WriteMessages(ctx, km); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: kafka publish to %s: %w", destination, err)
	}
	return PublishResult{Topic: destination, Timestamp: km.Time}, nil
}

// Close flushes buffered writes. Calling it twice is safe.
func (k *Kafka) Close() error {
	if !k.markClosed() {
		return nil
	}
	return k.writer.Close()
}
