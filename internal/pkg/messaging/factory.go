package messaging

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DriverNATS  = "nats"
	DriverKafka = "kafka"
	// DriverNoop drops every message; it is also what an empty driver means.
	DriverNoop = "noop"
)

// ErrUnknownDriver is returned for a driver name NewFromDriver does not know.
var ErrUnknownDriver = errors.New("messaging: unknown driver")

// FactoryOptions carries settings for every driver; only the selected one
// is read.
type FactoryOptions struct {
	Kafka KafkaConfig
	NATS  NATSConfig
}

// NewFromDriver builds the Publisher named by driver.
func NewFromDriver(driver string, opts FactoryOptions) (Publisher, error) {
	switch d := strings.ToLower(strings.TrimSpace(driver)); d {
	case DriverKafka:
		return NewKafka(opts.Kafka)
	case DriverNATS:
		return NewNATS(opts.NATS)
	case DriverNoop, "":
		return NewNoop(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, d)
	}
}
