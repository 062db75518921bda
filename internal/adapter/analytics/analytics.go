// Package analytics streams client behavior events (searches and
// preference actions) to a Kafka topic. Emission is best effort and
// must never affect the user-facing flow.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/vastrakart/assistant/internal/core/domain"
	"github.com/vastrakart/assistant/internal/core/port"
)

var _ port.ClientEventsProducer = (*ClientEventsProducer)(nil)

type ClientEventsProducer struct {
	cl *kgo.Client
}

// NewClientEventsProducer builds a producer for the given topic and
// verifies the brokers with a ping.
func NewClientEventsProducer(
	ctx context.Context, seedBrokers []string, topic string,
) (ClientEventsProducer, error) {
	const op = "analytics.NewClientEventsProducer"

	cl, err := kgo.NewClient(
		kgo.SeedBrokers(seedBrokers...),
		kgo.DefaultProduceTopicAlways(),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return ClientEventsProducer{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cl.Ping(ctx); err != nil {
		cl.Close()
		return ClientEventsProducer{}, fmt.Errorf("%s: %w", op, err)
	}

	return ClientEventsProducer{cl}, nil
}

func (p ClientEventsProducer) ProduceEvent(
	ctx context.Context, e domain.ClientEvent,
) error {
	const op = "ClientEventsProducer.ProduceEvent"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	b, err := json.Marshal(toRecord(e))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r := &kgo.Record{Key: []byte(e.UserID), Value: b}
	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p ClientEventsProducer) Close() {
	const op = "ClientEventsProducer.Close"
	log := slog.With("op", op)

	log.Info("closing client events producer...")
	p.cl.Close()
	log.Info("client events producer is closed")
}

type eventRecord struct {
	UserID    string `json:"user_id"`
	Kind      string `json:"kind"`
	Query     string `json:"query,omitempty"`
	ProductID string `json:"product_id,omitempty"`
	Action    string `json:"action,omitempty"`
	Unix      int64  `json:"unix"`
}

func toRecord(e domain.ClientEvent) eventRecord {
	return eventRecord{
		UserID:    e.UserID,
		Kind:      string(e.Kind),
		Query:     e.Query,
		ProductID: e.ProductID,
		Action:    e.Action,
		Unix:      e.Unix,
	}
}

// Noop is wired when no brokers are configured.
type Noop struct{}

func (Noop) ProduceEvent(context.Context, domain.ClientEvent) error {
	return nil
}
