// Package transferevents pushes committed transfer records to Kafka.
//
// Publishing happens after the unit of work commits, so a broker outage can
// never affect ledger atomicity; failed publishes are logged and dropped.
package transferevents

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/corebank/ledger/internal/domain"
	"github.com/segmentio/kafka-go"
)

// Publisher writes committed transactions to a Kafka topic.
type Publisher struct {
	writer *kafka.Writer
}

// New returns a Publisher writing to the given brokers and topic.
func New(brokers []string, topic string) *Publisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokers,
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	})

	return &Publisher{writer: writer}
}

// PublishTransferCommitted pushes one message per committed transaction
// record, keyed by transaction id.
func (p *Publisher) PublishTransferCommitted(ctx context.Context, transactions []domain.Transaction) error {
	messages := make([]kafka.Message, 0, len(transactions))

	for _, transaction := range transactions {
		value, err := json.Marshal(transaction)
		if err != nil {
			return err
		}

		messages = append(messages, kafka.Message{
			Key:   []byte(strconv.FormatInt(transaction.ID, 10)),
			Value: value,
			Time:  time.Now(),
		})
	}

	return p.writer.WriteMessages(ctx, messages...)
}

// Close closes the underlying Kafka writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
