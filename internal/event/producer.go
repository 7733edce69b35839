package event

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/opsdesk/ticketera/internal/model"
)

// Producer writes ticket events to a Kafka topic, best-effort: a failed or
// unconfigured emit never blocks or fails the save that triggered it.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer returns a producer. With no brokers or an empty topic every
// method is a no-op.
func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return &Producer{}
	}
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// TicketSaved emits a ticket.saved event for a freshly appended record.
func (p *Producer) TicketSaved(ctx context.Context, rec *model.Record) {
	if p.writer == nil {
		return
	}
	msg := map[string]interface{}{
		"event":     "ticket.saved",
		"operator":  rec.Operator,
		"opened_at": rec.OpenedAt.Format(model.TimeLayout),
		"closed_at": rec.ClosedAt.Format(model.TimeLayout),
		"origin":    rec.Origin,
		"reference": rec.Reference,
		"reason":    rec.Reason,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		log.Printf("event: marshal ticket.saved: %v", err)
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Value: body}); err != nil {
		log.Printf("event: write ticket.saved: %v", err)
	}
}

func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// ParseBrokers splits "host1:9092,host2:9092" into a broker slice.
func ParseBrokers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
