package repository

import (
	"context"
	"fmt"
	"time"

	"IndexBoard/internal/domain/models"
	pkgkafka "IndexBoard/pkg/kafka"
)

// barEvent is the wire format for refreshed daily bars.
type barEvent struct {
	Symbol string  `json:"symbol"`
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// KafkaBarPublisher implements BarPublisher on top of a Kafka producer.
type KafkaBarPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaBarPublisher(producer *pkgkafka.Producer, topic string) *KafkaBarPublisher {
	return &KafkaBarPublisher{producer: producer, topic: topic}
}

func (p *KafkaBarPublisher) PublishBars(ctx context.Context, symbol string, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, 0, len(bars))
	for _, b := range bars {
		msgs = append(msgs, pkgkafka.Message{
			Key: []byte(fmt.Sprintf("%s:%d", symbol, b.Time.Unix())),
			Value: barEvent{
				Symbol: symbol,
				Time:   b.Time.Unix(),
				Open:   b.Open,
				High:   b.High,
				Low:    b.Low,
				Close:  b.Close,
				Volume: b.Volume,
			},
		})
	}

	pubCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := p.producer.PublishBatch(pubCtx, p.topic, msgs); err != nil {
		return fmt.Errorf("publish bars: %w", err)
	}
	return nil
}

func (p *KafkaBarPublisher) Close() error {
	return p.producer.Close()
}
