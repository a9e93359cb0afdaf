package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/config"
	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces advisories to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes advisories to the sink topic in a
// single WriteMessages call. Messages are keyed by station and fuel type so
// successive advisories for a station stay ordered on one partition.
func (w *Writer) LoadBatch(ctx context.Context, advisories []domain.FireBehaviourAdvisory) error {
	if len(advisories) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(advisories))
	for i := range advisories {
		msg, err := serializeToMessage(advisories[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write advisories: %w", err)
	}
	w.logger.Debug("advisories published", "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// messageKey identifies the station and fuel type an advisory is for.
func messageKey(adv domain.FireBehaviourAdvisory) []byte {
	return []byte(strconv.Itoa(adv.StationCode) + ":" + string(adv.FuelType))
}

// serializeToMessage marshals an advisory into a Kafka message.
func serializeToMessage(adv domain.FireBehaviourAdvisory) (kafkago.Message, error) {
	data, err := json.Marshal(adv)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize advisory: %w", err)
	}
	return kafkago.Message{
		Key:   messageKey(adv),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "station_code", Value: []byte(strconv.Itoa(adv.StationCode))},
			{Key: "advisory_id", Value: []byte(uuid.NewString())},
			{Key: "computed_at", Value: []byte(adv.ComputedAt.Format(time.RFC3339))},
		},
	}, nil
}
