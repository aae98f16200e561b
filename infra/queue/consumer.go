package queue

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"github.com/SundayYogurt/onboarding_service/internal/interfaces"
	"github.com/SundayYogurt/onboarding_service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type KafkaConsumer struct {
	Reader      *kafka.Reader
	Handler     interfaces.ConsumerHandler
	ServiceName string
	log         *logger.Logger
}

func NewKafkaConsumer(broker, topic, groupID, username, password string, handler interfaces.ConsumerHandler, log *logger.Logger) *KafkaConsumer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	if username != "" {
		dialer.SASLMechanism = plain.Mechanism{Username: username, Password: password}
		dialer.TLS = &tls.Config{}
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 10e3,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	return &KafkaConsumer{
		Reader:      reader,
		Handler:     handler,
		ServiceName: "mailer",
		log:         log,
	}
}

// Listen processes messages until ctx is cancelled. Handler failures are
// logged and the message is committed anyway.
func (kc *KafkaConsumer) Listen(ctx context.Context) error {
	for {
		msg, err := kc.Reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return kc.Reader.Close()
			}
			kc.log.Warn("kafka read failed", "service", kc.ServiceName, "error", err)
			continue
		}

		kc.log.Debug("kafka message received",
			"service", kc.ServiceName,
			"partition", msg.Partition,
			"offset", msg.Offset,
		)

		if err := kc.Handler.HandleMessage(ctx, msg.Value); err != nil {
			kc.log.Error("kafka handler failed", "service", kc.ServiceName, "offset", msg.Offset, "error", err)
		}
	}
}
