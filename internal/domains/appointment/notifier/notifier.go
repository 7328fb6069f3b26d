package notifier

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"fmt"
	"parish/config"
	"parish/infras/kafka"
	"parish/infras/otel"
	"parish/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	OutcomeBooked   = "booked"
	OutcomeApproved = "approved"
	OutcomeRejected = "rejected"
)

// Event is the payload sent to the parishioner-facing notification pipeline
// after an appointment transition has been committed.
type Event struct {
	AppointmentID   string  `json:"appointment_id"`
	UserID          string  `json:"user_id"`
	SacramentTypeID string  `json:"sacrament_type_id"`
	SlotDate        string  `json:"slot_date"`
	SlotTime        string  `json:"slot_time"`
	Outcome         string  `json:"outcome"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// Notifier delivers appointment outcome events. Delivery is fire-and-forget:
// the appointment state has already been committed when Notify is called, so
// implementations report failures for logging only.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

type kafkaNotifier struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Notifier {
	return &kafkaNotifier{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (n *kafkaNotifier) Notify(ctx context.Context, event Event) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Notify")
	defer scope.End()
	defer scope.TraceIfError(err)

	topic := n.cfg.Kafka.Topic.AppointmentEvents
	if topic == "" {
		log.Warn().Msg("appointment events topic not configured, skipping notification")

		return nil
	}

	err = n.client.SendMessages(ctx, topic, kafka.Message{
		Key:   event.AppointmentID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("appointmentID", event.AppointmentID).Str("outcome", event.Outcome).Msg("failed to publish appointment event")

		return fmt.Errorf("failed to publish appointment event: %w", err)
	}

	return nil
}
