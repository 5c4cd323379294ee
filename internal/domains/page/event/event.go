package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"roomdesk/config"
	"roomdesk/infras/kafka"
	"roomdesk/infras/otel"
	"roomdesk/internal/domains/page/model"
	"roomdesk/shared/constant"
	"roomdesk/shared/timezone"
)

const (
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingFailed    = "booking.failed"
)

type BookingOutcome struct {
	Type             string    `json:"type"`
	SessionID        string    `json:"session_id"`
	RoomID           string    `json:"room_id"`
	UserID           string    `json:"user_id"`
	CheckInDate      string    `json:"check_in_date"`
	CheckOutDate     string    `json:"check_out_date"`
	NumAdults        int       `json:"num_adults"`
	NumChildren      int       `json:"num_children"`
	TotalPrice       float64   `json:"total_price"`
	ConfirmationCode string    `json:"confirmation_code,omitempty"`
	Error            string    `json:"error,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

func NewBookingOutcome(sessionID string, sub model.Submission, code string, errMessage string) BookingOutcome {
	outcome := BookingOutcome{
		Type:             TypeBookingConfirmed,
		SessionID:        sessionID,
		RoomID:           sub.RoomID,
		UserID:           sub.UserID,
		CheckInDate:      sub.CheckInDate.String(),
		CheckOutDate:     sub.CheckOutDate.String(),
		NumAdults:        sub.NumOfAdults,
		NumChildren:      sub.NumOfChildren,
		TotalPrice:       sub.Quote.TotalPrice,
		ConfirmationCode: code,
		OccurredAt:       timezone.Now(),
	}

	if errMessage != "" {
		outcome.Type = TypeBookingFailed
		outcome.Error = errMessage
	}

	return outcome
}

type Publisher interface {
	PublishBookingOutcome(ctx context.Context, outcome BookingOutcome) error
}

type publisherImpl struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		topic:  cfg.Kafka.Topic.Booking,
		otel:   otel,
	}
}

func (p *publisherImpl) PublishBookingOutcome(ctx context.Context, outcome BookingOutcome) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".PublishBookingOutcome")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"event.type": outcome.Type,
		"room.id":    outcome.RoomID,
	})

	if err = p.client.SendMessages(ctx, p.topic, kafka.Message{Key: outcome.RoomID, Value: outcome}); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to publish %s: %w", outcome.Type, err)
	}

	return nil
}
