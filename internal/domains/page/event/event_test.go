package event_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomdesk/config"
	"roomdesk/infras/kafka"
	kafkaMocks "roomdesk/infras/kafka/mocks"
	otelMocks "roomdesk/infras/otel/mocks"
	"roomdesk/internal/domains/page/event"
	"roomdesk/internal/domains/page/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func submission() model.Submission {
	return model.Submission{
		RoomID:        "42",
		UserID:        "9",
		CheckInDate:   model.NewDate(2024, time.March, 1),
		CheckOutDate:  model.NewDate(2024, time.March, 3),
		NumOfAdults:   2,
		NumOfChildren: 1,
		Quote:         model.Quote{Nights: 3, TotalPrice: 900, TotalGuests: 3},
	}
}

func TestNewBookingOutcome(t *testing.T) {
	confirmed := event.NewBookingOutcome("page-1", submission(), "ABC123", "")

	assert.Equal(t, event.TypeBookingConfirmed, confirmed.Type)
	assert.Equal(t, "ABC123", confirmed.ConfirmationCode)
	assert.Equal(t, "2024-03-01", confirmed.CheckInDate)
	assert.InDelta(t, 900.0, confirmed.TotalPrice, 0.001)
	assert.Empty(t, confirmed.Error)

	failed := event.NewBookingOutcome("page-1", submission(), "", "Room not available")

	assert.Equal(t, event.TypeBookingFailed, failed.Type)
	assert.Equal(t, "Room not available", failed.Error)
}

func TestPublisher_PublishBookingOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topic.Booking = "roomdesk.booking"

	publisher := event.New(client, cfg, otelMocks.NewOtel())
	outcome := event.NewBookingOutcome("page-1", submission(), "ABC123", "")

	client.EXPECT().
		SendMessages(gomock.Any(), "roomdesk.booking", kafka.Message{Key: "42", Value: outcome}).
		Return(nil)

	require.NoError(t, publisher.PublishBookingOutcome(context.Background(), outcome))

	client.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("broker down"))

	err := publisher.PublishBookingOutcome(context.Background(), outcome)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "booking.confirmed")
}
