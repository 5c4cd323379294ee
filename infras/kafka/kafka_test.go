package kafka_test

import (
	"context"
	"testing"

	"roomdesk/config"
	"roomdesk/infras/kafka"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:   "7",
		Value: map[string]any{"type": "booking.confirmed", "confirmation_code": "ABC123"},
	}

	km, err := msg.ToKafkaMessage("roomdesk.booking")
	require.NoError(t, err)

	assert.Equal(t, "roomdesk.booking", km.Topic)
	assert.Equal(t, []byte("7"), km.Key)
	assert.JSONEq(t, `{"type":"booking.confirmed","confirmation_code":"ABC123"}`, string(km.Value))
}

func TestMessage_ToKafkaMessageInvalidValue(t *testing.T) {
	msg := kafka.Message{Key: "7", Value: make(chan int)}

	_, err := msg.ToKafkaMessage("roomdesk.booking")

	assert.Error(t, err)
}

func TestNew_WithoutBrokersDiscards(t *testing.T) {
	client := kafka.New(&config.Config{})

	err := client.SendMessages(context.Background(), "roomdesk.booking", kafka.Message{Key: "7", Value: "x"})

	assert.NoError(t, err)
	assert.NoError(t, client.Close())
}
