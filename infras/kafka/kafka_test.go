package kafka_test

import (
	"context"
	"testing"

	"bistro/config"
	"bistro/infras/kafka"
	otelMocks "bistro/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderPlaced struct {
	OrderID string `json:"order_id"`
	Total   string `json:"total"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{
		Key:   "order-1",
		Value: orderPlaced{OrderID: "order-1", Total: "7.00"},
	}

	msg, err := message.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("order-1"), msg.Key)
	assert.JSONEq(t, `{"order_id":"order-1","total":"7.00"}`, string(msg.Value))

	key, value, err := kafka.DecodeKafkaMessage[orderPlaced](msg)
	require.NoError(t, err)
	assert.Equal(t, "order-1", key)
	assert.Equal(t, orderPlaced{OrderID: "order-1", Total: "7.00"}, value)
}

func TestToKafkaMessageRejectsUnencodable(t *testing.T) {
	message := kafka.Message{Key: "bad", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	assert.Error(t, err)
}

func TestSendMessagesWithoutBrokers(t *testing.T) {
	client := kafka.New(&config.Config{}, otelMocks.NewOtel())

	err := client.SendMessages(context.Background(), "order.placed", kafka.Message{Key: "order-1", Value: orderPlaced{}})
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}
