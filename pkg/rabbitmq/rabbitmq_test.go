package rabbitmq_test

import (
	"testing"

	"crm/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

func TestClientWithoutConnection(t *testing.T) {
	client := &rabbitmq.Client{}

	err := client.Publish("crm", "order.created", []byte(`{}`))
	assert.Error(t, err)

	err = client.ConsumeEvents(func(msg amqp.Delivery) error { return nil })
	assert.Error(t, err)

	// Close on a never-connected client is a no-op
	assert.NoError(t, client.Close())
}
