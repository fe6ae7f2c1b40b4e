package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	kitchenExchange = "kitchen_orders"
	kitchenQueue    = "kitchen_queue"
	dialAttempts    = 5
)

// AMQP publishes kitchen tickets to a RabbitMQ topic exchange.
type AMQP struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	log      *zap.Logger
}

// NewAMQP connects to RabbitMQ and declares the kitchen topology. An empty
// exchange name selects the default. The broker may still be starting when
// we are, so dialing retries with a growing wait.
func NewAMQP(url, exchange string, log *zap.Logger) (*AMQP, error) {
	if exchange == "" {
		exchange = kitchenExchange
	}
	a := &AMQP{exchange: exchange, log: log}

	var err error
	for i := 0; i < dialAttempts; i++ {
		a.conn, err = amqp091.Dial(url)
		if err == nil {
			a.channel, err = a.conn.Channel()
			if err == nil {
				if err = a.setupTopology(); err == nil {
					return a, nil
				}
				a.channel.Close()
			}
			a.conn.Close()
		}

		if i < dialAttempts-1 {
			wait := time.Duration(i+1) * 2 * time.Second
			log.Warn("rabbitmq connection failed, retrying",
				zap.Duration("wait", wait),
				zap.Error(err))
			time.Sleep(wait)
		}
	}

	return nil, fmt.Errorf("connecting to rabbitmq after %d attempts: %w", dialAttempts, err)
}

func (a *AMQP) setupTopology() error {
	err := a.channel.ExchangeDeclare(
		a.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declaring %s exchange: %w", a.exchange, err)
	}

	_, err = a.channel.QueueDeclare(
		kitchenQueue, // name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("declaring %s queue: %w", kitchenQueue, err)
	}

	err = a.channel.QueueBind(
		kitchenQueue,      // queue name
		"kitchen.order.*", // routing key
		a.exchange,        // exchange
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		return fmt.Errorf("binding %s queue: %w", kitchenQueue, err)
	}

	return nil
}

// Send publishes the message with a routing key derived from the order id.
func (a *AMQP) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling kitchen message: %w", err)
	}

	routingKey := "kitchen.order." + strings.ToLower(msg.OrderID)

	err = a.channel.PublishWithContext(
		ctx,
		a.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publishing kitchen message for %s: %w", msg.OrderID, err)
	}

	a.log.Debug("kitchen message published",
		zap.String("order_id", msg.OrderID),
		zap.String("routing_key", routingKey))
	return nil
}

// Close releases the channel and connection.
func (a *AMQP) Close() error {
	if a.channel != nil {
		a.channel.Close()
	}
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}
