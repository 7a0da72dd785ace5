package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// Envelope is the payload published for the relay worker.
type Envelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AMQPSender hands rendered emails to a durable RabbitMQ queue instead of
// delivering them itself. cmd/relay consumes the queue.
type AMQPSender struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewAMQPSender(url, queueName string) (*AMQPSender, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	return &AMQPSender{conn: conn, ch: ch, queue: queueName}, nil
}

func (s *AMQPSender) Name() string { return "amqp" }

func (s *AMQPSender) Send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(Envelope{To: to, Subject: subject, Body: body})
	if err != nil {
		return err
	}
	return s.ch.Publish(
		"",
		s.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         payload,
		},
	)
}

func (s *AMQPSender) Close() error {
	if err := s.ch.Close(); err != nil {
		s.conn.Close()
		return err
	}
	return s.conn.Close()
}
