package queue

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// SendJob is the payload the delivery worker consumes: one scheduled
// message that has come due.
type SendJob struct {
	ScheduledMessageID int `json:"scheduled_message_id"`
}

const sendQueueName = "outreach_sends"

// SendPublisher pushes due scheduled messages onto the durable AMQP queue
// drained by cmd/worker.
type SendPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewSendPublisher(url string) (*SendPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open queue channel: %w", err)
	}

	if _, err := DeclareSendQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &SendPublisher{conn: conn, ch: ch}, nil
}

// DeclareSendQueue declares the durable send queue on ch. Publisher and
// worker both declare it so either side can start first.
func DeclareSendQueue(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		sendQueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare queue %s: %w", sendQueueName, err)
	}
	return q, nil
}

func (p *SendPublisher) Publish(scheduledMessageID int) error {
	body, err := json.Marshal(SendJob{ScheduledMessageID: scheduledMessageID})
	if err != nil {
		return err
	}
	err = p.ch.Publish(
		"",
		sendQueueName,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish send job: %w", err)
	}
	return nil
}

func (p *SendPublisher) Close() {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
