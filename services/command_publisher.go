package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"pricing-backend/pricing"
)

const DefaultCommandQueue = "pricing.commands"

// CommandEvent is the message body published for every pricing command.
type CommandEvent struct {
	pricing.Command
	IssuedAt string `json:"issued_at"`
}

// CommandPublisher fans pricing commands out to RabbitMQ so other
// collaborators can follow catalog and channel changes. It implements
// pricing.Dispatcher and keeps one connection open between batches; a failed
// batch drops the connection and the next one dials again.
type CommandPublisher struct {
	URL   string
	Queue string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewCommandPublisher(url, queue string) *CommandPublisher {
	if queue == "" {
		queue = DefaultCommandQueue
	}
	return &CommandPublisher{URL: url, Queue: queue}
}

// open returns the live channel, dialing and declaring the queue when there
// is none. Callers hold p.mu.
func (p *CommandPublisher) open() (*amqp.Channel, error) {
	if p.conn != nil && !p.conn.IsClosed() && p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(
		p.Queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	log.Printf("✅ rabbitmq: connected, publishing to %s", p.Queue)
	p.conn, p.channel = conn, ch
	return ch, nil
}

func (p *CommandPublisher) reset() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.channel = nil, nil
}

func (p *CommandPublisher) Dispatch(ctx context.Context, cmds []pricing.Command) error {
	if len(cmds) == 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	ch, err := p.open()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, cmd := range cmds {
		body, err := json.Marshal(CommandEvent{Command: cmd, IssuedAt: now.Format(time.RFC3339)})
		if err != nil {
			log.Printf("rabbitmq: marshal %s failed: %v", cmd.Kind, err)
			return err
		}
		pub := amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    now,
			Type:         string(cmd.Kind),
			Body:         body,
		}
		if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
			log.Printf("rabbitmq: publish %s failed: %v", cmd.Kind, err)
			p.reset()
			return err
		}
	}
	return nil
}

// Close shuts the connection down. A later Dispatch reconnects.
func (p *CommandPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
}
