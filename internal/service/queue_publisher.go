// Package queue_publisher publishes catalog domain events to RabbitMQ.
// Errors are logged and returned so callers can ignore failures without
// interrupting the main request flow; a broken broker must never fail a
// catalog write.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/product-catalog/internal/queue"
)

// Publisher publishes CatalogEvents to the catalog.events queue. The zero
// value is not usable; construct with New.
type Publisher struct {
	url string
}

func New() *Publisher {
	return &Publisher{url: q.BrokerURL()}
}

// Publish sends a CatalogEvent to the catalog.events queue. Messages are
// marked persistent so they survive broker restarts. The function never
// panics; any error is logged and returned.
func (p *Publisher) Publish(ctx context.Context, event q.CatalogEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare("catalog.events", true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",               // default exchange
		"catalog.events", // routing key = queue name
		false,            // mandatory
		false,            // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
