// Package service publishes booking events to the message broker.  Failures
// are logged and never reach the booking flow.
package service

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    "github.com/iliyamo/cinema-ticket-booking/internal/model"
    "github.com/iliyamo/cinema-ticket-booking/internal/queue"
)

// TicketPublisher publishes ticket.issued events to a durable RabbitMQ
// queue.  Each publish opens its own connection so a broker outage never
// leaves the server holding a dead one.
type TicketPublisher struct {
    URL     string
    Queue   string
    Timeout time.Duration
    Log     *zap.Logger
}

// Publish sends one event as a persistent JSON message on the default
// exchange, routed by queue name.
func (p *TicketPublisher) Publish(ctx context.Context, ev queue.TicketIssuedEvent) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        return fmt.Errorf("rabbitmq dial: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("rabbitmq channel: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("rabbitmq queue declare: %w", err)
    }
    body, err := json.Marshal(ev)
    if err != nil {
        return fmt.Errorf("marshal event: %w", err)
    }
    msg := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    ev.TransactionID,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, msg); err != nil {
        return fmt.Errorf("rabbitmq publish: %w", err)
    }
    return nil
}

// OnTicketIssued publishes the ticket in the background.  It matches the
// booking ticket listener signature.
func (p *TicketPublisher) OnTicketIssued(t model.IssuedTicket) {
    ev := queue.NewTicketIssuedEvent(t)
    go func() {
        timeout := p.Timeout
        if timeout <= 0 {
            timeout = 5 * time.Second
        }
        ctx, cancel := context.WithTimeout(context.Background(), timeout)
        defer cancel()
        if err := p.Publish(ctx, ev); err != nil && p.Log != nil {
            p.Log.Warn("publish ticket.issued failed", zap.String("transaction_id", ev.TransactionID), zap.Error(err))
        }
    }()
}
