package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/game-storefront/internal/metrics"
)

// Publisher sends catalog events to RabbitMQ.  Each Publish dials the
// broker, declares the durable queue and sends one persistent message.
// Errors are logged and returned so the caller can choose to ignore
// them without interrupting the request.
type Publisher struct {
	URL     string
	Queue   string
	Logger  *log.Logger
	Metrics *metrics.Recorder // optional
}

// NewPublisher returns a publisher for the catalog queue at url.
func NewPublisher(url string, logger *log.Logger) *Publisher {
	return &Publisher{URL: url, Queue: CatalogQueueName, Logger: logger}
}

// dialTimeout bounds the broker handshake when ctx has no earlier
// deadline.
const dialTimeout = 5 * time.Second

func (p *Publisher) dial(ctx context.Context) (*amqp.Connection, error) {
	timeout := dialTimeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}
	return amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
}

// Publish sends ev as a persistent JSON message.  The dial and the
// publish both stop at ctx's deadline.
func (p *Publisher) Publish(ctx context.Context, ev CatalogEvent) (err error) {
	defer func() { p.Metrics.EventPublished(ev.Type, err) }()

	conn, err := p.dial(ctx)
	if err != nil {
		p.Logger.Errorf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Logger.Errorf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		p.Logger.Errorf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		p.Logger.Errorf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	}
	// default exchange, routing key = queue name
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		p.Logger.Errorf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
