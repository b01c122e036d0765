package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/CafeApp/internal/messaging/payloads"

	amqp "github.com/rabbitmq/amqp091-go" // Пакет RabbitMQ
)

// Client представляет собой клиент RabbitMQ
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient создает и инициализирует новый клиент RabbitMQ
func NewClient(url, queueName string, logger *slog.Logger) (*Client, error) {
	client := &Client{logger: logger}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	client.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	client.channel = ch

	// Объявление очереди идемпотентно
	q, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable - очередь будет сохраняться при перезапуске RabbitMQ
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}
	client.queue = q

	logger.Info("connected to RabbitMQ", "queue", q.Name, "messages", q.Messages)
	return client, nil
}

// Close закрывает соединение и канал RabbitMQ
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, fmt.Errorf("close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
	}
	c.logger.Info("RabbitMQ connection closed")
	return errors.Join(errs...)
}

// PublishCafeImage публикует задачу на архивирование картинки кафе.
// Реализует ports.CafeImagePublisher.
func (c *Client) PublishCafeImage(ctx context.Context, payload payloads.CafeImagePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}

	c.logger.Info("cafe image task published", "queue", c.queue.Name, "cafe_id", payload.CafeID)
	return nil
}

// StartConsumingCafeImages начинает потребление сообщений из очереди.
// Реализует ports.CafeImageConsumer. Обработка идёт в отдельной горутине до отмены ctx.
func (c *Client) StartConsumingCafeImages(ctx context.Context, handler func(context.Context, payloads.CafeImagePayload) error) error {
	// по одному сообщению за раз: скачивание картинки может быть долгим
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.Consume(
		c.queue.Name, // queue
		"",           // consumer
		false,        // auto-ack (подтверждаем вручную)
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("consumer registered", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Warn("RabbitMQ channel closed, stopping consumer")
					return
				}
				handleDelivery(ctx, msg, handler, c.logger)
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping RabbitMQ consumer")
				return
			}
		}
	}()

	return nil
}

// handleDelivery обрабатывает одно сообщение и подтверждает или отклоняет его.
// Битое сообщение отбрасывается сразу; неудачная обработка повторяется один раз.
func handleDelivery(ctx context.Context, msg amqp.Delivery, handler func(context.Context, payloads.CafeImagePayload) error, logger *slog.Logger) {
	var payload payloads.CafeImagePayload
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		logger.Error("failed to unmarshal message", "error", err, "body", string(msg.Body))
		if err := msg.Nack(false, false); err != nil {
			logger.Error("failed to nack message", "error", err)
		}
		return
	}

	if err := handler(ctx, payload); err != nil {
		requeue := !msg.Redelivered
		logger.Error("failed to process message",
			"cafe_id", payload.CafeID,
			"requeue", requeue,
			"error", err,
		)
		if err := msg.Nack(false, requeue); err != nil {
			logger.Error("failed to nack message", "error", err)
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		logger.Error("failed to ack message", "error", err)
		return
	}
	logger.Info("message processed", "cafe_id", payload.CafeID)
}
