package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	// ErrConnect возвращается при ошибке подключения к брокеру
	ErrConnect = errors.New("events.publisher: failed to connect")
	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("events.publisher: failed to publish")
)

// channel подмножество amqp.Channel, используемое публикатором
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher публикует доменные события в topic exchange RabbitMQ
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// NewAMQPPublisher подключается к брокеру и объявляет durable topic exchange
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish отправляет событие с ключом маршрутизации, равным типу события
func (p *AMQPPublisher) Publish(ctx context.Context, event Envelope) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, event.Type, err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, event.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID.String(),
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, event.Type, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher используется, когда публикация событий отключена
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(context.Context, Envelope) error { return nil }

// Close ничего не делает
func (NopPublisher) Close() error { return nil }
