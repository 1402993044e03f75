package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dm-server/internal/interfaces"
	"dm-server/internal/models"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// DefaultTurnEventsQueue - очередь событий о завершенных ходах по умолчанию.
const DefaultTurnEventsQueue = "dm_turn_events"

// RabbitMQTurnPublisher реализует интерфейс TurnEventPublisher для RabbitMQ.
type RabbitMQTurnPublisher struct {
	ch    *amqp091.Channel
	queue string
}

var _ interfaces.TurnEventPublisher = (*RabbitMQTurnPublisher)(nil)

// NewRabbitMQTurnPublisher открывает канал на готовом соединении и объявляет durable очередь.
// Переподключение остается на вызывающем коде.
func NewRabbitMQTurnPublisher(conn *amqp091.Connection, queueName string) (*RabbitMQTurnPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}
	if queueName == "" {
		queueName = DefaultTurnEventsQueue
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open a channel")
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		_ = ch.Close()
		log.Error().Err(err).Str("queue", queueName).Msg("Failed to declare queue")
		return nil, fmt.Errorf("failed to declare queue '%s': %w", queueName, err)
	}

	log.Info().Str("queue", queueName).Msg("Turn events queue declared")
	return &RabbitMQTurnPublisher{ch: ch, queue: queueName}, nil
}

// PublishTurnCompleted публикует событие завершенного хода.
func (p *RabbitMQTurnPublisher) PublishTurnCompleted(ctx context.Context, event models.TurnCompletedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal turn event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.MessageID.String(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		log.Error().Err(err).Str("campaign_id", event.CampaignID.String()).Msg("Failed to publish turn event")
		return fmt.Errorf("failed to publish turn event: %w", err)
	}

	log.Debug().
		Str("campaign_id", event.CampaignID.String()).
		Str("message_id", event.MessageID.String()).
		Bool("character_updated", event.CharacterUpdated).
		Msg("Turn event published")
	return nil
}

// Close закрывает канал RabbitMQ.
func (p *RabbitMQTurnPublisher) Close() error {
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}

// NoopPublisher используется, когда брокер не настроен.
type NoopPublisher struct{}

var _ interfaces.TurnEventPublisher = NoopPublisher{}

func (NoopPublisher) PublishTurnCompleted(context.Context, models.TurnCompletedEvent) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
