package rabbitmq_producer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/pkg/rabbitmq/rabbitmq_common"
	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherConfig конфигурация для производителя
type PublisherConfig struct {
	rabbitmq_common.Config
	ExchangeName    string // пустая строка - default exchange
	ExchangeType    string // direct, fanout, topic, headers
	DurableExchange bool
	// DeclareExchangeIfMissing - объявлять обменник при каждом открытии канала
	DeclareExchangeIfMissing bool

	Logger rabbitmq_common.Logger
}

// channel - часть *amqp.Channel, которой пользуется производитель
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// channelOpener открывает новый канал на текущем соединении менеджера
type channelOpener func() (channel, error)

var errPublisherClosed = errors.New("producer: publisher is closed")

// Publisher публикует сообщения в один обменник. Закрытый канал (в том числе после
// переподключения ConnectionManager) переоткрывается при следующей публикации.
type Publisher struct {
	config      PublisherConfig
	openChannel channelOpener
	channel     channel
	closed      bool
	mu          sync.Mutex

	Logger rabbitmq_common.Logger
}

func NewPublisher(cfg PublisherConfig, connManager *rabbitmq_common.ConnectionManager) (*Publisher, error) {
	if connManager == nil {
		return nil, fmt.Errorf("producer: connection manager cannot be nil")
	}
	return newPublisher(cfg, func() (channel, error) {
		_, ch, err := connManager.GetChannel()
		if err != nil {
			return nil, err
		}
		return ch, nil
	})
}

func newPublisher(cfg PublisherConfig, openChannel channelOpener) (*Publisher, error) {
	if cfg.Logger == nil {
		cfg.Logger = rabbitmq_common.NewNoopLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid base config: %w", err)
	}
	if cfg.DeclareExchangeIfMissing && (cfg.ExchangeName == "" || cfg.ExchangeType == "") {
		return nil, fmt.Errorf("producer: exchange name and type are required when DeclareExchangeIfMissing is true")
	}

	p := &Publisher{
		config:      cfg,
		openChannel: openChannel,
		Logger:      cfg.Logger,
	}
	if err := p.connectLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

// connectLocked открывает канал и объявляет обменник. Вызывается под p.mu.
func (p *Publisher) connectLocked() error {
	ch, err := p.openChannel()
	if err != nil {
		return fmt.Errorf("producer: failed to get channel from manager: %w", err)
	}

	if p.config.DeclareExchangeIfMissing {
		p.Logger.Debug("Declaring exchange", "name", p.config.ExchangeName, "type", p.config.ExchangeType)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.DurableExchange,
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		)
		if err != nil {
			_ = ch.Close()
			return fmt.Errorf("producer: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	}

	p.channel = ch
	p.Logger.Debug("Producer channel opened", "exchange", p.config.ExchangeName)
	return nil
}

// Publish публикует сообщение. Канал amqp не потокобезопасен, поэтому публикации сериализуются.
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errPublisherClosed
	}

	// канал закрывается вместе с соединением, так что проверки канала достаточно
	if p.channel == nil || p.channel.IsClosed() {
		p.Logger.Warn("Producer channel is closed, reopening", "exchange", p.config.ExchangeName)
		p.channel = nil
		if err := p.connectLocked(); err != nil {
			return err
		}
	}

	err := p.channel.PublishWithContext(
		ctx,
		p.config.ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("producer: failed to publish message: %w", err)
	}
	return nil
}

// Close закрывает канал производителя. Соединение принадлежит ConnectionManager.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	var err error
	if p.channel != nil && !p.channel.IsClosed() {
		if err = p.channel.Close(); err != nil {
			p.Logger.Error(err, "Error closing channel")
		}
	}
	p.channel = nil
	p.Logger.Info("Producer closed.")
	return err
}
