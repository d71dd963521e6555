package internal

import (
	"context"
	"fmt"
	"time"

	logger_adapter "github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/adapters/logger"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/adapters/memory"
	mongodb_adapter "github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/adapters/mongodb"
	postgres_adapter "github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/adapters/postgres"
	rabbitmq_adapter "github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/adapters/rabbitmq"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/configs"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/constants"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
	fluentlogger "github.com/DeepPatel29/airbnbApp-Deep-N01679203/pkg/fluent_logger"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/pkg/mongodb"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/pkg/postgres"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/pkg/rabbitmq/rabbitmq_common"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const connectTimeout = 10 * time.Second

// listingStore - хранилище, обслуживающее и веб-приложение, и импорт
type listingStore interface {
	port.ListingStoragePort
	port.ImportStoragePort
}

// infrastructure - общие для сервера и импорта зависимости: логгеры, хранилище, события.
type infrastructure struct {
	config     *configs.AppConfig
	baseLogger port.LoggerPort
	logger     port.LoggerPort

	fluentClient *fluent.Fluent
	store        listingStore
	closeStore   func(ctx context.Context) error

	connManager *rabbitmq_common.ConnectionManager
	producer    *rabbitmq_producer.Publisher
	events      port.ListingEventsPort
}

func newInfrastructure(ctx context.Context, appConfig *configs.AppConfig, component string) (*infrastructure, error) {
	infra := &infrastructure{config: appConfig}

	if err := infra.initLoggers(component); err != nil {
		return nil, err
	}
	if err := infra.initStorage(ctx); err != nil {
		infra.Close(context.Background())
		return nil, err
	}
	if err := infra.initEvents(); err != nil {
		infra.Close(context.Background())
		return nil, err
	}
	return infra, nil
}

func (i *infrastructure) initLoggers(component string) error {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLogLevel(i.config.StdoutLogger.Level),
		IsJSON:   i.config.StdoutLogger.IsJSON,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	if i.config.FluentBit.Enabled {
		fluentClient, err := fluentlogger.NewClient(fluentlogger.Config{
			Host:      i.config.FluentBit.Host,
			Port:      i.config.FluentBit.Port,
			TagPrefix: i.config.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return fmt.Errorf("failed to create fluentbit client: %w", err)
		}
		i.fluentClient = fluentClient

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLogLevel(i.config.FluentBit.Level))
		if err != nil {
			fluentClient.Close()
			i.fluentClient = nil
			return fmt.Errorf("failed to create fluentbit adapter: %w", err)
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return fmt.Errorf("failed to create multi-logger: %w", err)
	}

	i.baseLogger = multiLogger.WithFields(port.Fields{"service_name": i.config.AppName})
	i.logger = i.baseLogger.WithFields(port.Fields{"component": component})
	i.logger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": i.config.FluentBit.Enabled,
	})
	return nil
}

func (i *infrastructure) initStorage(ctx context.Context) error {
	switch i.config.StorageDriver {
	case configs.DriverMongoDB:
		client, err := mongodb.NewClient(ctx, mongodb.Config{
			URI:            i.config.Mongo.URI,
			ConnectTimeout: connectTimeout,
			AppName:        i.config.AppName,
		})
		if err != nil {
			i.logger.Error("Failed to connect to MongoDB", err, nil)
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		i.closeStore = client.Disconnect

		adapter, err := mongodb_adapter.NewListingStorageAdapter(client.Database(i.config.Mongo.Database), i.config.Mongo.Collection)
		if err != nil {
			return fmt.Errorf("failed to create mongodb storage adapter: %w", err)
		}
		// индекс не создастся, если в коллекции уже есть дубликаты id; работаем дальше
		if err := adapter.EnsureIndexes(ctx); err != nil {
			i.logger.Warn("Failed to ensure MongoDB indexes", port.Fields{"error": err.Error()})
		}
		i.store = adapter
		i.logger.Info("Successfully connected to MongoDB!", port.Fields{
			"database":   i.config.Mongo.Database,
			"collection": i.config.Mongo.Collection,
		})

	case configs.DriverPostgres:
		pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: i.config.Database.URL})
		if err != nil {
			i.logger.Error("Failed to connect to PostgreSQL", err, nil)
			return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		i.closeStore = func(context.Context) error {
			pool.Close()
			return nil
		}

		adapter, err := postgres_adapter.NewPostgresListingAdapter(pool)
		if err != nil {
			return fmt.Errorf("failed to create postgres storage adapter: %w", err)
		}
		if err := adapter.EnsureSchema(ctx); err != nil {
			i.logger.Error("Failed to prepare PostgreSQL schema", err, nil)
			return err
		}
		i.store = adapter
		i.logger.Info("Successfully connected to PostgreSQL pool!", nil)

	case configs.DriverMemory:
		i.store = memory.NewListingStorageAdapter()
		i.logger.Warn("Using in-memory storage, data will not survive a restart", nil)

	default:
		return fmt.Errorf("unsupported storage driver %q", i.config.StorageDriver)
	}
	return nil
}

func (i *infrastructure) initEvents() error {
	if !i.config.RabbitMQ.Enabled {
		i.events = rabbitmq_adapter.NoopListingEvents{}
		i.logger.Info("RabbitMQ disabled, listing events will not be published", nil)
		return nil
	}

	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(i.baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(i.config.RabbitMQ.URL, connManagerBridge)
	if err != nil {
		i.logger.Error("Failed to create connection manager", err, nil)
		return fmt.Errorf("failed to create connection manager: %w", err)
	}
	i.connManager = connManager
	i.logger.Info("RabbitMQ Connection Manager initialized.", nil)

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: i.config.RabbitMQ.URL},
		ExchangeName:             i.config.RabbitMQ.Exchange,
		ExchangeType:             constants.ListingsExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(i.baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, connManager)
	if err != nil {
		i.logger.Error("Failed to create event producer", err, nil)
		return fmt.Errorf("failed to create event producer: %w", err)
	}
	i.producer = producer

	events, err := rabbitmq_adapter.NewListingEventsAdapter(producer)
	if err != nil {
		return fmt.Errorf("failed to create listing events adapter: %w", err)
	}
	i.events = events
	i.logger.Info("RabbitMQ Event Producer initialized.", port.Fields{"exchange": i.config.RabbitMQ.Exchange})
	return nil
}

// Close освобождает ресурсы в обратном порядке: события, хранилище, fluent.
func (i *infrastructure) Close(ctx context.Context) {
	if i.producer != nil {
		if err := i.producer.Close(); err != nil {
			i.logger.Error("Error closing event producer", err, nil)
		}
	}
	if i.connManager != nil {
		if err := i.connManager.Close(); err != nil {
			i.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if i.closeStore != nil {
		if err := i.closeStore(ctx); err != nil {
			i.logger.Error("Error closing storage client", err, nil)
		} else {
			i.logger.Info("Storage client closed.", nil)
		}
	}
	if i.fluentClient != nil {
		if err := i.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}
