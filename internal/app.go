package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/adapters/rest"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/configs"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/usecase"
)

// App - HTTP-сервис объявлений
type App struct {
	infra     *infrastructure
	apiServer *rest.Server
	logger    port.LoggerPort
}

// NewApp - composition root: здесь все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	infra, err := newInfrastructure(context.Background(), appConfig, "app")
	if err != nil {
		return nil, err
	}
	appLogger := infra.logger

	useCases := rest.ListingUseCases{
		List:        usecase.NewListListingsUseCase(infra.store),
		Get:         usecase.NewGetListingUseCase(infra.store),
		Search:      usecase.NewSearchListingsUseCase(infra.store),
		Filter:      usecase.NewFilterListingsUseCase(infra.store),
		QuickSearch: usecase.NewQuickSearchUseCase(infra.store),
		Create:      usecase.NewCreateListingUseCase(infra.store, infra.events),
		Update:      usecase.NewUpdateListingUseCase(infra.store, infra.events),
		Delete:      usecase.NewDeleteListingUseCase(infra.store, infra.events),
	}
	appLogger.Info("All use cases initialized.", nil)

	views, err := rest.NewViews()
	if err != nil {
		infra.Close(context.Background())
		return nil, fmt.Errorf("failed to load html templates: %w", err)
	}

	router := rest.NewRouter(
		rest.NewWebHandler(useCases, views),
		rest.NewAPIHandler(useCases, infra.store),
		appConfig.Rest.CORSAllowedOrigins,
		infra.baseLogger,
	)
	apiServer := rest.NewServer(appConfig.Rest.PORT, router, infra.baseLogger)
	appLogger.Info("REST server configured.", nil)

	return &App{infra: infra, apiServer: apiServer, logger: appLogger}, nil
}

// Run запускает сервер и ждет сигнала или ошибки, затем выполняет graceful shutdown.
func (a *App) Run() error {
	errorsCh := make(chan error, 1)

	go func() {
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case runErr = <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", runErr, nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.infra.config.Rest.ShutdownTimeout)
	defer cancel()

	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("Error during REST server shutdown", err, nil)
	}
	a.infra.Close(shutdownCtx)
	a.logger.Info("Application shut down gracefully.", nil)

	return runErr
}
