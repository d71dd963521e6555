package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/adapters/importfile"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/configs"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/contextkeys"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/usecase"
)

// RunImport - одноразовый импорт файла в хранилище. Ошибка означает фатальный сбой
// (конфигурация, подключение, файл, очистка коллекции); соединение закрывается в любом случае.
func RunImport() error {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading application configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	infra, err := newInfrastructure(ctx, appConfig, "importer")
	if err != nil {
		return err
	}
	defer infra.Close(context.Background())

	logger := infra.logger.WithFields(port.Fields{"file": appConfig.Import.File})

	records, err := importfile.ReadListings(appConfig.Import.File)
	if err != nil {
		logger.Error("Failed to read import file", err, nil)
		return err
	}
	logger.Info("Import file loaded", port.Fields{"records": len(records)})

	importUC := usecase.NewImportListingsUseCase(infra.store, infra.events, appConfig.Import.BatchSize)
	stats, err := importUC.Execute(contextkeys.ContextWithLogger(ctx, infra.baseLogger), records)
	if err != nil {
		logger.Error("Import failed", err, nil)
		return err
	}

	logger.Info("Import completed", port.Fields{
		"total":         stats.Total,
		"succeeded":     stats.Succeeded,
		"failed":        stats.Failed,
		"failed_ids":    stats.FailedIDs,
		"in_collection": stats.InCollection,
	})
	return nil
}
