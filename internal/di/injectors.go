//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"sightd/internal"
	"sightd/internal/controllers"
	"sightd/internal/providers"
	"sightd/internal/services"
	"sightd/internal/store"
	"sightd/internal/structures"
)

var storeSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,

	store.NewFileManager,
	store.NewSightStore,
	store.NewZstdCompressor,
	store.NewBackupManager,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		storeSet,
		providers.NewInstrumentedCacheProvider,

		store.NewScheduler,
		services.NewSightService,
		services.NewPhotoService,
		controllers.NewSightController,
		wire.Bind(new(controllers.SnapshotInfo), new(*store.BackupManager)),
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitBackupManager(cfg *structures.CliFlags) (*store.BackupManager, func(), error) {

	wire.Build(storeSet)

	return nil, nil, nil
}
