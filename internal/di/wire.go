//go:build wireinject
// +build wireinject

package di

import (
	"QuantCore/pkg/config"
	"QuantCore/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		ProvideParams,
		ProvideSnapshotCache,
		ProvideFeatureService,

		ProvideRowStore,
		ProvideRowPublisher,
		ProvideVectorCache,
		ProvideTrainingBuilder,
		ProvideJobQueue,

		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
