//go:build wireinject
// +build wireinject

package factory

import (
	"context"

	"github.com/google/wire"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/controllers"
	"github.com/IvanM63/backend-abb-analytic/pkg/models"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/milvus"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/recognition"
)

// build the dependency set for services
var serviceSet = wire.NewSet(
	dbservice.New,
	milvus.New,
	recognition.New,
)

// build the dependency set for models
var modelSet = wire.NewSet(
	models.NewAuthModel,
	models.NewFileModel,
	models.NewRoleModel,
	models.NewServerModel,
	models.NewCctvModel,
	models.NewTypeAnalyticModel,
	models.NewPrimaryAnalyticModel,
	models.NewActivityMonitoringModel,
	models.NewWeaponDetectionModel,
	models.NewAnimalPopulationModel,
	models.NewPpeDetectionModel,
	models.NewNomorLambungModel,
	models.NewMilvusModel,
	models.NewJanitorModel,
)

// build the dependency set for controllers
var controllerSet = wire.NewSet(
	controllers.NewAuthController,
	controllers.NewRoleController,
	controllers.NewServerController,
	controllers.NewCctvController,
	controllers.NewTypeAnalyticController,
	controllers.NewPrimaryAnalyticController,
	controllers.NewActivityMonitoringController,
	controllers.NewWeaponDetectionController,
	controllers.NewAnimalPopulationController,
	controllers.NewPpeDetectionController,
	controllers.NewNomorLambungController,
	controllers.NewMilvusController,
)

// NewAppFactory is the injector function that wire will implement.
func NewAppFactory(ctx context.Context, appConfig *config.AppConfig) (*Application, error) {
	wire.Build(
		serviceSet,
		modelSet,
		controllerSet,
		// Provide the whole AppConfig, and also specific fields needed by constructors.
		wire.FieldsOf(new(*config.AppConfig), "ORM"),

		NewApplicationControllers,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil // This return value is ignored.
}
