package factory

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/controllers"
	"github.com/IvanM63/backend-abb-analytic/pkg/models"
)

// ApplicationControllers holds all the controllers.
type ApplicationControllers struct {
	AuthController               *controllers.AuthController
	RoleController               *controllers.RoleController
	ServerController             *controllers.ServerController
	CctvController               *controllers.CctvController
	TypeAnalyticController       *controllers.TypeAnalyticController
	PrimaryAnalyticController    *controllers.PrimaryAnalyticController
	ActivityMonitoringController *controllers.ActivityMonitoringController
	WeaponDetectionController    *controllers.WeaponDetectionController
	AnimalPopulationController   *controllers.AnimalPopulationController
	PpeDetectionController       *controllers.PpeDetectionController
	NomorLambungController       *controllers.NomorLambungController
	MilvusController             *controllers.MilvusController

	RateLimiter fiber.Handler
	HealthCheck fiber.Handler
}

// NewApplicationControllers bundles the controllers together with the
// plain-handler middleware the router mounts directly. Built by hand
// rather than wire.Struct because two fields share the fiber.Handler
// type.
func NewApplicationControllers(
	appConfig *config.AppConfig,
	auth *controllers.AuthController,
	role *controllers.RoleController,
	server *controllers.ServerController,
	cctv *controllers.CctvController,
	typeAnalytic *controllers.TypeAnalyticController,
	primaryAnalytic *controllers.PrimaryAnalyticController,
	activityMonitoring *controllers.ActivityMonitoringController,
	weaponDetection *controllers.WeaponDetectionController,
	animalPopulation *controllers.AnimalPopulationController,
	ppeDetection *controllers.PpeDetectionController,
	nomorLambung *controllers.NomorLambungController,
	milvus *controllers.MilvusController,
) *ApplicationControllers {
	return &ApplicationControllers{
		AuthController:               auth,
		RoleController:               role,
		ServerController:             server,
		CctvController:               cctv,
		TypeAnalyticController:       typeAnalytic,
		PrimaryAnalyticController:    primaryAnalytic,
		ActivityMonitoringController: activityMonitoring,
		WeaponDetectionController:    weaponDetection,
		AnimalPopulationController:   animalPopulation,
		PpeDetectionController:       ppeDetection,
		NomorLambungController:       nomorLambung,
		MilvusController:             milvus,

		RateLimiter: controllers.NewRateLimiter(appConfig, appConfig.RDS),
		HealthCheck: controllers.HandleHealthCheck,
	}
}

// Application is the root struct holding all dependencies.
type Application struct {
	Controllers  *ApplicationControllers
	AppConfig    *config.AppConfig
	Ctx          context.Context
	janitorModel *models.JanitorModel
}

func (a *Application) Boot() {
	a.janitorModel.Start()
}

func (a *Application) Shutdown() {
	a.janitorModel.Shutdown()
}
