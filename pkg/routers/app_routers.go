package routers

import (
	"io"
	"runtime"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	rr "github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/factory"
	"github.com/IvanM63/backend-abb-analytic/version"
)

// router holds the dependencies for setting up routes, allowing us to
// break down the monolithic New() function into smaller, more
// manageable methods.
type router struct {
	app  *fiber.App
	ctrl *factory.ApplicationControllers
}

func New(appConfig *config.AppConfig, ctrl *factory.ApplicationControllers) *fiber.App {
	cnf := fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		AppName:     "abb-analytic version: " + version.Version + " runtime: " + runtime.Version(),
	}

	if appConfig.Client.ProxyHeader != "" {
		cnf.ProxyHeader = appConfig.Client.ProxyHeader
	}

	app := fiber.New(cnf)

	app.Use(logger.New(logger.Config{
		Done: func(c *fiber.Ctx, logString []byte) {
			appConfig.Logger.Debugln(string(logString))
		},
		Format: "${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}",
		Output: io.Discard,
	}))

	if appConfig.Client.PrometheusConf.Enable {
		prometheus := fiberprometheus.New("abb-analytic")
		prometheus.RegisterAt(app, appConfig.Client.PrometheusConf.MetricsPath)
		app.Use(prometheus.Middleware)
	}

	app.Use(rr.New())
	app.Use(cors.New(cors.Config{
		AllowMethods:     "POST,GET,PUT,DELETE,OPTIONS",
		AllowCredentials: false,
	}))

	if appConfig.RateLimit.Enable && ctrl.RateLimiter != nil {
		app.Use(ctrl.RateLimiter)
	}

	// uploaded files (polygon overlays, detection snapshots)
	app.Static(config.StaticRoutePrefix, appConfig.UploadFileSettings.Path)

	r := &router{
		app:  app,
		ctrl: ctrl,
	}

	r.registerBaseRoutes()
	r.registerAuthRoutes()
	r.registerResourceRoutes()
	r.registerProductRoutes()
	r.registerMilvusRoutes()

	// This MUST be the last middleware to be registered.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString("not found")
	})

	return app
}

func (r *router) registerBaseRoutes() {
	r.app.Get("/healthCheck", r.ctrl.HealthCheck)
}

func (r *router) registerAuthRoutes() {
	auth := r.app.Group("/auth")
	auth.Post("/register",
		r.ctrl.AuthController.RequireSecurityToken(config.TokenPurposeRegistration),
		r.ctrl.AuthController.HandleRegister)
	auth.Post("/login", r.ctrl.AuthController.HandleLogin)
	auth.Post("/logout", r.ctrl.AuthController.HandleLogout)
	auth.Get("/me", r.ctrl.AuthController.AuthenticateToken, r.ctrl.AuthController.HandleMe)
}

// registerResourceRoutes wires the management CRUD surface; all of it
// needs a logged-in user.
func (r *router) registerResourceRoutes() {
	session := r.ctrl.AuthController.AuthenticateToken

	roles := r.app.Group("/roles", session)
	roles.Get("/", r.ctrl.RoleController.HandleList)
	roles.Get("/:id", r.ctrl.RoleController.HandleGet)
	roles.Post("/", r.ctrl.RoleController.HandleCreate)
	roles.Put("/:id", r.ctrl.RoleController.HandleUpdate)
	roles.Delete("/:id", r.ctrl.RoleController.HandleDelete)

	server := r.app.Group("/server", session)
	server.Get("/", r.ctrl.ServerController.HandleList)
	server.Post("/select", r.ctrl.ServerController.HandleSelect)
	server.Get("/:id", r.ctrl.ServerController.HandleGet)
	server.Post("/", r.ctrl.ServerController.HandleCreate)
	server.Put("/:id", r.ctrl.ServerController.HandleUpdate)
	server.Delete("/:id", r.ctrl.ServerController.HandleDelete)

	cctv := r.app.Group("/cctv", session)
	cctv.Get("/", r.ctrl.CctvController.HandleList)
	cctv.Get("/:id", r.ctrl.CctvController.HandleGet)
	cctv.Post("/", r.ctrl.CctvController.HandleCreate)
	cctv.Put("/:id", r.ctrl.CctvController.HandleUpdate)
	cctv.Delete("/:id", r.ctrl.CctvController.HandleDelete)

	typeAnalytic := r.app.Group("/type-analytic", session)
	typeAnalytic.Get("/", r.ctrl.TypeAnalyticController.HandleList)
	typeAnalytic.Get("/:id", r.ctrl.TypeAnalyticController.HandleGet)
	typeAnalytic.Post("/", r.ctrl.TypeAnalyticController.HandleCreate)
	typeAnalytic.Put("/:id", r.ctrl.TypeAnalyticController.HandleUpdate)
	typeAnalytic.Delete("/:id", r.ctrl.TypeAnalyticController.HandleDelete)
	typeAnalytic.Post("/:id/sub-types", r.ctrl.TypeAnalyticController.HandleCreateSubType)
	typeAnalytic.Put("/sub-types/:subId", r.ctrl.TypeAnalyticController.HandleUpdateSubType)
	typeAnalytic.Delete("/sub-types/:subId", r.ctrl.TypeAnalyticController.HandleDeleteSubType)

	analytic := r.app.Group("/analytic", session)
	analytic.Get("/", r.ctrl.PrimaryAnalyticController.HandleList)
	analytic.Get("/:id", r.ctrl.PrimaryAnalyticController.HandleGet)
	analytic.Post("/", r.ctrl.PrimaryAnalyticController.HandleCreate)
	analytic.Put("/:id", r.ctrl.PrimaryAnalyticController.HandleUpdate)
	analytic.Delete("/:id", r.ctrl.PrimaryAnalyticController.HandleDelete)
}

// registerProductRoutes wires the detection result endpoints. Both
// dashboard users and edge devices hit these, so the guard accepts a
// session or a general security token.
func (r *router) registerProductRoutes() {
	product := r.app.Group("/product", r.ctrl.AuthController.FlexibleAuth)

	am := product.Group("/activity-monitoring")
	am.Get("/", r.ctrl.ActivityMonitoringController.HandleList)
	am.Get("/chart/daily", r.ctrl.ActivityMonitoringController.HandleDailyChart)
	am.Get("/chart/latest", r.ctrl.ActivityMonitoringController.HandleLatestChart)
	am.Get("/export", r.ctrl.ActivityMonitoringController.HandleExport)
	am.Get("/:id", r.ctrl.ActivityMonitoringController.HandleGet)
	am.Post("/", r.ctrl.ActivityMonitoringController.HandleCreate)
	am.Delete("/:id", r.ctrl.ActivityMonitoringController.HandleDelete)

	wd := product.Group("/weapon-detection")
	wd.Get("/", r.ctrl.WeaponDetectionController.HandleList)
	wd.Get("/chart/daily", r.ctrl.WeaponDetectionController.HandleDailyChart)
	wd.Get("/chart/latest", r.ctrl.WeaponDetectionController.HandleLatestChart)
	wd.Get("/export", r.ctrl.WeaponDetectionController.HandleExport)
	wd.Get("/:id", r.ctrl.WeaponDetectionController.HandleGet)
	wd.Post("/", r.ctrl.WeaponDetectionController.HandleCreate)
	wd.Delete("/:id", r.ctrl.WeaponDetectionController.HandleDelete)

	ap := product.Group("/animal-population")
	ap.Get("/", r.ctrl.AnimalPopulationController.HandleList)
	ap.Get("/chart/daily", r.ctrl.AnimalPopulationController.HandleDailyChart)
	ap.Get("/chart/latest", r.ctrl.AnimalPopulationController.HandleLatestChart)
	ap.Get("/export", r.ctrl.AnimalPopulationController.HandleExport)
	ap.Get("/:id", r.ctrl.AnimalPopulationController.HandleGet)
	ap.Post("/", r.ctrl.AnimalPopulationController.HandleCreate)
	ap.Delete("/:id", r.ctrl.AnimalPopulationController.HandleDelete)

	ppe := product.Group("/ppe-detection")
	ppe.Get("/", r.ctrl.PpeDetectionController.HandleList)
	ppe.Get("/chart/daily", r.ctrl.PpeDetectionController.HandleDailyChart)
	ppe.Get("/chart/latest", r.ctrl.PpeDetectionController.HandleLatestChart)
	ppe.Get("/export", r.ctrl.PpeDetectionController.HandleExport)
	ppe.Get("/:id", r.ctrl.PpeDetectionController.HandleGet)
	ppe.Post("/", r.ctrl.PpeDetectionController.HandleCreate)
	ppe.Delete("/:id", r.ctrl.PpeDetectionController.HandleDelete)

	nl := product.Group("/nomor-lambung")
	nl.Get("/", r.ctrl.NomorLambungController.HandleList)
	nl.Get("/chart/daily", r.ctrl.NomorLambungController.HandleDailyChart)
	nl.Get("/chart/latest", r.ctrl.NomorLambungController.HandleLatestChart)
	nl.Get("/export", r.ctrl.NomorLambungController.HandleExport)
	nl.Get("/:id", r.ctrl.NomorLambungController.HandleGet)
	nl.Post("/", r.ctrl.NomorLambungController.HandleCreate)
	nl.Delete("/:id", r.ctrl.NomorLambungController.HandleDelete)
}

// registerMilvusRoutes wires the face vector endpoints; these expose
// raw entity access, so only the sensitive token list may call them.
func (r *router) registerMilvusRoutes() {
	milvus := r.app.Group("/milvus",
		r.ctrl.AuthController.RequireSecurityToken(config.TokenPurposeSensitive))

	milvus.Get("/collections", r.ctrl.MilvusController.HandleListCollections)
	milvus.Get("/collections/:collection", r.ctrl.MilvusController.HandleDescribeCollection)
	milvus.Get("/collections/:collection/entities", r.ctrl.MilvusController.HandleQuery)
	milvus.Get("/collections/:collection/entities/:id", r.ctrl.MilvusController.HandleQueryByID)
	milvus.Post("/entities", r.ctrl.MilvusController.HandleInsert)
	milvus.Delete("/collections/:collection/entities/:id", r.ctrl.MilvusController.HandleDelete)
	milvus.Post("/faces/register", r.ctrl.MilvusController.HandleRegisterFace)
}
