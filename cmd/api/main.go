// @title           Calidad API
// @version         1.0
// @description     Registro de inspecciones de calidad (recepción, proceso y despacho) agrupadas por número de orden.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Calidad-api/docs"
	"github.com/jhoicas/Calidad-api/internal/application/auth"
	"github.com/jhoicas/Calidad-api/internal/application/quality"
	"github.com/jhoicas/Calidad-api/internal/application/usecase"
	"github.com/jhoicas/Calidad-api/internal/infrastructure/events"
	"github.com/jhoicas/Calidad-api/internal/infrastructure/export"
	infmongo "github.com/jhoicas/Calidad-api/internal/infrastructure/mongo"
	"github.com/jhoicas/Calidad-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Calidad-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Calidad-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Calidad-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/Calidad-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Calidad-api/internal/interfaces/http"
	"github.com/jhoicas/Calidad-api/pkg/config"
	"github.com/jhoicas/Calidad-api/pkg/logger"
)

const viewRefreshSpec = "@every 5m"

// changeBus publica y entrega eventos de cambio (NATS o en memoria).
type changeBus interface {
	quality.ChangePublisher
	quality.ChangeSubscriber
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	loc := cfg.App.Location()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// PostgreSQL: usuarios, órdenes, producción, catálogos y dispositivos.
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración de esquema")
	}

	// MongoDB: documentos de inspección.
	mongoClient, mongoDB, err := infmongo.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()
	if err := infmongo.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Fatal().Err(err).Msg("índices de MongoDB")
	}

	userRepo := postgres.NewUserRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	productionRepo := postgres.NewProductionReportRepository(pool)
	deviceRepo := postgres.NewDeviceTokenRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	partRepo := postgres.NewPartRepository(pool)
	workerRepo := postgres.NewWorkerRepository(pool)
	inspectionRepo := infmongo.NewInspectionRepository(mongoDB)

	// Bus de cambios: NATS si está configurado (varias réplicas), si no en memoria.
	var bus changeBus
	if cfg.Events.NATSURL != "" {
		natsBus, err := events.NewNATSBus(cfg.Events.NATSURL, cfg.Events.Subject, log.Component("events"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a NATS")
		}
		defer natsBus.Close()
		bus = natsBus
	} else {
		bus = events.NewMemoryBus(log.Component("events"))
	}

	// Avisos: push FCM y/o Slack. Sin canales no se notifica.
	var channels notify.Multi
	if cfg.Notify.FCMCredentialsPath != "" {
		fcm, err := notify.NewFCMNotifier(cfg.Notify.FCMCredentialsPath, cfg.Notify.FCMEndpoint, deviceRepo, log.Component("fcm"))
		if err != nil {
			log.Fatal().Err(err).Msg("credenciales FCM")
		}
		channels = append(channels, fcm)
	}
	if cfg.Notify.SlackWebhookURL != "" {
		channels = append(channels, notify.NewSlackNotifier(cfg.Notify.SlackWebhookURL))
	}
	var notifier quality.Notifier
	if len(channels) > 0 {
		notifier = channels
	}

	images, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de imágenes")
	}
	var filesPrefix, filesDir string
	if local, ok := images.(*storage.Local); ok {
		filesPrefix, filesDir = local.BaseURL(), local.Root()
	}

	// Vista agrupada: carga inicial y recálculo ante cada cambio.
	view := quality.NewGroupedView(inspectionRepo, log.Component("view"))
	if err := view.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("carga inicial de la vista agrupada")
	}
	if err := view.Watch(ctx, bus); err != nil {
		log.Fatal().Err(err).Msg("suscripción a cambios")
	}

	inspectionUC := quality.NewInspectionUseCase(inspectionRepo, orderRepo, images, bus, notifier, log.Component("inspections"))
	dashboardUC := quality.NewDashboardUseCase(view, notifier, loc, log.Component("dashboard"))
	exportUC := quality.NewExportUseCase(view, export.NewExcelExporter(loc), infrapdf.NewMarotoPDFGenerator(loc), export.QRLabels{}, loc)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	sched := scheduler.New(loc, log.Component("scheduler"))
	if cfg.Scheduler.DigestCron != "" {
		if err := sched.Add("daily_digest", cfg.Scheduler.DigestCron, dashboardUC.SendDailyDigest); err != nil {
			log.Fatal().Err(err).Msg("programar resumen diario")
		}
	}
	if err := sched.Add("view_refresh", viewRefreshSpec, view.Refresh); err != nil {
		log.Fatal().Err(err).Msg("programar recálculo de la vista")
	}
	sched.Start()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimitMB << 20,
		UnescapePath: true,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.AllowOrigins}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		InspectionUC: inspectionUC,
		View:         view,
		DashboardUC:  dashboardUC,
		ExportUC:     exportUC,
		OrderUC:      usecase.NewOrderUseCase(orderRepo),
		ProductionUC: usecase.NewProductionUseCase(productionRepo),
		MasterDataUC: usecase.NewMasterDataUseCase(supplierRepo, partRepo, workerRepo),
		DeviceUC:     usecase.NewDeviceUseCase(deviceRepo),
		UserUC:       usecase.NewUserUseCase(userRepo),
		JWTSecret:    cfg.JWT.Secret,
		Location:     loc,
		FilesPrefix:  filesPrefix,
		FilesDir:     filesDir,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del scheduler")
	}
	stop()

	log.Info().Msg("aplicación detenida")
}
