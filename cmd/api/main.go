package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ekspresi/itm-sub002/internal/application/auth"
	"github.com/ekspresi/itm-sub002/internal/application/census"
	appreport "github.com/ekspresi/itm-sub002/internal/application/report"
	"github.com/ekspresi/itm-sub002/internal/application/usecase"
	"github.com/ekspresi/itm-sub002/internal/application/workflow"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
	"github.com/ekspresi/itm-sub002/internal/infrastructure/archive"
	"github.com/ekspresi/itm-sub002/internal/infrastructure/memory"
	infrapdf "github.com/ekspresi/itm-sub002/internal/infrastructure/pdf"
	"github.com/ekspresi/itm-sub002/internal/infrastructure/postgres"
	httpRouter "github.com/ekspresi/itm-sub002/internal/interfaces/http"
	"github.com/ekspresi/itm-sub002/pkg/config"
	"github.com/ekspresi/itm-sub002/pkg/logger"
	"github.com/ekspresi/itm-sub002/pkg/money"

	_ "github.com/ekspresi/itm-sub002/docs"
)

// storage agrupa los repositorios del backend elegido.
type storage struct {
	tx          census.TxRunner
	locations   repository.LocationRepository
	censuses    repository.CensusRepository
	lineItems   repository.LineItemRepository
	masterItems repository.MasterItemRepository
	users       repository.UserRepository
	close       func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn().Msg("usando almacenamiento en memoria: los datos se pierden al reiniciar")
		st := memory.NewStore()
		return &storage{
			tx:          st,
			locations:   st.Locations(),
			censuses:    st.Censuses(),
			lineItems:   st.LineItems(),
			masterItems: st.MasterItems(),
			users:       st.Users(),
			close:       func() {},
		}, nil
	}

	if cfg.Storage.Migrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		tx:          postgres.NewTxRunner(pool),
		locations:   postgres.NewLocationRepository(pool),
		censuses:    postgres.NewCensusRepository(pool),
		lineItems:   postgres.NewLineItemRepository(pool),
		masterItems: postgres.NewMasterItemRepository(pool),
		users:       postgres.NewUserRepository(pool),
		close:       pool.Close,
	}, nil
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
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	// Archivo opcional de PDFs impresos
	var reportArchive appreport.Archive
	if cfg.Archive.Enabled() {
		s3Store, err := archive.NewS3Store(ctx, archive.Config{
			Bucket:          cfg.Archive.Bucket,
			Region:          cfg.Archive.Region,
			Endpoint:        cfg.Archive.Endpoint,
			Prefix:          cfg.Archive.Prefix,
			AccessKeyID:     cfg.Archive.AccessKeyID,
			SecretAccessKey: cfg.Archive.SecretAccessKey,
			PathStyle:       cfg.Archive.PathStyle,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar archivo S3")
		}
		reportArchive = s3Store
	}

	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}
	if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
	}

	locationUC := usecase.NewLocationUseCase(st.locations, st.censuses)
	masterItemUC := usecase.NewMasterItemUseCase(st.masterItems, st.locations)
	dashboardUC := usecase.NewDashboardUseCase(st.locations, st.masterItems, st.censuses)
	registryUC := census.NewRegistryUseCase(st.tx, st.censuses, st.locations, log.Component("census_registry"))
	lineItemUC := census.NewLineItemUseCase(st.tx, st.censuses, st.lineItems, st.masterItems, log.Component("line_items"))
	aggregator := census.NewAggregator(st.tx, st.censuses, log.Component("aggregator"))

	// PDF: reportes de censo y resumen anual
	pdfGenerator := infrapdf.NewMarotoReportGenerator(
		cfg.Report.Organization,
		money.NewFormatter(cfg.Report.Locale, cfg.Report.Currency),
	)
	reportUC := appreport.NewUseCase(
		st.censuses, st.lineItems, st.locations,
		pdfGenerator, reportArchive, log.Component("reports"),
	)
	workflowCtrl := workflow.NewController(dashboardUC, locationUC, masterItemUC, registryUC, lineItemUC)

	app := fiber.New(httpRouter.AppConfig(cfg.App.Name))
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogging(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    "Census Panel API",
		}))
	} else {
		log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       usecase.NewUserUseCase(st.users),
		LocationUC:   locationUC,
		MasterItemUC: masterItemUC,
		DashboardUC:  dashboardUC,
		RegistryUC:   registryUC,
		LineItemUC:   lineItemUC,
		Aggregator:   aggregator,
		ReportUC:     reportUC,
		Workflow:     workflowCtrl,
		JWTSecret:    cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
