package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Reposicion-api/internal/application/consolidation"
	"github.com/jhoicas/Reposicion-api/internal/application/draft"
	"github.com/jhoicas/Reposicion-api/internal/application/inventory"
	domcons "github.com/jhoicas/Reposicion-api/internal/domain/consolidation"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Reposicion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/Reposicion-api/internal/interfaces/http"
	"github.com/jhoicas/Reposicion-api/pkg/config"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

// demoRestaurantID restaurante de los datos de ejemplo en modo memoria.
const demoRestaurantID = "00000000-0000-0000-0000-0000000000a1"

// backend repositorios según APP_STORAGE.
type backend struct {
	lists       repository.StockListRepository
	submissions repository.SubmissionRepository
	scratch     draft.ScratchStore
	pool        *pgxpool.Pool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := newBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	if be.pool != nil {
		defer be.pool.Close()
	}

	draftUC := draft.NewUseCase(be.lists, be.scratch, draft.UseCaseConfig{
		AutosaveQuiet: cfg.Draft.AutosaveQuiet,
		CommitTimeout: cfg.Draft.CommitTimeout,
	}, log.Component("draft"))

	formatter := domcons.NewFormatter(cfg.App.Locale)
	pdfGenerator := infrapdf.NewOrderPDFGenerator(formatter, cfg.App.Name)
	consolidationUC := consolidation.NewUseCase(be.submissions, formatter, pdfGenerator)
	replenishmentUC := inventory.NewReplenishmentUseCase(be.lists)

	app := httpRouter.NewApp(cfg.App.Name, log.Component("http"))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Reposición API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		DraftUC:         draftUC,
		ConsolidationUC: consolidationUC,
		Replenishment:   replenishmentUC,
		JWTSecret:       cfg.JWT.Secret,
		JWTIssuer:       cfg.JWT.Issuer,
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
	// Cancela los guardados locales pendientes; lo ya guardado se recupera al reabrir.
	draftUC.CloseAll()

	log.Info().Msg("aplicación detenida")
}

func newBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	if cfg.App.Storage == "memory" {
		records := memory.NewRecords()
		data := seed.Demo(demoRestaurantID, time.Now())
		for _, l := range data.Lists {
			records.PutList(l)
		}
		for _, s := range data.Submissions {
			records.PutSubmission(s)
		}
		return &backend{lists: records, submissions: records, scratch: memory.NewScratchStore()}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	txRunner := postgres.NewTxRunner(pool)
	return &backend{
		lists:       postgres.NewStockListRepository(pool, txRunner),
		submissions: postgres.NewSubmissionRepository(pool),
		scratch:     postgres.NewScratchStore(pool),
		pool:        pool,
	}, nil
}
