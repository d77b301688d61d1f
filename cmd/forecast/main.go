package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/config"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/forecast"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/repository/postgres"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/service"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/storage"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/training"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/pkg/logger"
)

type app struct {
	cfg     *config.Config
	db      *postgres.DB
	engine  *forecast.Engine
	trainer *training.Trainer
}

func setup(c *cli.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if w := c.Int("workers"); w > 0 {
		cfg.Training.Workers = w
	}

	dbURL := c.String("db-url")
	if dbURL == "" {
		dbURL = cfg.Database.URL()
	}
	sqlDB, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := sqlDB.PingContext(c.Context); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	db := postgres.FromSQL(sqlDB, "pgx", cfg.Database.MaxConcurrentTx)

	objects, err := storage.New(c.Context, cfg.Artifacts)
	if err != nil {
		db.Close()
		return nil, err
	}
	engine := forecast.NewEngine(forecast.NewObjectArtifactStore(objects), forecast.Options{
		MinHistory:      cfg.Forecast.MinHistoryDays,
		ReuseWithinDays: cfg.Forecast.ReuseWithinDays,
		MaxIterations:   cfg.Forecast.MaxIterations,
	}, logger.Component("forecast"))

	products := postgres.NewProductRepository(db)
	sales := postgres.NewSaleRepository(db)
	trainer := training.NewTrainer(products, sales, engine, training.NewRepository(sqlDB), training.Config{
		Workers: cfg.Training.Workers,
		Horizon: cfg.Forecast.Horizon,
	})
	return &app{cfg: cfg, db: db, engine: engine, trainer: trainer}, nil
}

func main() {
	logger.Setup("debug")

	cliApp := &cli.App{
		Name:  "forecast",
		Usage: "Fit and inspect per-product demand models",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db-url",
				Usage:   "Database connection string (defaults to the DB_* settings)",
				EnvVars: []string{"DATABASE_URL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "train",
				Usage: "Refit every product's model and persist the artifacts",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "workers", Usage: "Products fitted concurrently (overrides TRAINING_WORKERS)"},
				},
				Action: train,
			},
			{
				Name:  "show",
				Usage: "Print the forecast view of one product as JSON",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "product-id", Required: true},
				},
				Action: show,
			},
			{
				Name:   "models",
				Usage:  "List the stored model artifacts",
				Action: models,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("forecast failed")
	}
}

func train(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	defer a.db.Close()

	run, err := a.trainer.Run(c.Context, training.SourceCLI)
	if err != nil {
		return err
	}
	logger.Log.Info().
		Int64("run_id", run.ID).
		Int("total", run.TotalProducts).
		Int("trained", run.Trained).
		Int("skipped", run.Skipped).
		Int("failed", run.Failed).
		Msg("Training finished")
	return nil
}

func show(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	defer a.db.Close()

	svc := service.NewForecastService(postgres.NewProductRepository(a.db), postgres.NewSaleRepository(a.db), a.engine, a.cfg.Forecast.Horizon)
	view, err := svc.ProductForecast(c.Context, c.Int64("product-id"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func models(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	objects, err := storage.New(c.Context, cfg.Artifacts)
	if err != nil {
		return err
	}

	artifacts, err := forecast.NewObjectArtifactStore(objects).List(c.Context)
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		fmt.Printf("%d\tphi=%.4f\ttheta=%.4f\tnobs=%d\tfitted_at=%s\n",
			a.ProductID, a.Phi, a.Theta, a.NObs, a.FittedAt.Format(time.RFC3339))
	}
	logger.Log.Info().Int("artifacts", len(artifacts)).Str("backend", cfg.Artifacts.Backend).Msg("Listed model artifacts")
	return nil
}
