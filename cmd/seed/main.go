package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/category"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/config"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/repository/postgres"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/service"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/pkg/logger"
)

type dbKey struct{}

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection string (defaults to the DB_* settings)",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dbURL := c.String("db-url")
	if dbURL == "" {
		dbURL = cfg.Database.URL()
	}

	// Initialize database connection
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.PingContext(c.Context); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey{}, postgres.FromSQL(db, "pgx", cfg.Database.MaxConcurrentTx))
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey{}).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *postgres.DB {
	return c.Context.Value(dbKey{}).(*postgres.DB)
}

func main() {
	logger.Setup("debug")

	app := &cli.App{
		Name:  "seed",
		Usage: "Manage the inventory database schema and seed data",
		Flags: []cli.Flag{
			newDBURLFlag(),
		},
		Before: initDB,
		After:  closeDB,
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Apply or roll back schema migrations",
				Subcommands: []*cli.Command{
					{
						Name:  "up",
						Usage: "Apply all pending migrations",
						Action: func(c *cli.Context) error {
							return postgres.Migrate(dbFrom(c).DB.DB)
						},
					},
					{
						Name:  "down",
						Usage: "Roll back migrations",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "steps", Value: 1, Usage: "Number of migrations to roll back"},
						},
						Action: func(c *cli.Context) error {
							return postgres.MigrateDown(dbFrom(c).DB.DB, c.Int("steps"))
						},
					},
				},
			},
			{
				Name:  "sample",
				Usage: "Create sample products with synthetic sales when the catalog is empty",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "products", Value: 3, Usage: "Number of sample products"},
					&cli.IntFlag{Name: "days", Value: 30, Usage: "Days of sales history per product"},
					&cli.Uint64Flag{Name: "seed", Value: 42, Usage: "Random seed for the synthetic sales"},
				},
				Action: seedSample,
			},
			{
				Name:  "categories",
				Usage: "Check product categories against the category table",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "mapping",
						Usage:   "Optional CSV (name,category) replacing the built-in table",
						EnvVars: []string{"CATEGORY_MAPPING_FILE"},
					},
				},
				Subcommands: []*cli.Command{
					{
						Name:   "verify",
						Usage:  "Report mismatched and uncategorized products",
						Action: verifyCategories,
					},
					{
						Name:   "fix",
						Usage:  "Rewrite mismatched categories",
						Action: fixCategories,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("seed failed")
	}
}

func seedSample(c *cli.Context) error {
	ctx := c.Context
	db := dbFrom(c)
	lookup, err := category.Default()
	if err != nil {
		return err
	}

	productRepo := postgres.NewProductRepository(db)
	existing, err := productRepo.List(ctx, domain.ProductFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Log.Info().Int("products", len(existing)).Msg("Catalog is not empty, skipping sample data")
		return nil
	}

	products := service.NewProductService(productRepo, postgres.NewSupplierRepository(db), lookup, nil)
	sales := service.NewSaleService(postgres.NewSaleRepository(db), nil)
	rng := rand.New(rand.NewPCG(c.Uint64("seed"), 0))

	entries := lookup.Entries()
	count := min(c.Int("products"), len(entries))
	days := c.Int("days")
	start := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -days)

	for i := 0; i < count; i++ {
		entry := entries[rng.IntN(len(entries))]
		cost := float64(5+rng.IntN(50)) / 2
		p, err := products.Create(ctx, service.ProductInput{
			SKU:           fmt.Sprintf("SAMPLE-%03d", i+1),
			Name:          entry.Name,
			CostPrice:     cost,
			SellingPrice:  cost * 1.3,
			StockQuantity: 500,
		})
		if err != nil {
			return fmt.Errorf("create sample product %q: %w", entry.Name, err)
		}

		base := 5 + rng.IntN(10)
		for d := 0; d < days; d++ {
			qty := base + rng.IntN(5)
			if _, _, err := sales.Record(ctx, p.ID, qty, domain.SaleTypeSale, start.AddDate(0, 0, d)); err != nil {
				return fmt.Errorf("record sample sale for %q: %w", p.Name, err)
			}
		}
		logger.Log.Info().Int64("product_id", p.ID).Str("name", p.Name).Int("days", days).Msg("Sample product created")
	}
	return nil
}

func categoryService(c *cli.Context) (*service.CategoryService, error) {
	lookup, err := category.Load(c.String("mapping"))
	if err != nil {
		return nil, err
	}
	return service.NewCategoryService(postgres.NewProductRepository(dbFrom(c)), lookup, nil), nil
}

func verifyCategories(c *cli.Context) error {
	svc, err := categoryService(c)
	if err != nil {
		return err
	}
	report, err := svc.Verify(c.Context)
	if err != nil {
		return err
	}

	fmt.Printf("Total products: %d\n", report.Total)
	fmt.Printf("Correct:        %d\n", report.Correct)
	fmt.Printf("Mismatched:     %d\n", len(report.Mismatched))
	fmt.Printf("Uncategorized:  %d\n", report.Uncategorized)
	for _, m := range report.Mismatched {
		fmt.Printf("  #%d %s: %q -> %q\n", m.ID, m.Name, m.Current, m.Expected)
	}
	for _, s := range report.Stats {
		fmt.Printf("  %-30s %d\n", s.Category, s.Count)
	}
	return nil
}

func fixCategories(c *cli.Context) error {
	svc, err := categoryService(c)
	if err != nil {
		return err
	}
	result, err := svc.Fix(c.Context)
	if err != nil {
		return err
	}
	logger.Log.Info().Int("fixed", result.Fixed).Int("not_found", result.NotFound).Msg("Categories updated")
	return nil
}
