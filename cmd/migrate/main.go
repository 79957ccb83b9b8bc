// Command migrate applies the embedded Postgres and ClickHouse schema.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/knockout-cup/cup-api/migrations"
)

func main() {
	pgURL := flag.String("postgres", os.Getenv("POSTGRES_URL"), "Postgres URL")
	chURL := flag.String("clickhouse", os.Getenv("CLICKHOUSE_URL"), "ClickHouse DSN (optional)")
	timeout := flag.Duration("timeout", time.Minute, "overall timeout")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	sugar := logger.Sugar()

	if *pgURL == "" {
		sugar.Fatal("POSTGRES_URL or -postgres is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := migratePostgres(ctx, *pgURL, sugar); err != nil {
		sugar.Fatalw("Postgres migration failed", "error", err)
	}

	if *chURL == "" {
		sugar.Info("No ClickHouse DSN, skipping goal archive schema")
		return
	}
	if err := migrateClickHouse(ctx, *chURL, sugar); err != nil {
		sugar.Fatalw("ClickHouse migration failed", "error", err)
	}
}

func migratePostgres(ctx context.Context, url string, log *zap.SugaredLogger) error {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := migrations.Postgres()
	if err != nil {
		return err
	}
	for _, m := range list {
		// pq runs multi-statement files in one simple-protocol call
		if _, err := db.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("%s: %w", m.Name, err)
		}
		log.Infow("Applied migration", "db", "PostgreSQL", "file", m.Name)
	}
	return nil
}

func migrateClickHouse(ctx context.Context, dsn string, log *zap.SugaredLogger) error {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return err
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return err
	}
	defer conn.Close()

	list, err := migrations.ClickHouse()
	if err != nil {
		return err
	}
	for _, m := range list {
		for _, stmt := range m.Statements() {
			if err := conn.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("%s: %w", m.Name, err)
			}
		}
		log.Infow("Applied migration", "db", "ClickHouse", "file", m.Name)
	}
	return nil
}
