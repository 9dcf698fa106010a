package repository

import (
	"fmt"

	"database/sql"

	"github.com/XSAM/otelsql"
	"github.com/inkwell/bookstore/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	_ "github.com/lib/pq"
)

// Repositories bundles every store over the shared connection pool.
type Repositories struct {
	DB           *sql.DB
	User         UserRepository
	Book         BookRepository
	Cart         CartRepository
	Order        OrderRepository
	Post         PostRepository
	Report       ReportRepository
	Notification NotificationRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := otelsql.RegisterDBStatsMetrics(db,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL)); err != nil {
		return nil, fmt.Errorf("failed to register db metrics: %w", err)
	}

	return &Repositories{
		DB:           db,
		User:         NewUserRepo(db),
		Book:         NewBookRepo(db),
		Cart:         NewCartRepo(db),
		Order:        NewOrderRepo(db),
		Post:         NewPostRepo(db),
		Report:       NewReportRepo(db),
		Notification: NewNotificationRepo(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
