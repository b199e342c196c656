package postgresql

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"shortmovie-about/internal/config"
)

type Storage struct {
	db *sqlx.DB
}

func Init(cfg config.PostgresConfig) *Storage {
	const op = "storage.postgresql.Init"

	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		panic(fmt.Sprintf("%s: failed to open db: %v", op, err))
	}

	if err = db.Ping(); err != nil {
		panic(fmt.Sprintf("%s: failed to ping db: %v", op, err))
	}

	return &Storage{db: db}
}

func (s *Storage) GetDB() *sqlx.DB {
	return s.db
}

func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
