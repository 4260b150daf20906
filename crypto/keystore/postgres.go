package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/joncooperworks/sshcrypt/config"
	"github.com/joncooperworks/sshcrypt/crypto/keyblob"
	"github.com/joncooperworks/sshcrypt/crypto/keystore/migrations"
)

func init() {
	RegisterKeystore("postgres", func(ctx context.Context, cfg config.Keystore) (Keystore, error) {
		return NewPostgresKeystore(ctx, cfg.Database.DSN())
	})
}

// PostgresKeystore stores blobs in the key_blobs table.
type PostgresKeystore struct {
	pool *pgxpool.Pool
}

// NewPostgresKeystore connects to dsn and applies pending migrations.
func NewPostgresKeystore(ctx context.Context, dsn string) (*PostgresKeystore, error) {
	if err := RunMigrations(ctx, dsn); err != nil {
		return nil, err
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PostgresKeystore{pool: pool}, nil
}

// RunMigrations runs the embedded goose migrations on dsn.
func RunMigrations(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// GetBlob loads and parses the blob stored under id.
func (p *PostgresKeystore) GetBlob(ctx context.Context, id string) (*keyblob.KeyBlob, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	var text string
	err := p.pool.QueryRow(ctx, `SELECT blob FROM key_blobs WHERE id = $1`, id).Scan(&text)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, id)
		}
		return nil, fmt.Errorf("query key blob %s: %w", id, err)
	}
	blob, err := keyblob.Parse([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored key %s: %w", id, err)
	}
	return blob, nil
}

// SetBlob inserts or replaces the blob stored under id.
func (p *PostgresKeystore) SetBlob(ctx context.Context, id string, blob *keyblob.KeyBlob) error {
	if id == "" {
		return ErrInvalidID
	}
	text, err := blob.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal key blob: %w", err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO key_blobs (id, blob, public) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET blob = EXCLUDED.blob, public = EXCLUDED.public, updated_at = now()`,
		id, string(text), blob.Public,
	)
	if err != nil {
		return fmt.Errorf("upsert key blob %s: %w", id, err)
	}
	return nil
}

// DeleteBlob removes the blob stored under id.
func (p *PostgresKeystore) DeleteBlob(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}
	tag, err := p.pool.Exec(ctx, `DELETE FROM key_blobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete key blob %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, id)
	}
	return nil
}

// ListKeys returns all stored ids in ascending order.
func (p *PostgresKeystore) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT id FROM key_blobs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query key ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan key ids: %w", err)
	}
	return ids, nil
}

// Close closes the connection pool.
func (p *PostgresKeystore) Close() error {
	p.pool.Close()
	return nil
}
