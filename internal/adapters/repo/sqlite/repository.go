// Package sqlite stores host profiles in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

type Repository struct {
	db *sql.DB
}

var _ ports.HostRepository = (*Repository)(nil)

// Open creates the database file and its parent directory when missing and
// applies the schema.
func Open(path string) (*Repository, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: hosts database path is empty", domain.ErrInvalidConfig)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create hosts directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open hosts database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate hosts database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Save(ctx context.Context, host domain.Host) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hosts (id, name, address, port, username, secret_ref) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, address = excluded.address, port = excluded.port,
			username = excluded.username, secret_ref = excluded.secret_ref`,
		string(host.ID), host.Name, host.Address, host.Port, host.Username, host.SecretRef,
	)
	if err != nil {
		return fmt.Errorf("save host %s: %w", host.ID, err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id domain.HostID) (domain.Host, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, address, port, username, secret_ref FROM hosts WHERE id = ?`, string(id))

	host, err := scanHost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Host{}, fmt.Errorf("%w: %s", domain.ErrHostNotFound, id)
	}
	if err != nil {
		return domain.Host{}, fmt.Errorf("load host %s: %w", id, err)
	}

	return host, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Host, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, address, port, username, secret_ref FROM hosts ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list hosts: %w", err)
	}
	defer rows.Close()

	hosts := []domain.Host{}
	for rows.Next() {
		host, err := scanHost(rows)
		if err != nil {
			return nil, fmt.Errorf("list hosts: %w", err)
		}
		hosts = append(hosts, host)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hosts: %w", err)
	}

	return hosts, nil
}

func (r *Repository) Delete(ctx context.Context, id domain.HostID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hosts WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete host %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete host %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrHostNotFound, id)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHost(row scanner) (domain.Host, error) {
	var (
		host domain.Host
		id   string
	)
	if err := row.Scan(&id, &host.Name, &host.Address, &host.Port, &host.Username, &host.SecretRef); err != nil {
		return domain.Host{}, err
	}
	host.ID = domain.HostID(id)

	return host, nil
}
