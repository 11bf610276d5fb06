package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"elstore/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS orders (
    id UUID PRIMARY KEY,
    email TEXT NOT NULL,
    plan TEXT NOT NULL,
    payment_method TEXT NOT NULL,
    proof_image TEXT,
    status TEXT NOT NULL DEFAULT 'pending',
    note TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
`

// ConnectPostgres opens the database, verifies the connection and bootstraps
// the schema.
func ConnectPostgres(uri string) (*sql.DB, error) {
	db, err := sql.Open("pgx", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if _, err = db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return db, nil
}

type postgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) OrderStore {
	return &postgresStore{db: db}
}

func (p *postgresStore) Insert(ctx context.Context, order *model.Order) (string, error) {
	id := uuid.NewString()

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO orders (id, email, plan, payment_method, proof_image, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''), $8, $9)
	`, id, order.Email, order.Plan, order.PaymentMethod, order.ProofImage,
		order.Status.String(), order.Note, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}

	order.ID = id
	return id, nil
}

func (p *postgresStore) FindByID(ctx context.Context, id string) (*model.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	row := p.db.QueryRowContext(ctx, `
		SELECT id, email, plan, payment_method, proof_image, status, note, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return order, nil
}

func (p *postgresStore) List(ctx context.Context, email string, limit int) ([]model.Order, error) {
	query := `
		SELECT id, email, plan, payment_method, proof_image, status, note, created_at, updated_at
		FROM orders
	`
	args := []any{limit}
	if email != "" {
		query += ` WHERE email = $2`
		args = append(args, email)
	}
	query += ` LIMIT $1`

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return orders, nil
}

func (p *postgresStore) UpdateStatus(ctx context.Context, id string, next model.Status, note string) (*model.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	// Conditional update: the WHERE clause is the compare-and-set guard
	// against a racing decision on the same order.
	row := p.db.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1,
		    note = CASE WHEN $2 = '' THEN note ELSE $2 END,
		    updated_at = NOW()
		WHERE id = $3 AND status NOT IN ('verified', 'rejected')
		RETURNING id, email, plan, payment_method, proof_image, status, note, created_at, updated_at
	`, next.String(), note, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, ferr := p.FindByID(ctx, id); ferr != nil {
				return nil, ferr
			}
			return nil, ErrTerminal
		}
		return nil, fmt.Errorf("update order: %w", err)
	}

	return order, nil
}

func (p *postgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var (
		o      model.Order
		status string
		proof  sql.NullString
		note   sql.NullString
	)

	err := row.Scan(&o.ID, &o.Email, &o.Plan, &o.PaymentMethod, &proof, &status, &note, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	o.Status = model.Status(status)
	if proof.Valid {
		o.ProofImage = proof.String
	}
	if note.Valid {
		o.Note = note.String
	}

	return &o, nil
}
