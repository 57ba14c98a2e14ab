package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresStore keeps stored cart ids in the cart_sessions table.
type PostgresStore struct {
	pool DBPool
}

func NewPostgresStore(pool DBPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var id string
	err := s.pool.QueryRow(ctx, `SELECT cart_id FROM cart_sessions WHERE session_key=$1`, key).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return id, true, nil
}

func (s *PostgresStore) Put(ctx context.Context, key, id string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO cart_sessions(session_key, cart_id)
		VALUES($1, $2)
		ON CONFLICT (session_key) DO UPDATE SET cart_id=EXCLUDED.cart_id, updated_at=now()
	`, key, id)
	return err
}

func (s *PostgresStore) Clear(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM cart_sessions WHERE session_key=$1`, key)
	return err
}
