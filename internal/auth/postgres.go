package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"imovia.org/internal/ids"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, p *Provider) error {
	if p.ID == "" {
		p.ID = ids.New()
	}
	row := s.db.QueryRowContext(ctx,
		`insert into providers(id, name, email, password_hash, service)
		 values($1,$2,$3,$4,$5)
		 returning created_at, updated_at`,
		p.ID, p.Name, strings.ToLower(p.Email), p.PasswordHash, p.Service,
	)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *PGStore) Find(ctx context.Context, id string) (*Provider, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, name, email, password_hash, service, created_at, updated_at
		 from providers where id=$1`, id)
	return scanProvider(row)
}

func (s *PGStore) FindByEmail(ctx context.Context, email string) (*Provider, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, name, email, password_hash, service, created_at, updated_at
		 from providers where email=$1`, strings.ToLower(strings.TrimSpace(email)))
	return scanProvider(row)
}

func (s *PGStore) List(ctx context.Context) ([]*Provider, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, name, email, password_hash, service, created_at, updated_at
		 from providers order by created_at asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Provider
	for rows.Next() {
		var p Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Service, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

func scanProvider(row *sql.Row) (*Provider, error) {
	var p Provider
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Service, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
