package clients

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"imovia.org/internal/ids"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL. Kind-specific fields live in
// side tables (client_persons, client_companies) keyed by the client id.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) CreateClient(ctx context.Context, c *Client) error {
	if c.ID == "" {
		c.ID = ids.New()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		`insert into clients(id, kind, name, email, phone, address, status)
		 values($1,$2,$3,$4,$5,$6,$7)
		 returning created_at, updated_at`,
		c.ID, string(c.Kind), c.Name, strings.ToLower(c.Email), c.Phone, c.Address, string(c.Status),
	)
	if err := row.Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return err
	}

	switch c.Kind {
	case Individual:
		if _, err := tx.ExecContext(ctx,
			`insert into client_persons(client_id, cpf, rg, birth_date) values($1,$2,$3,$4)`,
			c.ID, c.Person.CPF, c.Person.RG, c.Person.BirthDate,
		); err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyExists
			}
			return err
		}
	case Company:
		if _, err := tx.ExecContext(ctx,
			`insert into client_companies(client_id, cnpj, legal_name, trade_name, state_registration, business_address, founded_at)
			 values($1,$2,$3,$4,$5,$6,$7)`,
			c.ID, c.CompanyInfo.CNPJ, c.CompanyInfo.LegalName, c.CompanyInfo.TradeName,
			c.CompanyInfo.StateRegistration, c.CompanyInfo.BusinessAddress, c.CompanyInfo.FoundedAt,
		); err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyExists
			}
			return err
		}
	}
	return tx.Commit()
}

func (s *PGStore) UpdateClient(ctx context.Context, c *Client) error {
	row := s.db.QueryRowContext(ctx,
		`update clients
		 set name=$2, phone=$3, address=$4, status=$5, updated_at=now()
		 where id=$1
		 returning created_at, updated_at`,
		c.ID, c.Name, c.Phone, c.Address, string(c.Status),
	)
	if err := row.Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *PGStore) FindClient(ctx context.Context, id string) (*Client, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, kind, name, email, phone, address, status, created_at, updated_at
		 from clients where id=$1`, id)
	var c Client
	if err := row.Scan(&c.ID, &c.Kind, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.loadDetails(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PGStore) ListClients(ctx context.Context, kind Kind) ([]*Client, error) {
	query := `select id, kind, name, email, phone, address, status, created_at, updated_at from clients`
	args := []any{}
	if kind != "" {
		query += ` where kind=$1`
		args = append(args, string(kind))
	}
	query += ` order by created_at asc`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Kind, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range res {
		if err := s.loadDetails(ctx, c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *PGStore) loadDetails(ctx context.Context, c *Client) error {
	switch c.Kind {
	case Individual:
		var person PersonDetails
		err := s.db.QueryRowContext(ctx,
			`select cpf, rg, birth_date from client_persons where client_id=$1`, c.ID,
		).Scan(&person.CPF, &person.RG, &person.BirthDate)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		c.Person = &person
	case Company:
		var company CompanyDetails
		err := s.db.QueryRowContext(ctx,
			`select cnpj, legal_name, trade_name, coalesce(state_registration,''), business_address, founded_at
			 from client_companies where client_id=$1`, c.ID,
		).Scan(&company.CNPJ, &company.LegalName, &company.TradeName, &company.StateRegistration,
			&company.BusinessAddress, &company.FoundedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		c.CompanyInfo = &company
	}
	return nil
}

func (s *PGStore) CreatePartner(ctx context.Context, p *Partner) error {
	if p.ID == "" {
		p.ID = ids.New()
	}
	row := s.db.QueryRowContext(ctx,
		`insert into client_partners(id, company_id, person_id, role, admitted_at)
		 values($1,$2,$3,$4,$5)
		 returning created_at`,
		p.ID, p.CompanyID, p.PersonID, string(p.Role), p.AdmittedAt,
	)
	return row.Scan(&p.CreatedAt)
}

func (s *PGStore) ListPartners(ctx context.Context, companyID string) ([]*Partner, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, company_id, person_id, role, admitted_at, created_at
		 from client_partners where company_id=$1 order by created_at asc`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Partner
	for rows.Next() {
		var p Partner
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.PersonID, &p.Role, &p.AdmittedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

func (s *PGStore) CreateContract(ctx context.Context, c *Contract) error {
	if c.ID == "" {
		c.ID = ids.New()
	}
	row := s.db.QueryRowContext(ctx,
		`insert into contracts(id, client_id, provider_id, details)
		 values($1,$2,$3,$4)
		 returning created_at, updated_at`,
		c.ID, c.ClientID, c.ProviderID, c.Details,
	)
	return row.Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (s *PGStore) UpdateContract(ctx context.Context, c *Contract) error {
	row := s.db.QueryRowContext(ctx,
		`update contracts set details=$2, updated_at=now() where id=$1
		 returning client_id, provider_id, created_at, updated_at`,
		c.ID, c.Details,
	)
	if err := row.Scan(&c.ClientID, &c.ProviderID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *PGStore) FindContract(ctx context.Context, id string) (*Contract, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, client_id, provider_id, details, created_at, updated_at
		 from contracts where id=$1`, id)
	var c Contract
	if err := row.Scan(&c.ID, &c.ClientID, &c.ProviderID, &c.Details, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *PGStore) ListContracts(ctx context.Context, clientID, providerID string) ([]*Contract, error) {
	query := `select id, client_id, provider_id, details, created_at, updated_at from contracts`
	var (
		conds []string
		args  []any
	)
	if clientID != "" {
		args = append(args, clientID)
		conds = append(conds, `client_id=$1`)
	}
	if providerID != "" {
		args = append(args, providerID)
		if len(args) == 1 {
			conds = append(conds, `provider_id=$1`)
		} else {
			conds = append(conds, `provider_id=$2`)
		}
	}
	if len(conds) > 0 {
		query += ` where ` + strings.Join(conds, ` and `)
	}
	query += ` order by created_at asc`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Contract
	for rows.Next() {
		var c Contract
		if err := rows.Scan(&c.ID, &c.ClientID, &c.ProviderID, &c.Details, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &c)
	}
	return res, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
