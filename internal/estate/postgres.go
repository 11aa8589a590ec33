package estate

import (
	"context"
	"database/sql"
	"errors"

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

func (s *PGStore) CreateProperty(ctx context.Context, p *Property) error {
	if p.ID == "" {
		p.ID = ids.New()
	}
	row := s.db.QueryRowContext(ctx,
		`insert into properties(id, client_id, street, number, complement, district, city, state, postal_code, total_area_m2, occupancy)
		 values($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 returning created_at, updated_at`,
		p.ID, p.ClientID, p.Street, p.Number, p.Complement, p.District, p.City, p.State, p.PostalCode, p.TotalAreaM2, string(p.Occupancy),
	)
	return row.Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (s *PGStore) UpdateProperty(ctx context.Context, p *Property) error {
	row := s.db.QueryRowContext(ctx,
		`update properties
		 set street=$2, number=$3, complement=$4, district=$5, city=$6, state=$7,
		     postal_code=$8, total_area_m2=$9, occupancy=$10, updated_at=now()
		 where id=$1
		 returning created_at, updated_at`,
		p.ID, p.Street, p.Number, p.Complement, p.District, p.City, p.State, p.PostalCode, p.TotalAreaM2, string(p.Occupancy),
	)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *PGStore) FindProperty(ctx context.Context, id string) (*Property, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, client_id, street, number, complement, district, city, state, postal_code, total_area_m2, occupancy, created_at, updated_at
		 from properties where id=$1`, id)
	var p Property
	if err := row.Scan(&p.ID, &p.ClientID, &p.Street, &p.Number, &p.Complement, &p.District, &p.City, &p.State,
		&p.PostalCode, &p.TotalAreaM2, &p.Occupancy, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var err error
	if p.Units, err = s.unitsFor(ctx, id); err != nil {
		return nil, err
	}
	if p.RegistryRecords, err = s.recordsFor(ctx, id); err != nil {
		return nil, err
	}
	if p.UtilityAccounts, err = s.accountsFor(ctx, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PGStore) ListProperties(ctx context.Context, clientID string) ([]*Property, error) {
	query := `select id, client_id, street, number, complement, district, city, state, postal_code, total_area_m2, occupancy, created_at, updated_at
		 from properties`
	args := []any{}
	if clientID != "" {
		query += ` where client_id=$1`
		args = append(args, clientID)
	}
	query += ` order by created_at asc`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Property
	for rows.Next() {
		var p Property
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Street, &p.Number, &p.Complement, &p.District, &p.City, &p.State,
			&p.PostalCode, &p.TotalAreaM2, &p.Occupancy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

func (s *PGStore) AddUnit(ctx context.Context, u *Unit) error {
	if err := s.propertyExists(ctx, u.PropertyID); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = ids.New()
	}
	row := s.db.QueryRowContext(ctx,
		`insert into property_units(id, property_id, name, area_m2, description, contract_id, occupancy)
		 values($1,$2,$3,$4,$5,nullif($6,''),$7)
		 returning created_at`,
		u.ID, u.PropertyID, u.Name, u.AreaM2, u.Description, u.ContractID, string(u.Occupancy),
	)
	return row.Scan(&u.CreatedAt)
}

func (s *PGStore) AddRegistryRecord(ctx context.Context, rec *RegistryRecord) error {
	if err := s.propertyExists(ctx, rec.PropertyID); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = ids.New()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if rec.Current {
		if _, err := tx.ExecContext(ctx,
			`update registry_records set current=false where property_id=$1`, rec.PropertyID); err != nil {
			return err
		}
	}
	row := tx.QueryRowContext(ctx,
		`insert into registry_records(id, property_id, enrollment, registry_office, cnm, municipal_inscription, current)
		 values($1,$2,$3,$4,$5,$6,$7)
		 returning registered_at`,
		rec.ID, rec.PropertyID, rec.Enrollment, rec.RegistryOffice, rec.CNM, rec.MunicipalInscription, rec.Current,
	)
	if err := row.Scan(&rec.RegisteredAt); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *PGStore) AddUtilityAccount(ctx context.Context, acc *UtilityAccount) error {
	if err := s.propertyExists(ctx, acc.PropertyID); err != nil {
		return err
	}
	if acc.ID == "" {
		acc.ID = ids.New()
	}
	row := s.db.QueryRowContext(ctx,
		`insert into utility_accounts(id, property_id, type, account_number, supplier, status, notes)
		 values($1,$2,$3,$4,$5,$6,$7)
		 returning created_at`,
		acc.ID, acc.PropertyID, string(acc.Type), acc.AccountNumber, acc.Supplier, string(acc.Status), acc.Notes,
	)
	return row.Scan(&acc.CreatedAt)
}

func (s *PGStore) propertyExists(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `select 1 from properties where id=$1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *PGStore) unitsFor(ctx context.Context, propertyID string) ([]Unit, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, property_id, name, area_m2, coalesce(description,''), coalesce(contract_id,''), occupancy, created_at
		 from property_units where property_id=$1 order by created_at asc, id asc`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Unit
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.ID, &u.PropertyID, &u.Name, &u.AreaM2, &u.Description, &u.ContractID, &u.Occupancy, &u.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (s *PGStore) recordsFor(ctx context.Context, propertyID string) ([]RegistryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, property_id, enrollment, registry_office, coalesce(cnm,''), coalesce(municipal_inscription,''), registered_at, current
		 from registry_records where property_id=$1 order by registered_at asc, id asc`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []RegistryRecord
	for rows.Next() {
		var rec RegistryRecord
		if err := rows.Scan(&rec.ID, &rec.PropertyID, &rec.Enrollment, &rec.RegistryOffice, &rec.CNM,
			&rec.MunicipalInscription, &rec.RegisteredAt, &rec.Current); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

func (s *PGStore) accountsFor(ctx context.Context, propertyID string) ([]UtilityAccount, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, property_id, type, account_number, coalesce(supplier,''), status, coalesce(notes,''), created_at
		 from utility_accounts where property_id=$1 order by created_at asc, id asc`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []UtilityAccount
	for rows.Next() {
		var acc UtilityAccount
		if err := rows.Scan(&acc.ID, &acc.PropertyID, &acc.Type, &acc.AccountNumber, &acc.Supplier, &acc.Status, &acc.Notes, &acc.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, acc)
	}
	return res, rows.Err()
}
