// Package pg implements the credential store on Postgres for deployments
// that outgrow the JSON file. Schema:
//
//	create table admins (
//	    id            text primary key,
//	    username      text unique not null,
//	    password_hash text not null,
//	    role          text not null,
//	    created_at    timestamptz not null default now()
//	);
package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"faqhub.org/internal/auth"
)

// CredentialStore is a Postgres-backed auth.CredentialStore.
type CredentialStore struct {
	db *sql.DB
}

var _ auth.CredentialStore = (*CredentialStore)(nil)

// Open connects with pool settings tuned for a small admin surface.
func Open(dsn string) (*CredentialStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &CredentialStore{db: db}, nil
}

// NewWithDB wraps an existing connection, used by tests.
func NewWithDB(db *sql.DB) *CredentialStore { return &CredentialStore{db: db} }

func (s *CredentialStore) Close() error { return s.db.Close() }

// DB exposes the underlying pool for readiness probes.
func (s *CredentialStore) DB() *sql.DB { return s.db }

func (s *CredentialStore) Lookup(ctx context.Context, username string) (auth.Credential, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`select id, username, password_hash, role from admins where username=$1`, username))
}

func (s *CredentialStore) Find(ctx context.Context, id string) (auth.Credential, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`select id, username, password_hash, role from admins where id=$1`, id))
}

func (s *CredentialStore) scanOne(row *sql.Row) (auth.Credential, error) {
	var cred auth.Credential
	var role string
	err := row.Scan(&cred.ID, &cred.Username, &cred.PasswordHash, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Credential{}, auth.ErrNotFound
	}
	if err != nil {
		return auth.Credential{}, err
	}
	cred.Role = auth.Role(role)
	return cred, nil
}

func (s *CredentialStore) List(ctx context.Context) ([]auth.Credential, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, username, password_hash, role from admins order by created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	creds := []auth.Credential{}
	for rows.Next() {
		var cred auth.Credential
		var role string
		if err := rows.Scan(&cred.ID, &cred.Username, &cred.PasswordHash, &role); err != nil {
			return nil, err
		}
		cred.Role = auth.Role(role)
		creds = append(creds, cred)
	}
	return creds, rows.Err()
}

func (s *CredentialStore) Create(ctx context.Context, cred auth.Credential) error {
	res, err := s.db.ExecContext(ctx, `
		insert into admins(id, username, password_hash, role)
		values ($1,$2,$3,$4)
		on conflict (username) do nothing
	`, cred.ID, cred.Username, cred.PasswordHash, string(cred.Role))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: username %s already exists", auth.ErrValidation, cred.Username)
	}
	return nil
}

func (s *CredentialStore) Update(ctx context.Context, cred auth.Credential) error {
	res, err := s.db.ExecContext(ctx,
		`update admins set username=$2, password_hash=$3, role=$4 where id=$1`,
		cred.ID, cred.Username, cred.PasswordHash, string(cred.Role))
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (s *CredentialStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from admins where id=$1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func requireRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return auth.ErrNotFound
	}
	return nil
}
