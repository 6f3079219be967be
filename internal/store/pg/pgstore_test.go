package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"faqhub.org/internal/auth"
)

func newMockStore(t *testing.T) (*CredentialStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db), mock
}

func TestLookup(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "role"}).
		AddRow("id-1", "aliya", "hash", "admin")
	mock.ExpectQuery("select id, username, password_hash, role from admins where username").
		WithArgs("aliya").WillReturnRows(rows)

	cred, err := store.Lookup(context.Background(), "aliya")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if cred.ID != "id-1" || cred.Role != auth.RoleAdmin {
		t.Fatalf("unexpected credential: %+v", cred)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLookupNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select id, username, password_hash, role from admins where username").
		WithArgs("nobody").WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role"}))

	if _, err := store.Lookup(context.Background(), "nobody"); !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("insert into admins").
		WithArgs("id-2", "aliya", "hash", "editor").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Create(context.Background(), auth.Credential{
		ID: "id-2", Username: "aliya", PasswordHash: "hash", Role: auth.RoleEditor,
	})
	if !errors.Is(err, auth.ErrValidation) {
		t.Fatalf("expected ErrValidation for duplicate, got %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("update admins set").
		WithArgs("id-1", "aliya", "newhash", "viewer").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := store.Update(context.Background(), auth.Credential{
		ID: "id-1", Username: "aliya", PasswordHash: "newhash", Role: auth.RoleViewer,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	mock.ExpectExec("delete from admins").
		WithArgs("id-9").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := store.Delete(context.Background(), "id-9"); !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestList(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "role"}).
		AddRow("id-1", "aliya", "h1", "superadmin").
		AddRow("id-2", "marat", "h2", "viewer")
	mock.ExpectQuery("select id, username, password_hash, role from admins order by").
		WillReturnRows(rows)

	creds, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(creds) != 2 || creds[0].Role != auth.RoleSuperadmin || creds[1].Username != "marat" {
		t.Fatalf("unexpected list: %+v", creds)
	}
}
