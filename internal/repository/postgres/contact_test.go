package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/smesner/contactsweb/internal/domain"
)

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return db, mock, func() { db.Close() }
}

var contactCols = []string{
	"id", "first_name", "last_name", "email", "phone", "website",
	"address_street", "address_suite", "address_city", "address_zip_code",
	"address_latitude", "address_longitude",
	"company_name", "company_bs", "company_catch_phrase", "created_at",
}

func TestInsertReturnsAssignedID(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	phone := "555-0100"
	c := &domain.Contact{
		FirstName: "Ana", LastName: "Horvat", Email: "ana@example.com",
		Phone: &phone, CreatedAt: time.Now().UTC(),
	}

	mock.ExpectQuery("INSERT INTO contacts").
		WithArgs(c.FirstName, c.LastName, c.Email, phone, nil,
			nil, nil, nil, nil, nil, nil, nil, nil, nil, c.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	repo := NewContactRepo(db)
	id, err := repo.Insert(context.Background(), c)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInsertFailure(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("INSERT INTO contacts").
		WillReturnError(errors.New("deadlock detected"))

	repo := NewContactRepo(db)
	_, err := repo.Insert(context.Background(), &domain.Contact{
		FirstName: "Ana", LastName: "Horvat", Email: "ana@example.com",
	})
	if err == nil {
		t.Fatal("expected insert error")
	}
}

func TestCountRecentByEmail(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	since := time.Now().UTC().Add(-time.Minute)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contacts").
		WithArgs("ana@example.com", since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := NewContactRepo(db)
	n, err := repo.CountRecentByEmail(context.Background(), "ana@example.com", since)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestCountRecentByEmailUnavailable(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contacts").
		WillReturnError(errors.New("connection reset"))

	repo := NewContactRepo(db)
	_, err := repo.CountRecentByEmail(context.Background(), "ana@example.com", time.Now())
	if err == nil {
		t.Fatal("history failure must propagate")
	}
}

func TestListByEmailSuffixNullRoundTrip(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	newest := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	oldest := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(contactCols).
		AddRow(int64(3), "Tina", "Novak", "t3@corp.biz",
			"555-0100", "corp.biz", "Main St", nil, "Split", "21000",
			45.815, 15.9819, "Corp", "e-markets", "synergy", newest).
		AddRow(int64(1), "Ivo", "Kos", "t1@acme.biz",
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, oldest)

	mock.ExpectQuery("FROM contacts").
		WithArgs(".biz").
		WillReturnRows(rows)

	repo := NewContactRepo(db)
	list, err := repo.ListByEmailSuffix(context.Background(), ".biz")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}

	enriched, bare := list[0], list[1]
	if enriched.Phone == nil || *enriched.Phone != "555-0100" {
		t.Errorf("phone lost in round trip: %v", enriched.Phone)
	}
	if enriched.AddressSuite != nil {
		t.Error("NULL suite must read back as unset")
	}
	if enriched.AddressLatitude == nil || *enriched.AddressLatitude != 45.815 {
		t.Errorf("latitude lost: %v", enriched.AddressLatitude)
	}

	if bare.Phone != nil || bare.Website != nil || bare.AddressLatitude != nil || bare.CompanyName != nil {
		t.Errorf("unset optional fields must stay unset, got %+v", bare)
	}
	if bare.FirstName != "Ivo" || bare.CreatedAt != oldest {
		t.Errorf("core fields lost: %+v", bare)
	}
}

func TestListByEmailSuffixEmpty(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("FROM contacts").
		WithArgs(".biz").
		WillReturnRows(sqlmock.NewRows(contactCols))

	repo := NewContactRepo(db)
	list, err := repo.ListByEmailSuffix(context.Background(), ".biz")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty result, got %d", len(list))
	}
}
