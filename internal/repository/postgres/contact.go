// Package postgres implements the contact repository against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/smesner/contactsweb/internal/domain"
)

// ContactRepo implements contact.Repository against PostgreSQL.
type ContactRepo struct{ db *sql.DB }

// NewContactRepo creates a Postgres-backed contact repository.
func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

const contactColumns = `id, first_name, last_name, email, phone, website,
	       address_street, address_suite, address_city, address_zip_code,
	       address_latitude, address_longitude,
	       company_name, company_bs, company_catch_phrase, created_at`

func (r *ContactRepo) Insert(ctx context.Context, c *domain.Contact) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO contacts
			(first_name, last_name, email, phone, website,
			 address_street, address_suite, address_city, address_zip_code,
			 address_latitude, address_longitude,
			 company_name, company_bs, company_catch_phrase, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`, c.FirstName, c.LastName, c.Email, c.Phone, c.Website,
		c.AddressStreet, c.AddressSuite, c.AddressCity, c.AddressZipCode,
		c.AddressLatitude, c.AddressLongitude,
		c.CompanyName, c.CompanyBs, c.CompanyCatchPhrase, c.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w", err)
	}
	return id, nil
}

func (r *ContactRepo) CountRecentByEmail(ctx context.Context, email string, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM contacts
		WHERE email = $1 AND created_at >= $2
	`, email, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count recent contacts: %w", err)
	}
	return n, nil
}

func (r *ContactRepo) ListByEmailSuffix(ctx context.Context, suffix string) ([]domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE email LIKE '%' || $1
		ORDER BY created_at DESC
	`, suffix)
	if err != nil {
		return nil, fmt.Errorf("list contacts by suffix: %w", err)
	}
	defer rows.Close()

	var out []domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return out, nil
}

// scanContact maps one row onto a Contact, keeping SQL NULLs as nil
// pointers so "unset" survives the round trip.
func scanContact(rows *sql.Rows) (domain.Contact, error) {
	var (
		c         domain.Contact
		phone     sql.NullString
		website   sql.NullString
		street    sql.NullString
		suite     sql.NullString
		city      sql.NullString
		zip       sql.NullString
		lat       sql.NullFloat64
		lng       sql.NullFloat64
		coName    sql.NullString
		coBs      sql.NullString
		coPhrase  sql.NullString
	)

	err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email,
		&phone, &website, &street, &suite, &city, &zip, &lat, &lng,
		&coName, &coBs, &coPhrase, &c.CreatedAt)
	if err != nil {
		return c, err
	}

	c.Phone = strPtr(phone)
	c.Website = strPtr(website)
	c.AddressStreet = strPtr(street)
	c.AddressSuite = strPtr(suite)
	c.AddressCity = strPtr(city)
	c.AddressZipCode = strPtr(zip)
	c.AddressLatitude = floatPtr(lat)
	c.AddressLongitude = floatPtr(lng)
	c.CompanyName = strPtr(coName)
	c.CompanyBs = strPtr(coBs)
	c.CompanyCatchPhrase = strPtr(coPhrase)
	return c, nil
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
