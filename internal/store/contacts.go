package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobhunt-contacts/internal/domain"
)

// EnsureList returns the id of the list called name, creating it if needed.
func EnsureList(ctx context.Context, db *sql.DB, name string) (int64, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return 0, errors.New("list name is empty")
	}

	_, err := db.ExecContext(ctx, `
INSERT INTO email_lists(name, created_at)
VALUES(?,?)
ON CONFLICT(name) DO NOTHING;
`, name, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("create list: %w", err)
	}

	var id int64
	if err := db.QueryRowContext(ctx,
		`SELECT id FROM email_lists WHERE name = ? LIMIT 1;`, name,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("lookup list: %w", err)
	}
	return id, nil
}

// ImportContacts adds records to the list, skipping addresses the list already has.
// It returns how many rows were new. The whole import is one transaction.
func ImportContacts(ctx context.Context, db *sql.DB, listID int64, records []domain.ContactRecord) (added int, err error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO email_contacts(list_id, email, company, hr_name, position, industry, company_type, location, website, created_at)
VALUES(?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(list_id, email) DO NOTHING;
`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		res, err := stmt.ExecContext(ctx,
			listID, r.Email, r.CompanyName, r.HRName, r.Position, r.Industry, r.CompanyType, r.Location, r.CompanyWebsite, now)
		if err != nil {
			return 0, fmt.Errorf("insert contact %q: %w", r.Email, err)
		}
		n, _ := res.RowsAffected()
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// ListContacts returns the list's contacts in import order.
func ListContacts(ctx context.Context, db *sql.DB, listID int64) ([]domain.ContactRecord, error) {
	rows, err := db.QueryContext(ctx, `
SELECT email, company, hr_name, position, industry, company_type, location, website
FROM email_contacts
WHERE list_id = ?
ORDER BY id;
`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ContactRecord
	for rows.Next() {
		var r domain.ContactRecord
		if err := rows.Scan(
			&r.Email,
			&r.CompanyName,
			&r.HRName,
			&r.Position,
			&r.Industry,
			&r.CompanyType,
			&r.Location,
			&r.CompanyWebsite,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
