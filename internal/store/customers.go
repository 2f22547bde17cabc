package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"roomdesk/internal/models"
)

// MaxCustomerMatches caps fuzzy name search results.
const MaxCustomerMatches = 5

var ErrCustomerMissing = errors.New("customer not found")

// SaveCustomer writes the customer, replacing any record with the same id.
func (s *Store) SaveCustomer(ctx context.Context, c *models.Customer) error {
	_, err := s.ExecContext(ctx, `
		INSERT OR REPLACE INTO customers (
			customer_id, first_name, last_name, email, phone, created_at
		) VALUES (?, ?, ?, ?, ?, ?)`,
		c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save customer: %w", err)
	}
	return nil
}

// GetCustomerByID returns a single customer.
func (s *Store) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	row := s.QueryRowContext(ctx, `
		SELECT customer_id, first_name, last_name, email, phone, created_at
		FROM customers WHERE customer_id = ?`, id)

	var c models.Customer
	err := row.Scan(&c.CustomerID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrCustomerMissing
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// SearchCustomersByName does a case-insensitive substring match on the
// combined first and last name, returning at most MaxCustomerMatches.
func (s *Store) SearchCustomersByName(ctx context.Context, query string) ([]models.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := s.QueryContext(ctx, `
		SELECT customer_id, first_name, last_name, email, phone, created_at
		FROM customers
		WHERE LOWER(first_name || ' ' || last_name) LIKE ?
		ORDER BY last_name, first_name
		LIMIT ?`, pattern, MaxCustomerMatches)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()

	var out []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.CustomerID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
