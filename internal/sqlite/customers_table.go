package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/openrits/openrits/pkg/types"
)

var _ types.Table = (*customersTable)(nil)

type customersTable struct {
	backend *Backend
}

func (ct *customersTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	ct.backend.mu.RLock()
	defer ct.backend.mu.RUnlock()
	if !ct.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := ct.backend.db.QueryRow(
		"SELECT customer_id, name, surname, email FROM customers WHERE customer_id = ?",
		id,
	)
	c, err := hydrateCustomer(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting customer %s: %w", id, err)
	}
	return c, nil
}

func (ct *customersTable) Set(id string, data any) (string, error) {
	c, ok := data.(*types.Customer)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := c.Validate(); err != nil {
		return "", err
	}

	ct.backend.mu.Lock()
	defer ct.backend.mu.Unlock()
	if !ct.backend.attached {
		return "", types.ErrStoreDetached
	}

	if id == "" {
		id = newUUID()
		c.CustomerID = id
		_, err := ct.backend.db.Exec(
			"INSERT INTO customers (customer_id, name, surname, email) VALUES (?, ?, ?, ?)",
			id, c.Name, c.Surname, c.Email,
		)
		if err != nil {
			return "", fmt.Errorf("inserting customer: %w", constraintErr(err))
		}
		return id, nil
	}

	res, err := ct.backend.db.Exec(
		"UPDATE customers SET name = ?, surname = ?, email = ? WHERE customer_id = ?",
		c.Name, c.Surname, c.Email, id,
	)
	if err != nil {
		return "", fmt.Errorf("updating customer: %w", constraintErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("updating customer: %w", err)
	}
	if n == 0 {
		return "", types.ErrNotFound
	}
	c.CustomerID = id
	return id, nil
}

func (ct *customersTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	ct.backend.mu.Lock()
	defer ct.backend.mu.Unlock()
	if !ct.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := ct.backend.db.Exec("DELETE FROM customers WHERE customer_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", constraintErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch queries customers. Supported filters: name, surname, email.
func (ct *customersTable) Fetch(filter map[string]any) ([]any, error) {
	ct.backend.mu.RLock()
	defer ct.backend.mu.RUnlock()
	if !ct.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT customer_id, name, surname, email FROM customers"
	var conditions []string
	var args []any

	if filter != nil {
		for _, key := range []string{"name", "surname", "email"} {
			if v, ok := filter[key]; ok {
				s, ok := v.(string)
				if !ok {
					return nil, types.ErrInvalidFilter
				}
				conditions = append(conditions, key+" = ?")
				args = append(args, s)
			}
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY surname ASC, name ASC, customer_id ASC"

	rows, err := ct.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching customers: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		c, err := hydrateCustomer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating customer: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}
	return results, nil
}

func hydrateCustomer(scan func(...any) error) (*types.Customer, error) {
	var c types.Customer
	if err := scan(&c.CustomerID, &c.Name, &c.Surname, &c.Email); err != nil {
		return nil, err
	}
	return &c, nil
}
