package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/openrits/openrits/pkg/types"
)

var _ types.Table = (*rentsTable)(nil)

type rentsTable struct {
	backend *Backend
}

func (rt *rentsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	rt.backend.mu.RLock()
	defer rt.backend.mu.RUnlock()
	if !rt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := rt.backend.db.QueryRow(
		"SELECT rent_id, customer_id, created, start_at, end_at, issued, returned FROM rents WHERE rent_id = ?",
		id,
	)
	r, err := hydrateRent(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting rent %s: %w", id, err)
	}
	return r, nil
}

// Set creates or updates a rent. Interval invariants are validated in Go
// and enforced again by the schema CHECKs.
func (rt *rentsTable) Set(id string, data any) (string, error) {
	r, ok := data.(*types.Rent)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := r.Validate(); err != nil {
		return "", err
	}

	rt.backend.mu.Lock()
	defer rt.backend.mu.Unlock()
	if !rt.backend.attached {
		return "", types.ErrStoreDetached
	}

	if id == "" {
		id = newUUID()
		r.RentID = id
		if r.Created.IsZero() {
			r.Created = time.Now()
		}
		_, err := rt.backend.db.Exec(
			"INSERT INTO rents (rent_id, customer_id, created, start_at, end_at, issued, returned) VALUES (?, ?, ?, ?, ?, ?, ?)",
			id, nullable(r.CustomerID), encodeTime(r.Created),
			encodeTime(r.Start), encodeTime(r.End),
			nullableTime(r.Issued), nullableTime(r.Returned),
		)
		if err != nil {
			return "", fmt.Errorf("inserting rent: %w", constraintErr(err))
		}
		return id, nil
	}

	res, err := rt.backend.db.Exec(
		"UPDATE rents SET customer_id = ?, start_at = ?, end_at = ?, issued = ?, returned = ? WHERE rent_id = ?",
		nullable(r.CustomerID), encodeTime(r.Start), encodeTime(r.End),
		nullableTime(r.Issued), nullableTime(r.Returned), id,
	)
	if err != nil {
		return "", fmt.Errorf("updating rent: %w", constraintErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("updating rent: %w", err)
	}
	if n == 0 {
		return "", types.ErrNotFound
	}
	r.RentID = id
	return id, nil
}

// Delete removes a rent and cascades its rent_items rows.
func (rt *rentsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	rt.backend.mu.Lock()
	defer rt.backend.mu.Unlock()
	if !rt.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := rt.backend.db.Exec("DELETE FROM rents WHERE rent_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting rent: %w", constraintErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting rent: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch queries rents. Supported filters: customer_id, starts_on_or_before
// and ends_on_or_after (time.Time); combining the latter two selects every
// rent whose interval overlaps a window.
func (rt *rentsTable) Fetch(filter map[string]any) ([]any, error) {
	rt.backend.mu.RLock()
	defer rt.backend.mu.RUnlock()
	if !rt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT rent_id, customer_id, created, start_at, end_at, issued, returned FROM rents"
	var conditions []string
	var args []any

	if filter != nil {
		if v, ok := filter["customer_id"]; ok {
			s, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "customer_id = ?")
			args = append(args, s)
		}
		if v, ok := filter["starts_on_or_before"]; ok {
			t, ok := v.(time.Time)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "start_at <= ?")
			args = append(args, encodeTime(t))
		}
		if v, ok := filter["ends_on_or_after"]; ok {
			t, ok := v.(time.Time)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "end_at >= ?")
			args = append(args, encodeTime(t))
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_at ASC, rent_id ASC"

	rows, err := rt.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching rents: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		r, err := hydrateRent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating rent: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rents: %w", err)
	}
	return results, nil
}

func hydrateRent(scan func(...any) error) (*types.Rent, error) {
	var r types.Rent
	var customerID sql.NullString
	var created, startAt, endAt string
	var issued, returned sql.NullString
	if err := scan(&r.RentID, &customerID, &created, &startAt, &endAt, &issued, &returned); err != nil {
		return nil, err
	}
	r.CustomerID = customerID.String

	var err error
	if r.Created, err = decodeTime(created); err != nil {
		return nil, err
	}
	if r.Start, err = decodeTime(startAt); err != nil {
		return nil, err
	}
	if r.End, err = decodeTime(endAt); err != nil {
		return nil, err
	}
	if issued.Valid {
		t, err := decodeTime(issued.String)
		if err != nil {
			return nil, err
		}
		r.Issued = &t
	}
	if returned.Valid {
		t, err := decodeTime(returned.String)
		if err != nil {
			return nil, err
		}
		r.Returned = &t
	}
	return &r, nil
}

// nullableTime maps a nil timestamp to SQL NULL.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return encodeTime(*t)
}
