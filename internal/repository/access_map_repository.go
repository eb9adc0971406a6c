package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campaign-calendar/internal/domain"
)

// AccessMapRepository stores the address -> role table.
// Get returns pgx.ErrNoRows until a map has been saved.
type AccessMapRepository interface {
	Get(ctx context.Context) (domain.AccessMap, error)
	Save(ctx context.Context, accessMap domain.AccessMap) error
	SetDepartmentAddress(ctx context.Context, address, departmentID string) error
	RemoveDepartmentAddress(ctx context.Context, address string) error
}

type accessMapRepository struct {
	pool DB
}

// NewAccessMapRepository builds the repository.
func NewAccessMapRepository(pool DB) AccessMapRepository {
	return &accessMapRepository{pool: pool}
}

func (r *accessMapRepository) Get(ctx context.Context) (domain.AccessMap, error) {
	accessMap := domain.AccessMap{DepartmentAddresses: map[string]string{}}
	if err := r.pool.QueryRow(ctx, `SELECT designer_address FROM access_settings WHERE id=1`).
		Scan(&accessMap.DesignerAddress); err != nil {
		return domain.AccessMap{}, err
	}

	rows, err := r.pool.Query(ctx, `SELECT address, department_id FROM access_department_addresses`)
	if err != nil {
		return domain.AccessMap{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var address, deptID string
		if err := rows.Scan(&address, &deptID); err != nil {
			return domain.AccessMap{}, err
		}
		accessMap.DepartmentAddresses[address] = deptID
	}
	return accessMap, rows.Err()
}

func (r *accessMapRepository) Save(ctx context.Context, accessMap domain.AccessMap) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		const upsert = `
            INSERT INTO access_settings (id, designer_address) VALUES (1, $1)
            ON CONFLICT (id) DO UPDATE SET designer_address=EXCLUDED.designer_address, updated_at=NOW()`
		if _, err := tx.Exec(ctx, upsert, accessMap.DesignerAddress); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM access_department_addresses`); err != nil {
			return err
		}
		for address, deptID := range accessMap.DepartmentAddresses {
			if _, err := tx.Exec(ctx,
				`INSERT INTO access_department_addresses (address, department_id) VALUES ($1,$2)`,
				address, deptID); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetDepartmentAddress creates an empty settings row first when none exists,
// so the new entry is visible to Get like it is in the memory store.
func (r *accessMapRepository) SetDepartmentAddress(ctx context.Context, address, departmentID string) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		const ensureSettings = `
            INSERT INTO access_settings (id, designer_address) VALUES (1, '')
            ON CONFLICT (id) DO NOTHING`
		if _, err := tx.Exec(ctx, ensureSettings); err != nil {
			return err
		}
		const upsert = `
            INSERT INTO access_department_addresses (address, department_id) VALUES ($1,$2)
            ON CONFLICT (address) DO UPDATE SET department_id=EXCLUDED.department_id`
		_, err := tx.Exec(ctx, upsert, address, departmentID)
		return err
	})
}

func (r *accessMapRepository) RemoveDepartmentAddress(ctx context.Context, address string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM access_department_addresses WHERE address=$1`, address)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
