package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gymdesk-api/internal/domain"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
	"github.com/jhoicas/gymdesk-api/internal/domain/repository"
)

var _ repository.OwnerRepository = (*OwnerRepo)(nil)

// OwnerRepo implementación del puerto OwnerRepository sobre PostgreSQL.
type OwnerRepo struct {
	q Querier
}

// NewOwnerRepository construye el adaptador de persistencia para cuentas.
func NewOwnerRepository(q Querier) *OwnerRepo {
	return &OwnerRepo{q: q}
}

const ownerColumns = `id, email, password_hash, business_name, business_kind, timezone, status, created_at, updated_at`

func scanOwner(row pgx.Row) (*entity.Owner, error) {
	var o entity.Owner
	err := row.Scan(
		&o.ID, &o.Email, &o.PasswordHash, &o.BusinessName, &o.BusinessKind, &o.Timezone, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste una nueva cuenta.
func (r *OwnerRepo) Create(ctx context.Context, o *entity.Owner) error {
	query := `
		INSERT INTO owners (id, email, password_hash, business_name, business_kind, timezone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Email, o.PasswordHash, o.BusinessName, o.BusinessKind, o.Timezone, o.Status,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert owner: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID. Devuelve (nil, nil) si no existe.
func (r *OwnerRepo) GetByID(ctx context.Context, id string) (*entity.Owner, error) {
	if !validID(id) {
		return nil, nil
	}
	o, err := scanOwner(r.q.QueryRow(ctx, `SELECT `+ownerColumns+` FROM owners WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get owner by id: %w", err)
	}
	return o, nil
}

// GetByEmail obtiene una cuenta por email. Devuelve (nil, nil) si no existe.
func (r *OwnerRepo) GetByEmail(ctx context.Context, email string) (*entity.Owner, error) {
	o, err := scanOwner(r.q.QueryRow(ctx, `SELECT `+ownerColumns+` FROM owners WHERE email = $1 LIMIT 1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get owner by email: %w", err)
	}
	return o, nil
}

// List lista todas las cuentas (herramientas de operación).
func (r *OwnerRepo) List(ctx context.Context) ([]entity.Owner, error) {
	rows, err := r.q.Query(ctx, `SELECT `+ownerColumns+` FROM owners ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Owner, 0)
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		list = append(list, *o)
	}
	return list, rows.Err()
}
