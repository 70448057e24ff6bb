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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, owner_id, to_char(date, 'YYYY-MM-DD'), amount, notes, created_at, updated_at`

// Create persiste un movimiento.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, owner_id, date, amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.OwnerID, s.Date, s.Amount, s.Notes, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return writeError("insert sale", err)
	}
	return nil
}

// GetByID obtiene un movimiento del dueño. Devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Sale, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + saleColumns + ` FROM sales WHERE owner_id = $1 AND id = $2`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, ownerID, id).Scan(
		&s.ID, &s.OwnerID, &s.Date, &s.Amount, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError("get sale", err)
	}
	return &s, nil
}

// ListByOwner lista los movimientos del dueño, del más reciente al más antiguo.
func (r *SaleRepo) ListByOwner(ctx context.Context, ownerID string) ([]entity.SaleRecord, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE owner_id = $1 ORDER BY date DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := make([]entity.SaleRecord, 0)
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Date, &s.Amount, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, entity.SaleRecord{Sale: s})
	}
	return list, rows.Err()
}

// Update sobrescribe fecha, monto y observaciones.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	if !validID(s.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE sales SET date = $3::date, amount = $4, notes = $5, updated_at = $6
		WHERE owner_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, s.OwnerID, s.ID, s.Date, s.Amount, s.Notes, s.UpdatedAt)
	if err != nil {
		return writeError("update sale", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un movimiento del dueño.
func (r *SaleRepo) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return readError("delete sale", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
