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

var _ repository.SlotRepository = (*SlotRepo)(nil)

// SlotRepo implementación de SlotRepository (usable con pool o tx).
type SlotRepo struct {
	q Querier
}

// NewSlotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSlotRepository(q Querier) *SlotRepo {
	return &SlotRepo{q: q}
}

const slotColumns = `id, owner_id, to_char(date, 'YYYY-MM-DD'), start_time, end_time, capacity, client_ids, created_at, updated_at`

func scanSlot(row pgx.Row) (*entity.Slot, error) {
	var s entity.Slot
	if err := row.Scan(
		&s.ID, &s.OwnerID, &s.Date, &s.StartTime, &s.EndTime, &s.Capacity, &s.ClientIDs, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un turno.
func (r *SlotRepo) Create(ctx context.Context, s *entity.Slot) error {
	query := `
		INSERT INTO slots (id, owner_id, date, start_time, end_time, capacity, client_ids, created_at, updated_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.OwnerID, s.Date, s.StartTime, s.EndTime, s.Capacity, s.ClientIDs, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return writeError("insert slot", err)
	}
	return nil
}

// GetByID obtiene un turno. Devuelve (nil, nil) si no existe.
func (r *SlotRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Slot, error) {
	return r.get(ctx, `SELECT `+slotColumns+` FROM slots WHERE owner_id = $1 AND id = $2`, ownerID, id)
}

// GetForUpdate obtiene el turno con la fila bloqueada. Solo tiene sentido dentro de una tx.
func (r *SlotRepo) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.Slot, error) {
	return r.get(ctx, `SELECT `+slotColumns+` FROM slots WHERE owner_id = $1 AND id = $2 FOR UPDATE`, ownerID, id)
}

func (r *SlotRepo) get(ctx context.Context, query, ownerID, id string) (*entity.Slot, error) {
	if !validID(id) {
		return nil, nil
	}
	s, err := scanSlot(r.q.QueryRow(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError("get slot", err)
	}
	return s, nil
}

// ListByDate lista los turnos de un día por hora de inicio.
func (r *SlotRepo) ListByDate(ctx context.Context, ownerID, date string) ([]entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE owner_id = $1 AND date = $2::date ORDER BY start_time`
	rows, err := r.q.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

// UpdateClients escribe la lista de clientes asignados.
func (r *SlotRepo) UpdateClients(ctx context.Context, s *entity.Slot) error {
	if !validID(s.ID) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE slots SET client_ids = $3, updated_at = $4 WHERE owner_id = $1 AND id = $2`,
		s.OwnerID, s.ID, s.ClientIDs, s.UpdatedAt,
	)
	if err != nil {
		if pgCode(err) == codeCheckViolation {
			return domain.ErrSlotFull
		}
		return writeError("update slot clients", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un turno.
func (r *SlotRepo) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM slots WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return readError("delete slot", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
