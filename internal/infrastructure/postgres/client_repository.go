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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// expires_on sale como texto YYYY-MM-DD: el día no depende de la zona de la conexión.
const clientColumns = `id, owner_id, dni, name, to_char(expires_on, 'YYYY-MM-DD'), days, schedule, amount,
	email, phone, backup_phone, comments, created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var expires *string
	if err := row.Scan(
		&c.ID, &c.OwnerID, &c.DNI, &c.Name, &expires, &c.Days, &c.Schedule, &c.Amount,
		&c.Email, &c.Phone, &c.BackupPhone, &c.Comments, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if expires != nil {
		c.ExpiresOn = *expires
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, owner_id, dni, name, expires_on, days, schedule, amount,
			email, phone, backup_phone, comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.OwnerID, c.DNI, c.Name, expiresParam(c.ExpiresOn), c.Days, c.Schedule, c.Amount,
		c.Email, c.Phone, c.BackupPhone, c.Comments, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return writeError("insert client", err)
	}
	return nil
}

// GetByID obtiene un cliente del dueño. Devuelve (nil, nil) si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Client, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE owner_id = $1 AND id = $2`
	c, err := scanClient(r.q.QueryRow(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError("get client", err)
	}
	return c, nil
}

// ListByOwner lista todos los clientes del dueño por nombre.
func (r *ClientRepo) ListByOwner(ctx context.Context, ownerID string) ([]entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE owner_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}

// Update sobrescribe los campos mutables del cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	if !validID(c.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE clients SET dni = $3, name = $4, expires_on = $5::date, days = $6, schedule = $7,
			amount = $8, email = $9, phone = $10, backup_phone = $11, comments = $12, updated_at = $13
		WHERE owner_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		c.OwnerID, c.ID, c.DNI, c.Name, expiresParam(c.ExpiresOn), c.Days, c.Schedule,
		c.Amount, c.Email, c.Phone, c.BackupPhone, c.Comments, c.UpdatedAt,
	)
	if err != nil {
		return writeError("update client", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente del dueño.
func (r *ClientRepo) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return readError("delete client", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// expiresParam pasa la fecha ya normalizada; cualquier otra representación se guarda como NULL.
func expiresParam(v any) *string {
	if s, ok := v.(string); ok && s != "" {
		return &s
	}
	return nil
}
