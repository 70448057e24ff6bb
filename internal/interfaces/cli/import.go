package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/domain"
	"github.com/jhoicas/gymdesk-api/internal/infrastructure/spreadsheet"
)

// clientCreator destino de las filas importadas (ClientUseCase en producción).
type clientCreator interface {
	Create(ctx context.Context, ownerID string, in dto.ClientRequest) (*dto.ClientView, error)
}

type importResult struct {
	Valid    int
	Created  int
	Rejected []spreadsheet.ImportError
}

// importClients lee la planilla y da de alta cada fila válida. Un rechazo de validación o un DNI
// repetido se suma a Rejected; cualquier otro error de escritura corta la importación.
func importClients(ctx context.Context, dst clientCreator, ownerID string, r io.Reader, charset string, dryRun bool) (importResult, error) {
	rows, rejected, err := spreadsheet.ReadClients(r, charset)
	if err != nil {
		return importResult{}, err
	}
	res := importResult{Valid: len(rows), Rejected: rejected}
	if dryRun {
		return res, nil
	}
	for _, row := range rows {
		if _, err := dst.Create(ctx, ownerID, row.ClientRequest); err != nil {
			if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrDuplicate) {
				res.Rejected = append(res.Rejected, spreadsheet.ImportError{Line: row.Line, Err: err})
				continue
			}
			return res, fmt.Errorf("línea %d: %w", row.Line, err)
		}
		res.Created++
	}
	sort.SliceStable(res.Rejected, func(i, j int) bool { return res.Rejected[i].Line < res.Rejected[j].Line })
	return res, nil
}
