package spreadsheet

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/pkg/textfold"
)

// ImportError fila rechazada durante la importación.
type ImportError struct {
	Line int
	Err  error
}

func (e ImportError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// Row fila aceptada con su número de línea en la planilla (el encabezado es la línea 1).
type Row struct {
	Line int
	dto.ClientRequest
}

// ErrMissingHeader la planilla no tiene las columnas mínimas (dni y nombre).
var ErrMissingHeader = errors.New("planilla sin columnas dni y nombre")

// headerAliases nombres de columna reconocidos (ya plegados) por campo.
var headerAliases = map[string][]string{
	"dni":          {"dni", "documento", "doc"},
	"name":         {"nombre", "name", "apellido y nombre"},
	"expires_on":   {"vencimiento", "vence", "expires_on", "fecha de vencimiento"},
	"days":         {"dias", "days"},
	"schedule":     {"horario", "schedule"},
	"amount":       {"monto", "importe", "cuota", "amount"},
	"email":        {"email", "mail", "correo"},
	"phone":        {"telefono", "celular", "phone"},
	"backup_phone": {"telefono 2", "telefono alternativo", "contacto", "backup_phone"},
	"comments":     {"comentarios", "observaciones", "notas", "comments"},
}

// ReadClients lee una planilla de clientes exportada de la versión anterior.
// Detecta el separador (";" o ",") en la primera línea; charset "latin1" decodifica ISO-8859-1.
// Las filas inválidas se devuelven en rejected y no cortan la lectura.
func ReadClients(r io.Reader, charset string) (rows []Row, rejected []ImportError, err error) {
	in, err := readerFor(r, charset)
	if err != nil {
		return nil, nil, err
	}
	br := bufio.NewReader(in)
	first, err := br.Peek(peekSize(br))
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, nil, fmt.Errorf("leer planilla: %w", err)
	}

	cr := csv.NewReader(br)
	cr.Comma = detectSeparator(string(first))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrMissingHeader
		}
		return nil, nil, fmt.Errorf("leer encabezado: %w", err)
	}
	cols := mapHeader(header)
	if _, ok := cols["dni"]; !ok {
		return nil, nil, ErrMissingHeader
	}
	if _, ok := cols["name"]; !ok {
		return nil, nil, ErrMissingHeader
	}

	line := 1
	for {
		rec, err := cr.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rejected = append(rejected, ImportError{Line: line, Err: err})
			continue
		}
		if blank(rec) {
			continue
		}
		req, err := toClientRequest(rec, cols)
		if err != nil {
			rejected = append(rejected, ImportError{Line: line, Err: err})
			continue
		}
		rows = append(rows, Row{Line: line, ClientRequest: req})
	}
	return rows, rejected, nil
}

func peekSize(br *bufio.Reader) int {
	if n := br.Size(); n < 512 {
		return n
	}
	return 512
}

func detectSeparator(head string) rune {
	if i := strings.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	if strings.Count(head, ";") >= strings.Count(head, ",") && strings.Contains(head, ";") {
		return ';'
	}
	return ','
}

func mapHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := textfold.Fold(strings.TrimPrefix(h, "\ufeff"))
		for field, aliases := range headerAliases {
			for _, a := range aliases {
				if key == a {
					if _, seen := cols[field]; !seen {
						cols[field] = i
					}
				}
			}
		}
	}
	return cols
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func toClientRequest(rec []string, cols map[string]int) (dto.ClientRequest, error) {
	get := func(field string) string {
		i, ok := cols[field]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	req := dto.ClientRequest{
		DNI:         get("dni"),
		Name:        get("name"),
		ExpiresOn:   get("expires_on"),
		Days:        splitDays(get("days")),
		Email:       get("email"),
		Phone:       get("phone"),
		BackupPhone: get("backup_phone"),
		Comments:    get("comments"),
	}
	if req.DNI == "" || req.Name == "" {
		return req, errors.New("dni y nombre son obligatorios")
	}
	if s := get("schedule"); s != "" && !strings.EqualFold(s, "libre") {
		start, end, ok := strings.Cut(s, "-")
		if !ok {
			return req, fmt.Errorf("horario inválido %q", s)
		}
		req.StartTime, req.EndTime = strings.TrimSpace(start), strings.TrimSpace(end)
	}
	if a := get("amount"); a != "" {
		amount, err := ParseAmount(a)
		if err != nil {
			return req, fmt.Errorf("monto inválido %q", a)
		}
		req.Amount = &amount
	}
	return req, nil
}

// splitDays acepta "L-M-X", "L,M,X", "L M X" o "Libre".
func splitDays(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == ',' || r == ' ' || r == '/' || r == '|'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.EqualFold(f, "libre") {
			return []string{"Libre"}
		}
		out = append(out, strings.ToUpper(f))
	}
	return out
}
