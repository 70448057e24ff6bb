// Package spreadsheet lee y escribe planillas CSV compatibles con las exportaciones
// de Excel en español: separador ";" y coma decimal, en UTF-8 o Windows-1252/ISO-8859-1.
package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// encodingFor devuelve la codificación de un nombre de charset. Vacío = UTF-8.
func encodingFor(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
}

// writerFor envuelve w para que lo escrito salga en charset. Los caracteres sin
// representación se reemplazan en lugar de cortar la exportación.
func writerFor(w io.Writer, charset string) (io.Writer, error) {
	enc, err := encodingFor(charset)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return w, nil
	}
	// La planilla "latin1" sale en Windows-1252: es el superconjunto que abre Excel.
	if enc == charmap.ISO8859_1 {
		enc = charmap.Windows1252
	}
	return transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder())), nil
}

// readerFor decodifica r desde charset a UTF-8.
func readerFor(r io.Reader, charset string) (io.Reader, error) {
	enc, err := encodingFor(charset)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
