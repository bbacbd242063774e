package transfer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/ngtrphuong/ioe/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeCSV lee un archivo CSV completo tolerando el BOM de UTF-8 y archivos
// exportados en GB18030 (hojas de cálculo chinas); si el contenido no es UTF-8
// válido se reintenta la decodificación antes de parsear.
func decodeCSV(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	if !utf8.Valid(raw) {
		decoded, _, err := transform.Bytes(simplifiedchinese.GB18030.NewDecoder(), raw)
		if err != nil {
			return nil, fmt.Errorf("%w: codificación no reconocida", domain.ErrInvalidInput)
		}
		raw = decoded
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	return records, nil
}

// headerIndex mapea nombres de columna (case-insensitive) a su posición y valida
// que las columnas requeridas estén presentes.
func headerIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: falta la columna %q", domain.ErrInvalidInput, name)
		}
	}
	return idx, nil
}

// field devuelve el valor de una columna opcional, o "" si no existe.
func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
