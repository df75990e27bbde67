package importer

import (
	"fmt"
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

const logTimeLayout = "02/01/2006 15:04:05"

// FormatLogLine "DD/MM/YYYY HH:MM:SS | KIND       | nome | categoria | quantidade | detalhe".
// El tipo va en mayúsculas, alineado a la izquierda en 10 columnas.
func FormatLogLine(e *entity.ImportLog) string {
	return fmt.Sprintf("%s | %-10s | %s | %s | %d | %s",
		e.Date.Format(logTimeLayout),
		strings.ToUpper(e.Kind),
		e.ProductName,
		e.CategoryLabel,
		e.Quantity,
		e.Detail,
	)
}

// FormatLog une las líneas con "\n" (sin salto final).
func FormatLog(entries []*entity.ImportLog) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, FormatLogLine(e))
	}
	return strings.Join(lines, "\n")
}
