package inventory

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	maxPrice = decimal.NewFromInt(math.MaxInt64)

	// Enteros con separador decimal opcional; sin signo ni exponente.
	priceFormat = regexp.MustCompile(`^[0-9]+([.,][0-9]+)?$`)
)

// ParsePrice convierte un precio digitado ("12,50", "12.5", "7") a unidades menores.
// Multiplica por 100 y trunca. Cadena vacía = 0.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: precio %q negativo", domain.ErrInvalidInput, s)
	}
	if !priceFormat.MatchString(s) {
		return 0, fmt.Errorf("%w: precio %q no es un número", domain.ErrInvalidInput, s)
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return 0, fmt.Errorf("%w: precio %q no es un número", domain.ErrInvalidInput, s)
	}
	minor := d.Mul(hundred).Truncate(0)
	if minor.GreaterThan(maxPrice) {
		return 0, fmt.Errorf("%w: precio %q fuera de rango", domain.ErrInvalidInput, s)
	}
	return minor.IntPart(), nil
}

// FormatPrice representa unidades menores con dos decimales y coma ("1250" -> "12,50").
func FormatPrice(minor int64) string {
	return strings.Replace(decimal.New(minor, -2).StringFixed(2), ".", ",", 1)
}
