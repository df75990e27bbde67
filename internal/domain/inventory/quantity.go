package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/estoque-api/internal/domain"
)

// MaxQuantity tope de stock por producto; las columnas de cantidad son INTEGER de 32 bits.
const MaxQuantity = math.MaxInt32

// CheckQuantity valida una cantidad absoluta (0..MaxQuantity).
func CheckQuantity(q int) error {
	if q < 0 {
		return fmt.Errorf("%w: quantidade no puede ser negativa", domain.ErrInvalidInput)
	}
	if q > MaxQuantity {
		return fmt.Errorf("%w: quantidade %d excede el máximo %d", domain.ErrInvalidInput, q, MaxQuantity)
	}
	return nil
}

// AddQuantity suma delta al stock actual sin pasar de MaxQuantity.
func AddQuantity(current, delta int) (int, error) {
	if delta < 0 || current < 0 {
		return 0, fmt.Errorf("%w: cantidades negativas", domain.ErrInvalidInput)
	}
	if delta > MaxQuantity-current {
		return 0, fmt.Errorf("%w: el stock resultante (%d + %d) excede el máximo %d", domain.ErrInvalidInput, current, delta, MaxQuantity)
	}
	return current + delta, nil
}
