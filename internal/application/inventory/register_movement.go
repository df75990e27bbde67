package inventory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/application/dto"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
// userID viene del token (vacío si la sesión es anónima).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	input := MovementInputDTO{
		UserID:    userID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
	}
	return uc.RegisterMovement(ctx, input)
}
