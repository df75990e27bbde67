package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	stock "github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// RegisterMovementUseCase registra entradas y salidas de stock de forma transaccional,
// con bloqueo de la fila del producto (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner  repository.TxRunner
	movements repository.MovementRepository
	now       func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner repository.TxRunner, movements repository.MovementRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:  txRunner,
		movements: movements,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// MovementInputDTO entrada para registrar un movimiento.
type MovementInputDTO struct {
	UserID    string
	ProductID string
	Type      string // Entrada | Saída ("Saida" aceptado)
	Quantity  int
}

// RegisterMovement inicia una transacción, bloquea el producto, aplica la lógica según tipo
// y guarda el movimiento con el precio actual del producto.
// Saída sin stock suficiente devuelve ErrInsufficientStock y no modifica nada.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*dto.RegisterMovementResponse, error) {
	movType := entity.NormalizeMovementType(input.Type)
	if movType == "" {
		return nil, fmt.Errorf("%w: tipo debe ser Entrada o Saída", domain.ErrInvalidInput)
	}
	if input.ProductID == "" {
		return nil, fmt.Errorf("%w: produto_id es obligatorio", domain.ErrInvalidInput)
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantidade debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if err := stock.CheckQuantity(input.Quantity); err != nil {
		return nil, err
	}

	var out *dto.RegisterMovementResponse
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		// Bloquea la fila del producto para evitar condiciones de carrera
		product, err := repos.Products.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, input.ProductID)
		}

		var newQty int
		if movType == entity.MovementTypeSaida {
			if product.Quantity < input.Quantity {
				return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, product.Quantity, input.Quantity)
			}
			newQty = product.Quantity - input.Quantity
		} else if newQty, err = stock.AddQuantity(product.Quantity, input.Quantity); err != nil {
			return err
		}
		if err := repos.Products.UpdateQuantity(ctx, product.ID, newQty); err != nil {
			return err
		}

		mov := &entity.Movement{
			ID:          uuid.New().String(),
			Type:        movType,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    input.Quantity,
			Price:       product.Price,
			Date:        uc.now(),
			CreatedBy:   input.UserID,
		}
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return err
		}
		out = &dto.RegisterMovementResponse{
			Movement:        ToMovementResponse(mov),
			ProductQuantity: newQty,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List devuelve los movimientos del más reciente al más antiguo.
func (uc *RegisterMovementUseCase) List(ctx context.Context, productID string) ([]dto.MovementResponse, error) {
	var (
		list []*entity.Movement
		err  error
	)
	if productID != "" {
		list, err = uc.movements.ListByProduct(ctx, productID)
	} else {
		list, err = uc.movements.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// ToMovementResponse convierte la entidad a DTO.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		Type:        m.Type,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		Price:       m.Price,
		Date:        m.Date,
		CreatedBy:   m.CreatedBy,
	}
}
