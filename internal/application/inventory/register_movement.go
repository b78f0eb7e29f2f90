package inventory

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// RecordMovementFromRequest adapta el request HTTP al caso de uso RecordMovement(ctx, MovementInputDTO).
// Usar desde handlers HTTP o desde otros casos de uso que tengan companyID, userID y dto.RecordMovementRequest.
func (uc *RecordMovementUseCase) RecordMovementFromRequest(ctx context.Context, companyID, userID string, in dto.RecordMovementRequest) (*dto.StockMovementResponse, error) {
	direction := 0
	switch in.Direction {
	case "increase", "+":
		direction = entity.DirectionIncrease
	case "decrease", "-":
		direction = entity.DirectionDecrease
	}
	mov, err := uc.RecordMovement(ctx, MovementInputDTO{
		CompanyID: companyID,
		ActorID:   userID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Direction: direction,
		Reason:    in.Reason,
		Notes:     in.Notes,
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToStockMovementResponse(mov)
	return &resp, nil
}
