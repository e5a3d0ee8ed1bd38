package leads

import (
	"context"

	"github.com/jhoicas/crm-leads-api/internal/application/dto"
	"github.com/jhoicas/crm-leads-api/internal/application/ports"
	"github.com/jhoicas/crm-leads-api/internal/domain"
)

// ListItemsUseCase lista os produtos ativos de um lead direto do ERP.
type ListItemsUseCase struct {
	items ports.LineItemGateway
}

// NewListItemsUseCase constrói o caso de uso.
func NewListItemsUseCase(items ports.LineItemGateway) *ListItemsUseCase {
	return &ListItemsUseCase{items: items}
}

// ListActive devolve os itens ativos do lead no formato do front.
func (uc *ListItemsUseCase) ListActive(ctx context.Context, leadID string) ([]dto.LineItemResponse, error) {
	if leadID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.items.ListActive(ctx, leadID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LineItemResponse, 0, len(list))
	for _, li := range list {
		flag := "N"
		if li.Active {
			flag = "S"
		}
		out = append(out, dto.LineItemResponse{
			CODITEM:    li.ItemID,
			CODLEAD:    li.LeadID,
			CODPROD:    li.ProductID,
			DESCRPROD:  li.Description,
			QUANTIDADE: li.Quantity,
			VLRUNIT:    li.UnitPrice,
			VLRTOTAL:   li.LineTotal,
			ATIVO:      flag,
		})
	}
	return out, nil
}
