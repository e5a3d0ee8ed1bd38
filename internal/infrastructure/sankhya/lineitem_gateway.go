package sankhya

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-leads-api/internal/application/ports"
	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
)

const lineItemEntity = "AD_ADLEADSPRODUTOS"

// Ordem dos campos na consulta de itens; define os índices f0..f8.
const lineItemFieldList = "CODITEM,CODLEAD,CODPROD,DESCRPROD,QUANTIDADE,VLRUNIT,VLRTOTAL,ATIVO,DATA_INCLUSAO"

var _ ports.LineItemGateway = (*LineItemGateway)(nil)

// LineItemGateway adaptador do porto LineItemGateway sobre o gateway Sankhya
// (entidade AD_ADLEADSPRODUTOS).
type LineItemGateway struct {
	client *Client
	now    func() time.Time
}

// NewLineItemGateway constrói o adaptador.
func NewLineItemGateway(client *Client) *LineItemGateway {
	return &LineItemGateway{client: client, now: time.Now}
}

// Add grava o item como ativo, com DATA_INCLUSAO de hoje.
func (g *LineItemGateway) Add(ctx context.Context, item *entity.LineItem) error {
	payload := newSaveRequest(lineItemEntity, nil,
		[]string{"CODLEAD", "CODPROD", "DESCRPROD", "QUANTIDADE", "VLRUNIT", "VLRTOTAL", "ATIVO", "DATA_INCLUSAO"},
		[]string{
			item.LeadID,
			item.ProductID,
			item.Description,
			item.Quantity.String(),
			item.UnitPrice.String(),
			item.LineTotal.String(),
			flagActive,
			g.now().Format(dateLayout),
		},
	)
	return g.client.Call(ctx, savePath, http.MethodPost, payload, nil)
}

// Update regrava quantidade e valores pelo pk CODITEM.
func (g *LineItemGateway) Update(ctx context.Context, itemID string, quantity, unitPrice, lineTotal decimal.Decimal) error {
	payload := newSaveRequest(lineItemEntity,
		map[string]string{"CODITEM": itemID},
		[]string{"QUANTIDADE", "VLRUNIT", "VLRTOTAL"},
		[]string{quantity.String(), unitPrice.String(), lineTotal.String()},
	)
	return g.client.Call(ctx, savePath, http.MethodPost, payload, nil)
}

// Deactivate marca o item como inativo. A linha permanece no ERP; uma
// consulta direta pelo CODITEM continua encontrando o registro.
func (g *LineItemGateway) Deactivate(ctx context.Context, itemID, leadID string) error {
	payload := newSaveRequest(lineItemEntity,
		map[string]string{"CODITEM": itemID},
		[]string{"ATIVO"},
		[]string{flagInactive},
	)
	return g.client.Call(ctx, savePath, http.MethodPost, payload, nil)
}

// ListActive consulta os itens ativos do lead.
func (g *LineItemGateway) ListActive(ctx context.Context, leadID string) ([]*entity.LineItem, error) {
	payload := newLoadRequest(lineItemEntity, lineItemFieldList, activeFilter(leadID))

	var resp loadResponse
	if err := g.client.Call(ctx, queryPath, http.MethodPost, payload, &resp); err != nil {
		return nil, err
	}

	items := make([]*entity.LineItem, 0, len(resp.ResponseBody.Entities.Entity))
	for _, r := range resp.ResponseBody.Entities.Entity {
		items = append(items, &entity.LineItem{
			ItemID:      r.str(0),
			LeadID:      r.str(1),
			ProductID:   r.str(2),
			Description: r.str(3),
			Quantity:    r.dec(4),
			UnitPrice:   r.dec(5),
			LineTotal:   r.dec(6),
			Active:      parseActiveFlag(r.str(7)),
			InsertedAt:  r.date(8),
		})
	}
	return items, nil
}

// SumActive soma VLRTOTAL dos itens ativos do lead. Valores ausentes ou não
// numéricos contam como zero; nenhum item ativo devolve 0, não erro.
func (g *LineItemGateway) SumActive(ctx context.Context, leadID string) (decimal.Decimal, error) {
	payload := newLoadRequest(lineItemEntity, "VLRTOTAL", activeFilter(leadID))

	var resp loadResponse
	if err := g.client.Call(ctx, queryPath, http.MethodPost, payload, &resp); err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, r := range resp.ResponseBody.Entities.Entity {
		total = total.Add(r.dec(0))
	}
	return total, nil
}

func activeFilter(leadID string) string {
	return fmt.Sprintf("CODLEAD = '%s' AND ATIVO = '%s'", leadID, flagActive)
}
