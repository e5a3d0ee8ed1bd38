package sankhya

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-leads-api/internal/application/ports"
)

const productEntity = "AD_PRODUTOS"

var _ ports.PriceGateway = (*PriceGateway)(nil)

// PriceGateway resolve o preço de tabela de um produto (AD_PRODUTOS).
type PriceGateway struct {
	client *Client
}

// NewPriceGateway constrói o adaptador.
func NewPriceGateway(client *Client) *PriceGateway {
	return &PriceGateway{client: client}
}

// UnitPrice devolve o preço unitário vigente do produto. Produto sem preço
// cadastrado devolve 0, não erro (o chamador decide o que fazer).
func (g *PriceGateway) UnitPrice(ctx context.Context, productID string) (decimal.Decimal, error) {
	filter := fmt.Sprintf("CODPROD = '%s' AND ATIVO = '%s'", productID, flagActive)
	payload := newLoadRequest(productEntity, "VLRUNIT", filter)

	var resp loadResponse
	if err := g.client.Call(ctx, queryPath, http.MethodPost, payload, &resp); err != nil {
		return decimal.Zero, err
	}

	for _, r := range resp.ResponseBody.Entities.Entity {
		return r.dec(0), nil
	}
	return decimal.Zero, nil
}
