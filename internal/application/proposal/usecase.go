// Package proposal gera a proposta comercial de um lead em PDF: cabeçalho do
// lead, tabela dos produtos ativos e o total agregado.
package proposal

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-leads-api/internal/application/ports"
	"github.com/jhoicas/crm-leads-api/internal/domain"
	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
	"github.com/jhoicas/crm-leads-api/internal/domain/repository"
)

// QuotePDFGenerator porto de saída para a geração do documento.
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, lead *entity.Lead, items []*entity.LineItem, total decimal.Decimal) ([]byte, error)
}

// UseCase monta a proposta: lead do banco, itens ativos do ERP.
type UseCase struct {
	leadRepo  repository.LeadRepository
	items     ports.LineItemGateway
	generator QuotePDFGenerator
}

// NewUseCase constrói o caso de uso.
func NewUseCase(leadRepo repository.LeadRepository, items ports.LineItemGateway, generator QuotePDFGenerator) *UseCase {
	return &UseCase{leadRepo: leadRepo, items: items, generator: generator}
}

// Generate devolve os bytes do PDF da proposta do lead. O total impresso é
// a soma dos itens listados, não o VALOR gravado — a proposta reflete o que
// está na tabela mesmo que o total persistido esteja defasado.
func (uc *UseCase) Generate(ctx context.Context, leadID string) ([]byte, error) {
	if leadID == "" {
		return nil, domain.ErrInvalidInput
	}

	lead, err := uc.leadRepo.GetByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}

	items, err := uc.items.ListActive(ctx, leadID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.LineTotal)
	}

	return uc.generator.GenerateQuotePDF(ctx, lead, items, total)
}
