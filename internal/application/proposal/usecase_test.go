package proposal_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-leads-api/internal/application/proposal"
	"github.com/jhoicas/crm-leads-api/internal/domain"
	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
)

type stubLeadRepo struct {
	lead *entity.Lead
}

func (s *stubLeadRepo) List(_, _ string, _ bool) ([]*entity.Lead, error) { return nil, nil }
func (s *stubLeadRepo) GetByID(_ string) (*entity.Lead, error)           { return s.lead, nil }
func (s *stubLeadRepo) LastID(_ string) (string, error)                  { return "", nil }

type stubItems struct {
	items []*entity.LineItem
}

func (s *stubItems) Add(_ context.Context, _ *entity.LineItem) error { return nil }
func (s *stubItems) Update(_ context.Context, _ string, _, _, _ decimal.Decimal) error {
	return nil
}
func (s *stubItems) Deactivate(_ context.Context, _, _ string) error { return nil }
func (s *stubItems) ListActive(_ context.Context, _ string) ([]*entity.LineItem, error) {
	return s.items, nil
}
func (s *stubItems) SumActive(_ context.Context, _ string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// stubGenerator captura os argumentos para inspecionar o total impresso.
type stubGenerator struct {
	gotTotal decimal.Decimal
	gotItems int
}

func (s *stubGenerator) GenerateQuotePDF(_ context.Context, _ *entity.Lead, items []*entity.LineItem, total decimal.Decimal) ([]byte, error) {
	s.gotTotal = total
	s.gotItems = len(items)
	return []byte("%PDF-"), nil
}

// O total impresso é a soma viva dos itens listados, não o VALOR persistido —
// a proposta nunca mostra um total defasado.
func TestGenerate_TotalRecalculadoDosItens(t *testing.T) {
	repo := &stubLeadRepo{lead: &entity.Lead{
		ID:         "7",
		Name:       "ACME Ltda",
		TotalValue: decimal.NewFromInt(999), // defasado de propósito
	}}
	items := &stubItems{items: []*entity.LineItem{
		{LineTotal: decimal.NewFromInt(30)},
		{LineTotal: decimal.NewFromFloat(12.5)},
	}}
	gen := &stubGenerator{}

	uc := proposal.NewUseCase(repo, items, gen)
	doc, err := uc.Generate(context.Background(), "7")
	require.NoError(t, err)

	assert.NotEmpty(t, doc)
	assert.Equal(t, "42.5", gen.gotTotal.String())
	assert.Equal(t, 2, gen.gotItems)
}

func TestGenerate_LeadInexistente(t *testing.T) {
	uc := proposal.NewUseCase(&stubLeadRepo{}, &stubItems{}, &stubGenerator{})

	_, err := uc.Generate(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerate_CodLeadVazio(t *testing.T) {
	uc := proposal.NewUseCase(&stubLeadRepo{}, &stubItems{}, &stubGenerator{})

	_, err := uc.Generate(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
