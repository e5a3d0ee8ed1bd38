package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
)

// Portos de saída para o gateway do ERP (Sankhya). A camada de aplicação só
// conhece estes contratos; o adaptador concreto vive em infrastructure/sankhya
// e, nos testes, é substituído por fakes em memória.

// LineItemGateway grava e consulta itens de produto de um lead no ERP.
type LineItemGateway interface {
	// Add grava o item como ativo (ATIVO 'S', DATA_INCLUSAO hoje).
	Add(ctx context.Context, item *entity.LineItem) error
	// Update regrava quantidade, valor unitário e total pelo pk CODITEM.
	Update(ctx context.Context, itemID string, quantity, unitPrice, lineTotal decimal.Decimal) error
	// Deactivate marca ATIVO 'N'. Nunca apaga a linha (histórico).
	Deactivate(ctx context.Context, itemID, leadID string) error
	// ListActive devolve os itens ativos do lead.
	ListActive(ctx context.Context, leadID string) ([]*entity.LineItem, error)
	// SumActive soma VLRTOTAL dos itens ativos; conjunto vazio = 0, não erro.
	SumActive(ctx context.Context, leadID string) (decimal.Decimal, error)
}

// LeadGateway grava leads e o total derivado no ERP.
type LeadGateway interface {
	// Save cria (pk ausente) ou atualiza (pk presente) o lead e devolve o
	// CODLEAD salvo quando o ERP o ecoa; string vazia quando não.
	Save(ctx context.Context, lead *entity.Lead, isNew bool) (string, error)
	// UpdateTotal regrava VALOR e DATA_ATUALIZACAO do lead.
	UpdateTotal(ctx context.Context, leadID string, total decimal.Decimal) error
	// Exists confirma que o lead já está visível para consultas no ERP
	// (confirmação de leitura-após-escrita na criação).
	Exists(ctx context.Context, leadID string) (bool, error)
}

// ActivityGateway grava atividades no ERP.
type ActivityGateway interface {
	// Create grava a atividade e devolve o CODATIVIDADE quando ecoado.
	Create(ctx context.Context, a *entity.Activity) (string, error)
}

// PriceGateway resolve o preço de tabela de um produto no ERP.
type PriceGateway interface {
	// UnitPrice devolve o preço unitário vigente; 0 quando não cadastrado.
	UnitPrice(ctx context.Context, productID string) (decimal.Decimal, error)
}
