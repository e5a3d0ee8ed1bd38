// Package leads concentra o núcleo do proxy: a reconciliação do total do
// lead com a soma dos seus itens ativos no ERP, e a saga de criação de lead
// com anexação de produtos.
package leads

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-leads-api/internal/application/dto"
	"github.com/jhoicas/crm-leads-api/internal/application/ports"
	"github.com/jhoicas/crm-leads-api/internal/domain"
	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
)

// leadLocks serializa as mutações por lead: duas escritas concorrentes no
// mesmo lead executariam gravação→agregação→total intercaladas e o último
// escritor apagaria o snapshot do outro. Entradas não são removidas do mapa.
type leadLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLeadLocks() *leadLocks {
	return &leadLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *leadLocks) acquire(leadID string) func() {
	l.mu.Lock()
	m, ok := l.locks[leadID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[leadID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// Reconciler orquestra as mutações de item de um lead. Cada operação é uma
// saga sem rollback: grava o item no ERP, reagrega os itens ativos e regrava
// o total do lead. Se a regravação do total falhar depois do item gravado, o
// item fica e o total fica defasado; o erro é logado com identificadores
// suficientes para reconciliação manual.
type Reconciler struct {
	items  ports.LineItemGateway
	leads  ports.LeadGateway
	prices ports.PriceGateway
	locks  *leadLocks
}

// NewReconciler constrói o reconciliador.
func NewReconciler(items ports.LineItemGateway, leads ports.LeadGateway, prices ports.PriceGateway) *Reconciler {
	return &Reconciler{
		items:  items,
		leads:  leads,
		prices: prices,
		locks:  newLeadLocks(),
	}
}

// AddLineItem adiciona um produto ao lead e devolve o novo total agregado.
// VLRUNIT ausente ou zero é resolvido na tabela de preços do ERP; VLRTOTAL
// enviado pelo cliente é ignorado e recalculado.
func (r *Reconciler) AddLineItem(ctx context.Context, in dto.AddLineItemRequest) (decimal.Decimal, error) {
	if in.CODLEAD == "" || in.CODPROD == "" || in.DESCRPROD == "" || in.QUANTIDADE.IsZero() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	leadID := in.CODLEAD.String()

	unlock := r.locks.acquire(leadID)
	defer unlock()

	unitPrice := in.VLRUNIT
	if unitPrice.IsZero() {
		resolved, err := r.prices.UnitPrice(ctx, in.CODPROD.String())
		if err != nil {
			return decimal.Zero, err
		}
		unitPrice = resolved
		log.Debug().
			Str("cod_prod", in.CODPROD.String()).
			Str("vlr_unit", unitPrice.String()).
			Msg("preço do produto resolvido no ERP")
	}

	item := &entity.LineItem{
		LeadID:      leadID,
		ProductID:   in.CODPROD.String(),
		Description: in.DESCRPROD,
		Quantity:    in.QUANTIDADE,
		UnitPrice:   unitPrice,
		Active:      true,
	}
	item.ComputeTotal()

	if err := r.items.Add(ctx, item); err != nil {
		return decimal.Zero, err
	}

	return r.reconcile(ctx, leadID)
}

// UpdateLineItem regrava quantidade e valor unitário de um item e devolve o
// novo total agregado. Os quatro campos são obrigatórios.
func (r *Reconciler) UpdateLineItem(ctx context.Context, itemID, leadID string, quantity, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if itemID == "" || leadID == "" || quantity.IsZero() || unitPrice.IsZero() {
		return decimal.Zero, domain.ErrInvalidInput
	}

	unlock := r.locks.acquire(leadID)
	defer unlock()

	lineTotal := quantity.Mul(unitPrice)
	if err := r.items.Update(ctx, itemID, quantity, unitPrice, lineTotal); err != nil {
		return decimal.Zero, err
	}

	return r.reconcile(ctx, leadID)
}

// RemoveLineItem inativa o item (nunca apaga) e devolve o novo total
// agregado sobre os itens que restaram ativos.
func (r *Reconciler) RemoveLineItem(ctx context.Context, itemID, leadID string) (decimal.Decimal, error) {
	if itemID == "" || leadID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}

	unlock := r.locks.acquire(leadID)
	defer unlock()

	if err := r.items.Deactivate(ctx, itemID, leadID); err != nil {
		return decimal.Zero, err
	}

	return r.reconcile(ctx, leadID)
}

// reconcile reagrega os itens ativos e regrava o total do lead. Reexecutar a
// agregação após a gravação converge sempre para o mesmo total; é a gravação
// do item que não é idempotente.
func (r *Reconciler) reconcile(ctx context.Context, leadID string) (decimal.Decimal, error) {
	total, err := r.items.SumActive(ctx, leadID)
	if err != nil {
		log.Error().Err(err).
			Str("cod_lead", leadID).
			Msg("item gravado, mas a agregação falhou; total do lead defasado")
		return decimal.Zero, err
	}

	if err := r.leads.UpdateTotal(ctx, leadID, total); err != nil {
		log.Error().Err(err).
			Str("cod_lead", leadID).
			Str("novo_total", total.String()).
			Msg("item gravado, mas a atualização do total falhou; total do lead defasado")
		return decimal.Zero, err
	}

	log.Info().
		Str("cod_lead", leadID).
		Str("novo_total", total.String()).
		Msg("total do lead reconciliado")
	return total, nil
}
