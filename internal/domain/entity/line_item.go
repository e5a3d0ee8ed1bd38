package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem é um produto vinculado a um lead (AD_ADLEADSPRODUTOS no ERP).
// LineTotal é sempre recalculado no servidor (Quantity × UnitPrice); nunca
// confiamos no total enviado pelo cliente. Remoção é lógica: Active = false,
// a linha permanece no ERP para histórico.
type LineItem struct {
	ItemID      string // CODITEM (gerado pelo ERP)
	LeadID      string // CODLEAD
	ProductID   string // CODPROD
	Description string // DESCRPROD
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal // = Quantity × UnitPrice
	Active      bool            // ATIVO 'S'/'N' na fronteira do ERP
	InsertedAt  time.Time       // DATA_INCLUSAO
}

// ComputeTotal recalcula LineTotal a partir de Quantity e UnitPrice.
func (li *LineItem) ComputeTotal() {
	li.LineTotal = li.Quantity.Mul(li.UnitPrice)
}
