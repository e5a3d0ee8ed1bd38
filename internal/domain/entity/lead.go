package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lead representa um prospecto comercial sincronizado com o ERP (AD_LEADS).
// TotalValue é um valor derivado: somente o reconciliador de totais pode
// escrevê-lo, sempre como soma dos itens ativos do lead.
type Lead struct {
	ID          string // CODLEAD
	CompanyID   string // CODEMPRESA
	OwnerUserID string // CODUSUARIO (vendedor responsável)
	Name        string // NOME
	PartnerID   string // CODPARC (parceiro Sankhya, opcional)
	Stage       string // ETAPA do funil
	Notes       string
	TotalValue  decimal.Decimal // VALOR = Σ LineItem.LineTotal dos itens ativos
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
