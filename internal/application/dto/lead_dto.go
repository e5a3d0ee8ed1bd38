package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddLineItemRequest corpo de POST /api/leads/produtos/adicionar.
// VLRUNIT ausente ou zero dispara a consulta de preço no ERP; VLRTOTAL
// enviado pelo front é ignorado e recalculado no servidor.
type AddLineItemRequest struct {
	CODLEAD    Code            `json:"CODLEAD"`
	CODPROD    Code            `json:"CODPROD"`
	DESCRPROD  string          `json:"DESCRPROD"`
	QUANTIDADE decimal.Decimal `json:"QUANTIDADE"`
	VLRUNIT    decimal.Decimal `json:"VLRUNIT"`
	VLRTOTAL   decimal.Decimal `json:"VLRTOTAL"`
}

// UpdateLineItemRequest corpo de POST /api/leads/produtos/atualizar.
type UpdateLineItemRequest struct {
	CodItem    Code            `json:"codItem"`
	CodLead    Code            `json:"codLead"`
	Quantidade decimal.Decimal `json:"quantidade"`
	VlrUnit    decimal.Decimal `json:"vlrunit"`
}

// RemoveLineItemRequest corpo de POST /api/leads/produtos/remover.
type RemoveLineItemRequest struct {
	CodItem Code `json:"codItem"`
	CodLead Code `json:"codLead"`
}

// TotalResponse resposta das mutações de item: o novo total agregado do lead.
type TotalResponse struct {
	Success        bool            `json:"success"`
	NovoValorTotal decimal.Decimal `json:"novoValorTotal"`
	Message        string          `json:"message,omitempty"`
}

// LineItemResponse item de produto em GET /api/leads/produtos.
type LineItemResponse struct {
	CODITEM    string          `json:"CODITEM"`
	CODLEAD    string          `json:"CODLEAD"`
	CODPROD    string          `json:"CODPROD"`
	DESCRPROD  string          `json:"DESCRPROD"`
	QUANTIDADE decimal.Decimal `json:"QUANTIDADE"`
	VLRUNIT    decimal.Decimal `json:"VLRUNIT"`
	VLRTOTAL   decimal.Decimal `json:"VLRTOTAL"`
	ATIVO      string          `json:"ATIVO"` // 'S'/'N', como o front espera
}

// SaveLeadItem produto embutido em SaveLeadRequest. QTDNEG é o alias que
// algumas telas antigas ainda enviam no lugar de QUANTIDADE.
type SaveLeadItem struct {
	CODPROD    Code            `json:"CODPROD"`
	DESCRPROD  string          `json:"DESCRPROD"`
	QUANTIDADE decimal.Decimal `json:"QUANTIDADE"`
	QTDNEG     decimal.Decimal `json:"QTDNEG"`
	VLRUNIT    decimal.Decimal `json:"VLRUNIT"`
	VLRTOTAL   decimal.Decimal `json:"VLRTOTAL"`
}

// SaveLeadRequest corpo de POST /api/leads/salvar. CODLEAD ausente = criação
// (o usuário da sessão vira dono); presente = atualização.
type SaveLeadRequest struct {
	CODLEAD    Code           `json:"CODLEAD"`
	NOME       string         `json:"NOME"`
	CODPARC    Code           `json:"CODPARC"`
	ETAPA      string         `json:"ETAPA"`
	OBSERVACAO string         `json:"OBSERVACAO"`
	PRODUTOS   []SaveLeadItem `json:"PRODUTOS"`
}

// LeadResponse lead em GET /api/leads e na resposta de salvar.
type LeadResponse struct {
	CODLEAD          string          `json:"CODLEAD"`
	NOME             string          `json:"NOME"`
	CODPARC          string          `json:"CODPARC,omitempty"`
	CODEMPRESA       string          `json:"CODEMPRESA,omitempty"`
	CODUSUARIO       string          `json:"CODUSUARIO,omitempty"`
	ETAPA            string          `json:"ETAPA,omitempty"`
	OBSERVACAO       string          `json:"OBSERVACAO,omitempty"`
	VALOR            decimal.Decimal `json:"VALOR"`
	DATA_ATUALIZACAO time.Time       `json:"DATA_ATUALIZACAO"`
}
