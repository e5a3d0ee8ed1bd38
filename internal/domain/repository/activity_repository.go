package repository

import "github.com/jhoicas/crm-leads-api/internal/domain/entity"

// ActivityRepository define o porto de leitura de atividades.
type ActivityRepository interface {
	// ListByLead lista atividades de um lead; leadID vazio devolve todas
	// (calendário geral). onlyActive filtra ATIVO = 'S'.
	ListByLead(leadID string, onlyActive bool) ([]*entity.Activity, error)
}
