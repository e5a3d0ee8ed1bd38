package repository

import "github.com/jhoicas/crm-leads-api/internal/domain/entity"

// LeadRepository define o porto de leitura de leads sobre o esquema
// relacional sincronizado com o ERP. Escritas de lead passam pelo gateway
// (DatasetSP.save); aqui só consultas.
type LeadRepository interface {
	// List devolve os leads visíveis para o usuário: admin enxerga toda a
	// empresa, vendedor só os próprios.
	List(companyID, ownerUserID string, isAdmin bool) ([]*entity.Lead, error)
	GetByID(id string) (*entity.Lead, error)
	// LastID devolve o CODLEAD mais recente da empresa (fallback quando o
	// save do ERP não ecoa a chave gerada).
	LastID(companyID string) (string, error)
}
