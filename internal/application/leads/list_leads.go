package leads

import (
	"github.com/jhoicas/crm-leads-api/internal/application/dto"
	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
	"github.com/jhoicas/crm-leads-api/internal/domain/repository"
)

// ListLeadsUseCase lista os leads visíveis para o usuário da sessão.
type ListLeadsUseCase struct {
	repo repository.LeadRepository
}

// NewListLeadsUseCase constrói o caso de uso.
func NewListLeadsUseCase(repo repository.LeadRepository) *ListLeadsUseCase {
	return &ListLeadsUseCase{repo: repo}
}

// List devolve todos os leads da empresa para admins; para vendedores, só os
// leads de que são donos.
func (uc *ListLeadsUseCase) List(user entity.SessionUser) ([]dto.LeadResponse, error) {
	list, err := uc.repo.List(user.CompanyID, user.ID, user.IsAdmin())
	if err != nil {
		return nil, err
	}
	out := make([]dto.LeadResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toLeadResponse(l))
	}
	return out, nil
}
