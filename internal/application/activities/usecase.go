package activities

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/crm-leads-api/internal/application/dto"
	"github.com/jhoicas/crm-leads-api/internal/application/ports"
	"github.com/jhoicas/crm-leads-api/internal/domain"
	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
	"github.com/jhoicas/crm-leads-api/internal/domain/repository"
)

// Tamanho máximo do título de evento derivado de uma atividade.
const eventTitleMax = 100

// UseCase casos de uso de atividades: criação via gateway do ERP, listagem e
// projeção de eventos de calendário a partir do banco.
type UseCase struct {
	repo    repository.ActivityRepository
	gateway ports.ActivityGateway
	now     func() time.Time
}

// NewUseCase constrói o caso de uso.
func NewUseCase(repo repository.ActivityRepository, gateway ports.ActivityGateway) *UseCase {
	return &UseCase{repo: repo, gateway: gateway, now: time.Now}
}

// Create cria uma atividade. TIPO e DESCRICAO são obrigatórios; CODLEAD nulo
// cria uma tarefa avulsa. DATA_INICIO ausente = agora; DATA_FIM ausente =
// DATA_INICIO.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateActivityRequest, user entity.SessionUser) (*dto.CreateActivityResponse, error) {
	if in.TIPO == "" || in.DESCRICAO == "" {
		return nil, domain.ErrInvalidInput
	}

	start := uc.now()
	if in.DATA_INICIO != nil {
		start = *in.DATA_INICIO
	}
	end := start
	if in.DATA_FIM != nil {
		end = *in.DATA_FIM
	}

	var leadID *string
	if in.CODLEAD != nil && *in.CODLEAD != "" {
		s := in.CODLEAD.String()
		leadID = &s
	}

	a := &entity.Activity{
		LeadID:          leadID,
		Type:            in.TIPO,
		Description:     in.DESCRICAO,
		Extra:           in.DADOS_COMPLEMENTARES,
		Color:           in.COR,
		StartAt:         start,
		EndAt:           end,
		CreatedByUserID: user.ID,
	}

	id, err := uc.gateway.Create(ctx, a)
	if err != nil {
		log.Error().Err(err).
			Str("tipo", in.TIPO).
			Str("descricao", in.DESCRICAO).
			Msg("falha ao criar atividade no ERP")
		return nil, err
	}

	return &dto.CreateActivityResponse{
		CODATIVIDADE: id,
		CODLEAD:      leadID,
		TIPO:         in.TIPO,
		DESCRICAO:    in.DESCRICAO,
	}, nil
}

// List lista as atividades de um lead (leadID vazio = todas).
func (uc *UseCase) List(leadID string, onlyActive bool) ([]dto.ActivityResponse, error) {
	list, err := uc.repo.ListByLead(leadID, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ActivityResponse{
			CODATIVIDADE:         a.ID,
			CODLEAD:              a.LeadID,
			TIPO:                 a.Type,
			DESCRICAO:            a.Description,
			DADOS_COMPLEMENTARES: a.Extra,
			COR:                  a.Color,
			DATA_INICIO:          a.StartAt,
			DATA_FIM:             eventEnd(a),
			STATUS:               a.Status,
		})
	}
	return out, nil
}

// ListEvents projeta as atividades como eventos de calendário: título
// truncado, fim com default e status gravado ou derivado da data.
func (uc *UseCase) ListEvents(leadID string) ([]dto.EventResponse, error) {
	list, err := uc.repo.ListByLead(leadID, true)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.EventResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.EventResponse{
			CODEVENTO:    a.ID,
			CODATIVIDADE: a.ID,
			CODLEAD:      a.LeadID,
			TIPO:         a.Type,
			TITULO:       truncateTitle(a.Description, eventTitleMax),
			DESCRICAO:    a.Description,
			DATA_INICIO:  a.StartAt,
			DATA_FIM:     eventEnd(a),
			STATUS:       DeriveStatus(a.Status, a.StartAt, now),
			COR:          a.Color,
		})
	}
	return out, nil
}

// eventEnd devolve o fim da atividade, caindo para o início quando ausente.
func eventEnd(a *entity.Activity) time.Time {
	if a.EndAt.IsZero() {
		return a.StartAt
	}
	return a.EndAt
}
