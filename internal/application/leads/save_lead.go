package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-leads-api/internal/application/dto"
	"github.com/jhoicas/crm-leads-api/internal/application/ports"
	"github.com/jhoicas/crm-leads-api/internal/domain"
	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
	"github.com/jhoicas/crm-leads-api/internal/domain/repository"
)

// Confirmação de visibilidade do lead recém-criado antes de anexar produtos.
const (
	visibilityAttempts = 10
	visibilityInterval = 200 * time.Millisecond
)

// SaveLeadUseCase salva um lead e anexa os produtos enviados junto. É uma
// saga sem rollback: lead salvo com falha em um produto deixa o lead e os
// produtos já anexados no ERP.
type SaveLeadUseCase struct {
	gateway    ports.LeadGateway
	reconciler *Reconciler
	repo       repository.LeadRepository
	sleep      func(time.Duration)
}

// NewSaveLeadUseCase constrói o caso de uso.
func NewSaveLeadUseCase(gateway ports.LeadGateway, reconciler *Reconciler, repo repository.LeadRepository) *SaveLeadUseCase {
	return &SaveLeadUseCase{
		gateway:    gateway,
		reconciler: reconciler,
		repo:       repo,
		sleep:      time.Sleep,
	}
}

// Save cria ou atualiza o lead e anexa os PRODUTOS um a um, em ordem, cada
// anexação completando sua própria reagregação antes da seguinte. O usuário
// da sessão vira dono apenas na criação (CODLEAD ausente no corpo).
func (uc *SaveLeadUseCase) Save(ctx context.Context, in dto.SaveLeadRequest, user entity.SessionUser) (*dto.LeadResponse, error) {
	if in.NOME == "" {
		return nil, domain.ErrInvalidInput
	}

	isNew := in.CODLEAD == ""
	lead := &entity.Lead{
		ID:        in.CODLEAD.String(),
		Name:      in.NOME,
		PartnerID: in.CODPARC.String(),
		Stage:     in.ETAPA,
		Notes:     in.OBSERVACAO,
	}
	if isNew {
		lead.CompanyID = user.CompanyID
		lead.OwnerUserID = user.ID
	}

	echoed, err := uc.gateway.Save(ctx, lead, isNew)
	if err != nil {
		return nil, err
	}

	leadID := echoed
	if leadID == "" {
		leadID = in.CODLEAD.String()
	}
	if leadID == "" {
		// O gateway não ecoou a chave gerada: cair para o último lead da
		// empresa, como o fluxo original fazia.
		last, err := uc.repo.LastID(user.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("lead salvo, mas sem CODLEAD para vincular produtos: %w", err)
		}
		leadID = last
	}

	log.Info().
		Str("cod_lead", leadID).
		Str("nome", in.NOME).
		Bool("novo", isNew).
		Int("produtos", len(in.PRODUTOS)).
		Msg("lead salvo")

	if len(in.PRODUTOS) > 0 {
		if isNew {
			uc.waitVisible(ctx, leadID)
		}
		if err := uc.attachItems(ctx, leadID, in.PRODUTOS); err != nil {
			return nil, err
		}
	}

	return uc.response(leadID, lead), nil
}

// waitVisible consulta o lead recém-criado até ele aparecer no gateway, em
// vez do sleep fixo do fluxo original. Se não aparecer dentro do limite,
// seguimos mesmo assim e deixamos a anexação reportar o erro real.
func (uc *SaveLeadUseCase) waitVisible(ctx context.Context, leadID string) {
	for attempt := 1; attempt <= visibilityAttempts; attempt++ {
		ok, err := uc.gateway.Exists(ctx, leadID)
		if err == nil && ok {
			return
		}
		if err != nil {
			log.Warn().Err(err).Str("cod_lead", leadID).Int("tentativa", attempt).
				Msg("confirmação de visibilidade do lead falhou")
		}
		uc.sleep(visibilityInterval)
	}
	log.Warn().Str("cod_lead", leadID).
		Msg("lead ainda não visível no gateway; prosseguindo com a anexação")
}

// attachItems anexa os produtos sequencialmente via reconciliador. Produto
// sem CODPROD ou DESCRPROD é pulado com aviso; erro em produto válido aborta
// a saga (os anteriores ficam).
func (uc *SaveLeadUseCase) attachItems(ctx context.Context, leadID string, produtos []dto.SaveLeadItem) error {
	for i, p := range produtos {
		if p.CODPROD == "" || p.DESCRPROD == "" {
			log.Warn().
				Str("cod_lead", leadID).
				Int("posicao", i+1).
				Msg("produto sem CODPROD/DESCRPROD; pulando")
			continue
		}

		quantity := p.QUANTIDADE
		if quantity.IsZero() {
			quantity = p.QTDNEG
		}
		if quantity.IsZero() {
			quantity = decimal.NewFromInt(1)
		}

		_, err := uc.reconciler.AddLineItem(ctx, dto.AddLineItemRequest{
			CODLEAD:    dto.Code(leadID),
			CODPROD:    p.CODPROD,
			DESCRPROD:  p.DESCRPROD,
			QUANTIDADE: quantity,
			VLRUNIT:    p.VLRUNIT,
		})
		if err != nil {
			return fmt.Errorf("falha ao salvar produto %q: %w", p.DESCRPROD, err)
		}
	}
	return nil
}

// response monta o eco do lead salvo: preferimos a linha do banco (já com o
// total reconciliado); se ela ainda não estiver visível, ecoamos a entrada.
func (uc *SaveLeadUseCase) response(leadID string, lead *entity.Lead) *dto.LeadResponse {
	if stored, err := uc.repo.GetByID(leadID); err == nil && stored != nil {
		return toLeadResponse(stored)
	}
	return &dto.LeadResponse{
		CODLEAD:          leadID,
		NOME:             lead.Name,
		CODPARC:          lead.PartnerID,
		CODEMPRESA:       lead.CompanyID,
		CODUSUARIO:       lead.OwnerUserID,
		ETAPA:            lead.Stage,
		OBSERVACAO:       lead.Notes,
		VALOR:            decimal.Zero,
		DATA_ATUALIZACAO: time.Now(),
	}
}

func toLeadResponse(l *entity.Lead) *dto.LeadResponse {
	return &dto.LeadResponse{
		CODLEAD:          l.ID,
		NOME:             l.Name,
		CODPARC:          l.PartnerID,
		CODEMPRESA:       l.CompanyID,
		CODUSUARIO:       l.OwnerUserID,
		ETAPA:            l.Stage,
		OBSERVACAO:       l.Notes,
		VALOR:            l.TotalValue,
		DATA_ATUALIZACAO: l.UpdatedAt,
	}
}
