package sankhya

import (
	"context"
	"net/http"

	"github.com/jhoicas/crm-leads-api/internal/application/ports"
	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
)

const activityEntity = "AD_ATIVIDADES"

var _ ports.ActivityGateway = (*ActivityGateway)(nil)

// ActivityGateway adaptador do porto ActivityGateway sobre AD_ATIVIDADES.
type ActivityGateway struct {
	client *Client
}

// NewActivityGateway constrói o adaptador.
func NewActivityGateway(client *Client) *ActivityGateway {
	return &ActivityGateway{client: client}
}

// Create grava a atividade. CODLEAD vazio grava tarefa avulsa. STATUS não é
// gravado na criação: o status exibido é derivado da data até alguém fixá-lo.
func (g *ActivityGateway) Create(ctx context.Context, a *entity.Activity) (string, error) {
	leadID := ""
	if a.LeadID != nil {
		leadID = *a.LeadID
	}

	payload := newSaveRequest(activityEntity, nil,
		[]string{"CODLEAD", "TIPO", "DESCRICAO", "DADOS_COMPLEMENTARES", "COR", "DATA_INICIO", "DATA_FIM", "CODUSUARIO", "ATIVO"},
		[]string{
			leadID,
			a.Type,
			a.Description,
			a.Extra,
			a.Color,
			a.StartAt.Format(dateTimeLayout),
			a.EndAt.Format(dateTimeLayout),
			a.CreatedByUserID,
			flagActive,
		},
	)

	var resp saveResponse
	if err := g.client.Call(ctx, savePath, http.MethodPost, payload, &resp); err != nil {
		return "", err
	}

	for _, r := range resp.ResponseBody.Entities.Entity {
		if v, ok := r["CODATIVIDADE"]; ok && v.Value != "" {
			return v.Value, nil
		}
		if v := r.str(0); v != "" {
			return v, nil
		}
	}
	// O front tolera eco vazio; a atividade existe mesmo sem o código.
	return "", nil
}
