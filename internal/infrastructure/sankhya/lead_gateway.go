package sankhya

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-leads-api/internal/application/ports"
	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
)

const leadEntity = "AD_LEADS"

var _ ports.LeadGateway = (*LeadGateway)(nil)

// LeadGateway adaptador do porto LeadGateway sobre a entidade AD_LEADS.
// O campo VALOR é derivado: só UpdateTotal o escreve.
type LeadGateway struct {
	client *Client
	now    func() time.Time
}

// NewLeadGateway constrói o adaptador.
func NewLeadGateway(client *Client) *LeadGateway {
	return &LeadGateway{client: client, now: time.Now}
}

// Save cria (isNew) ou atualiza o lead. Na criação gravamos também empresa,
// dono e data de criação; na atualização esses campos não são tocados.
// Devolve o CODLEAD ecoado pelo gateway, ou "" quando o eco não vem.
func (g *LeadGateway) Save(ctx context.Context, lead *entity.Lead, isNew bool) (string, error) {
	today := g.now().Format(dateLayout)

	fields := []string{"NOME", "CODPARC", "ETAPA", "OBSERVACAO", "DATA_ATUALIZACAO"}
	values := []string{lead.Name, lead.PartnerID, lead.Stage, lead.Notes, today}

	var pk map[string]string
	if isNew {
		fields = append(fields, "CODEMPRESA", "CODUSUARIO", "VALOR", "DATA_CRIACAO")
		values = append(values, lead.CompanyID, lead.OwnerUserID, "0", today)
	} else {
		pk = map[string]string{"CODLEAD": lead.ID}
	}

	payload := newSaveRequest(leadEntity, pk, fields, values)

	var resp saveResponse
	if err := g.client.Call(ctx, savePath, http.MethodPost, payload, &resp); err != nil {
		return "", err
	}

	// Eco do registro salvo: quando presente, o pk vem como campo nominal
	// ou como primeira coluna (f0).
	for _, r := range resp.ResponseBody.Entities.Entity {
		if v, ok := r["CODLEAD"]; ok && v.Value != "" {
			return v.Value, nil
		}
		if v := r.str(0); v != "" {
			return v, nil
		}
	}
	return "", nil
}

// Exists consulta o lead pelo CODLEAD para confirmar que a gravação já está
// visível no gateway (o armazenamento do ERP é eventualmente consistente).
func (g *LeadGateway) Exists(ctx context.Context, leadID string) (bool, error) {
	filter := fmt.Sprintf("CODLEAD = '%s'", leadID)
	payload := newLoadRequest(leadEntity, "CODLEAD", filter)

	var resp loadResponse
	if err := g.client.Call(ctx, queryPath, http.MethodPost, payload, &resp); err != nil {
		return false, err
	}
	return len(resp.ResponseBody.Entities.Entity) > 0, nil
}

// UpdateTotal regrava o total agregado do lead e a data de atualização.
func (g *LeadGateway) UpdateTotal(ctx context.Context, leadID string, total decimal.Decimal) error {
	payload := newSaveRequest(leadEntity,
		map[string]string{"CODLEAD": leadID},
		[]string{"VALOR", "DATA_ATUALIZACAO"},
		[]string{total.String(), g.now().Format(dateLayout)},
	)
	return g.client.Call(ctx, savePath, http.MethodPost, payload, nil)
}
