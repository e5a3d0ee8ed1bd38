package sankhya

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Formatos textuais do gateway. Bit-exatos com o upstream: o Sankhya grava
// campos de data como texto DD/MM/YYYY.
const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04:05"
)

// Flag de ativo com um caractere na fronteira do ERP. Internamente é bool.
const (
	flagActive   = "S"
	flagInactive = "N"
)

func activeFlag(active bool) string {
	if active {
		return flagActive
	}
	return flagInactive
}

func parseActiveFlag(s string) bool { return s == flagActive }

// ── DatasetSP.save ────────────────────────────────────────────────────────────

type saveRequest struct {
	ServiceName string          `json:"serviceName"`
	RequestBody saveRequestBody `json:"requestBody"`
}

type saveRequestBody struct {
	EntityName string       `json:"entityName"`
	StandAlone bool         `json:"standAlone"`
	Fields     []string     `json:"fields"`
	Records    []saveRecord `json:"records"`
}

type saveRecord struct {
	PK     map[string]string `json:"pk,omitempty"`
	Values map[string]string `json:"values"`
}

// newSaveRequest monta o payload de gravação: fields em ordem e values
// posicionais ("0", "1", ...). pk nulo = inserção; presente = atualização.
func newSaveRequest(entity string, pk map[string]string, fields, values []string) saveRequest {
	vals := make(map[string]string, len(values))
	for i, v := range values {
		vals[fmt.Sprintf("%d", i)] = v
	}
	return saveRequest{
		ServiceName: "DatasetSP.save",
		RequestBody: saveRequestBody{
			EntityName: entity,
			StandAlone: false,
			Fields:     fields,
			Records:    []saveRecord{{PK: pk, Values: vals}},
		},
	}
}

// saveResponse eco da gravação. Quando o gateway devolve o registro salvo,
// ele chega no mesmo formato de entities do loadRecords.
type saveResponse struct {
	ResponseBody struct {
		Entities entities `json:"entities"`
	} `json:"responseBody"`
}

// ── CRUDServiceProvider.loadRecords ──────────────────────────────────────────

type loadRequest struct {
	RequestBody loadRequestBody `json:"requestBody"`
}

type loadRequestBody struct {
	DataSet dataSet `json:"dataSet"`
}

type dataSet struct {
	RootEntity                string    `json:"rootEntity"`
	IncludePresentationFields string    `json:"includePresentationFields"`
	OffsetPage                string    `json:"offsetPage"`
	Entity                    fieldsets `json:"entity"`
	Criteria                  criteria  `json:"criteria"`
}

type fieldsets struct {
	Fieldset fieldset `json:"fieldset"`
}

type fieldset struct {
	List string `json:"list"`
}

type criteria struct {
	Expression expression `json:"expression"`
}

type expression struct {
	Value string `json:"$"`
}

// newLoadRequest monta a consulta genérica: entidade raiz, lista de campos
// (separados por vírgula, na ordem que define f0, f1, ...) e expressão de
// filtro literal.
func newLoadRequest(entity, fieldList, filter string) loadRequest {
	return loadRequest{
		RequestBody: loadRequestBody{
			DataSet: dataSet{
				RootEntity:                entity,
				IncludePresentationFields: "S",
				OffsetPage:                "0",
				Entity:                    fieldsets{Fieldset: fieldset{List: fieldList}},
				Criteria:                  criteria{Expression: expression{Value: filter}},
			},
		},
	}
}

type loadResponse struct {
	ResponseBody struct {
		Entities entities `json:"entities"`
	} `json:"responseBody"`
}

// ── Normalização de resposta ─────────────────────────────────────────────────

// fieldValue valor de campo no formato do gateway: {"$": "texto"}.
type fieldValue struct {
	Value string `json:"$"`
}

// row registro normalizado: chaves f0, f1, ... na ordem do fieldset.
type row map[string]fieldValue

// str devolve o i-ésimo campo como texto ("" quando ausente).
func (r row) str(i int) string {
	return r[fmt.Sprintf("f%d", i)].Value
}

// dec devolve o i-ésimo campo como decimal; ausente ou não numérico vira 0.
func (r row) dec(i int) decimal.Decimal {
	d, err := decimal.NewFromString(r.str(i))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// date interpreta o i-ésimo campo como DD/MM/YYYY; inválido vira zero value.
func (r row) date(i int) time.Time {
	t, err := time.Parse(dateLayout, r.str(i))
	if err != nil {
		return time.Time{}
	}
	return t
}

// rows lista de registros. O gateway devolve um objeto quando a consulta
// casa uma única linha e um array quando casa várias; o UnmarshalJSON
// aceita os dois formatos.
type rows []row

func (e *rows) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*e = nil
		return nil
	}
	if data[0] == '[' {
		var list []row
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*e = list
		return nil
	}
	var single row
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*e = rows{single}
	return nil
}

// entities bloco responseBody.entities. Ausente = consulta sem resultados.
type entities struct {
	Total  string `json:"total"`
	Entity rows   `json:"entity"`
}
