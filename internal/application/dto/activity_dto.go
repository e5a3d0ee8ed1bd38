package dto

import "time"

// CreateActivityRequest corpo de POST /api/leads/atividades/criar.
// CODLEAD nulo ou ausente cria uma tarefa avulsa, sem lead. Datas em RFC3339;
// DATA_INICIO ausente = agora, DATA_FIM ausente = DATA_INICIO.
type CreateActivityRequest struct {
	CODLEAD              *Code      `json:"CODLEAD"`
	TIPO                 string     `json:"TIPO"`
	DESCRICAO            string     `json:"DESCRICAO"`
	DADOS_COMPLEMENTARES string     `json:"DADOS_COMPLEMENTARES"`
	COR                  string     `json:"COR"`
	DATA_INICIO          *time.Time `json:"DATA_INICIO"`
	DATA_FIM             *time.Time `json:"DATA_FIM"`
}

// CreateActivityResponse eco enxuto da atividade criada.
type CreateActivityResponse struct {
	CODATIVIDADE string  `json:"CODATIVIDADE"`
	CODLEAD      *string `json:"CODLEAD"`
	TIPO         string  `json:"TIPO"`
	DESCRICAO    string  `json:"DESCRICAO"`
}

// ActivityResponse atividade em GET /api/leads/atividades.
type ActivityResponse struct {
	CODATIVIDADE         string    `json:"CODATIVIDADE"`
	CODLEAD              *string   `json:"CODLEAD"`
	TIPO                 string    `json:"TIPO"`
	DESCRICAO            string    `json:"DESCRICAO"`
	DADOS_COMPLEMENTARES string    `json:"DADOS_COMPLEMENTARES,omitempty"`
	COR                  string    `json:"COR,omitempty"`
	DATA_INICIO          time.Time `json:"DATA_INICIO"`
	DATA_FIM             time.Time `json:"DATA_FIM"`
	STATUS               string    `json:"STATUS,omitempty"`
}

// EventResponse evento de calendário derivado de uma atividade
// (GET /api/leads/eventos). TITULO é a descrição truncada em 100 caracteres;
// STATUS é o gravado no banco ou o derivado da data de início.
type EventResponse struct {
	CODEVENTO    string    `json:"CODEVENTO"`
	CODATIVIDADE string    `json:"CODATIVIDADE"`
	CODLEAD      *string   `json:"CODLEAD"`
	TIPO         string    `json:"TIPO"`
	TITULO       string    `json:"TITULO"`
	DESCRICAO    string    `json:"DESCRICAO"`
	DATA_INICIO  time.Time `json:"DATA_INICIO"`
	DATA_FIM     time.Time `json:"DATA_FIM"`
	STATUS       string    `json:"STATUS"`
	COR          string    `json:"COR,omitempty"`
}
