package entity

import "time"

// Status de atividade. Um status explícito gravado no banco sempre prevalece;
// quando ausente, o status é derivado da data de início (ver activities.DeriveStatus).
const (
	StatusAguardando = "AGUARDANDO"
	StatusAtrasado   = "ATRASADO"
)

// Activity é uma interação agendada ou registrada (ligação, tarefa, reunião).
// LeadID nulo significa tarefa avulsa, sem lead associado.
type Activity struct {
	ID              string // CODATIVIDADE
	LeadID          *string
	Type            string // TIPO: Ligação, Reunião, Tarefa...
	Description     string
	Extra           string // DADOS_COMPLEMENTARES
	Color           string
	StartAt         time.Time
	EndAt           time.Time // default: StartAt
	Status          string    // vazio = derivar pela data
	CreatedByUserID string
}

// DerivedEvent é a projeção somente-leitura de Activity para o calendário.
type DerivedEvent struct {
	EventID     string // = ActivityID
	ActivityID  string
	LeadID      *string
	Type        string
	Title       string // Description truncada em 100 caracteres
	Description string
	StartAt     time.Time
	EndAt       time.Time
	Status      string
	Color       string
}
