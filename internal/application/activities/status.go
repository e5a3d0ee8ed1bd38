// Package activities implementa atividades de lead (criação, listagem) e a
// derivação de status para o calendário.
package activities

import (
	"time"

	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
)

// DeriveStatus calcula o status de exibição de uma atividade. Função pura de
// (status gravado, data de início, agora): um status gravado no banco sempre
// prevalece, textual; sem status, compara só a data de calendário (hora
// descartada) — início antes de hoje é ATRASADO, o resto AGUARDANDO.
func DeriveStatus(stored string, startAt, now time.Time) string {
	if stored != "" {
		return stored
	}
	start := truncateDay(startAt)
	today := truncateDay(now)
	if start.Before(today) {
		return entity.StatusAtrasado
	}
	return entity.StatusAguardando
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// truncateTitle corta a descrição em maxRunes caracteres para o título do
// evento, sem partir caracteres multibyte.
func truncateTitle(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}
