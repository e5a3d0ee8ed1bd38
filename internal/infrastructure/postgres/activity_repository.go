package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
	"github.com/jhoicas/crm-leads-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo leituras de atividades sobre o espelho relacional do ERP
// (ad_atividades). codlead nulo = tarefa avulsa.
type ActivityRepo struct {
	pool *pgxpool.Pool
}

// NewActivityRepository constrói o adaptador de leitura de atividades.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{pool: pool}
}

// ListByLead lista atividades de um lead; leadID vazio devolve todas
// (visão de calendário). onlyActive filtra ativo = 'S'.
func (r *ActivityRepo) ListByLead(leadID string, onlyActive bool) ([]*entity.Activity, error) {
	query := `
		SELECT codatividade, codlead, COALESCE(tipo, ''), COALESCE(descricao, ''),
		       COALESCE(dados_complementares, ''), COALESCE(cor, ''),
		       data_inicio, COALESCE(data_fim, data_inicio),
		       COALESCE(status, ''), COALESCE(codusuario, '')
		FROM ad_atividades
		WHERE 1 = 1`
	var args []any
	if leadID != "" {
		args = append(args, leadID)
		query += fmt.Sprintf(" AND codlead = $%d", len(args))
	}
	if onlyActive {
		query += " AND ativo = 'S'"
	}
	query += " ORDER BY data_inicio"

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar atividades: %w", err)
	}
	defer rows.Close()

	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(
			&a.ID, &a.LeadID, &a.Type, &a.Description,
			&a.Extra, &a.Color,
			&a.StartAt, &a.EndAt,
			&a.Status, &a.CreatedByUserID,
		); err != nil {
			return nil, fmt.Errorf("scan atividade: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
