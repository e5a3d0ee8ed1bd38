package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
	"github.com/jhoicas/crm-leads-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo leituras de leads sobre o espelho relacional do ERP (ad_leads).
// Escritas passam pelo gateway; aqui nada escreve.
type LeadRepo struct {
	pool *pgxpool.Pool
}

// NewLeadRepository constrói o adaptador de leitura de leads.
func NewLeadRepository(pool *pgxpool.Pool) *LeadRepo {
	return &LeadRepo{pool: pool}
}

const leadColumns = `
	codlead, COALESCE(codempresa, ''), COALESCE(codusuario, ''), COALESCE(nome, ''),
	COALESCE(codparc, ''), COALESCE(etapa, ''), COALESCE(observacao, ''),
	COALESCE(valor, 0), COALESCE(data_criacao, NOW()), COALESCE(data_atualizacao, NOW())`

// List devolve os leads da empresa; não-admin enxerga só os próprios.
func (r *LeadRepo) List(companyID, ownerUserID string, isAdmin bool) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + `
		FROM ad_leads
		WHERE codempresa = $1`
	args := []any{companyID}
	if !isAdmin {
		query += ` AND codusuario = $2`
		args = append(args, ownerUserID)
	}
	query += ` ORDER BY data_atualizacao DESC`

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar leads: %w", err)
	}
	defer rows.Close()

	var list []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// GetByID obtém um lead pelo CODLEAD; ausente devolve nil sem erro.
func (r *LeadRepo) GetByID(id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM ad_leads WHERE codlead = $1`
	l, err := scanLead(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

// LastID devolve o CODLEAD mais recente da empresa (fallback quando o save
// do gateway não ecoa a chave gerada).
func (r *LeadRepo) LastID(companyID string) (string, error) {
	query := `SELECT codlead FROM ad_leads WHERE codempresa = $1 ORDER BY codlead::BIGINT DESC LIMIT 1`
	var id string
	err := r.pool.QueryRow(context.Background(), query, companyID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("último lead: %w", err)
	}
	return id, nil
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var l entity.Lead
	err := row.Scan(
		&l.ID, &l.CompanyID, &l.OwnerUserID, &l.Name,
		&l.PartnerID, &l.Stage, &l.Notes,
		&l.TotalValue, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan lead: %w", err)
	}
	return &l, nil
}
