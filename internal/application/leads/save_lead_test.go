package leads

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-leads-api/internal/application/dto"
	"github.com/jhoicas/crm-leads-api/internal/domain/entity"
)

// fakeLeadRepo porto de leitura sobre o espelho relacional.
type fakeLeadRepo struct {
	byID   map[string]*entity.Lead
	lastID string
}

func (f *fakeLeadRepo) List(_, _ string, _ bool) ([]*entity.Lead, error) { return nil, nil }

func (f *fakeLeadRepo) GetByID(id string) (*entity.Lead, error) {
	return f.byID[id], nil
}

func (f *fakeLeadRepo) LastID(_ string) (string, error) { return f.lastID, nil }

func buildSaveUseCase(gw *fakeLeadGateway, items *fakeItemStore, repo *fakeLeadRepo) (*SaveLeadUseCase, *[]time.Duration) {
	r := NewReconciler(items, gw, fakePriceTable{})
	uc := NewSaveLeadUseCase(gw, r, repo)
	var slept []time.Duration
	uc.sleep = func(d time.Duration) { slept = append(slept, d) }
	return uc, &slept
}

var testUser = entity.SessionUser{
	ID:        "42",
	Name:      "Maria",
	Role:      "Vendedor",
	CompanyID: "1",
}

// ──────────────────────────────────────────────────────────────────────────────
// Criação × atualização: o usuário da sessão vira dono APENAS quando o corpo
// não traz CODLEAD. Regravar um lead existente nunca troca o dono.
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveLead_Criacao_DefineDonoEEmpresa(t *testing.T) {
	gw := newFakeLeadGateway()
	gw.echoID = "10"
	uc, _ := buildSaveUseCase(gw, newFakeItemStore(), &fakeLeadRepo{byID: map[string]*entity.Lead{}})

	out, err := uc.Save(context.Background(), dto.SaveLeadRequest{
		NOME:  "ACME Ltda",
		ETAPA: "PROPOSTA",
	}, testUser)
	require.NoError(t, err)

	assert.True(t, gw.savedNew)
	assert.Equal(t, "42", gw.savedLead.OwnerUserID)
	assert.Equal(t, "1", gw.savedLead.CompanyID)
	assert.Equal(t, "10", out.CODLEAD, "o CODLEAD ecoado pelo gateway prevalece")
}

func TestSaveLead_Atualizacao_NaoTrocaDono(t *testing.T) {
	gw := newFakeLeadGateway()
	uc, _ := buildSaveUseCase(gw, newFakeItemStore(), &fakeLeadRepo{byID: map[string]*entity.Lead{}})

	outro := entity.SessionUser{ID: "99", Role: "Vendedor", CompanyID: "1"}
	_, err := uc.Save(context.Background(), dto.SaveLeadRequest{
		CODLEAD: "10",
		NOME:    "ACME Ltda",
	}, outro)
	require.NoError(t, err)

	assert.False(t, gw.savedNew)
	assert.Empty(t, gw.savedLead.OwnerUserID, "atualização não grava dono")
	assert.Empty(t, gw.savedLead.CompanyID)
}

// Sem eco do gateway, o CODLEAD cai para o último lead da empresa no banco —
// o comportamento do fluxo original.
func TestSaveLead_SemEco_FallbackUltimoLead(t *testing.T) {
	gw := newFakeLeadGateway()
	gw.echoID = ""
	items := newFakeItemStore()
	uc, _ := buildSaveUseCase(gw, items, &fakeLeadRepo{
		byID:   map[string]*entity.Lead{},
		lastID: "77",
	})

	out, err := uc.Save(context.Background(), dto.SaveLeadRequest{
		NOME: "ACME Ltda",
		PRODUTOS: []dto.SaveLeadItem{
			{CODPROD: "301", DESCRPROD: "Licença", QUANTIDADE: decimal.NewFromInt(1), VLRUNIT: decimal.NewFromInt(10)},
		},
	}, testUser)
	require.NoError(t, err)

	assert.Equal(t, "77", out.CODLEAD)
	list, _ := items.ListActive(context.Background(), "77")
	assert.Len(t, list, 1, "os produtos devem ser anexados ao lead do fallback")
}

// ──────────────────────────────────────────────────────────────────────────────
// Anexação de produtos
// ──────────────────────────────────────────────────────────────────────────────

// Produto sem CODPROD ou DESCRPROD é pulado com aviso; os demais entram.
func TestSaveLead_ProdutoInvalidoEhPulado(t *testing.T) {
	gw := newFakeLeadGateway()
	gw.echoID = "10"
	items := newFakeItemStore()
	uc, _ := buildSaveUseCase(gw, items, &fakeLeadRepo{byID: map[string]*entity.Lead{}})

	_, err := uc.Save(context.Background(), dto.SaveLeadRequest{
		NOME: "ACME Ltda",
		PRODUTOS: []dto.SaveLeadItem{
			{DESCRPROD: "Sem código", QUANTIDADE: decimal.NewFromInt(1)},
			{CODPROD: "301", DESCRPROD: "Licença", QUANTIDADE: decimal.NewFromInt(2), VLRUNIT: decimal.NewFromInt(10)},
		},
	}, testUser)
	require.NoError(t, err)

	list, _ := items.ListActive(context.Background(), "10")
	require.Len(t, list, 1)
	assert.Equal(t, "Licença", list[0].Description)
	assert.Equal(t, "20", gw.total("10").String(), "cada anexação reconcilia o total")
}

// QTDNEG é o alias legado de QUANTIDADE; sem os dois, a quantidade é 1.
func TestSaveLead_QuantidadeComAliasEDefault(t *testing.T) {
	gw := newFakeLeadGateway()
	gw.echoID = "10"
	items := newFakeItemStore()
	uc, _ := buildSaveUseCase(gw, items, &fakeLeadRepo{byID: map[string]*entity.Lead{}})

	_, err := uc.Save(context.Background(), dto.SaveLeadRequest{
		NOME: "ACME Ltda",
		PRODUTOS: []dto.SaveLeadItem{
			{CODPROD: "301", DESCRPROD: "Alias", QTDNEG: decimal.NewFromInt(5), VLRUNIT: decimal.NewFromInt(10)},
			{CODPROD: "302", DESCRPROD: "Default", VLRUNIT: decimal.NewFromInt(10)},
		},
	}, testUser)
	require.NoError(t, err)

	list, _ := items.ListActive(context.Background(), "10")
	require.Len(t, list, 2)
	byProd := map[string]decimal.Decimal{}
	for _, it := range list {
		byProd[it.ProductID] = it.Quantity
	}
	assert.Equal(t, "5", byProd["301"].String())
	assert.Equal(t, "1", byProd["302"].String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Visibilidade: antes de anexar produtos a um lead recém-criado, o caso de
// uso consulta o gateway até a gravação aparecer, em vez de dormir um tempo
// fixo e torcer.
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveLead_EsperaVisibilidadeAntesDeAnexar(t *testing.T) {
	gw := newFakeLeadGateway()
	gw.echoID = "10"
	gw.existsAfter = 3 // visível só na 4ª consulta
	items := newFakeItemStore()
	uc, slept := buildSaveUseCase(gw, items, &fakeLeadRepo{byID: map[string]*entity.Lead{}})

	_, err := uc.Save(context.Background(), dto.SaveLeadRequest{
		NOME: "ACME Ltda",
		PRODUTOS: []dto.SaveLeadItem{
			{CODPROD: "301", DESCRPROD: "Licença", QUANTIDADE: decimal.NewFromInt(1), VLRUNIT: decimal.NewFromInt(10)},
		},
	}, testUser)
	require.NoError(t, err)

	assert.Equal(t, 4, gw.existsCalls, "consulta até o lead aparecer")
	assert.Len(t, *slept, 3, "dorme apenas entre tentativas frustradas")
}

// Lead existente não passa pela confirmação de visibilidade.
func TestSaveLead_AtualizacaoNaoEspera(t *testing.T) {
	gw := newFakeLeadGateway()
	items := newFakeItemStore()
	uc, slept := buildSaveUseCase(gw, items, &fakeLeadRepo{byID: map[string]*entity.Lead{}})

	_, err := uc.Save(context.Background(), dto.SaveLeadRequest{
		CODLEAD: "10",
		NOME:    "ACME Ltda",
		PRODUTOS: []dto.SaveLeadItem{
			{CODPROD: "301", DESCRPROD: "Licença", QUANTIDADE: decimal.NewFromInt(1), VLRUNIT: decimal.NewFromInt(10)},
		},
	}, testUser)
	require.NoError(t, err)

	assert.Zero(t, gw.existsCalls)
	assert.Empty(t, *slept)
}

// Mesmo sem o lead ficar visível dentro do limite, a anexação prossegue e
// reporta o erro real (aqui, nenhum: o fake aceita a gravação).
func TestSaveLead_VisibilidadeEsgotada_Prossegue(t *testing.T) {
	gw := newFakeLeadGateway()
	gw.echoID = "10"
	gw.existsAfter = 1000 // nunca visível
	items := newFakeItemStore()
	uc, slept := buildSaveUseCase(gw, items, &fakeLeadRepo{byID: map[string]*entity.Lead{}})

	_, err := uc.Save(context.Background(), dto.SaveLeadRequest{
		NOME: "ACME Ltda",
		PRODUTOS: []dto.SaveLeadItem{
			{CODPROD: "301", DESCRPROD: "Licença", QUANTIDADE: decimal.NewFromInt(1), VLRUNIT: decimal.NewFromInt(10)},
		},
	}, testUser)
	require.NoError(t, err)

	assert.Len(t, *slept, visibilityAttempts)
	list, _ := items.ListActive(context.Background(), "10")
	assert.Len(t, list, 1)
}

// A resposta prefere a linha do banco, que já carrega o total reconciliado.
func TestSaveLead_RespostaComTotalDoBanco(t *testing.T) {
	gw := newFakeLeadGateway()
	gw.echoID = "10"
	repo := &fakeLeadRepo{byID: map[string]*entity.Lead{
		"10": {
			ID:         "10",
			Name:       "ACME Ltda",
			TotalValue: decimal.NewFromInt(150),
		},
	}}
	uc, _ := buildSaveUseCase(gw, newFakeItemStore(), repo)

	out, err := uc.Save(context.Background(), dto.SaveLeadRequest{NOME: "ACME Ltda"}, testUser)
	require.NoError(t, err)
	assert.Equal(t, "150", out.VALOR.String())
}
