package sankhya

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-leads-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: um gateway Sankhya falso sobre httptest. O login troca os quatro
// headers de credencial por um bearer token; o serviço exige o token atual.
// ──────────────────────────────────────────────────────────────────────────────

type fakeGateway struct {
	srv *httptest.Server

	logins    atomic.Int64
	calls     atomic.Int64
	token     atomic.Value // string: token válido atual
	loginBody string       // resposta do POST /login
	callBody  string       // resposta dos serviços
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()
	g := &fakeGateway{
		loginBody: `{"bearerToken": "tok-1"}`,
		callBody:  `{"status": "1", "statusMessage": "OK"}`,
	}
	g.token.Store("tok-1")

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		g.logins.Add(1)
		if r.Header.Get("token") != "tk" || r.Header.Get("appkey") != "ak" ||
			r.Header.Get("username") != "user" || r.Header.Get("password") != "pass" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": {"descricao": "credenciais inválidas"}}`))
			return
		}
		_, _ = w.Write([]byte(g.loginBody))
	})
	mux.HandleFunc("/gateway/", func(w http.ResponseWriter, r *http.Request) {
		g.calls.Add(1)
		want := "Bearer " + g.token.Load().(string)
		if r.Header.Get("Authorization") != want {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(g.callBody))
	})

	g.srv = httptest.NewServer(mux)
	t.Cleanup(g.srv.Close)
	return g
}

func (g *fakeGateway) client() *Client {
	return NewClient(g.srv.URL, Credentials{
		Token:    "tk",
		AppKey:   "ak",
		Username: "user",
		Password: "pass",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Login e cache de token
// ──────────────────────────────────────────────────────────────────────────────

// Duas chamadas consecutivas devem compartilhar o mesmo login: o token fica em
// cache no processo e só é renovado quando o gateway o rejeita.
func TestClient_TokenEmCache_UmSoLogin(t *testing.T) {
	g := newFakeGateway(t)
	c := g.client()

	require.NoError(t, c.Call(context.Background(), savePath, http.MethodPost, map[string]string{}, nil))
	require.NoError(t, c.Call(context.Background(), queryPath, http.MethodPost, map[string]string{}, nil))

	assert.EqualValues(t, 1, g.logins.Load(), "o segundo Call deve reutilizar o token em cache")
	assert.EqualValues(t, 2, g.calls.Load())
}

// O formato legado devolve "token" no lugar de "bearerToken"; os dois valem.
func TestClient_LoginFormatoLegado(t *testing.T) {
	g := newFakeGateway(t)
	g.loginBody = `{"token": "tok-1"}`
	c := g.client()

	require.NoError(t, c.Call(context.Background(), savePath, http.MethodPost, map[string]string{}, nil))
}

// Credenciais erradas: o login responde sem token e a chamada falha com
// ErrAuth carregando a descrição do gateway.
func TestClient_LoginSemToken_ErrAuth(t *testing.T) {
	g := newFakeGateway(t)
	c := NewClient(g.srv.URL, Credentials{Token: "errado"})

	err := c.Call(context.Background(), savePath, http.MethodPost, map[string]string{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuth)
	assert.Contains(t, err.Error(), "credenciais inválidas")
	assert.EqualValues(t, 0, g.calls.Load(), "sem token não deve haver chamada de serviço")
}

// Token expirado no gateway: o 401 invalida o cache, refaz o login e repete a
// chamada uma única vez, de forma transparente para o chamador.
func TestClient_TokenRejeitado_RefazLoginUmaVez(t *testing.T) {
	g := newFakeGateway(t)
	c := g.client()

	// Primeira chamada aquece o cache com tok-1.
	require.NoError(t, c.Call(context.Background(), savePath, http.MethodPost, map[string]string{}, nil))

	// O gateway gira o token: tok-1 passa a ser rejeitado.
	g.token.Store("tok-2")
	g.loginBody = `{"bearerToken": "tok-2"}`

	require.NoError(t, c.Call(context.Background(), savePath, http.MethodPost, map[string]string{}, nil))
	assert.EqualValues(t, 2, g.logins.Load(), "deve haver exatamente um login novo após o 401")
}

// Invalidate descarta o token em cache e força login na próxima chamada.
func TestClient_Invalidate(t *testing.T) {
	g := newFakeGateway(t)
	c := g.client()

	require.NoError(t, c.Call(context.Background(), savePath, http.MethodPost, map[string]string{}, nil))
	c.Invalidate()
	require.NoError(t, c.Call(context.Background(), savePath, http.MethodPost, map[string]string{}, nil))

	assert.EqualValues(t, 2, g.logins.Load())
}

// ──────────────────────────────────────────────────────────────────────────────
// Envelope de erro: o Sankhya sinaliza falha com statusMessage "Error" dentro
// de um HTTP 200. A mensagem útil vem em pendingPrinting.message.
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_EnvelopeDeErro_HTTP200(t *testing.T) {
	g := newFakeGateway(t)
	g.callBody = `{"statusMessage": "Error", "pendingPrinting": {"message": "CODPROD inexistente"}}`
	c := g.client()

	err := c.Call(context.Background(), savePath, http.MethodPost, map[string]string{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "CODPROD inexistente")
}

func TestClient_EnvelopeDeErro_Aninhado(t *testing.T) {
	g := newFakeGateway(t)
	g.callBody = `{"serviceResponse": {"statusMessage": "Error"}}`
	c := g.client()

	err := c.Call(context.Background(), savePath, http.MethodPost, map[string]string{}, nil)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestClient_HTTP500_ErrUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/login") {
			_, _ = w.Write([]byte(`{"bearerToken": "tok"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Credentials{})
	err := c.Call(context.Background(), savePath, http.MethodPost, map[string]string{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "HTTP 500")
}

// Resposta bem formada é desserializada em out quando fornecido.
func TestClient_DesserializaResposta(t *testing.T) {
	g := newFakeGateway(t)
	g.callBody = `{
		"statusMessage": "OK",
		"responseBody": {"entities": {"total": "1", "entity": {"f0": {"$": "42"}}}}
	}`
	c := g.client()

	var resp loadResponse
	require.NoError(t, c.Call(context.Background(), queryPath, http.MethodPost, json.RawMessage(`{}`), &resp))

	require.Len(t, resp.ResponseBody.Entities.Entity, 1)
	assert.Equal(t, "42", resp.ResponseBody.Entities.Entity[0].str(0))
}
