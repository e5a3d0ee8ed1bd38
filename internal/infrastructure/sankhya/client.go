// Package sankhya implementa o gateway REST do ERP Sankhya: login com token
// bearer em cache, o serviço genérico de gravação (DatasetSP.save) e o de
// consulta (CRUDServiceProvider.loadRecords), além dos adaptadores concretos
// dos portos da aplicação (itens de lead, leads, atividades, preços).
package sankhya

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/crm-leads-api/internal/domain"
)

const (
	loginPath = "/login"
	savePath  = "/gateway/v1/mge/service.sbr?serviceName=DatasetSP.save&outputType=json"
	queryPath = "/gateway/v1/mge/service.sbr?serviceName=CRUDServiceProvider.loadRecords&outputType=json"

	// Timeout só no login; as demais chamadas bloqueiam até o timeout do
	// próprio gateway.
	loginTimeout = 10 * time.Second
)

// Credentials credenciais fixas de login do gateway (fornecidas por ambiente).
type Credentials struct {
	Token    string
	AppKey   string
	Username string
	Password string
}

// tokenCache guarda o token bearer compartilhado por todo o processo.
// Invalidação explícita (falha de autenticação ou testes) força novo login.
type tokenCache struct {
	mu    sync.Mutex
	token string
}

func (c *tokenCache) get() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *tokenCache) set(tk string) {
	c.mu.Lock()
	c.token = tk
	c.mu.Unlock()
}

func (c *tokenCache) invalidate() {
	c.set("")
}

// Client cliente autenticado do gateway Sankhya. Seguro para uso concorrente;
// o token é obtido uma vez e reutilizado por todas as requisições.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	cache      tokenCache
}

// NewClient constrói o cliente. baseURL sem barra final
// (ex: https://api.sandbox.sankhya.com.br).
func NewClient(baseURL string, creds Credentials) *Client {
	return &Client{
		baseURL:    baseURL,
		creds:      creds,
		httpClient: &http.Client{},
	}
}

// Invalidate descarta o token em cache; a próxima chamada refaz o login.
func (c *Client) Invalidate() {
	c.cache.invalidate()
}

// loginResponse corpo do POST /login. O gateway ora devolve bearerToken,
// ora token (formato legado).
type loginResponse struct {
	BearerToken string `json:"bearerToken"`
	Token       string `json:"token"`
	Error       struct {
		Descricao string `json:"descricao"`
	} `json:"error"`
}

// token devolve o bearer em cache ou executa o login.
func (c *Client) token(ctx context.Context) (string, error) {
	if tk := c.cache.get(); tk != "" {
		return tk, nil
	}

	loginCtx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(loginCtx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader([]byte("{}")))
	if err != nil {
		return "", fmt.Errorf("sankhya: montar login: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("token", c.creds.Token)
	req.Header.Set("appkey", c.creds.AppKey)
	req.Header.Set("username", c.creds.Username)
	req.Header.Set("password", c.creds.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sankhya: login: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("sankhya: ler resposta de login: %w", err)
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return "", fmt.Errorf("%w: resposta de login ilegível", domain.ErrAuth)
	}

	tk := lr.BearerToken
	if tk == "" {
		tk = lr.Token
	}
	if tk == "" {
		msg := lr.Error.Descricao
		if msg == "" {
			msg = "token não encontrado na resposta de login"
		}
		return "", fmt.Errorf("%w: %s", domain.ErrAuth, msg)
	}

	c.cache.set(tk)
	log.Debug().Str("base_url", c.baseURL).Msg("sankhya: login efetuado, token em cache")
	return tk, nil
}

// serviceEnvelope campos de status presentes em toda resposta dos serviços
// Sankhya. statusMessage == "Error" (no topo ou dentro de serviceResponse)
// sinaliza falha mesmo com HTTP 200.
type serviceEnvelope struct {
	StatusMessage   string `json:"statusMessage"`
	ServiceResponse *struct {
		StatusMessage string `json:"statusMessage"`
	} `json:"serviceResponse"`
	PendingPrinting *struct {
		Message string `json:"message"`
	} `json:"pendingPrinting"`
}

func (e serviceEnvelope) failed() bool {
	if e.StatusMessage == "Error" {
		return true
	}
	return e.ServiceResponse != nil && e.ServiceResponse.StatusMessage == "Error"
}

func (e serviceEnvelope) message() string {
	if e.PendingPrinting != nil && e.PendingPrinting.Message != "" {
		return e.PendingPrinting.Message
	}
	return "falha no serviço do gateway"
}

// Call executa uma chamada autenticada ao gateway e desserializa a resposta
// em out (pode ser nil). Um 401 invalida o token em cache e a chamada é
// repetida uma única vez com login novo.
func (c *Client) Call(ctx context.Context, path, method string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("sankhya: serializar payload: %w", err)
	}

	raw, err := c.do(ctx, path, method, body, true)
	if err != nil {
		return err
	}

	var env serviceEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("sankhya: resposta ilegível: %w", err)
	}
	if env.failed() {
		return fmt.Errorf("%w: %s", domain.ErrUpstream, env.message())
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("sankhya: desserializar resposta: %w", err)
		}
	}
	return nil
}

// do envia a requisição com o token atual. retryAuth permite uma única
// repetição após invalidar o token (expirado ou revogado no gateway).
func (c *Client) do(ctx context.Context, path, method string, body []byte, retryAuth bool) ([]byte, error) {
	tk, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sankhya: montar requisição: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tk)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sankhya: chamada %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sankhya: ler resposta: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.cache.invalidate()
		if retryAuth {
			log.Warn().Str("path", path).Msg("sankhya: token rejeitado, refazendo login")
			return c.do(ctx, path, method, body, false)
		}
		return nil, fmt.Errorf("%w: token rejeitado pelo gateway", domain.ErrAuth)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: HTTP %d do gateway", domain.ErrUpstream, resp.StatusCode)
	}
	return raw, nil
}
