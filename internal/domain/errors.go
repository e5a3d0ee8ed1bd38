package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound     = errors.New("recurso não encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("não autorizado")
	ErrAuth         = errors.New("autenticação no gateway falhou")
	ErrUpstream     = errors.New("o sistema remoto retornou erro")
)
