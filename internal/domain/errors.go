package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o email já está cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")
	ErrMotivoObrigatorio  = errors.New("motivo de recusa é obrigatório")
	ErrCotaIndisponivel   = errors.New("cota não está disponível")
)

// TransitionError indica que o status solicitado não é alcançável a partir do
// status atual da proposta.
type TransitionError struct {
	De   string
	Para string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transição inválida: %s -> %s", e.De, e.Para)
}

// PreconditionError indica que um pré-requisito entre entidades falhou
// (ex.: extrato da cota não aprovado, perfil do comprador não aprovado).
// Verificacao identifica qual checagem falhou; StatusAtual carrega o status
// da entidade bloqueante quando disponível.
type PreconditionError struct {
	Verificacao string
	StatusAtual string
}

func (e *PreconditionError) Error() string {
	if e.StatusAtual == "" {
		return fmt.Sprintf("pré-requisito não atendido: %s", e.Verificacao)
	}
	return fmt.Sprintf("pré-requisito não atendido: %s (status atual: %s)", e.Verificacao, e.StatusAtual)
}
