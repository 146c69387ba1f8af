// Package authz centraliza a decisão de autorização. Os casos de uso chamam
// o Authorizer antes de qualquer mutação em vez de espalhar checagens de
// "é admin" pelos handlers.
package authz

import "github.com/contempla/cotas-api/internal/domain"

// Capacidades exigidas pelas operações administrativas.
const (
	CapTransicionarProposta = "proposta:transicionar"
	CapRevisarDocumento     = "documento:revisar"
	CapRevisarPerfil        = "perfil:revisar"
	CapEditarCota           = "cota:editar"
)

// Ator identifica quem executa a operação (claims do JWT já validados).
type Ator struct {
	UserID     string
	PerfilID   string
	TipoPerfil string // PF | PJ
	Role       string // admin | usuario
}

// Authorizer decide se um ator possui uma capacidade.
type Authorizer interface {
	Pode(ator Ator, capacidade string) error
}

// PorRole autoriza pelas roles do token: todas as capacidades listadas acima
// são exclusivas de admin.
type PorRole struct{}

// NewPorRole constrói o autorizador baseado em role.
func NewPorRole() PorRole { return PorRole{} }

// Pode devolve domain.ErrForbidden quando o ator não possui a capacidade.
func (PorRole) Pode(ator Ator, capacidade string) error {
	switch capacidade {
	case CapTransicionarProposta, CapRevisarDocumento, CapRevisarPerfil, CapEditarCota:
		if ator.Role != "admin" {
			return domain.ErrForbidden
		}
		return nil
	default:
		return domain.ErrForbidden
	}
}
