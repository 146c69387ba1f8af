package repository

import "github.com/contempla/cotas-api/internal/domain/entity"

// PropostaRepository define o porto de persistência para Proposta.
type PropostaRepository interface {
	Create(p *entity.Proposta) error
	GetByID(id string) (*entity.Proposta, error)
	// GetByIDForUpdate trava a linha da proposta na transação corrente para
	// que a validação da transição ocorra sobre o status recém-lido.
	GetByIDForUpdate(id string) (*entity.Proposta, error)
	ListByCota(cotaID string) ([]*entity.Proposta, error)
	ListByComprador(compradorID string, limit, offset int) ([]*entity.Proposta, error)
	ListByCotaEStatus(cotaID, status string) ([]*entity.Proposta, error)
	UpdateStatus(id, status, motivoRecusa string) error
}
