package repository

import "github.com/contempla/cotas-api/internal/domain/entity"

// PerfilPFRepository define o porto de persistência para PerfilPF.
type PerfilPFRepository interface {
	Create(p *entity.PerfilPF) error
	GetByID(id string) (*entity.PerfilPF, error)
	GetByUserID(userID string) (*entity.PerfilPF, error)
	UpdateStatus(id, status string) error
}

// PerfilPJRepository define o porto de persistência para PerfilPJ.
type PerfilPJRepository interface {
	Create(p *entity.PerfilPJ) error
	GetByID(id string) (*entity.PerfilPJ, error)
	GetByUserID(userID string) (*entity.PerfilPJ, error)
	UpdateStatus(id, status string) error
}
