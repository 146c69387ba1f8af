package repository

import "github.com/contempla/cotas-api/internal/domain/entity"

// DocumentoRepository define o porto de persistência para Documento.
type DocumentoRepository interface {
	Create(d *entity.Documento) error
	GetByID(id string) (*entity.Documento, error)
	GetByDonoETipo(donoID, tipoDono, tipo string) (*entity.Documento, error)
	ListByDono(donoID, tipoDono string) ([]*entity.Documento, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Documento, error)
	Update(d *entity.Documento) error
}
