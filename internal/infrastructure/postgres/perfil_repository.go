package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/contempla/cotas-api/internal/domain"
	"github.com/contempla/cotas-api/internal/domain/entity"
	"github.com/contempla/cotas-api/internal/domain/repository"
)

var _ repository.PerfilPFRepository = (*PerfilPFRepo)(nil)
var _ repository.PerfilPJRepository = (*PerfilPJRepo)(nil)

// PerfilPFRepo implementação do porto PerfilPFRepository sobre PostgreSQL (usável com pool ou tx).
type PerfilPFRepo struct {
	q Querier
}

// NewPerfilPFRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPerfilPFRepository(q Querier) *PerfilPFRepo {
	return &PerfilPFRepo{q: q}
}

// Create persiste um novo perfil PF.
func (r *PerfilPFRepo) Create(p *entity.PerfilPF) error {
	query := `
		INSERT INTO perfis_pf (id, user_id, nome, cpf, telefone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.UserID, p.Nome, p.CPF, p.Telefone, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert perfil_pf: %w", err)
	}
	return nil
}

// GetByID obtém um perfil PF por ID.
func (r *PerfilPFRepo) GetByID(id string) (*entity.PerfilPF, error) {
	return r.get(`WHERE id = $1`, id)
}

// GetByUserID obtém o perfil PF de um usuário.
func (r *PerfilPFRepo) GetByUserID(userID string) (*entity.PerfilPF, error) {
	return r.get(`WHERE user_id = $1`, userID)
}

func (r *PerfilPFRepo) get(where, arg string) (*entity.PerfilPF, error) {
	query := `SELECT id, user_id, nome, cpf, telefone, status, created_at, updated_at FROM perfis_pf ` + where
	var p entity.PerfilPF
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.UserID, &p.Nome, &p.CPF, &p.Telefone, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get perfil_pf: %w", err)
	}
	return &p, nil
}

// UpdateStatus atualiza o status de revisão do perfil PF.
func (r *PerfilPFRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE perfis_pf SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update status perfil_pf: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// PerfilPJRepo implementação do porto PerfilPJRepository sobre PostgreSQL (usável com pool ou tx).
type PerfilPJRepo struct {
	q Querier
}

// NewPerfilPJRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPerfilPJRepository(q Querier) *PerfilPJRepo {
	return &PerfilPJRepo{q: q}
}

// Create persiste um novo perfil PJ.
func (r *PerfilPJRepo) Create(p *entity.PerfilPJ) error {
	query := `
		INSERT INTO perfis_pj (id, user_id, razao_social, cnpj, telefone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.UserID, p.RazaoSocial, p.CNPJ, p.Telefone, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert perfil_pj: %w", err)
	}
	return nil
}

// GetByID obtém um perfil PJ por ID.
func (r *PerfilPJRepo) GetByID(id string) (*entity.PerfilPJ, error) {
	return r.get(`WHERE id = $1`, id)
}

// GetByUserID obtém o perfil PJ de um usuário.
func (r *PerfilPJRepo) GetByUserID(userID string) (*entity.PerfilPJ, error) {
	return r.get(`WHERE user_id = $1`, userID)
}

func (r *PerfilPJRepo) get(where, arg string) (*entity.PerfilPJ, error) {
	query := `SELECT id, user_id, razao_social, cnpj, telefone, status, created_at, updated_at FROM perfis_pj ` + where
	var p entity.PerfilPJ
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.UserID, &p.RazaoSocial, &p.CNPJ, &p.Telefone, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get perfil_pj: %w", err)
	}
	return &p, nil
}

// UpdateStatus atualiza o status de revisão do perfil PJ.
func (r *PerfilPJRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE perfis_pj SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update status perfil_pj: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
