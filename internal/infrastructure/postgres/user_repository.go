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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColunas = `id, email, password_hash, nome, role, tipo_perfil, perfil_id, status, created_at, updated_at`

// UserRepo implementação do porto UserRepository sobre PostgreSQL (usável com pool ou tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste um novo usuário.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColunas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Nome, user.Role,
		user.TipoPerfil, nullIfEmpty(user.PerfilID), user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtém um usuário por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.get(`WHERE id = $1`, id)
}

// FindByEmail obtém um usuário por email.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.get(`WHERE email = $1`, email)
}

func (r *UserRepo) get(where, arg string) (*entity.User, error) {
	query := `SELECT ` + userColunas + ` FROM users ` + where
	var (
		u      entity.User
		perfil *string
	)
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Nome, &u.Role,
		&u.TipoPerfil, &perfil, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if perfil != nil {
		u.PerfilID = *perfil
	}
	return &u, nil
}

// Update atualiza um usuário (inclusive vínculo de perfil após criação).
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, nome = $4, role = $5,
			tipo_perfil = $6, perfil_id = $7, status = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Nome, user.Role,
		user.TipoPerfil, nullIfEmpty(user.PerfilID), user.Status, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
