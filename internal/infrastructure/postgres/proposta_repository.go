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

var _ repository.PropostaRepository = (*PropostaRepo)(nil)

const propostaColunas = `id, cota_id, tipo_comprador, comprador_id, status, motivo_recusa, created_at, updated_at`

// PropostaRepo implementação do porto PropostaRepository sobre PostgreSQL (usável com pool ou tx).
type PropostaRepo struct {
	q Querier
}

// NewPropostaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPropostaRepository(q Querier) *PropostaRepo {
	return &PropostaRepo{q: q}
}

// Create persiste uma nova proposta.
func (r *PropostaRepo) Create(p *entity.Proposta) error {
	query := `
		INSERT INTO propostas (` + propostaColunas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CotaID, p.TipoComprador, p.CompradorID, p.Status, nullIfEmpty(p.MotivoRecusa),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert proposta: %w", err)
	}
	return nil
}

// GetByID obtém uma proposta por ID.
func (r *PropostaRepo) GetByID(id string) (*entity.Proposta, error) {
	return r.get(`SELECT `+propostaColunas+` FROM propostas WHERE id = $1`, id)
}

// GetByIDForUpdate obtém a proposta travando a linha (SELECT ... FOR UPDATE).
// Duas transições concorrentes sobre a mesma proposta serializam aqui e a
// perdedora revalida a aresta contra o status já commitado.
func (r *PropostaRepo) GetByIDForUpdate(id string) (*entity.Proposta, error) {
	return r.get(`SELECT `+propostaColunas+` FROM propostas WHERE id = $1 FOR UPDATE`, id)
}

func (r *PropostaRepo) get(query, id string) (*entity.Proposta, error) {
	var (
		p      entity.Proposta
		motivo *string
	)
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CotaID, &p.TipoComprador, &p.CompradorID, &p.Status, &motivo,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proposta: %w", err)
	}
	if motivo != nil {
		p.MotivoRecusa = *motivo
	}
	return &p, nil
}

// ListByCota lista todas as propostas de uma cota (histórico completo).
func (r *PropostaRepo) ListByCota(cotaID string) ([]*entity.Proposta, error) {
	return r.list(`SELECT `+propostaColunas+` FROM propostas WHERE cota_id = $1 ORDER BY created_at`, cotaID)
}

// ListByCotaEStatus lista propostas de uma cota em um status específico.
func (r *PropostaRepo) ListByCotaEStatus(cotaID, status string) ([]*entity.Proposta, error) {
	return r.list(
		`SELECT `+propostaColunas+` FROM propostas WHERE cota_id = $1 AND status = $2 ORDER BY created_at`,
		cotaID, status)
}

// ListByComprador lista propostas de um comprador com paginação.
func (r *PropostaRepo) ListByComprador(compradorID string, limit, offset int) ([]*entity.Proposta, error) {
	return r.list(
		`SELECT `+propostaColunas+` FROM propostas WHERE comprador_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		compradorID, limit, offset)
}

func (r *PropostaRepo) list(query string, args ...any) ([]*entity.Proposta, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list propostas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Proposta
	for rows.Next() {
		var (
			p      entity.Proposta
			motivo *string
		)
		if err := rows.Scan(
			&p.ID, &p.CotaID, &p.TipoComprador, &p.CompradorID, &p.Status, &motivo,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan proposta: %w", err)
		}
		if motivo != nil {
			p.MotivoRecusa = *motivo
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateStatus persiste o novo status. motivoRecusa vazio grava NULL (limpa
// o motivo anterior); não vazio grava o texto.
func (r *PropostaRepo) UpdateStatus(id, status, motivoRecusa string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE propostas SET status = $2, motivo_recusa = $3, updated_at = NOW() WHERE id = $1`,
		id, status, nullIfEmpty(motivoRecusa))
	if err != nil {
		return fmt.Errorf("update status proposta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
