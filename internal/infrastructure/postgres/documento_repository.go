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

var _ repository.DocumentoRepository = (*DocumentoRepo)(nil)

const documentoColunas = `id, dono_id, tipo_dono, tipo, arquivo_url, status, revisor_id, revisado_em, motivo_recusa, created_at, updated_at`

// DocumentoRepo implementação do porto DocumentoRepository sobre PostgreSQL (usável com pool ou tx).
type DocumentoRepo struct {
	q Querier
}

// NewDocumentoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewDocumentoRepository(q Querier) *DocumentoRepo {
	return &DocumentoRepo{q: q}
}

// Create persiste um novo documento.
func (r *DocumentoRepo) Create(d *entity.Documento) error {
	query := `
		INSERT INTO documentos (` + documentoColunas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.DonoID, d.TipoDono, d.Tipo, d.ArquivoURL, d.Status,
		nullIfEmpty(d.RevisorID), d.RevisadoEm, nullIfEmpty(d.MotivoRecusa),
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert documento: %w", err)
	}
	return nil
}

// GetByID obtém um documento por ID.
func (r *DocumentoRepo) GetByID(id string) (*entity.Documento, error) {
	return r.get(`SELECT `+documentoColunas+` FROM documentos WHERE id = $1`, id)
}

// GetByDonoETipo obtém o documento de um dono para um tipo específico (no
// máximo um por par dono/tipo; reenvio atualiza a mesma linha).
func (r *DocumentoRepo) GetByDonoETipo(donoID, tipoDono, tipo string) (*entity.Documento, error) {
	return r.get(
		`SELECT `+documentoColunas+` FROM documentos WHERE dono_id = $1 AND tipo_dono = $2 AND tipo = $3`,
		donoID, tipoDono, tipo)
}

func (r *DocumentoRepo) get(query string, args ...any) (*entity.Documento, error) {
	var (
		d       entity.Documento
		revisor *string
		motivo  *string
	)
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&d.ID, &d.DonoID, &d.TipoDono, &d.Tipo, &d.ArquivoURL, &d.Status,
		&revisor, &d.RevisadoEm, &motivo, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}
	if revisor != nil {
		d.RevisorID = *revisor
	}
	if motivo != nil {
		d.MotivoRecusa = *motivo
	}
	return &d, nil
}

// ListByDono lista os documentos de um dono.
func (r *DocumentoRepo) ListByDono(donoID, tipoDono string) ([]*entity.Documento, error) {
	return r.list(
		`SELECT `+documentoColunas+` FROM documentos WHERE dono_id = $1 AND tipo_dono = $2 ORDER BY created_at`,
		donoID, tipoDono)
}

// ListByStatus lista documentos por status de revisão (fila do admin).
func (r *DocumentoRepo) ListByStatus(status string, limit, offset int) ([]*entity.Documento, error) {
	return r.list(
		`SELECT `+documentoColunas+` FROM documentos WHERE status = $1 ORDER BY updated_at LIMIT $2 OFFSET $3`,
		status, limit, offset)
}

func (r *DocumentoRepo) list(query string, args ...any) ([]*entity.Documento, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Documento
	for rows.Next() {
		var (
			d       entity.Documento
			revisor *string
			motivo  *string
		)
		if err := rows.Scan(
			&d.ID, &d.DonoID, &d.TipoDono, &d.Tipo, &d.ArquivoURL, &d.Status,
			&revisor, &d.RevisadoEm, &motivo, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		if revisor != nil {
			d.RevisorID = *revisor
		}
		if motivo != nil {
			d.MotivoRecusa = *motivo
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update atualiza arquivo, status, revisor e motivo de um documento.
func (r *DocumentoRepo) Update(d *entity.Documento) error {
	query := `
		UPDATE documentos SET arquivo_url = $2, status = $3, revisor_id = $4,
			revisado_em = $5, motivo_recusa = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		d.ID, d.ArquivoURL, d.Status, nullIfEmpty(d.RevisorID), d.RevisadoEm,
		nullIfEmpty(d.MotivoRecusa), d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update documento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
