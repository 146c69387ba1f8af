package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/contempla/cotas-api/internal/domain"
	"github.com/contempla/cotas-api/internal/domain/entity"
	"github.com/contempla/cotas-api/internal/domain/repository"
)

var _ repository.CotaRepository = (*CotaRepo)(nil)

const cotaColunas = `id, vendedor_id, administradora, valor_credito, saldo_devedor,
	num_parcelas, valor_parcela, valor_entrada, percentual_entrada, taxa_mensal,
	status, created_at, updated_at`

// CotaRepo implementação do porto CotaRepository sobre PostgreSQL (usável com pool ou tx).
type CotaRepo struct {
	q Querier
}

// NewCotaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCotaRepository(q Querier) *CotaRepo {
	return &CotaRepo{q: q}
}

// Create persiste uma nova cota.
func (r *CotaRepo) Create(cota *entity.Cota) error {
	query := `
		INSERT INTO cotas (` + cotaColunas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		cota.ID, cota.VendedorID, cota.Administradora, cota.ValorCredito, cota.SaldoDevedor,
		cota.NumParcelas, cota.ValorParcela, cota.ValorEntrada, cota.PercentualEntrada, cota.TaxaMensal,
		cota.Status, cota.CreatedAt, cota.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cota: %w", err)
	}
	return nil
}

// GetByID obtém uma cota por ID.
func (r *CotaRepo) GetByID(id string) (*entity.Cota, error) {
	return r.get(`SELECT ` + cotaColunas + ` FROM cotas WHERE id = $1`, id)
}

// GetByIDForUpdate obtém uma cota travando a linha na transação corrente.
func (r *CotaRepo) GetByIDForUpdate(id string) (*entity.Cota, error) {
	return r.get(`SELECT `+cotaColunas+` FROM cotas WHERE id = $1 FOR UPDATE`, id)
}

func (r *CotaRepo) get(query, id string) (*entity.Cota, error) {
	var c entity.Cota
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.VendedorID, &c.Administradora, &c.ValorCredito, &c.SaldoDevedor,
		&c.NumParcelas, &c.ValorParcela, &c.ValorEntrada, &c.PercentualEntrada, &c.TaxaMensal,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cota: %w", err)
	}
	return &c, nil
}

// List lista cotas aplicando filtros e ordenação.
// Administradora compara sem case e com espaços aparados; a coluna de ordenação
// é validada contra uma whitelist (nunca interpolamos entrada do cliente).
func (r *CotaRepo) List(filtro repository.CotaFiltro) ([]*entity.Cota, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filtro.Administradora != "" {
		add("LOWER(TRIM(administradora)) = LOWER(TRIM($%d))", filtro.Administradora)
	}
	if filtro.Status != "" {
		add("status = $%d", filtro.Status)
	}
	if filtro.CreditoMin != nil {
		add("valor_credito >= $%d", *filtro.CreditoMin)
	}
	if filtro.CreditoMax != nil {
		add("valor_credito <= $%d", *filtro.CreditoMax)
	}

	query := `SELECT ` + cotaColunas + ` FROM cotas`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + ordenacaoCota(filtro.OrdenarPor, filtro.Desc)

	limit := filtro.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filtro.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cotas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Cota
	for rows.Next() {
		var c entity.Cota
		if err := rows.Scan(
			&c.ID, &c.VendedorID, &c.Administradora, &c.ValorCredito, &c.SaldoDevedor,
			&c.NumParcelas, &c.ValorParcela, &c.ValorEntrada, &c.PercentualEntrada, &c.TaxaMensal,
			&c.Status, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cota: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ordenacaoCota valida a coluna de ordenação contra a whitelist.
func ordenacaoCota(campo string, desc bool) string {
	col := "created_at"
	switch campo {
	case "valor_credito", "valor_entrada", "valor_parcela", "created_at":
		col = campo
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

// Update atualiza os campos editáveis de uma cota.
func (r *CotaRepo) Update(cota *entity.Cota) error {
	query := `
		UPDATE cotas SET administradora = $2, valor_credito = $3, saldo_devedor = $4,
			num_parcelas = $5, valor_parcela = $6, valor_entrada = $7,
			percentual_entrada = $8, taxa_mensal = $9, status = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		cota.ID, cota.Administradora, cota.ValorCredito, cota.SaldoDevedor,
		cota.NumParcelas, cota.ValorParcela, cota.ValorEntrada,
		cota.PercentualEntrada, cota.TaxaMensal, cota.Status, cota.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cota: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus atualiza apenas o status da cota.
func (r *CotaRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE cotas SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update status cota: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTaxa persiste a taxa resolvida e, se informada, a parcela corrigida
// (usado pelo saneamento em lote).
func (r *CotaRepo) UpdateTaxa(id string, taxa decimal.Decimal, parcela *decimal.Decimal) error {
	var err error
	if parcela != nil {
		_, err = r.q.Exec(context.Background(),
			`UPDATE cotas SET taxa_mensal = $2, valor_parcela = $3, updated_at = NOW() WHERE id = $1`,
			id, taxa, *parcela)
	} else {
		_, err = r.q.Exec(context.Background(),
			`UPDATE cotas SET taxa_mensal = $2, updated_at = NOW() WHERE id = $1`, id, taxa)
	}
	if err != nil {
		return fmt.Errorf("update taxa cota: %w", err)
	}
	return nil
}
