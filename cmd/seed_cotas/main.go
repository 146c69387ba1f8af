// seed_cotas gera um script SQL de cotas de demonstração, a partir de um CSV
// de planos (administradora;credito;entrada;parcelas;taxa_mensal_pct) ou dos
// planos embutidos quando nenhum arquivo é passado.
//
// Uso: go run ./cmd/seed_cotas [caminho/planos.csv]
// Escreve: internal/infrastructure/postgres/migrations/002_seed_cotas.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/contempla/cotas-api/pkg/financeiro"
)

type plano struct {
	administradora string
	credito        float64
	entrada        float64
	parcelas       int
	taxaMensal     float64 // % a.m.; 0 => resolver a partir da parcela
}

// Planos padrão quando nenhum CSV é fornecido.
var planosPadrao = []plano{
	{"Embracon", 120000, 36000, 120, 1.20},
	{"Embracon", 80000, 20000, 100, 1.05},
	{"Porto Seguro", 250000, 87500, 180, 0.95},
	{"Porto Seguro", 60000, 15000, 72, 1.40},
	{"Rodobens", 180000, 45000, 150, 1.10},
	{"Ademicon", 95000, 23750, 96, 1.25},
}

func main() {
	planos := planosPadrao
	if len(os.Args) > 1 {
		var err error
		planos, err = lerCSV(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "ler CSV: %v\n", err)
			os.Exit(1)
		}
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_cotas.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "criar arquivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Cotas de demonstração\n")
	out.WriteString("-- Gerado por cmd/seed_cotas\n\n")
	out.WriteString("INSERT INTO cotas (id, vendedor_id, administradora, valor_credito, saldo_devedor,\n")
	out.WriteString("  num_parcelas, valor_parcela, valor_entrada, percentual_entrada, taxa_mensal, status)\nVALUES\n")

	gerados := 0
	for i, p := range planos {
		saldo := p.credito - p.entrada
		var parcela, taxa float64
		if p.taxaMensal > 0 {
			taxa = p.taxaMensal
			parcela = financeiro.ValorParcela(taxa, p.parcelas, saldo)
		} else {
			// Sem taxa informada: parcela linear e taxa resolvida dela.
			parcela = saldo / float64(p.parcelas)
			if t, ok := financeiro.TaxaMensalPadrao(p.parcelas, -parcela, saldo); ok {
				taxa = t
			}
		}
		percentual := p.entrada / p.credito * 100

		sep := ","
		if i == len(planos)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', %.2f, %.2f, %d, %.2f, %.2f, %.2f, %.4f, 'DISPONIVEL')%s\n",
			uuid.New().String(), uuid.New().String(), escapeSQL(p.administradora),
			p.credito, saldo, p.parcelas, parcela, p.entrada, percentual, taxa, sep)
		gerados++
	}
	out.WriteString("ON CONFLICT (id) DO NOTHING;\n")

	fmt.Printf("Gerado %s: %d cotas\n", outPath, gerados)
}

// lerCSV lê planos de um CSV separado por ponto e vírgula, uma linha por plano:
// administradora;credito;entrada;parcelas;taxa_mensal_pct (taxa vazia = resolver).
func lerCSV(path string) ([]plano, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var planos []plano
	for i, row := range rows {
		if len(row) < 4 {
			return nil, fmt.Errorf("linha %d: esperadas ao menos 4 colunas", i+1)
		}
		credito, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("linha %d: credito: %w", i+1, err)
		}
		entrada, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("linha %d: entrada: %w", i+1, err)
		}
		parcelas, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("linha %d: parcelas: %w", i+1, err)
		}
		var taxa float64
		if len(row) > 4 && row[4] != "" {
			taxa, err = strconv.ParseFloat(row[4], 64)
			if err != nil {
				return nil, fmt.Errorf("linha %d: taxa: %w", i+1, err)
			}
		}
		planos = append(planos, plano{
			administradora: row[0],
			credito:        credito,
			entrada:        entrada,
			parcelas:       parcelas,
			taxaMensal:     taxa,
		})
	}
	return planos, nil
}

func escapeSQL(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, '\'', '\'')
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
