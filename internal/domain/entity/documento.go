package entity

import "time"

// Status de revisão de um Documento.
const (
	DocPendenteEnvio = "PENDENTE_ENVIO"
	DocEmAnalise     = "EM_ANALISE"
	DocAprovado      = "APROVADO"
	DocRecusado      = "RECUSADO"
)

// Tipos de documento aceitos para compliance.
const (
	DocTipoIdentidade  = "identidade"
	DocTipoFiscal      = "fiscal"
	DocTipoEmpresa     = "empresa"
	DocTipoExtratoCota = "extrato_cota" // comprova saldo/situação da cota; exigido antes da aprovação final
)

// Donos possíveis de um documento.
const (
	DonoCota     = "cota"
	DonoPerfilPF = "perfil_pf"
	DonoPerfilPJ = "perfil_pj"
)

// Documento é um arquivo enviado para análise, escopado a um dono (cota ou
// perfil) e a um tipo. RECUSADO exige MotivoRecusa não vazio; APROVADO limpa
// qualquer motivo anterior. Reenvio volta o status para EM_ANALISE.
type Documento struct {
	ID           string
	DonoID       string
	TipoDono     string // cota | perfil_pf | perfil_pj
	Tipo         string
	ArquivoURL   string // referência opaca ao object storage
	Status       string
	RevisorID    string
	RevisadoEm   *time.Time
	MotivoRecusa string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
