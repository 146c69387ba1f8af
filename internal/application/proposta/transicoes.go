package proposta

import "github.com/contempla/cotas-api/internal/domain/entity"

// Grafo de transições permitidas do ciclo de vida da proposta. CONCLUIDA não
// tem arestas de saída (nem reversão pós-conclusão); RECUSADA só reentra em
// EM_ANALISE.
var transicoes = map[string][]string{
	entity.PropostaEmAnalise:             {entity.PropostaPreAprovada, entity.PropostaRecusada},
	entity.PropostaPreAprovada:           {entity.PropostaAprovada, entity.PropostaRecusada, entity.PropostaEmAnalise},
	entity.PropostaAprovada:              {entity.PropostaTransferenciaIniciada, entity.PropostaRecusada},
	entity.PropostaTransferenciaIniciada: {entity.PropostaConcluida, entity.PropostaRecusada},
	entity.PropostaConcluida:             {},
	entity.PropostaRecusada:              {entity.PropostaEmAnalise},
}

// TransicaoPermitida informa se a aresta de->para existe no grafo.
func TransicaoPermitida(de, para string) bool {
	for _, alvo := range transicoes[de] {
		if alvo == para {
			return true
		}
	}
	return false
}

// StatusValido informa se o status é um nó do grafo.
func StatusValido(s string) bool {
	_, ok := transicoes[s]
	return ok
}
