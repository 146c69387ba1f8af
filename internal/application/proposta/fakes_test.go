package proposta

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/contempla/cotas-api/internal/domain/entity"
	"github.com/contempla/cotas-api/internal/domain/repository"
)

// Fakes em memória dos portos de persistência. O fakeTxRunner entrega sempre
// o mesmo conjunto de fakes: sem rollback real, os testes verificam apenas a
// lógica do fluxo, não o isolamento transacional.

type fakeStore struct {
	propostas  map[string]*entity.Proposta
	cotas      map[string]*entity.Cota
	documentos map[string]*entity.Documento
	perfisPF   map[string]*entity.PerfilPF
	perfisPJ   map[string]*entity.PerfilPJ
	historico  []*entity.PropostaHistorico
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		propostas:  make(map[string]*entity.Proposta),
		cotas:      make(map[string]*entity.Cota),
		documentos: make(map[string]*entity.Documento),
		perfisPF:   make(map[string]*entity.PerfilPF),
		perfisPJ:   make(map[string]*entity.PerfilPJ),
	}
}

func (s *fakeStore) repos() Repos {
	return Repos{
		Propostas:  &fakePropostaRepo{s},
		Cotas:      &fakeCotaRepo{s},
		Documentos: &fakeDocumentoRepo{s},
		PerfisPF:   &fakePerfilPFRepo{s},
		PerfisPJ:   &fakePerfilPJRepo{s},
		Historico:  &fakeHistoricoRepo{s},
	}
}

type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(Repos) error) error {
	return fn(r.store.repos())
}

// ── propostas ────────────────────────────────────────────────────────────────

type fakePropostaRepo struct{ s *fakeStore }

func (r *fakePropostaRepo) Create(p *entity.Proposta) error {
	cp := *p
	r.s.propostas[p.ID] = &cp
	return nil
}

func (r *fakePropostaRepo) GetByID(id string) (*entity.Proposta, error) {
	p, ok := r.s.propostas[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePropostaRepo) GetByIDForUpdate(id string) (*entity.Proposta, error) {
	return r.GetByID(id)
}

func (r *fakePropostaRepo) ListByCota(cotaID string) ([]*entity.Proposta, error) {
	var out []*entity.Proposta
	for _, p := range r.s.propostas {
		if p.CotaID == cotaID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePropostaRepo) ListByComprador(compradorID string, limit, offset int) ([]*entity.Proposta, error) {
	var out []*entity.Proposta
	for _, p := range r.s.propostas {
		if p.CompradorID == compradorID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePropostaRepo) ListByCotaEStatus(cotaID, status string) ([]*entity.Proposta, error) {
	var out []*entity.Proposta
	for _, p := range r.s.propostas {
		if p.CotaID == cotaID && p.Status == status {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePropostaRepo) UpdateStatus(id, status, motivoRecusa string) error {
	p := r.s.propostas[id]
	p.Status = status
	p.MotivoRecusa = motivoRecusa
	return nil
}

// ── cotas ────────────────────────────────────────────────────────────────────

type fakeCotaRepo struct{ s *fakeStore }

func (r *fakeCotaRepo) Create(c *entity.Cota) error {
	cp := *c
	r.s.cotas[c.ID] = &cp
	return nil
}

func (r *fakeCotaRepo) GetByID(id string) (*entity.Cota, error) {
	c, ok := r.s.cotas[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCotaRepo) GetByIDForUpdate(id string) (*entity.Cota, error) {
	return r.GetByID(id)
}

func (r *fakeCotaRepo) List(repository.CotaFiltro) ([]*entity.Cota, error) { return nil, nil }

func (r *fakeCotaRepo) Update(c *entity.Cota) error {
	cp := *c
	r.s.cotas[c.ID] = &cp
	return nil
}

func (r *fakeCotaRepo) UpdateStatus(id, status string) error {
	r.s.cotas[id].Status = status
	return nil
}

func (r *fakeCotaRepo) UpdateTaxa(id string, taxa decimal.Decimal, parcela *decimal.Decimal) error {
	t := taxa
	r.s.cotas[id].TaxaMensal = &t
	if parcela != nil {
		r.s.cotas[id].ValorParcela = *parcela
	}
	return nil
}

// ── documentos ───────────────────────────────────────────────────────────────

type fakeDocumentoRepo struct{ s *fakeStore }

func (r *fakeDocumentoRepo) Create(d *entity.Documento) error {
	cp := *d
	r.s.documentos[d.ID] = &cp
	return nil
}

func (r *fakeDocumentoRepo) GetByID(id string) (*entity.Documento, error) {
	d, ok := r.s.documentos[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDocumentoRepo) GetByDonoETipo(donoID, tipoDono, tipo string) (*entity.Documento, error) {
	for _, d := range r.s.documentos {
		if d.DonoID == donoID && d.TipoDono == tipoDono && d.Tipo == tipo {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentoRepo) ListByDono(donoID, tipoDono string) ([]*entity.Documento, error) {
	var out []*entity.Documento
	for _, d := range r.s.documentos {
		if d.DonoID == donoID && d.TipoDono == tipoDono {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDocumentoRepo) ListByStatus(status string, limit, offset int) ([]*entity.Documento, error) {
	var out []*entity.Documento
	for _, d := range r.s.documentos {
		if d.Status == status {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDocumentoRepo) Update(d *entity.Documento) error {
	cp := *d
	r.s.documentos[d.ID] = &cp
	return nil
}

// ── perfis ───────────────────────────────────────────────────────────────────

type fakePerfilPFRepo struct{ s *fakeStore }

func (r *fakePerfilPFRepo) Create(p *entity.PerfilPF) error {
	cp := *p
	r.s.perfisPF[p.ID] = &cp
	return nil
}

func (r *fakePerfilPFRepo) GetByID(id string) (*entity.PerfilPF, error) {
	p, ok := r.s.perfisPF[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePerfilPFRepo) GetByUserID(userID string) (*entity.PerfilPF, error) {
	for _, p := range r.s.perfisPF {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePerfilPFRepo) UpdateStatus(id, status string) error {
	r.s.perfisPF[id].Status = status
	return nil
}

type fakePerfilPJRepo struct{ s *fakeStore }

func (r *fakePerfilPJRepo) Create(p *entity.PerfilPJ) error {
	cp := *p
	r.s.perfisPJ[p.ID] = &cp
	return nil
}

func (r *fakePerfilPJRepo) GetByID(id string) (*entity.PerfilPJ, error) {
	p, ok := r.s.perfisPJ[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePerfilPJRepo) GetByUserID(userID string) (*entity.PerfilPJ, error) {
	for _, p := range r.s.perfisPJ {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePerfilPJRepo) UpdateStatus(id, status string) error {
	r.s.perfisPJ[id].Status = status
	return nil
}

// ── historico ────────────────────────────────────────────────────────────────

type fakeHistoricoRepo struct{ s *fakeStore }

func (r *fakeHistoricoRepo) Append(h *entity.PropostaHistorico) error {
	cp := *h
	r.s.historico = append(r.s.historico, &cp)
	return nil
}

func (r *fakeHistoricoRepo) ListByProposta(propostaID string) ([]*entity.PropostaHistorico, error) {
	var out []*entity.PropostaHistorico
	for _, h := range r.s.historico {
		if h.PropostaID == propostaID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}
