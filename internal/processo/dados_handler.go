package processo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Avocus/api-juridico/internal/auth"
	"github.com/Avocus/api-juridico/internal/dadorequisitado"
	"github.com/Avocus/api-juridico/internal/timeline"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type criarDadoRequest struct {
	Tipo        string     `json:"tipo" validate:"required"`
	Descricao   string     `json:"descricao" validate:"required"`
	Responsavel string     `json:"responsavel"`
	Prazo       *time.Time `json:"prazo"`
	Observacoes string     `json:"observacoes"`
}

// CriarDadosRequisitados trata POST /processos/{id}/dados-requisitados.
// Recebe um lote e cria item a item; falha em um não derruba os demais,
// a resposta reporta quantos entraram e quantos falharam.
func (h *Handler) CriarDadosRequisitados(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	isAdvogado, _ := r.Context().Value(auth.CtxIsAdvogado).(bool)
	if !isAdvogado {
		http.Error(w, "acesso restrito a advogados", http.StatusForbidden)
		return
	}

	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !podeAcessar(p, userID, true) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var lote []criarDadoRequest
	if err := json.NewDecoder(r.Body).Decode(&lote); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if len(lote) == 0 {
		http.Error(w, "lote vazio", http.StatusBadRequest)
		return
	}

	var criados []dadorequisitado.DadoRequisitado
	falhas := 0
	for _, req := range lote {
		if err := validate.Struct(req); err != nil {
			falhas++
			continue
		}
		tipo := dadorequisitado.Tipo(req.Tipo)
		if !tipo.Valido() {
			falhas++
			continue
		}
		resp := dadorequisitado.Responsavel(req.Responsavel)
		if req.Responsavel == "" {
			resp = dadorequisitado.ResponsavelCliente
		}
		if !resp.Valido() {
			falhas++
			continue
		}

		item := dadorequisitado.DadoRequisitado{
			ProcessoID:  p.ID,
			Tipo:        tipo,
			Descricao:   req.Descricao,
			Responsavel: resp,
			Prazo:       req.Prazo,
			Observacoes: req.Observacoes,
		}
		if err := h.Maquina.Dados.Criar(h.DB, &item); err != nil {
			falhas++
			continue
		}
		criados = append(criados, item)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"criados": len(criados),
		"falhas":  falhas,
		"itens":   criados,
	})
}

// ListarDadosRequisitados trata GET /processos/{id}/dados-requisitados
func (h *Handler) ListarDadosRequisitados(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	isAdvogado, _ := r.Context().Value(auth.CtxIsAdvogado).(bool)
	if !podeAcessar(p, userID, isAdvogado) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	itens, err := h.Maquina.Dados.ListarPorProcesso(h.DB, p.ID)
	if err != nil {
		http.Error(w, "Erro ao listar dados requisitados", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(itens)
}

// CumprirDadoRequisitado trata PATCH /processos/{id}/dados-requisitados/{iid}/cumprir.
// Serve para itens de INFORMACAO (sem anexo); documentos entram pelo
// upload, que já vincula e cumpre.
func (h *Handler) CumprirDadoRequisitado(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	iid, err := strconv.Atoi(vars["iid"])
	if err != nil {
		http.Error(w, "ID do item inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	isAdvogado, _ := r.Context().Value(auth.CtxIsAdvogado).(bool)
	if !podeAcessar(p, userID, isAdvogado) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	item, err := h.Maquina.Dados.BuscarPorID(h.DB, uint(iid))
	if err != nil || item.ProcessoID != p.ID {
		http.Error(w, "Dado requisitado não encontrado", http.StatusNotFound)
		return
	}

	var payload struct {
		DocumentoID uint `json:"documentoId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)

	if err := h.Maquina.Dados.Cumprir(h.DB, item.ID, payload.DocumentoID, h.Maquina.now()); err != nil {
		switch {
		case errors.Is(err, dadorequisitado.ErrItemJaEnviado):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "Dado requisitado não encontrado", http.StatusNotFound)
		default:
			http.Error(w, "Erro ao cumprir item", http.StatusInternalServerError)
		}
		return
	}

	h.avancarSeCompleto(p.ID)

	atualizado, _ := h.Maquina.Dados.BuscarPorID(h.DB, item.ID)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
}

// ReabrirDadoRequisitado trata PATCH /processos/{id}/dados-requisitados/{iid}/reabrir
func (h *Handler) ReabrirDadoRequisitado(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	iid, err := strconv.Atoi(vars["iid"])
	if err != nil {
		http.Error(w, "ID do item inválido", http.StatusBadRequest)
		return
	}

	isAdvogado, _ := r.Context().Value(auth.CtxIsAdvogado).(bool)
	if !isAdvogado {
		http.Error(w, "acesso restrito a advogados", http.StatusForbidden)
		return
	}

	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !podeAcessar(p, userID, true) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	item, err := h.Maquina.Dados.BuscarPorID(h.DB, uint(iid))
	if err != nil || item.ProcessoID != p.ID {
		http.Error(w, "Dado requisitado não encontrado", http.StatusNotFound)
		return
	}

	if err := h.Maquina.Dados.Reabrir(h.DB, item.ID); err != nil {
		http.Error(w, "Erro ao reabrir item", http.StatusInternalServerError)
		return
	}

	atualizado, _ := h.Maquina.Dados.BuscarPorID(h.DB, item.ID)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
}

// avancarSeCompleto move AGUARDANDO_DADOS para AGUARDANDO_ANALISE_DADOS
// quando todos os itens do processo foram cumpridos. Falha aqui não
// invalida o cumprimento já gravado.
func (h *Handler) avancarSeCompleto(processoID uint) {
	completos, err := h.Maquina.Dados.TodosEnviados(h.DB, processoID)
	if err != nil || !completos {
		return
	}
	p, err := h.Repository.BuscarPorID(h.DB, processoID)
	if err != nil || p.Status != StatusAguardandoDados {
		return
	}
	_, _ = h.Maquina.SolicitarTransicao(processoID, timeline.AutorSistema, StatusAguardandoAnaliseDados,
		"Todos os dados requisitados foram enviados", "")
}
