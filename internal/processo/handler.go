package processo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Avocus/api-juridico/internal/auth"
	"github.com/Avocus/api-juridico/internal/timeline"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

var validate = validator.New()

// Handler encapsula DB, repository e a máquina de estados
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Maquina    *Maquina
	Timeline   timeline.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Maquina:    NovaMaquina(db),
		Timeline:   timeline.NewRepository(),
	}
}

type criarProcessoRequest struct {
	Titulo        string `json:"titulo" validate:"required,max=255"`
	Tipo          string `json:"tipo" validate:"required"`
	Descricao     string `json:"descricao" validate:"required"`
	SituacaoAtual string `json:"situacaoAtual"`
	Objetivos     string `json:"objetivos"`
	Urgencia      string `json:"urgencia"`
	// Preenchido quando um advogado abre o processo em nome do cliente.
	ClienteID uint `json:"clienteId,omitempty"`
}

type atualizarStatusRequest struct {
	Status      string `json:"status" validate:"required"`
	Descricao   string `json:"descricao"`
	Observacoes string `json:"observacoes"`
}

func autorDoContexto(r *http.Request) timeline.Autor {
	if isAdv, _ := r.Context().Value(auth.CtxIsAdvogado).(bool); isAdv {
		return timeline.AutorAdvogado
	}
	return timeline.AutorCliente
}

// podeAcessar: cliente vê os próprios; advogado vê os atribuídos, os que
// reivindicou e os ainda sem responsável (vitrine de reivindicação).
func podeAcessar(p *Processo, userID uint, isAdvogado bool) bool {
	if !isAdvogado {
		return p.ClienteID == userID
	}
	if p.AdvogadoID != nil && *p.AdvogadoID == userID {
		return true
	}
	if p.PretendenteID != nil && *p.PretendenteID == userID {
		return true
	}
	return p.AdvogadoID == nil
}

func respondeErroMaquina(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
	case errors.Is(err, ErrTransicaoInvalida):
		http.Error(w, "transição de status não permitida", http.StatusUnprocessableEntity)
	case errors.Is(err, ErrStatusInvalido), errors.Is(err, ErrAutorInvalido):
		http.Error(w, "status inválido", http.StatusBadRequest)
	case errors.Is(err, ErrJaAtribuido), errors.Is(err, ErrJaReivindicado),
		errors.Is(err, ErrSemReivindicacao), errors.Is(err, ErrOutroPretendente):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "Erro ao atualizar processo", http.StatusInternalServerError)
	}
}

// Criar trata POST /processos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	userVal := r.Context().Value(auth.CtxUserID)
	if userVal == nil {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	userID := userVal.(uint)
	isAdvogado, _ := r.Context().Value(auth.CtxIsAdvogado).(bool)

	var dto criarProcessoRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(dto); err != nil {
		http.Error(w, "campos obrigatórios ausentes: "+err.Error(), http.StatusBadRequest)
		return
	}

	tipo := TipoProcesso(dto.Tipo)
	if !tipo.Valido() {
		http.Error(w, "tipo de processo inválido", http.StatusBadRequest)
		return
	}
	urgencia := Urgencia(dto.Urgencia)
	if dto.Urgencia == "" {
		urgencia = UrgenciaMedia
	}
	if !urgencia.Valido() {
		http.Error(w, "urgência inválida", http.StatusBadRequest)
		return
	}

	clienteID := userID
	autor := timeline.AutorCliente
	if isAdvogado {
		// Advogado abre em nome do cliente informado.
		if dto.ClienteID == 0 {
			http.Error(w, "o campo 'clienteId' é obrigatório para advogados", http.StatusBadRequest)
			return
		}
		clienteID = dto.ClienteID
		autor = timeline.AutorAdvogado
	}

	p := Processo{
		Titulo:        dto.Titulo,
		Tipo:          tipo,
		Descricao:     dto.Descricao,
		SituacaoAtual: dto.SituacaoAtual,
		Objetivos:     dto.Objetivos,
		Urgencia:      urgencia,
		ClienteID:     clienteID,
	}

	criado, err := h.Maquina.CriarProcesso(&p, autor)
	if err != nil {
		http.Error(w, "Erro ao salvar processo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(criado)
}

// Listar trata GET /processos (e ?disponiveis=true para a vitrine do advogado)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	isAdvogado, _ := r.Context().Value(auth.CtxIsAdvogado).(bool)

	var (
		list []Processo
		err  error
	)
	if isAdvogado && r.URL.Query().Get("disponiveis") == "true" {
		list, err = h.Repository.ListarDisponiveis(h.DB)
	} else if isAdvogado {
		list, err = h.Repository.ListarPorAdvogado(h.DB, userID)
	} else {
		list, err = h.Repository.ListarPorCliente(h.DB, userID)
	}
	if err != nil {
		http.Error(w, "Erro ao listar processos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID trata GET /processos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// AtualizarStatus trata PATCH /processos/{id}/status
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var payload atualizarStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if payload.Status == "" {
		http.Error(w, "o campo 'status' é obrigatório", http.StatusBadRequest)
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

	atualizado, err := h.Maquina.SolicitarTransicao(uint(id), autorDoContexto(r), StatusProcesso(payload.Status), payload.Descricao, payload.Observacoes)
	if err != nil {
		respondeErroMaquina(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
}

// ListarTimeline trata GET /processos/{id}/timeline
func (h *Handler) ListarTimeline(w http.ResponseWriter, r *http.Request) {
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

	entradas, err := h.Timeline.ListarPorProcesso(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Erro ao listar timeline", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entradas)
}

// Reivindicar trata POST /processos/{id}/reivindicar (advogado)
func (h *Handler) Reivindicar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	advogadoID, _ := r.Context().Value(auth.CtxUserID).(uint)

	var payload struct {
		Descricao string `json:"descricao"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)

	p, err := h.Maquina.Reivindicar(uint(id), advogadoID, payload.Descricao)
	if err != nil {
		respondeErroMaquina(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// ConfirmarReivindicacao trata POST /processos/{id}/confirmar-reivindicacao
func (h *Handler) ConfirmarReivindicacao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	advogadoID, _ := r.Context().Value(auth.CtxUserID).(uint)

	p, err := h.Maquina.ConfirmarReivindicacao(uint(id), advogadoID)
	if err != nil {
		respondeErroMaquina(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// AbandonarReivindicacao trata POST /processos/{id}/abandonar-reivindicacao
func (h *Handler) AbandonarReivindicacao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	advogadoID, _ := r.Context().Value(auth.CtxUserID).(uint)

	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}
	if p.PretendenteID != nil && *p.PretendenteID != advogadoID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	atualizado, err := h.Maquina.AbandonarReivindicacao(uint(id))
	if err != nil {
		respondeErroMaquina(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
}

// Arquivar trata DELETE /processos/{id}. Processo nunca é removido de
// fato; vira ARQUIVADO via máquina de estados.
func (h *Handler) Arquivar(w http.ResponseWriter, r *http.Request) {
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

	atualizado, err := h.Maquina.SolicitarTransicao(uint(id), autorDoContexto(r), StatusArquivado, "Processo arquivado", "")
	if err != nil {
		respondeErroMaquina(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
}
