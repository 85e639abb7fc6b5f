package processo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Avocus/api-juridico/internal/auth"
	"github.com/Avocus/api-juridico/internal/dadorequisitado"
	"github.com/Avocus/api-juridico/internal/documento"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type criarDocumentoRequest struct {
	Nome     string `json:"nome" validate:"required,max=255"`
	MimeType string `json:"mimeType"`
	Tamanho  int64  `json:"tamanho"`
	URL      string `json:"url" validate:"required"`
	// Quando informado, o upload cumpre o dado requisitado correspondente.
	DadoRequisitadoID uint `json:"dadoRequisitadoId,omitempty"`
}

// CriarDocumento trata POST /processos/{id}/documentos. O corpo traz os
// metadados do arquivo (o conteúdo já foi parado no storage, a url
// aponta para ele). Cliente só anexa enquanto o status permitir.
func (h *Handler) CriarDocumento(w http.ResponseWriter, r *http.Request) {
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
	if !isAdvogado && !PodeClienteAlterarDocumentos(p.Status, isAdvogado) {
		http.Error(w, "o processo não aceita anexos neste momento", http.StatusUnprocessableEntity)
		return
	}

	var dto criarDocumentoRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(dto); err != nil {
		http.Error(w, "campos obrigatórios ausentes: "+err.Error(), http.StatusBadRequest)
		return
	}

	doc := documento.Documento{
		ProcessoID:         p.ID,
		Nome:               dto.Nome,
		MimeType:           dto.MimeType,
		Tamanho:            dto.Tamanho,
		Chave:              uuid.NewString(),
		URL:                dto.URL,
		EnviadoPorAdvogado: isAdvogado,
	}

	// Anexo e cumprimento do item andam juntos: ou grava os dois ou nada.
	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Erro ao salvar documento", http.StatusInternalServerError)
		return
	}
	if err := h.Maquina.Documentos.Criar(tx, &doc); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao salvar documento", http.StatusInternalServerError)
		return
	}
	if dto.DadoRequisitadoID != 0 {
		item, err := h.Maquina.Dados.BuscarPorID(tx, dto.DadoRequisitadoID)
		if err != nil || item.ProcessoID != p.ID {
			_ = tx.Rollback()
			http.Error(w, "Dado requisitado não encontrado", http.StatusNotFound)
			return
		}
		if err := h.Maquina.Dados.Cumprir(tx, item.ID, doc.ID, h.Maquina.now()); err != nil {
			_ = tx.Rollback()
			if errors.Is(err, dadorequisitado.ErrItemJaEnviado) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, "Erro ao cumprir dado requisitado", http.StatusInternalServerError)
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao salvar documento", http.StatusInternalServerError)
		return
	}

	if dto.DadoRequisitadoID != 0 {
		h.avancarSeCompleto(p.ID)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(doc)
}

// ListarDocumentos trata GET /processos/{id}/documentos
func (h *Handler) ListarDocumentos(w http.ResponseWriter, r *http.Request) {
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

	docs, err := h.Maquina.Documentos.ListarPorProcesso(h.DB, p.ID)
	if err != nil {
		http.Error(w, "Erro ao listar documentos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(docs)
}

// DeletarDocumento trata DELETE /processos/{id}/documentos/{did}.
// Advogado remove a qualquer momento; cliente só enquanto o status
// permitir, e apenas anexos dele.
func (h *Handler) DeletarDocumento(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	did, err := strconv.Atoi(vars["did"])
	if err != nil {
		http.Error(w, "ID do documento inválido", http.StatusBadRequest)
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

	doc, err := h.Maquina.Documentos.BuscarPorID(h.DB, uint(did))
	if err != nil || doc.ProcessoID != p.ID {
		http.Error(w, "Documento não encontrado", http.StatusNotFound)
		return
	}

	if !isAdvogado {
		if doc.EnviadoPorAdvogado {
			http.Error(w, "acesso negado", http.StatusForbidden)
			return
		}
		if !PodeClienteAlterarDocumentos(p.Status, isAdvogado) {
			http.Error(w, "o processo não aceita alterações de anexos neste momento", http.StatusUnprocessableEntity)
			return
		}
	}

	// Reabertura do item vinculado e remoção do anexo andam juntas:
	// ou some o documento e o item volta a pendente, ou nada muda.
	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Erro ao remover documento", http.StatusInternalServerError)
		return
	}
	itens, err := h.Maquina.Dados.ListarPorProcesso(tx, p.ID)
	if err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao remover documento", http.StatusInternalServerError)
		return
	}
	for _, item := range itens {
		if item.DocumentoID != nil && *item.DocumentoID == doc.ID {
			if err := h.Maquina.Dados.Reabrir(tx, item.ID); err != nil {
				_ = tx.Rollback()
				http.Error(w, "Erro ao remover documento", http.StatusInternalServerError)
				return
			}
		}
	}
	if err := h.Maquina.Documentos.Deletar(tx, doc.ID); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao remover documento", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao remover documento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
