package notificacao

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Avocus/api-juridico/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// Listar trata GET /notificacoes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)

	list, err := h.Repository.ListarPorUsuario(h.DB, userID)
	if err != nil {
		http.Error(w, "Erro ao listar notificações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// MarcarLida trata PATCH /notificacoes/{id}/lida
func (h *Handler) MarcarLida(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)

	n, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Notificação não encontrada", http.StatusNotFound)
		return
	}
	if n.UsuarioID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Repository.MarcarLida(h.DB, uint(id)); err != nil {
		http.Error(w, "Erro ao marcar notificação", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
