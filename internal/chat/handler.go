package chat

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Avocus/api-juridico/internal/auth"
	"github.com/Avocus/api-juridico/internal/processo"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS fica a cargo do rs/cors nas rotas HTTP; o handshake do WS
	// aceita qualquer origem e a autorização é feita pelo token.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Processos  processo.Repository
	Hub        *Hub
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Processos:  processo.NewRepository(),
		Hub:        NewHub(),
	}
}

// Participante do chat: o cliente dono do processo, o advogado
// responsável ou o pretendente de uma reivindicação em andamento.
func participa(p *processo.Processo, userID uint, isAdvogado bool) bool {
	if !isAdvogado {
		return p.ClienteID == userID
	}
	if p.AdvogadoID != nil && *p.AdvogadoID == userID {
		return true
	}
	return p.PretendenteID != nil && *p.PretendenteID == userID
}

// Mensagens trata GET /processos/{id}/chat/mensagens (histórico).
func (h *Handler) Mensagens(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Processos.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	isAdvogado, _ := r.Context().Value(auth.CtxIsAdvogado).(bool)
	if !participa(p, userID, isAdvogado) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	msgs, err := h.Repository.ListarPorProcesso(h.DB, p.ID)
	if err != nil {
		http.Error(w, "Erro ao listar mensagens", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(msgs)
}

// tokenDaRequisicao aceita o token no header Authorization ou na query
// string (o construtor de WebSocket do navegador não define headers).
func tokenDaRequisicao(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// WebSocket trata GET /processos/{id}/chat/ws. Cada conexão entra na
// sala do processo; mensagens recebidas são persistidas e difundidas.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	claims, err := auth.ValidarToken(tokenDaRequisicao(r))
	if err != nil {
		http.Error(w, "Token inválido", http.StatusUnauthorized)
		return
	}

	p, err := h.Processos.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}
	if !participa(p, claims.UserID, claims.IsAdvogado) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("chat: falha no upgrade do processo %d: %v", p.ID, err)
		return
	}

	h.Hub.Entrar(p.ID, conn)
	defer h.Hub.Sair(p.ID, conn)

	sender := SenderCliente
	if claims.IsAdvogado {
		sender = SenderAdvogado
	}

	for {
		var entrada struct {
			Content string `json:"content"`
		}
		if err := conn.ReadJSON(&entrada); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("chat: conexão do processo %d encerrada: %v", p.ID, err)
			}
			return
		}
		if strings.TrimSpace(entrada.Content) == "" {
			continue
		}

		msg := Mensagem{
			ID:         uuid.NewString(),
			ProcessoID: p.ID,
			UsuarioID:  claims.UserID,
			SenderType: sender,
			Content:    entrada.Content,
		}
		if err := h.Repository.Criar(h.DB, &msg); err != nil {
			log.Printf("chat: falha ao gravar mensagem do processo %d: %v", p.ID, err)
			continue
		}
		h.Hub.Difundir(p.ID, msg)
	}
}
