package chat

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// conexao serializa as escritas em um *websocket.Conn: a lib só admite
// um escritor por vez, e difusões partem da goroutine de leitura de
// cada remetente.
type conexao struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conexao) enviar(msg Mensagem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(msg)
}

// Hub mantém as salas de chat, uma por processo. Conexões entram e saem
// conforme o cliente abre e fecha o WebSocket; mensagens gravadas são
// retransmitidas para todos os participantes da sala.
type Hub struct {
	mu    sync.RWMutex
	salas map[uint]map[*websocket.Conn]*conexao
}

func NewHub() *Hub {
	return &Hub{
		salas: make(map[uint]map[*websocket.Conn]*conexao),
	}
}

func (h *Hub) Entrar(processoID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.salas[processoID] == nil {
		h.salas[processoID] = make(map[*websocket.Conn]*conexao)
	}
	h.salas[processoID][conn] = &conexao{ws: conn}
}

func (h *Hub) Sair(processoID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sala, ok := h.salas[processoID]; ok {
		delete(sala, conn)
		if len(sala) == 0 {
			delete(h.salas, processoID)
		}
	}
	_ = conn.Close()
}

// Difundir envia a mensagem para todos na sala, inclusive o remetente
// (o front usa o eco como confirmação de entrega).
func (h *Hub) Difundir(processoID uint, msg Mensagem) {
	h.mu.RLock()
	conns := make([]*conexao, 0, len(h.salas[processoID]))
	for _, c := range h.salas[processoID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.enviar(msg); err != nil {
			log.Printf("chat: falha ao enviar para conexão do processo %d: %v", processoID, err)
			h.Sair(processoID, c.ws)
		}
	}
}
