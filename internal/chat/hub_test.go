package chat

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

func servidorDeSala(t *testing.T, hub *Hub, processoID uint) *httptest.Server {
	t.Helper()
	upg := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upg.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.Entrar(processoID, c)
	}))
}

func esperaParticipantes(t *testing.T, hub *Hub, processoID uint, n int) {
	t.Helper()
	for i := 0; i < 200; i++ {
		hub.mu.RLock()
		atual := len(hub.salas[processoID])
		hub.mu.RUnlock()
		if atual == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("sala %d não chegou a %d participantes", processoID, n)
}

// Remetentes simultâneos difundem a partir das próprias goroutines de
// leitura; as escritas em cada conexão precisam sair serializadas.
func TestDifundirComRemetentesConcorrentes(t *testing.T) {
	hub := NewHub()
	srv := servidorDeSala(t, hub, 1)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	cli, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer cli.Close()
	esperaParticipantes(t, hub, 1, 1)

	const remetentes = 8
	const porRemetente = 25
	const total = remetentes * porRemetente

	recebidas := make(chan Mensagem, total)
	go func() {
		for {
			_ = cli.SetReadDeadline(time.Now().Add(5 * time.Second))
			var m Mensagem
			if err := cli.ReadJSON(&m); err != nil {
				close(recebidas)
				return
			}
			recebidas <- m
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < remetentes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < porRemetente; j++ {
				hub.Difundir(1, Mensagem{
					ID:         uuid.NewString(),
					ProcessoID: 1,
					SenderType: SenderCliente,
					Content:    "oi",
				})
			}
		}()
	}
	wg.Wait()

	contagem := 0
	prazo := time.After(5 * time.Second)
	for contagem < total {
		select {
		case _, ok := <-recebidas:
			if !ok {
				t.Fatalf("conexão caiu após %d de %d mensagens", contagem, total)
			}
			contagem++
		case <-prazo:
			t.Fatalf("timeout: %d de %d mensagens recebidas", contagem, total)
		}
	}
}

func TestSairRemoveDaSala(t *testing.T) {
	hub := NewHub()
	srv := servidorDeSala(t, hub, 3)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	cli, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer cli.Close()
	esperaParticipantes(t, hub, 3, 1)

	hub.mu.RLock()
	var conn *websocket.Conn
	for c := range hub.salas[3] {
		conn = c
	}
	hub.mu.RUnlock()

	hub.Sair(3, conn)
	hub.mu.RLock()
	_, existe := hub.salas[3]
	hub.mu.RUnlock()
	if existe {
		t.Errorf("sala vazia deveria ser descartada")
	}
}
