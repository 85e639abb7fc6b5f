package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/Avocus/api-juridico/internal/auth"
	"github.com/Avocus/api-juridico/internal/chat"
	"github.com/Avocus/api-juridico/internal/dadorequisitado"
	"github.com/Avocus/api-juridico/internal/documento"
	"github.com/Avocus/api-juridico/internal/notificacao"
	"github.com/Avocus/api-juridico/internal/processo"
	"github.com/Avocus/api-juridico/internal/timeline"
	"github.com/Avocus/api-juridico/internal/usuario"
	utilsdb "github.com/Avocus/api-juridico/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("arquivo .env não encontrado, usando variáveis do ambiente")
	}

	db, err := utilsdb.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := db.AutoMigrate(
		&usuario.Usuario{},
		&auth.RefreshToken{},
		&processo.Processo{},
		&timeline.Entrada{},
		&dadorequisitado.DadoRequisitado{},
		&documento.Documento{},
		&notificacao.Notificacao{},
		&chat.Mensagem{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Handlers
	usuarioHandler := usuario.NewHandler(db)
	processoHandler := processo.NewHandler(db)
	notificacaoHandler := notificacao.NewHandler(db)
	chatHandler := chat.NewHandler(db)

	// Router
	r := mux.NewRouter()

	// Rotas abertas
	r.HandleFunc("/user/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/user/registrar", usuarioHandler.Registrar).Methods("POST")
	r.HandleFunc("/auth/refresh", auth.RefreshHTTPHandler(db)).Methods("POST")
	r.HandleFunc("/auth/logout", auth.LogoutHTTPHandler(db)).Methods("POST")

	// WebSocket autentica pelo token na query string
	r.HandleFunc("/processos/{id}/chat/ws", chatHandler.WebSocket).Methods("GET")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	api.HandleFunc("/user/profile", usuarioHandler.Profile).Methods("GET")
	api.HandleFunc("/user/profile", usuarioHandler.AtualizarPerfil).Methods("PUT")
	api.HandleFunc("/user/dados-gerais", usuarioHandler.DadosGerais).Methods("GET")
	api.HandleFunc("/user/perfil-pendente", usuarioHandler.PerfilPendente).Methods("GET")

	// Rotas de processos
	api.HandleFunc("/processos", processoHandler.Criar).Methods("POST")
	api.HandleFunc("/processos", processoHandler.Listar).Methods("GET")
	api.HandleFunc("/processos/{id}", processoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/processos/{id}", processoHandler.Arquivar).Methods("DELETE")
	api.HandleFunc("/processos/{id}/status", processoHandler.AtualizarStatus).Methods("PATCH")
	api.HandleFunc("/processos/{id}/timeline", processoHandler.ListarTimeline).Methods("GET")

	// Rotas de dados requisitados
	api.HandleFunc("/processos/{id}/dados-requisitados", processoHandler.CriarDadosRequisitados).Methods("POST")
	api.HandleFunc("/processos/{id}/dados-requisitados", processoHandler.ListarDadosRequisitados).Methods("GET")
	api.HandleFunc("/processos/{id}/dados-requisitados/{iid}/cumprir", processoHandler.CumprirDadoRequisitado).Methods("PATCH")
	api.HandleFunc("/processos/{id}/dados-requisitados/{iid}/reabrir", processoHandler.ReabrirDadoRequisitado).Methods("PATCH")

	// Rotas de documentos
	api.HandleFunc("/processos/{id}/documentos", processoHandler.CriarDocumento).Methods("POST")
	api.HandleFunc("/processos/{id}/documentos", processoHandler.ListarDocumentos).Methods("GET")
	api.HandleFunc("/processos/{id}/documentos/{did}", processoHandler.DeletarDocumento).Methods("DELETE")

	// Histórico do chat
	api.HandleFunc("/processos/{id}/chat/mensagens", chatHandler.Mensagens).Methods("GET")

	// Notificações
	api.HandleFunc("/notificacoes", notificacaoHandler.Listar).Methods("GET")
	api.HandleFunc("/notificacoes/{id}/lida", notificacaoHandler.MarcarLida).Methods("PATCH")

	// Rotas exclusivas de advogado
	adv := api.NewRoute().Subrouter()
	adv.Use(auth.RequireAdvogado)
	adv.HandleFunc("/advogado/meus-clientes", usuarioHandler.MeusClientes).Methods("GET")
	adv.HandleFunc("/advogado/resumo", usuarioHandler.Resumo).Methods("GET")

	// Reivindicação (advogado)
	adv.HandleFunc("/processos/{id}/reivindicar", processoHandler.Reivindicar).Methods("POST")
	adv.HandleFunc("/processos/{id}/confirmar-reivindicacao", processoHandler.ConfirmarReivindicacao).Methods("POST")
	adv.HandleFunc("/processos/{id}/abandonar-reivindicacao", processoHandler.AbandonarReivindicacao).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Println("Servidor rodando em http://localhost:" + port)
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(r)))
}
