package usuario

import (
	"encoding/json"
	"net/http"

	"github.com/Avocus/api-juridico/internal/auth"
	"github.com/Avocus/api-juridico/internal/processo"
	"github.com/Avocus/api-juridico/internal/utils"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

// request DTOs
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registrarRequest struct {
	Nome       string `json:"nome" validate:"required"`
	Sobrenome  string `json:"sobrenome"`
	CPF        string `json:"cpf" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Telefone   string `json:"telefone"`
	Foto       string `json:"foto"`
	Senha      string `json:"senha" validate:"required,min=8"`
	IsAdvogado bool   `json:"isAdvogado"`
	OAB        string `json:"oab"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Login trata POST /user/login e devolve { jwt, name, client }
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "login e senha são obrigatórios", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmailOuCPF(h.DB, req.Login)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarSenha(user.Senha, req.Password) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	// Access token + refresh cookie rotativo
	token, err := auth.IssueTokensOnLogin(h.DB, w, user.ID, user.IsAdvogado)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"jwt":    token,
		"name":   user.Nome,
		"client": !user.IsAdvogado,
	})
}

// Registrar trata POST /user/registrar (aberto)
func (h *Handler) Registrar(w http.ResponseWriter, r *http.Request) {
	var req registrarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "cadastro incompleto: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.IsAdvogado && req.OAB == "" {
		http.Error(w, "o campo 'oab' é obrigatório para advogados", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u := Usuario{
		Nome:       req.Nome,
		Sobrenome:  req.Sobrenome,
		CPF:        req.CPF,
		Email:      req.Email,
		Telefone:   req.Telefone,
		Foto:       req.Foto,
		Senha:      hash,
		IsAdvogado: req.IsAdvogado,
		OAB:        req.OAB,
	}

	if err := h.Repository.Salvar(h.DB, &u); err != nil {
		http.Error(w, "erro ao salvar usuário", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(u)
}

// Profile trata GET /user/profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)

	u, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

// AtualizarPerfil trata PUT /user/profile
func (h *Handler) AtualizarPerfil(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)

	var dados Usuario
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Atualizar(h.DB, userID, &dados); err != nil {
		http.Error(w, "erro ao atualizar perfil", http.StatusInternalServerError)
		return
	}

	atualizado, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
}

// DadosGerais trata GET /user/dados-gerais
func (h *Handler) DadosGerais(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)

	u, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"nome":           u.Nome,
		"sobrenome":      u.Sobrenome,
		"cpf":            u.CPF,
		"telefone":       u.Telefone,
		"dataNascimento": u.DataNascimento,
		"endereco":       u.Endereco,
		"cidade":         u.Cidade,
		"uf":             u.UF,
	})
}

// PerfilPendente trata GET /user/perfil-pendente
func (h *Handler) PerfilPendente(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)

	u, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}

	faltando := u.CamposPendentes()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"pendente": len(faltando) > 0,
		"faltando": faltando,
	})
}

// MeusClientes trata GET /advogado/meus-clientes
func (h *Handler) MeusClientes(w http.ResponseWriter, r *http.Request) {
	advogadoID, _ := r.Context().Value(auth.CtxUserID).(uint)

	clientes, err := h.Repository.ClientesDoAdvogado(h.DB, advogadoID)
	if err != nil {
		http.Error(w, "erro ao listar clientes", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(clientes)
}

// Resumo trata GET /advogado/resumo
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	advogadoID, _ := r.Context().Value(auth.CtxUserID).(uint)

	adv, err := h.Repository.BuscarPorID(h.DB, advogadoID)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}

	processos, _ := processo.NewRepository().ListarPorAdvogado(h.DB, advogadoID)
	clientes, _ := h.Repository.ClientesDoAdvogado(h.DB, advogadoID)
	dto := MontarResumoAdvogadoDTO(*adv, processos, len(clientes))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto)
}
