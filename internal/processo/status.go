package processo

// StatusProcesso é o estado do ciclo de vida de um processo.
type StatusProcesso string

const (
	StatusRascunho               StatusProcesso = "RASCUNHO"
	StatusPendente               StatusProcesso = "PENDENTE"
	StatusEmAnalise              StatusProcesso = "EM_ANALISE"
	StatusAceito                 StatusProcesso = "ACEITO"
	StatusRejeitado              StatusProcesso = "REJEITADO"
	StatusAguardandoDados        StatusProcesso = "AGUARDANDO_DADOS"
	StatusDadosEnviados          StatusProcesso = "DADOS_ENVIADOS"
	StatusAguardandoAnaliseDados StatusProcesso = "AGUARDANDO_ANALISE_DADOS"
	StatusEmAndamento            StatusProcesso = "EM_ANDAMENTO"
	StatusProtocolado            StatusProcesso = "PROTOCOLADO"
	StatusEmJulgamento           StatusProcesso = "EM_JULGAMENTO"
	StatusConcluido              StatusProcesso = "CONCLUIDO"
	StatusArquivado              StatusProcesso = "ARQUIVADO"
)

// infoStatus agrupa rótulo, cor e ícone exibidos nas duas visões.
type infoStatus struct {
	Label string
	Cor   string
	Icone string
}

var statusInfo = map[StatusProcesso]infoStatus{
	StatusRascunho:               {"Rascunho", "gray", "file-edit"},
	StatusPendente:               {"Aguardando confirmação", "amber", "clock"},
	StatusEmAnalise:              {"Em análise", "blue", "search"},
	StatusAceito:                 {"Aceito", "green", "check-circle"},
	StatusRejeitado:              {"Rejeitado", "red", "x-circle"},
	StatusAguardandoDados:        {"Aguardando dados", "orange", "upload"},
	StatusDadosEnviados:          {"Dados enviados", "cyan", "send"},
	StatusAguardandoAnaliseDados: {"Aguardando análise dos dados", "indigo", "hourglass"},
	StatusEmAndamento:            {"Em andamento", "blue", "play-circle"},
	StatusProtocolado:            {"Protocolado", "teal", "stamp"},
	StatusEmJulgamento:           {"Em julgamento", "purple", "scale"},
	StatusConcluido:              {"Concluído", "green", "check-double"},
	StatusArquivado:              {"Arquivado", "gray", "archive"},
}

func (s StatusProcesso) Valido() bool {
	_, ok := statusInfo[s]
	return ok
}

func (s StatusProcesso) Label() string { return statusInfo[s].Label }
func (s StatusProcesso) Cor() string   { return statusInfo[s].Cor }
func (s StatusProcesso) Icone() string { return statusInfo[s].Icone }

// TipoProcesso é a área do direito do processo.
type TipoProcesso string

const (
	TipoCivil          TipoProcesso = "CIVIL"
	TipoPenal          TipoProcesso = "PENAL"
	TipoTrabalhista    TipoProcesso = "TRABALHISTA"
	TipoAdministrativo TipoProcesso = "ADMINISTRATIVO"
	TipoConsumidor     TipoProcesso = "CONSUMIDOR"
	TipoFamilia        TipoProcesso = "FAMILIA"
	TipoPrevidenciario TipoProcesso = "PREVIDENCIARIO"
	TipoOutro          TipoProcesso = "OUTRO"
)

var tipoLabel = map[TipoProcesso]string{
	TipoCivil:          "Direito Civil",
	TipoPenal:          "Direito Penal",
	TipoTrabalhista:    "Direito Trabalhista",
	TipoAdministrativo: "Direito Administrativo",
	TipoConsumidor:     "Direito do Consumidor",
	TipoFamilia:        "Direito de Família",
	TipoPrevidenciario: "Direito Previdenciário",
	TipoOutro:          "Outro",
}

func (t TipoProcesso) Valido() bool {
	_, ok := tipoLabel[t]
	return ok
}

func (t TipoProcesso) Label() string { return tipoLabel[t] }

// Urgencia é a prioridade declarada pelo cliente na abertura.
type Urgencia string

const (
	UrgenciaBaixa Urgencia = "BAIXA"
	UrgenciaMedia Urgencia = "MEDIA"
	UrgenciaAlta  Urgencia = "ALTA"
)

var urgenciaInfo = map[Urgencia]infoStatus{
	UrgenciaBaixa: {"Baixa", "green", "chevron-down"},
	UrgenciaMedia: {"Média", "amber", "minus"},
	UrgenciaAlta:  {"Alta", "red", "chevron-up"},
}

func (u Urgencia) Valido() bool {
	_, ok := urgenciaInfo[u]
	return ok
}

func (u Urgencia) Label() string { return urgenciaInfo[u].Label }
func (u Urgencia) Cor() string   { return urgenciaInfo[u].Cor }
func (u Urgencia) Icone() string { return urgenciaInfo[u].Icone }
