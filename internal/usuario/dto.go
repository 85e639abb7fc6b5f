package usuario

import "github.com/Avocus/api-juridico/internal/processo"

// ResumoAdvogadoDTO alimenta o painel do advogado.
type ResumoAdvogadoDTO struct {
	ID                  uint   `json:"id"`
	Nome                string `json:"nome"`
	Sobrenome           string `json:"sobrenome"`
	Email               string `json:"email"`
	OAB                 string `json:"oab"`
	Foto                string `json:"foto"`
	ProcessosAtivos     int    `json:"processosAtivos"`
	ProcessosConcluidos int    `json:"processosConcluidos"`
	AguardandoRevisao   int    `json:"aguardandoRevisao"`
	ClientesAtendidos   int    `json:"clientesAtendidos"`
}

// MontarResumoAdvogadoDTO agrega métricas dos processos do advogado.
func MontarResumoAdvogadoDTO(adv Usuario, processos []processo.Processo, clientes int) ResumoAdvogadoDTO {
	ativos, concluidos, revisao := 0, 0, 0
	for _, p := range processos {
		switch p.Status {
		case processo.StatusConcluido, processo.StatusArquivado:
			concluidos++
		case processo.StatusAguardandoAnaliseDados, processo.StatusDadosEnviados:
			revisao++
			ativos++
		default:
			ativos++
		}
	}

	return ResumoAdvogadoDTO{
		ID:                  adv.ID,
		Nome:                adv.Nome,
		Sobrenome:           adv.Sobrenome,
		Email:               adv.Email,
		OAB:                 adv.OAB,
		Foto:                adv.Foto,
		ProcessosAtivos:     ativos,
		ProcessosConcluidos: concluidos,
		AguardandoRevisao:   revisao,
		ClientesAtendidos:   clientes,
	}
}
