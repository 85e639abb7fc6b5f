package processo

import (
	"testing"

	"github.com/Avocus/api-juridico/internal/timeline"
)

func TestTransicaoPermitida(t *testing.T) {
	casos := []struct {
		nome   string
		autor  timeline.Autor
		de     StatusProcesso
		para   StatusProcesso
		espera bool
	}{
		{"advogado aceita da análise", timeline.AutorAdvogado, StatusEmAnalise, StatusAceito, true},
		{"advogado pede dados após confirmar", timeline.AutorAdvogado, StatusPendente, StatusAguardandoDados, true},
		{"advogado aprova submissão", timeline.AutorAdvogado, StatusAguardandoAnaliseDados, StatusEmAndamento, true},
		{"advogado rejeita submissão", timeline.AutorAdvogado, StatusAguardandoAnaliseDados, StatusAguardandoDados, true},
		{"advogado não pula do rascunho ao concluído", timeline.AutorAdvogado, StatusRascunho, StatusConcluido, false},
		{"advogado reabre arquivado", timeline.AutorAdvogado, StatusArquivado, StatusEmAndamento, true},
		{"cliente envia dados", timeline.AutorCliente, StatusAguardandoDados, StatusDadosEnviados, true},
		{"cliente submete para análise", timeline.AutorCliente, StatusAguardandoDados, StatusAguardandoAnaliseDados, true},
		{"cliente arquiva rascunho", timeline.AutorCliente, StatusRascunho, StatusArquivado, true},
		{"cliente não aceita o próprio processo", timeline.AutorCliente, StatusEmAnalise, StatusAceito, false},
		{"cliente não conclui", timeline.AutorCliente, StatusEmAndamento, StatusConcluido, false},
		{"sistema pode qualquer salto", timeline.AutorSistema, StatusRascunho, StatusConcluido, true},
		{"mesmo status nunca é transição", timeline.AutorSistema, StatusEmAndamento, StatusEmAndamento, false},
		{"status de origem inválido", timeline.AutorAdvogado, StatusProcesso("X"), StatusAceito, false},
		{"status de destino inválido", timeline.AutorAdvogado, StatusEmAnalise, StatusProcesso("X"), false},
		{"autor desconhecido", timeline.Autor("robo"), StatusEmAnalise, StatusAceito, false},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			if got := TransicaoPermitida(c.autor, c.de, c.para); got != c.espera {
				t.Errorf("TransicaoPermitida(%s, %s, %s) = %v, esperava %v",
					c.autor, c.de, c.para, got, c.espera)
			}
		})
	}
}

func TestProximosStatus(t *testing.T) {
	destinos := ProximosStatus(timeline.AutorCliente, StatusAguardandoDados)
	if len(destinos) != 2 {
		t.Fatalf("cliente em AGUARDANDO_DADOS tem %d destinos, esperava 2", len(destinos))
	}
	if ProximosStatus(timeline.AutorCliente, StatusEmAndamento) != nil {
		t.Errorf("cliente em EM_ANDAMENTO não deveria ter destinos")
	}
	if ProximosStatus(timeline.AutorSistema, StatusRascunho) != nil {
		t.Errorf("sistema não entra na listagem de ações")
	}
}

func TestPodeClienteAlterarDocumentos(t *testing.T) {
	todos := []StatusProcesso{
		StatusRascunho, StatusPendente, StatusEmAnalise, StatusAceito,
		StatusRejeitado, StatusAguardandoDados, StatusDadosEnviados,
		StatusAguardandoAnaliseDados, StatusEmAndamento, StatusProtocolado,
		StatusEmJulgamento, StatusConcluido, StatusArquivado,
	}

	for _, s := range todos {
		espera := s == StatusAceito || s == StatusAguardandoDados
		if got := PodeClienteAlterarDocumentos(s, false); got != espera {
			t.Errorf("cliente em %s: got %v, esperava %v", s, got, espera)
		}
		// Advogado nunca passa pelo gate do cliente.
		if PodeClienteAlterarDocumentos(s, true) {
			t.Errorf("advogado em %s não deveria passar pelo gate do cliente", s)
		}
	}
}

func TestPodeGerenciarOpcoesDocumento(t *testing.T) {
	if !PodeGerenciarOpcoesDocumento(StatusAguardandoAnaliseDados, false) {
		t.Errorf("cliente deveria ver opções durante a análise")
	}
	if PodeGerenciarOpcoesDocumento(StatusEmAndamento, false) {
		t.Errorf("cliente não gerencia opções em EM_ANDAMENTO")
	}
}
