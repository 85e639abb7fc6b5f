package processo

import "github.com/Avocus/api-juridico/internal/timeline"

// Tabela fechada de transições por papel. Pedidos fora da tabela são
// rejeitados sem gravar nada. O autor "sistema" não é restringido: os
// fluxos de abandono de reivindicação e correções administrativas
// precisam alcançar qualquer status.

var transicoesAdvogado = map[StatusProcesso][]StatusProcesso{
	StatusRascunho:               {StatusPendente, StatusEmAnalise},
	StatusPendente:               {StatusEmAnalise, StatusAceito, StatusRejeitado, StatusAguardandoDados},
	StatusEmAnalise:              {StatusAceito, StatusRejeitado},
	StatusAceito:                 {StatusAguardandoDados, StatusEmAndamento},
	StatusRejeitado:              {StatusEmAnalise, StatusArquivado},
	StatusAguardandoDados:        {StatusEmAndamento},
	StatusDadosEnviados:          {StatusAguardandoAnaliseDados},
	StatusAguardandoAnaliseDados: {StatusEmAndamento, StatusAguardandoDados},
	StatusEmAndamento:            {StatusProtocolado, StatusAguardandoDados, StatusConcluido, StatusArquivado},
	StatusProtocolado:            {StatusEmJulgamento, StatusConcluido},
	StatusEmJulgamento:           {StatusConcluido, StatusArquivado},
	StatusConcluido:              {StatusArquivado},
	StatusArquivado:              {StatusEmAndamento},
}

var transicoesCliente = map[StatusProcesso][]StatusProcesso{
	StatusRascunho:        {StatusArquivado},
	StatusAguardandoDados: {StatusDadosEnviados, StatusAguardandoAnaliseDados},
	StatusDadosEnviados:   {StatusAguardandoAnaliseDados},
}

// TransicaoPermitida responde se o autor pode levar o processo do status
// atual para o novo.
func TransicaoPermitida(autor timeline.Autor, de, para StatusProcesso) bool {
	if !de.Valido() || !para.Valido() || de == para {
		return false
	}
	if autor == timeline.AutorSistema {
		return true
	}

	var tabela map[StatusProcesso][]StatusProcesso
	switch autor {
	case timeline.AutorAdvogado:
		tabela = transicoesAdvogado
	case timeline.AutorCliente:
		tabela = transicoesCliente
	default:
		return false
	}

	for _, s := range tabela[de] {
		if s == para {
			return true
		}
	}
	return false
}

// ProximosStatus lista os destinos legais a partir do status atual,
// usado para montar as ações visíveis de cada papel.
func ProximosStatus(autor timeline.Autor, de StatusProcesso) []StatusProcesso {
	switch autor {
	case timeline.AutorAdvogado:
		return transicoesAdvogado[de]
	case timeline.AutorCliente:
		return transicoesCliente[de]
	default:
		return nil
	}
}

// PodeClienteAlterarDocumentos gate de upload/remoção de anexos pelo
// cliente. Advogado nunca passa por aqui (tem fluxo próprio).
func PodeClienteAlterarDocumentos(status StatusProcesso, isAdvogado bool) bool {
	if isAdvogado {
		return false
	}
	return status == StatusAceito || status == StatusAguardandoDados
}

// PodeGerenciarOpcoesDocumento inclui a janela de revisão (somente
// visualização durante AGUARDANDO_ANALISE_DADOS).
func PodeGerenciarOpcoesDocumento(status StatusProcesso, isAdvogado bool) bool {
	if isAdvogado {
		return false
	}
	return status == StatusAceito ||
		status == StatusAguardandoDados ||
		status == StatusAguardandoAnaliseDados
}
