package timeline

import "testing"

func TestNovaEntradaDeCriacao(t *testing.T) {
	e := Nova(1, "", "RASCUNHO", AutorCliente, "Processo criado", "")
	if e.StatusAnterior != nil {
		t.Errorf("entrada de criação não deveria ter status anterior")
	}
	if e.NovoStatus != "RASCUNHO" || e.Autor != AutorCliente {
		t.Errorf("entrada montada errada: %+v", e)
	}
}

func TestNovaEntradaDeTransicao(t *testing.T) {
	e := Nova(1, "RASCUNHO", "PENDENTE", AutorAdvogado, "", "obs")
	if e.StatusAnterior == nil || *e.StatusAnterior != "RASCUNHO" {
		t.Errorf("statusAnterior não preservado")
	}
	if e.Observacoes != "obs" {
		t.Errorf("observações perdidas")
	}
}

func TestAutorValido(t *testing.T) {
	for _, a := range []Autor{AutorCliente, AutorAdvogado, AutorSistema} {
		if !a.Valido() {
			t.Errorf("%s deveria ser válido", a)
		}
	}
	if Autor("juiz").Valido() {
		t.Errorf("autor fora do vocabulário aceito")
	}
}
