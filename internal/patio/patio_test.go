package patio

import "testing"

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	if len(catalog) == 0 {
		t.Fatal("catálogo vazio")
	}

	seen := map[string]bool{}
	for _, p := range catalog {
		if p.ID == "" || p.Nome == "" || p.Localizacao == "" {
			t.Errorf("pátio incompleto: %+v", p)
		}
		if seen[p.ID] {
			t.Errorf("id duplicado: %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestFindByID(t *testing.T) {
	if _, ok := FindByID("1"); !ok {
		t.Error("pátio 1 deveria existir")
	}
	if _, ok := FindByID("99"); ok {
		t.Error("pátio 99 não deveria existir")
	}
}

func TestValidateDevolucao(t *testing.T) {
	valid := Devolucao{CPF: "123.456.789-01", Placa: "ABC-1234", Localizacao: "Rua X"}
	if err := ValidateDevolucao(valid); err != nil {
		t.Errorf("devolução válida rejeitada: %v", err)
	}

	tests := []struct {
		name string
		form Devolucao
	}{
		{"cpf vazio", Devolucao{Placa: "ABC-1234"}},
		{"placa vazia", Devolucao{CPF: "123.456.789-01"}},
		{"cpf sem máscara", Devolucao{CPF: "12345678901", Placa: "ABC-1234"}},
		{"placa inválida", Devolucao{CPF: "123.456.789-01", Placa: "abc"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateDevolucao(tc.form); err == nil {
				t.Error("deveria falhar")
			}
		})
	}
}
