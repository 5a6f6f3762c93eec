package patio

import "github.com/safeyard/patio/internal/util"

// Patio é um depósito físico de motos.
type Patio struct {
	ID          string
	Nome        string
	Localizacao string
	Vagas       int
	Capacidade  int
}

// Catalog devolve os pátios disponíveis. A lista é estática no cliente;
// o cadastro de pátios não é exposto pela API.
func Catalog() []Patio {
	return []Patio{
		{ID: "1", Nome: "Butantã", Localizacao: "Rua Agostinho Cantu, 209", Vagas: 120, Capacidade: 500},
		{ID: "2", Nome: "Limão", Localizacao: "Av. Prof. Celestino Bourroul, 363", Vagas: 340, Capacidade: 500},
		{ID: "3", Nome: "Taboão", Localizacao: "R. Roberta Simões Souza, 1440", Vagas: 80, Capacidade: 500},
		{ID: "4", Nome: "Interlagos", Localizacao: "R. Antônio Mariano, 351", Vagas: 275, Capacidade: 500},
		{ID: "5", Nome: "São Bernardo", Localizacao: "Av. Moinho Fabrini, 128", Vagas: 150, Capacidade: 500},
	}
}

// FindByID localiza um pátio do catálogo.
func FindByID(id string) (Patio, bool) {
	for _, p := range Catalog() {
		if p.ID == id {
			return p, true
		}
	}
	return Patio{}, false
}

// Devolucao é o formulário de devolução de moto em um pátio.
type Devolucao struct {
	CPF         string
	Placa       string
	Localizacao string
}

// ValidateDevolucao aplica as regras do formulário: CPF mascarado e
// placa em formato aceito, ambos obrigatórios.
func ValidateDevolucao(d Devolucao) error {
	if err := util.RequireString(d.CPF, "CPF"); err != nil {
		return err
	}
	if err := util.RequireString(d.Placa, "placa"); err != nil {
		return err
	}
	if err := util.ValidateCPF(d.CPF); err != nil {
		return err
	}
	return util.ValidatePlaca(d.Placa)
}
