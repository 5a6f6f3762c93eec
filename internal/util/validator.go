package util

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
)

var (
	cpfMaskRe     = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	placaAntigaRe = regexp.MustCompile(`^[A-Z]{3}-\d{4}$`)
	placaLivreRe  = regexp.MustCompile(`^[A-Z0-9]{1,7}$`)
	dataBrRe      = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[0-2])/\d{4}$`)
)

// ValidateEmail retorna erro para e-mails inválidos.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email obrigatório")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("email inválido")
	}
	return nil
}

// ValidatePassword verifica requisitos mínimos de senha.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("senha deve ter pelo menos 6 caracteres")
	}
	return nil
}

// ValidatePasswordConfirm garante que a confirmação coincide.
func ValidatePasswordConfirm(password, confirm string) error {
	if password != confirm {
		return errors.New("as senhas não coincidem")
	}
	return nil
}

// RequireString garante string não vazia.
func RequireString(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(field + " obrigatório")
	}
	return nil
}

// ValidateCPF aceita apenas o formato mascarado 123.456.789-01.
func ValidateCPF(cpf string) error {
	if !cpfMaskRe.MatchString(cpf) {
		return errors.New("CPF inválido. Formato correto: 123.456.789-01")
	}
	return nil
}

// ValidatePlaca aceita o formato antigo ABC-1234 ou, sem separador,
// até 7 caracteres alfanuméricos maiúsculos (padrão Mercosul incluso).
func ValidatePlaca(placa string) error {
	if placaAntigaRe.MatchString(placa) {
		return nil
	}
	if placaLivreRe.MatchString(placa) {
		return nil
	}
	return errors.New("placa inválida. Formato correto: ABC-1234")
}

// ValidateDataBR aceita datas DD/MM/AAAA com dia e mês em faixa.
func ValidateDataBR(data string) error {
	if !dataBrRe.MatchString(data) {
		return errors.New("data inválida. Formato correto: DD/MM/AAAA")
	}
	return nil
}
