package prefs

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/safeyard/patio/internal/store"
)

// Temas e idiomas aceitos pelo aplicativo.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	LanguagePT = "pt"
	LanguageES = "es"
)

var (
	// ErrInvalidTheme indica modo de tema desconhecido.
	ErrInvalidTheme = errors.New("tema inválido: use light ou dark")
	// ErrInvalidLanguage indica idioma não suportado.
	ErrInvalidLanguage = errors.New("idioma inválido: use pt ou es")
)

// Prefs persiste as preferências de tema e idioma no armazenamento
// local. Falhas de leitura valem como preferência ausente e caem no
// padrão; o app nunca deixa de abrir por causa delas.
type Prefs struct {
	store store.Store
}

// New cria o acesso às preferências.
func New(st store.Store) *Prefs {
	return &Prefs{store: st}
}

// Theme devolve o modo de tema salvo, ou light.
func (p *Prefs) Theme(ctx context.Context) string {
	value, err := p.store.Get(ctx, store.KeyTheme)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warn().Err(err).Msg("falha ao ler tema salvo")
		}
		return ThemeLight
	}
	if value != ThemeLight && value != ThemeDark {
		return ThemeLight
	}
	return value
}

// SetTheme valida e persiste o modo de tema.
func (p *Prefs) SetTheme(ctx context.Context, mode string) error {
	if mode != ThemeLight && mode != ThemeDark {
		return ErrInvalidTheme
	}
	return p.store.Set(ctx, store.KeyTheme, mode)
}

// Language devolve o idioma salvo, ou pt.
func (p *Prefs) Language(ctx context.Context) string {
	value, err := p.store.Get(ctx, store.KeyLanguage)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warn().Err(err).Msg("falha ao ler idioma salvo")
		}
		return LanguagePT
	}
	if value != LanguagePT && value != LanguageES {
		return LanguagePT
	}
	return value
}

// SetLanguage valida e persiste o idioma.
func (p *Prefs) SetLanguage(ctx context.Context, lang string) error {
	if lang != LanguagePT && lang != LanguageES {
		return ErrInvalidLanguage
	}
	return p.store.Set(ctx, store.KeyLanguage, lang)
}
