package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/safeyard/patio/internal/store"
)

func TestDefaults(t *testing.T) {
	ctx := context.Background()
	p := New(store.NewMemory())

	if theme := p.Theme(ctx); theme != ThemeLight {
		t.Errorf("tema padrão = %q", theme)
	}
	if lang := p.Language(ctx); lang != LanguagePT {
		t.Errorf("idioma padrão = %q", lang)
	}
}

func TestSetEGet(t *testing.T) {
	ctx := context.Background()
	p := New(store.NewMemory())

	if err := p.SetTheme(ctx, ThemeDark); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if theme := p.Theme(ctx); theme != ThemeDark {
		t.Errorf("tema = %q", theme)
	}

	if err := p.SetLanguage(ctx, LanguageES); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	if lang := p.Language(ctx); lang != LanguageES {
		t.Errorf("idioma = %q", lang)
	}
}

func TestValoresInvalidos(t *testing.T) {
	ctx := context.Background()
	p := New(store.NewMemory())

	if err := p.SetTheme(ctx, "azul"); !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("SetTheme inválido: %v", err)
	}
	if err := p.SetLanguage(ctx, "en"); !errors.Is(err, ErrInvalidLanguage) {
		t.Errorf("SetLanguage inválido: %v", err)
	}
}

func TestValorDesconhecidoNoStoreCaiNoPadrao(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	_ = st.Set(ctx, store.KeyTheme, "roxo")
	_ = st.Set(ctx, store.KeyLanguage, "fr")

	p := New(st)
	if theme := p.Theme(ctx); theme != ThemeLight {
		t.Errorf("tema = %q", theme)
	}
	if lang := p.Language(ctx); lang != LanguagePT {
		t.Errorf("idioma = %q", lang)
	}
}
