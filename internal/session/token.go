package session

import (
	"encoding/base64"
	"strings"

	"github.com/tidwall/gjson"
)

// Claims guarda o payload decodificado de um bearer token, mantido como
// JSON cru porque o formato emitido pelo servidor não é garantido.
type Claims []byte

// RoleSet é o conjunto normalizado (maiúsculas, sem repetição) de
// papéis extraídos das claims.
type RoleSet map[string]struct{}

// IsAdmin classifica a sessão como administrativa quando qualquer papel
// contém a substring ADMIN.
func (rs RoleSet) IsAdmin() bool {
	for role := range rs {
		if strings.Contains(role, "ADMIN") {
			return true
		}
	}
	return false
}

var base64URLToStd = strings.NewReplacer("-", "+", "_", "/")

// DecodeToken separa o token em três segmentos e decodifica o payload
// central (base64url, com padding reposto). Token malformado em
// qualquer etapa retorna ok=false, nunca erro.
func DecodeToken(token string) (Claims, bool) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 {
		return nil, false
	}

	segment := base64URLToStd.Replace(parts[1])
	if pad := len(segment) % 4; pad != 0 {
		segment += strings.Repeat("=", 4-pad)
	}

	decoded, err := base64.StdEncoding.DecodeString(segment)
	if err != nil {
		return nil, false
	}

	if !gjson.ValidBytes(decoded) || !gjson.ParseBytes(decoded).IsObject() {
		return nil, false
	}

	return Claims(decoded), true
}

// ExtractRoles varre os campos reconhecidos do payload (roles,
// authorities (strings ou objetos {authority}), scope separado por
// espaços, role e perfil) e devolve a união em maiúsculas. Campos
// ausentes ou com tipo inesperado são ignorados; a função nunca falha.
func ExtractRoles(claims Claims) RoleSet {
	roles := RoleSet{}
	if len(claims) == 0 {
		return roles
	}

	root := gjson.ParseBytes(claims)
	if !root.IsObject() {
		return roles
	}

	add := func(value string) {
		value = strings.ToUpper(strings.TrimSpace(value))
		if value != "" {
			roles[value] = struct{}{}
		}
	}

	if list := root.Get("roles"); list.IsArray() {
		list.ForEach(func(_, item gjson.Result) bool {
			if item.Type == gjson.String {
				add(item.String())
			}
			return true
		})
	}

	if list := root.Get("authorities"); list.IsArray() {
		list.ForEach(func(_, item gjson.Result) bool {
			switch {
			case item.Type == gjson.String:
				add(item.String())
			case item.IsObject():
				if authority := item.Get("authority"); authority.Type == gjson.String {
					add(authority.String())
				}
			}
			return true
		})
	}

	if scope := root.Get("scope"); scope.Type == gjson.String {
		for _, value := range strings.Fields(scope.String()) {
			add(value)
		}
	}

	if role := root.Get("role"); role.Type == gjson.String {
		add(role.String())
	}

	if perfil := root.Get("perfil"); perfil.Type == gjson.String {
		add(perfil.String())
	}

	return roles
}
