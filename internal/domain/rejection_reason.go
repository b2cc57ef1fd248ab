package domain

import (
	"strings"
	"time"
)

// RejectionReason is a per-organization canned rejection text. Built-in
// reasons carry an empty OrganizationID.
type RejectionReason struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id,omitempty"`
	Text           string    `json:"text"`
	BuiltIn        bool      `json:"built_in"`
	CreatedAt      time.Time `json:"created_at"`
}

// BuiltInRejectionReasons is the fixed fallback set offered to every tenant.
var BuiltInRejectionReasons = []RejectionReason{
	{ID: "builtin-low-quality-photos", Text: "Fotos de baixa qualidade ou inadequadas.", BuiltIn: true},
	{ID: "builtin-incomplete-profile", Text: "Perfil incompleto ou com informações insuficientes.", BuiltIn: true},
	{ID: "builtin-profile-mismatch", Text: "Perfil inadequado para a vaga.", BuiltIn: true},
	{ID: "builtin-age-requirement", Text: "Não atende aos requisitos de idade da campanha.", BuiltIn: true},
	{ID: "builtin-region-unavailable", Text: "Não há vagas disponíveis para a sua região no momento.", BuiltIn: true},
}

// DefaultRejectionMessage is used when an admin rejects without selecting
// any reason or writing a custom one.
const DefaultRejectionMessage = "Infelizmente seu perfil não foi aprovado para esta campanha. Agradecemos o seu interesse."

func normalizeReasonText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// MergeRejectionReasons combines tenant reasons with the built-in list.
// Tenant entries come first and keep their identity; a built-in is
// suppressed when any tenant entry has case-insensitive, whitespace-trimmed
// equal text. Duplicates within either list are also collapsed to the first
// occurrence.
func MergeRejectionReasons(tenant []RejectionReason, builtIn []RejectionReason) []RejectionReason {
	seen := make(map[string]struct{}, len(tenant)+len(builtIn))
	out := make([]RejectionReason, 0, len(tenant)+len(builtIn))
	for _, r := range tenant {
		key := normalizeReasonText(r.Text)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	for _, r := range builtIn {
		key := normalizeReasonText(r.Text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// ComposeRejectionMessage turns the selected canned reasons plus an optional
// free-text note into the single message stored on the promoter. Multiple
// entries become a newline bullet list; nothing selected or written yields
// the fixed default message.
func ComposeRejectionMessage(selected []string, freeText string) string {
	var parts []string
	for _, s := range selected {
		if t := strings.TrimSpace(s); t != "" {
			parts = append(parts, t)
		}
	}
	if t := strings.TrimSpace(freeText); t != "" {
		parts = append(parts, t)
	}
	switch len(parts) {
	case 0:
		return DefaultRejectionMessage
	case 1:
		return parts[0]
	}
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• ")
		b.WriteString(p)
	}
	return b.String()
}
