package intake

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape HTML-escapes s the way stored text columns expect it.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

func escapePtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v := Escape(s)
	return &v
}
