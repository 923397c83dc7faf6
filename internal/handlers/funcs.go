package handlers

import (
	"fmt"
	"html/template"
	"strings"

	"artecomcarinho/internal/models"
)

// TemplateFuncs, funções disponíveis em todos os templates.
var TemplateFuncs = template.FuncMap{
	"currency":    formatCurrency,
	"statusLabel": models.StatusLabel,
	"add":         func(a, b int) int { return a + b },
	"sub":         func(a, b int) int { return a - b },
}

// formatCurrency, formata um valor em reais no padrão brasileiro.
func formatCurrency(value float64) string {
	s := fmt.Sprintf("%.2f", value)
	s = strings.ReplaceAll(s, ".", ",")
	// separador de milhar
	if comma := strings.Index(s, ","); comma > 3 {
		var b strings.Builder
		intPart := s[:comma]
		for i, r := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				b.WriteByte('.')
			}
			b.WriteRune(r)
		}
		s = b.String() + s[comma:]
	}
	return "R$ " + s
}
