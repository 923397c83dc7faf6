package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin/render"
)

// HTMLRenderer, gerencia um conjunto de templates por página, cada um com o
// base.html correspondente.
type HTMLRenderer struct {
	Templates map[string]*template.Template
}

// Instance, prepara a renderização da página pedida. Página não registrada
// vira erro de renderização em vez de um template nulo.
func (r *HTMLRenderer) Instance(name string, data interface{}) render.Render {
	tmpl, ok := r.Templates[name]
	if !ok {
		return missingTemplate{name: name}
	}
	return render.HTML{
		Template: tmpl,
		Data:     data,
	}
}

// missingTemplate, renderização que sempre falha, com o nome da página no
// erro para facilitar o diagnóstico.
type missingTemplate struct {
	name string
}

func (m missingTemplate) Render(http.ResponseWriter) error {
	return fmt.Errorf("template não registrado: %s", m.name)
}

func (m missingTemplate) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
