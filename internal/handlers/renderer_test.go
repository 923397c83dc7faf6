package handlers

import (
	"html/template"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererExecutesPageTemplate(t *testing.T) {
	tmpl := template.Must(template.New("pagina.html").Parse("<p>{{.title}}</p>"))
	r := &HTMLRenderer{Templates: map[string]*template.Template{"pagina.html": tmpl}}

	w := httptest.NewRecorder()
	require.NoError(t, r.Instance("pagina.html", map[string]string{"title": "Oi"}).Render(w))
	assert.Contains(t, w.Body.String(), "Oi")
}

func TestRendererUnknownTemplateFails(t *testing.T) {
	r := &HTMLRenderer{Templates: map[string]*template.Template{}}

	w := httptest.NewRecorder()
	err := r.Instance("nao_registrada.html", nil).Render(w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nao_registrada.html")
}
