// Package web holds the embedded HTML templates of the site.
package web

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templates embed.FS

// LoadTemplates parses every page template into r.
func LoadTemplates(r *gin.Engine) {
	tmpl := template.Must(template.New("").ParseFS(templates, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)
}
