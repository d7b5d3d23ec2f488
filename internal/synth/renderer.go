// Where: internal/synth/renderer.go
// What: Render Lambda env files from embedded templates.
// Why: Keep the env file shapes next to each other and out of command code.
package synth

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateCache sync.Map

type envTemplateData struct {
	ProjectName                   string
	Region                        string
	OutputBucket                  string
	OutputTopicArn                string
	PostProcessingTopicArn        string
	StacEndpoint                  string
	CollectionID                  string
	DeconstructFeatureCollections bool
}

func renderTemplate(name string, data any) (string, error) {
	tmpl, err := lookupTemplate(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func lookupTemplate(name string) (*template.Template, error) {
	if cached, ok := templateCache.Load(name); ok {
		return cached.(*template.Template), nil
	}
	payload, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(string(payload))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	templateCache.Store(name, tmpl)
	return tmpl, nil
}
