// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep naming and layout knobs in one place.
package meta

const (
	// Project Identity
	AppName     = "odi"
	Slug        = "odi"
	EnvPrefix   = "ODI"
	ImagePrefix = "osml"
	LabelPrefix = "com.osml.odi"

	// Directory Layout
	HomeDir   = ".odi"
	OutputDir = ".odi"

	// Deployment Configuration
	DeploymentFileName = "deployment.json"
)
