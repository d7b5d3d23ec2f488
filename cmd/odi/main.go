// Where: cmd/odi/main.go
// What: CLI entrypoint.
// Why: Execute odi commands with configured dependencies.
package main

import (
	"os"

	"github.com/aws-osml/data-intake-cli/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], buildDependencies()))
}
