// Where: internal/app/error_helpers.go
// What: Shared command error handling.
package app

import (
	"fmt"
	"io"
)

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintln(out, err)
	return 1
}
