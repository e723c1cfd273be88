// CLI entry point for casetrace.
package main

import (
	"os"

	"github.com/casetrace/casetrace/internal/interfaces/cli"
)

func main() {
	os.Exit(cli.Execute())
}
