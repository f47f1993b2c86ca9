// classic is the CLASSIC crash-log scanning CLI.
package main

import (
	"os"

	"github.com/classic-scan/classic/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
