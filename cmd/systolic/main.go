// systolic evaluates polynomials on a systolic pipeline.
package main

import (
	"os"

	"github.com/kbukum/systolic/cli"
)

func main() {
	os.Exit(cli.Execute())
}
