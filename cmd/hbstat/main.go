// Command hbstat computes inequality statistics from household budget
// survey data.
package main

import (
	"os"

	"github.com/microdata-labs/hbstat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
