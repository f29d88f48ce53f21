// Command gacetawatch watches government publication indexes for new
// decree documents and keeps an enriched local corpus of them.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/gaceta-watch/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
