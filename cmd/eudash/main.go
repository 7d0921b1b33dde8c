// Command eudash inspects the EU indicator snapshot from the terminal: it
// prints views, exports workbooks and describes the catalog.
package main

import (
	"fmt"
	"os"

	"eudash.dev/internal/appconf"
)

func main() {
	if err := appconf.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
