// webdesk serves a simulated desktop over HTTP or renders it in the
// terminal.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
