// Command prepctl runs maintenance tasks against the configured database,
// problem catalog and completion provider.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
