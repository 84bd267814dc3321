// Command showcase runs the sales page carousel.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/novaera/showcase/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
