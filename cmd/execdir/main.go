package main

import (
	"os"

	"github.com/roach88/execdir/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:]))
}
