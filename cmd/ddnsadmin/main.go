package main

import (
	"os"

	"github.com/uciweb/ddnsadmin/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
