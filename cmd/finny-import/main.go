package main

import (
	"os"

	"github.com/MrJamesThe3rd/finny-import/cmd/finny-import/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
