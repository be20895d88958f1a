package main

import (
	"os"

	"github.com/printcli/printer/cmd/printer/app"
)

func main() {
	cmd := app.NewPrinterCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(app.ExitCode(err))
	}
}
