package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version se inyecta en build con -ldflags "-X main.version=...".
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "invoice-bot",
		Short: "Bot de Telegram que genera facturas PDF mediante un diálogo guiado",
	}
	root.AddCommand(newServeCmd(), newSampleCmd(), newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Imprime la versión",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("invoice-bot " + version)
		},
	}
}
