package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/headerfix/cmd/headerfix/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
