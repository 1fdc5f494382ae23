// Version command for the openrits CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openrits/openrits/pkg/openrits"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the openrits version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("openrits", openrits.Version)
	},
}
