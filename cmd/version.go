package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fieldlens version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fieldlens %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
