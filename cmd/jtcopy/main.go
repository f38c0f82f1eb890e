package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "jtcopy <source> <destination>",
	Short: "Recursively copy a file or directory tree with live progress",
	Long: `jtcopy copies a file or directory tree to a destination, first scanning
the source to count files so a single-line progress bar can report the
overall position of the copy.`,
	Args: cobra.ExactArgs(2),
	RunE: runCopy,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jtcopy version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("jtcopy %s\n", version)
	},
}

func main() {
	rootCmd.AddCommand(versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
