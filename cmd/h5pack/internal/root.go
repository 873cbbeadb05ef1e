package internal

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "h5pack",
	Short: "h5pack builds, tests and installs the h5pp package",
	Long: `h5pack is the packaging layer of the h5pp library: it validates the
host toolchain, drives the CMake build of h5pp against its pinned
dependencies and stages the header-only package for installation.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
