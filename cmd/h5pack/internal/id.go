package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davidace/h5pack/internal/pkgid"
)

var (
	idRecipe string
	idSource string
)

var idCmd = &cobra.Command{
	Use:   "id",
	Short: "Print the package identity",
	Long: `Id prints the binary identity of the package. The package is
header-only, so the identity is independent of compiler, architecture
and build type: a single package build serves all consumer configurations.`,
	RunE: runID,
}

func init() {
	idCmd.Flags().StringVarP(&idRecipe, "recipe", "r", "", "Recipe manifest path (default <source>/h5pack.yaml)")
	idCmd.Flags().StringVarP(&idSource, "source", "s", ".", "Source directory")
	rootCmd.AddCommand(idCmd)
}

func runID(cmd *cobra.Command, args []string) error {
	rec, _, err := loadRecipe(idSource, idRecipe)
	if err != nil {
		return err
	}
	fmt.Println(pkgid.Compute(rec, pkgid.Settings{}))
	return nil
}
