package internal

import (
	"fmt"
	"strings"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/davidace/h5pack/internal/pkgid"
	"github.com/davidace/h5pack/internal/vcs"
)

var (
	infoRecipe string
	infoSource string
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the package metadata",
	Long:  `Info prints the recipe metadata, including the source-control origin detected from the local checkout.`,
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoRecipe, "recipe", "r", "", "Recipe manifest path (default <source>/h5pack.yaml)")
	infoCmd.Flags().StringVarP(&infoSource, "source", "s", ".", "Source directory")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	rec, opts, err := loadRecipe(infoSource, infoRecipe)
	if err != nil {
		return err
	}

	scm, err := vcs.NewGit().Detect(cmd.Context(), infoSource, rec.SCM)
	if err != nil {
		// Not being a checkout is fine; the auto fields just stay unresolved.
		log.Warnf("scm detection: %v", err)
		scm = rec.SCM
	}

	refs := make([]string, 0, len(rec.Requires))
	for _, dep := range rec.Requires {
		refs = append(refs, dep.String())
	}

	fmt.Printf("name:        %s\n", rec.Name)
	fmt.Printf("version:     %s\n", rec.Version)
	fmt.Printf("description: %s\n", rec.Description)
	fmt.Printf("homepage:    %s\n", rec.Homepage)
	fmt.Printf("license:     %s\n", rec.License)
	fmt.Printf("author:      %s\n", rec.Author)
	fmt.Printf("topics:      %s\n", strings.Join(rec.Topics, ", "))
	fmt.Printf("requires:    %s\n", strings.Join(refs, ", "))
	fmt.Printf("scm:         %s %s@%s\n", scm.Type, scm.URL, scm.Revision)
	fmt.Printf("options:     tests=%v examples=%v verbose=%v\n", opts.Tests, opts.Examples, opts.Verbose)
	fmt.Printf("package id:  %s\n", pkgid.Compute(rec, pkgid.Settings{}))
	return nil
}
