package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EdoardoTosin/tools/internal/catalog"
)

var catalogForce bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Regenerate the script catalog outputs",
	Long: `Scans the scripts directory, fingerprints its contents, and when the
fingerprint differs from the last successful run regenerates:

  • the catalog data file read by the templates
  • the Markdown listing with copyable install one-liners

Runs before template rendering in the site build.`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogForce, "force", false, "Regenerate even when nothing changed")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Print("Scanning scripts... ")
	res, err := catalog.NewGenerator(cfg).Run(catalogForce)
	if err != nil {
		fmt.Println("FAILED")
		return err
	}
	fmt.Println("OK")

	fmt.Printf("\nCatalog Summary:\n")
	fmt.Printf("  Scripts: %d\n", res.Scanned)
	if res.Skipped {
		fmt.Println("\nNo changes. Catalog is up-to-date.")
		return nil
	}
	for _, path := range res.Wrote {
		fmt.Printf("  Wrote:   %s\n", path)
	}
	for _, path := range res.Failed {
		fmt.Printf("  Failed:  %s\n", path)
	}
	return nil
}
