package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EdoardoTosin/tools/internal/sri"
)

var sriCheck bool

var sriCmd = &cobra.Command{
	Use:   "sri",
	Short: "Generate the Subresource Integrity lookup table",
	Long: `Hashes every JavaScript file in the built site output, fetches and
hashes every remote <script src> URL the pages reference, and writes
the integrity lookup table consumed by the templates.

Runs after the site output is written.`,
	RunE: runSRI,
}

func init() {
	sriCmd.Flags().BoolVar(&sriCheck, "check", false, "Compare against the persisted table without writing")
}

func runSRI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Print("Hashing site scripts... ")
	res, err := sri.NewGenerator(cfg).Run(cmd.Context(), sriCheck)
	if err != nil {
		fmt.Println("FAILED")
		return err
	}
	fmt.Println("OK")

	fmt.Printf("\nSRI Summary:\n")
	fmt.Printf("  Local:   %d\n", res.LocalScripts)
	fmt.Printf("  Remote:  %d\n", res.RemoteScripts-res.RemoteSkipped)
	fmt.Printf("  Skipped: %d\n", res.RemoteSkipped)

	if sriCheck {
		if res.Drift {
			return fmt.Errorf("SRI table is stale, rerun sitegen sri")
		}
		fmt.Println("\nNo changes. SRI table is up-to-date.")
	}
	return nil
}
