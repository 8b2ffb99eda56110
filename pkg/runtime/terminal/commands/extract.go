package commands

import (
	"fmt"
	"os"

	"github.com/gws-tools/scubacfg/pkg/runtime/terminal/export"
	"github.com/gws-tools/scubacfg/pkg/services/catalog"
	"github.com/spf13/cobra"
)

type ExtractCmd struct {
	baselinesDir string
	outPath      string
	reporter     *export.Reporter
}

// NewExtractCmd builds the catalog snapshot from a directory of baseline
// documents. The snapshot is what gets embedded into the binary.
func NewExtractCmd(reporter *export.Reporter) *cobra.Command {
	ec := &ExtractCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract policies from baseline documents into a catalog snapshot",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.baselinesDir, "baselines", "", "Directory containing baseline markdown documents")
	cmd.Flags().StringVar(&ec.outPath, "out", "snapshot.yaml", "Path to write the catalog snapshot")

	_ = cmd.MarkFlagRequired("baselines")

	return cmd
}

func (ec *ExtractCmd) run(cmd *cobra.Command, _ []string) error {
	registry, err := catalog.NewRegistry(cmd.Context(), ec.baselinesDir)
	if err != nil {
		return fmt.Errorf("failed to load baselines from %s: %w", ec.baselinesDir, err)
	}

	cat, err := registry.Catalog(cmd.Context())
	if err != nil {
		return err
	}

	snapshot, err := catalog.EncodeSnapshot(cat)
	if err != nil {
		return fmt.Errorf("failed to encode catalog snapshot: %w", err)
	}

	if err := os.WriteFile(ec.outPath, snapshot, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot to %s: %w", ec.outPath, err)
	}

	return ec.reporter.HandleCatalog(cat)
}
