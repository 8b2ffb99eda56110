package commands

import (
	"fmt"
	"os"

	"github.com/gws-tools/scubacfg/pkg/runtime/terminal/export"
	"github.com/gws-tools/scubacfg/pkg/services/builder"
	"github.com/gws-tools/scubacfg/pkg/services/catalog"
	"github.com/gws-tools/scubacfg/pkg/services/document"
	"github.com/spf13/cobra"
)

type ValidateCmd struct {
	baselinesDir string
	reporter     *export.Reporter
}

// NewValidateCmd checks a configuration file against the baseline catalog.
// Without --baselines the embedded snapshot is used.
func NewValidateCmd(reporter *export.Reporter) *cobra.Command {
	vc := &ValidateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE:  vc.run,
	}

	cmd.Flags().StringVar(&vc.baselinesDir, "baselines", "", "Directory containing baseline markdown documents (defaults to the embedded catalog)")

	return cmd
}

func (vc *ValidateCmd) run(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := document.Decode(data)
	if err != nil {
		return err
	}

	var registry catalog.Registry
	if vc.baselinesDir != "" {
		registry, err = catalog.NewRegistry(cmd.Context(), vc.baselinesDir)
	} else {
		registry, err = catalog.NewEmbeddedRegistry()
	}
	if err != nil {
		return err
	}

	cat, err := registry.Catalog(cmd.Context())
	if err != nil {
		return err
	}

	violations := builder.ValidateDocument(doc, cat)
	if err := vc.reporter.HandleValidation(path, violations); err != nil {
		return err
	}
	if len(violations) > 0 {
		return fmt.Errorf("%s has %d violation(s)", path, len(violations))
	}
	return nil
}
