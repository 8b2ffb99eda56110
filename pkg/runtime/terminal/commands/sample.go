package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gws-tools/scubacfg/pkg/services/document"
	"github.com/spf13/cobra"
)

type SampleCmd struct {
	format string
}

func NewSampleCmd() *cobra.Command {
	sc := &SampleCmd{}
	cmd := &cobra.Command{
		Use:   "sample <name>",
		Short: "Print a sample configuration (basic, advanced, oauth)",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.format, "format", "yaml", "Output format (yaml or json)")

	return cmd
}

func (sc *SampleCmd) run(cmd *cobra.Command, args []string) error {
	samples := document.Samples()
	doc, ok := samples[args[0]]
	if !ok {
		names := make([]string, 0, len(samples))
		for name := range samples {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown sample %q, available: %s", args[0], strings.Join(names, ", "))
	}

	format, err := document.ParseFormat(sc.format)
	if err != nil {
		return err
	}

	data, err := document.Encode(doc, format)
	if err != nil {
		return err
	}

	cmd.Print(string(data))
	return nil
}
