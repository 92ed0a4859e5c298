package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

// NewVariantsCommand creates the variants command
func NewVariantsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variants",
		Short: "List game variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "Variant\tWeeks\tLead\tMechanics\tDescription")
			fmt.Fprintln(w, "───────\t─────\t────\t─────────\t───────────")

			for _, name := range simulation.Variants() {
				preset := simulation.MustPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
					name,
					preset.HorizonWeeks,
					preset.Shipping.BaseLeadTime,
					capabilityList(preset.Capabilities),
					simulation.VariantDescription(name),
				)
			}

			return w.Flush()
		},
	}

	return cmd
}
