package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/sc-commander/internal/application/game/queries"
)

// NewScoresCommand creates the scores command with subcommands
func NewScoresCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show the scoreboard of finished games",
		Long: `List finished games ranked by final cash.

Only games played to the end are archived. The scoreboard is unavailable
when database.type is none.

Examples:
  sc-commander scores
  sc-commander scores --variant congestion --limit 5
  sc-commander scores show <session-id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if a.repo == nil {
				return fmt.Errorf("scoreboard disabled: set database.type to sqlite or postgres")
			}

			resp, err := a.send(&queries.ListScoresQuery{Variant: variantName, Limit: limit})
			if err != nil {
				return err
			}

			printScores(cmd.OutOrStdout(), resp.(*queries.ListScoresResponse).Summaries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of games to list")

	cmd.AddCommand(newScoresShowCommand())

	return cmd
}

// newScoresShowCommand creates the scores show subcommand
func newScoresShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the archived weeks of a finished game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if a.repo == nil {
				return fmt.Errorf("scoreboard disabled: set database.type to sqlite or postgres")
			}

			resp, err := a.send(&queries.GetArchivedGameQuery{SessionID: args[0]})
			if err != nil {
				return err
			}
			archived := resp.(*queries.GetArchivedGameResponse)
			s := archived.Summary

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nGAME %s\n", s.SessionID())
			fmt.Fprintln(out, rule)
			fmt.Fprintf(out, "  %-16s %s\n", "Variant:", s.Variant())
			fmt.Fprintf(out, "  %-16s %s\n", "Completed:", s.CompletedAt().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "  %-16s %s\n", "Final cash:", formatMoney(s.FinalCash()))
			fmt.Fprintf(out, "  %-16s %s\n", "Total profit:", formatSigned(s.TotalProfit()))
			fmt.Fprintf(out, "  %-16s %.1f%%\n", "Fill rate:", s.FillRate()*100)
			fmt.Fprintf(out, "  %-16s %.2f\n", "Bullwhip ratio:", s.BullwhipRatio())
			fmt.Fprintf(out, "  %-16s %d\n\n", "Final KPI:", s.FinalKpi())

			printArchivedTurns(out, archived.Turns)
			return nil
		},
	}

	return cmd
}
