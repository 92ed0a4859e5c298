package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/sc-commander/internal/application/common"
	gameCommands "github.com/andrescamacho/sc-commander/internal/application/game/commands"
	"github.com/andrescamacho/sc-commander/internal/application/game/policies"
	"github.com/andrescamacho/sc-commander/internal/application/game/queries"
)

// NewSimulateCommand creates the auto-play command
func NewSimulateCommand() *cobra.Command {
	var (
		policyName  string
		quantity    int
		pace        float64
		showHistory bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a full game with an ordering policy",
		Long: `Play a full game with an automated ordering policy and print the results.

Policies:
  base-stock   order up to a moving-average target plus safety stock
  chase        order last week's demand
  fixed        order the same quantity every week (--quantity)

The default policy comes from 'sc-commander config use-policy', else base-stock.

Examples:
  sc-commander simulate
  sc-commander simulate --policy chase --variant calendar
  sc-commander simulate --policy fixed --quantity 25 --pace 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pace < 0 {
				return fmt.Errorf("--pace must be non-negative")
			}
			if policyName == "" {
				policyName = loadPreferences().DefaultPolicy
			}
			policy, err := policies.ParsePolicy(policyName, quantity)
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			var limiter *rate.Limiter
			if pace > 0 {
				limiter = rate.NewLimiter(rate.Limit(pace), 1)
			}

			return runSimulation(a, policy, limiter, showHistory, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&policyName, "policy", "", "Ordering policy (base-stock, chase, fixed)")
	cmd.Flags().IntVar(&quantity, "quantity", 20, "Weekly order for the fixed policy")
	cmd.Flags().Float64Var(&pace, "pace", 0, "Turns per second (0 plays as fast as possible)")
	cmd.Flags().BoolVar(&showHistory, "history", true, "Print the week-by-week history")

	return cmd
}

func runSimulation(a *app, policy policies.Policy, limiter *rate.Limiter, showHistory bool, out io.Writer) error {
	started, err := a.startGame()
	if err != nil {
		return err
	}
	sessionID := started.SessionID

	fmt.Fprintf(out, "Simulating %s with the %s policy (seed %d)\n", started.Config.Variant, policy.Name(), started.Seed)

	for {
		resp, err := a.send(&queries.GetSnapshotQuery{SessionID: sessionID})
		if err != nil {
			return err
		}
		view := resp.(*queries.GetSnapshotResponse)

		decision := policy.Decide(policies.Observation{
			State:    view.State,
			Config:   view.Config,
			LeadTime: view.SeaLeadTime,
		})

		if limiter != nil {
			if err := limiter.Wait(a.ctx); err != nil {
				return fmt.Errorf("simulation interrupted: %w", err)
			}
		}

		resp, err = a.send(&gameCommands.SubmitDecisionCommand{
			SessionID:     sessionID,
			OrderQuantity: decision.OrderQuantity,
			ShippingMode:  decision.ShippingMode,
		})
		if err != nil {
			return err
		}
		submitted := resp.(*gameCommands.SubmitDecisionResponse)

		a.logger.Log(common.LevelDebug, "policy decision", map[string]interface{}{
			"policy":   policy.Name(),
			"week":     submitted.Result.Week,
			"quantity": decision.OrderQuantity,
		})

		if !submitted.GameOver {
			continue
		}

		if showHistory {
			fmt.Fprintln(out)
			printHistory(out, submitted.State.History)
		}
		printReport(out, *submitted.Report)
		if submitted.Summary != nil {
			fmt.Fprintf(out, "Archived session %s\n", sessionID)
		}
		return nil
	}
}
