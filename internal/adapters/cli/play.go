package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	gameCommands "github.com/andrescamacho/sc-commander/internal/application/game/commands"
	"github.com/andrescamacho/sc-commander/internal/application/game/queries"
	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

type playAction int

const (
	actionNone playAction = iota
	actionOrder
	actionIntel
	actionReset
	actionReport
	actionHelp
	actionQuit
)

// playInput is one parsed line of the interactive loop
type playInput struct {
	action   playAction
	quantity int
	mode     simulation.ShippingMode
	variant  string
}

const playHelp = `Commands:
  <qty> [sea|air]   order units (SEA when no mode is given)
  intel             buy market intelligence
  reset [variant]   restart, optionally with another variant
  report            show the performance report so far
  help              show this help
  quit              stop playing`

// parsePlayInput interprets one line typed by the player
func parsePlayInput(line string) (playInput, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return playInput{action: actionNone}, nil
	}

	switch fields[0] {
	case "intel":
		return playInput{action: actionIntel}, nil
	case "reset":
		in := playInput{action: actionReset}
		if len(fields) > 1 {
			in.variant = fields[1]
		}
		return in, nil
	case "report":
		return playInput{action: actionReport}, nil
	case "help", "?":
		return playInput{action: actionHelp}, nil
	case "quit", "exit", "q":
		return playInput{action: actionQuit}, nil
	}

	qty, err := strconv.Atoi(fields[0])
	if err != nil {
		return playInput{}, fmt.Errorf("unrecognized input %q (type help)", strings.TrimSpace(line))
	}
	if len(fields) > 2 {
		return playInput{}, fmt.Errorf("expected <qty> [sea|air], got %q", strings.TrimSpace(line))
	}

	in := playInput{action: actionOrder, quantity: qty}
	if len(fields) == 2 {
		mode, err := simulation.ParseShippingMode(fields[1])
		if err != nil {
			return playInput{}, err
		}
		in.mode = mode
	}
	return in, nil
}

// NewPlayCommand creates the interactive play command
func NewPlayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game interactively",
		Long: `Play a game week by week from the terminal.

Each week enter an order quantity, optionally followed by a shipping mode.
Invalid orders are rejected without advancing the week.

` + playHelp + `

Examples:
  sc-commander play
  sc-commander play --variant reputation --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			return runPlay(a, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	return cmd
}

func runPlay(a *app, in io.Reader, out io.Writer) error {
	started, err := a.startGame()
	if err != nil {
		return err
	}
	sessionID := started.SessionID

	fmt.Fprintf(out, "Game %s started (variant %s, seed %d)\n", sessionID, started.Config.Variant, started.Seed)
	fmt.Fprintln(out, simulation.VariantDescription(started.Config.Variant))
	fmt.Fprintln(out, playHelp)

	if err := showStatus(a, out, sessionID); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		input, err := parsePlayInput(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}

		switch input.action {
		case actionNone:
			continue

		case actionHelp:
			fmt.Fprintln(out, playHelp)

		case actionQuit:
			fmt.Fprintln(out)
			return showReport(a, out, sessionID)

		case actionReport:
			if err := showReport(a, out, sessionID); err != nil {
				return err
			}

		case actionIntel:
			resp, err := a.send(&gameCommands.BuyMarketIntelCommand{SessionID: sessionID})
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			bought := resp.(*gameCommands.BuyMarketIntelResponse)
			fmt.Fprintf(out, "Market intelligence purchased for %s (charged with this week's settlement)\n", formatMoney(bought.Cost))
			printForecast(out, bought.Forecast)

		case actionReset:
			if _, err := a.send(&gameCommands.ResetGameCommand{SessionID: sessionID, Variant: input.variant}); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			fmt.Fprintln(out, "Game reset")
			if err := showStatus(a, out, sessionID); err != nil {
				return err
			}

		case actionOrder:
			resp, err := a.send(&gameCommands.SubmitDecisionCommand{
				SessionID:     sessionID,
				OrderQuantity: input.quantity,
				ShippingMode:  input.mode,
			})
			if err != nil {
				if errors.Is(err, simulation.ErrInvalidDecision) {
					fmt.Fprintf(out, "Rejected: %v\n", err)
					continue
				}
				return err
			}

			submitted := resp.(*gameCommands.SubmitDecisionResponse)
			printTurn(out, submitted.Result)
			if submitted.GameOver {
				printHistory(out, submitted.State.History)
				printReport(out, *submitted.Report)
				if submitted.Summary != nil {
					fmt.Fprintf(out, "Archived session %s\n", sessionID)
				}
				return nil
			}
			if err := showStatus(a, out, sessionID); err != nil {
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func showStatus(a *app, out io.Writer, sessionID string) error {
	resp, err := a.send(&queries.GetSnapshotQuery{SessionID: sessionID})
	if err != nil {
		return err
	}
	printStatus(out, resp.(*queries.GetSnapshotResponse))
	return nil
}

func showReport(a *app, out io.Writer, sessionID string) error {
	resp, err := a.send(&queries.GetPerformanceReportQuery{SessionID: sessionID})
	if err != nil {
		return err
	}
	report := resp.(*queries.GetPerformanceReportResponse)
	if report.Report.WeeksPlayed == 0 {
		fmt.Fprintln(out, "No weeks played yet")
		return nil
	}
	printReport(out, report.Report)
	return nil
}
