package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/sc-commander/internal/application/game/policies"
	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
	"github.com/andrescamacho/sc-commander/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Supply Chain Commander configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (SC_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default variant and policy) are stored in
~/.sc-commander/preferences.json

Examples:
  sc-commander config show
  sc-commander config use-variant shipping
  sc-commander config use-policy chase
  sc-commander config clear`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigUseVariantCommand())
	cmd.AddCommand(newConfigUsePolicyCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.DefaultConfig()
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Fprintln(out, "Supply Chain Commander Configuration")
			fmt.Fprintln(out, "====================================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			fmt.Fprintf(out, "  Default Variant:  %s\n", orNotSet(userCfg.DefaultVariant))
			fmt.Fprintf(out, "  Default Policy:   %s\n", orNotSet(userCfg.DefaultPolicy))

			rules := cfg.Game.Rules
			fmt.Fprintln(out, "\nGame:")
			fmt.Fprintf(out, "  Variant:          %s\n", cfg.Game.Variant)
			if cfg.Game.Seed != 0 {
				fmt.Fprintf(out, "  Seed:             %d\n", cfg.Game.Seed)
			} else {
				fmt.Fprintf(out, "  Seed:             (clock)\n")
			}
			fmt.Fprintf(out, "  Horizon:          %d weeks\n", rules.HorizonWeeks)
			fmt.Fprintf(out, "  Starting Cash:    %s\n", formatMoney(rules.StartingCash))
			fmt.Fprintf(out, "  Selling Price:    %s\n", formatMoney(rules.SellingPrice))
			fmt.Fprintf(out, "  Lead Time:        %d weeks\n", rules.Shipping.BaseLeadTime)
			fmt.Fprintf(out, "  Max Order:        %d units\n", rules.MaxOrderQuantity)
			fmt.Fprintf(out, "  Mechanics:        %s\n", capabilityList(rules.Capabilities))

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "none":
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigUseVariantCommand creates the config use-variant subcommand
func newConfigUseVariantCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use-variant <variant>",
		Short: "Set the default game variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, err := simulation.Preset(args[0])
			if err != nil {
				return err
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultVariant(preset.Variant); err != nil {
				return fmt.Errorf("failed to set default variant: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default variant set to %s\n", preset.Variant)
			return nil
		},
	}

	return cmd
}

// newConfigUsePolicyCommand creates the config use-policy subcommand
func newConfigUsePolicyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use-policy <policy>",
		Short: "Set the default simulate policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := policies.ParsePolicy(args[0], 0)
			if err != nil {
				return err
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultPolicy(policy.Name()); err != nil {
				return fmt.Errorf("failed to set default policy: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default policy set to %s\n", policy.Name())
			return nil
		},
	}

	return cmd
}

// newConfigClearCommand creates the config clear subcommand
func newConfigClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear user preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.Clear(); err != nil {
				return fmt.Errorf("failed to clear preferences: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Preferences cleared")
			return nil
		},
	}

	return cmd
}

func orNotSet(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

func capabilityList(c simulation.Capabilities) string {
	var names []string
	if c.HasShippingModes {
		names = append(names, "shipping modes")
	}
	if c.HasWarehouse {
		names = append(names, "warehouse")
	}
	if c.HasKpi {
		names = append(names, "kpi")
	}
	if c.HasCongestion {
		names = append(names, "congestion")
	}
	if c.HasMarketIntel {
		names = append(names, "market intel")
	}
	if len(names) == 0 {
		return "base game"
	}
	return strings.Join(names, ", ")
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
