package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	seatio "github.com/matzehuels/seatplan/pkg/io"
	"github.com/matzehuels/seatplan/pkg/venue"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		overrides string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [venue.toml|venue.json]",
		Short: "Show seat and status counts per section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], overrides, noCache)
		},
	}

	cmd.Flags().StringVarP(&overrides, "overrides", "x", "", "override file with reserved/blocked/sold seat lists")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input, overridesPath string, noCache bool) error {
	v, err := seatio.ImportVenue(input)
	if err != nil {
		return err
	}
	var overrides venue.OverrideSet
	if overridesPath != "" {
		if overrides, err = seatio.ImportOverrides(overridesPath); err != nil {
			return err
		}
	}

	opts, err := c.options(standingFlags{})
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, v, overrides, opts)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	fmt.Fprintln(stdout, StyleTitle.Render(displayName(v, input)))
	fmt.Fprintln(stdout, renderStatsTable(result.Layout))
	printStats(result.Stats.Seats, len(result.Layout.Labels), result.CacheInfo.BuildHit)
	reportProblems(result)
	return nil
}
