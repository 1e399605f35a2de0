package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	seatio "github.com/matzehuels/seatplan/pkg/io"
)

// standingCommand creates the standing ticket command.
func (c *CLI) standingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standing",
		Short: "Issue and list standing tickets",
		Long: `Issue and list standing tickets.

Standing sections compile to a single seat. Additional tickets are issued on
demand and remembered in an editing session per venue, so ids issued by later
invocations never collide with earlier ones.`,
	}

	cmd.AddCommand(c.standingAddCommand())
	cmd.AddCommand(c.standingListCommand())

	return cmd
}

func (c *CLI) standingAddCommand() *cobra.Command {
	var (
		count    int
		noCache  bool
		asJSON   bool
		standing standingFlags
	)

	cmd := &cobra.Command{
		Use:   "add [venue] [section]",
		Short: "Issue additional standing tickets for a section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStandingAdd(cmd.Context(), args[0], args[1], count, noCache, asJSON, standing)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of tickets to issue")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the issued seats as JSON")
	standing.register(cmd)

	return cmd
}

func (c *CLI) runStandingAdd(ctx context.Context, input, section string, count int, noCache, asJSON bool, flags standingFlags) error {
	prog := newProgress(c.Logger)

	v, err := seatio.ImportVenue(input)
	if err != nil {
		return err
	}
	opts, err := c.options(flags)
	if err != nil {
		return err
	}
	store, sess, err := c.currentSession(ctx, input, v, true)
	if err != nil {
		return err
	}
	opts.Session = sess

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	seats, err := runner.AddStanding(ctx, v, section, count, opts)
	if err != nil {
		return err
	}
	if err := store.Set(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	prog.done(fmt.Sprintf("Issued %d standing ticket(s)", len(seats)))

	if asJSON {
		return seatio.WriteJSON(seats, stdout)
	}
	printSuccess("Issued %d standing ticket(s) for %s", len(seats), section)
	for _, s := range seats {
		printDetail("%s  (%.1f, %.1f)", s.ID, s.CX, s.CY)
	}
	printDetail("Session: %s", sess.ID)
	return nil
}

func (c *CLI) standingListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [venue]",
		Short: "List standing tickets issued in the venue's session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v, err := seatio.ImportVenue(args[0])
			if err != nil {
				return err
			}
			_, sess, err := c.currentSession(ctx, args[0], v, false)
			if err != nil {
				return err
			}
			if sess == nil || sess.StandingCount() == 0 {
				printInfo("No standing tickets issued for %s", displayName(v, args[0]))
				return nil
			}
			for _, key := range sess.Sections() {
				ids := sess.Standing[key]
				printKeyValue(key, fmt.Sprintf("%d ticket(s)", len(ids)))
				for _, id := range ids {
					printDetail("%s", id)
				}
			}
			return nil
		},
	}
}
