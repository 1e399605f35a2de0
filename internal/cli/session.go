package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	seatio "github.com/matzehuels/seatplan/pkg/io"
)

// sessionCommand creates the editing-session management command.
func (c *CLI) sessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage editing sessions",
	}

	cmd.AddCommand(c.sessionListCommand())
	cmd.AddCommand(c.sessionShowCommand())
	cmd.AddCommand(c.sessionClearCommand())

	return cmd
}

func (c *CLI) sessionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List live editing sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newSessionStore()
			if err != nil {
				return err
			}
			sessions, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				printInfo("No sessions")
				return nil
			}
			for _, s := range sessions {
				printKeyValue(s.ID[:8], fmt.Sprintf("%s (%d standing)", s.Venue, s.StandingCount()))
			}
			return nil
		},
	}
}

func (c *CLI) sessionShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [venue]",
		Short: "Show the editing session of a venue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := seatio.ImportVenue(args[0])
			if err != nil {
				return err
			}
			_, sess, err := c.currentSession(cmd.Context(), args[0], v, false)
			if err != nil {
				return err
			}
			if sess == nil {
				printInfo("No session for %s", displayName(v, args[0]))
				return nil
			}
			printKeyValue("Session", sess.ID)
			printKeyValue("Venue", sess.Venue)
			printKeyValue("Standing", fmt.Sprintf("%d ticket(s) in %d section(s)", sess.StandingCount(), len(sess.Standing)))
			printKeyValue("Updated", sess.UpdatedAt.Format(time.RFC3339))
			printKeyValue("Expires", sess.ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}
}

func (c *CLI) sessionClearCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear [venue]",
		Short: "Discard the editing session of a venue, or all sessions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newSessionStore()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if !all {
					return fmt.Errorf("specify a venue or pass --all")
				}
				sessions, err := store.List(ctx)
				if err != nil {
					return err
				}
				for _, s := range sessions {
					if err := store.Delete(ctx, s.ID); err != nil {
						return err
					}
				}
				if err := store.Cleanup(ctx); err != nil {
					return err
				}
				printSuccess("Cleared %d session(s)", len(sessions))
				printDetail("Directory: %s", store.Path())
				return nil
			}

			v, err := seatio.ImportVenue(args[0])
			if err != nil {
				return err
			}
			_, sess, err := c.currentSession(ctx, args[0], v, false)
			if err != nil {
				return err
			}
			if sess == nil {
				printInfo("No session for %s", displayName(v, args[0]))
				return nil
			}
			if err := store.Delete(ctx, sess.ID); err != nil {
				return err
			}
			printSuccess("Cleared session %s", sess.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "clear every session")
	return cmd
}
