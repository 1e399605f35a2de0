package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	seatio "github.com/matzehuels/seatplan/pkg/io"
	"github.com/matzehuels/seatplan/pkg/pipeline"
	"github.com/matzehuels/seatplan/pkg/session"
	"github.com/matzehuels/seatplan/pkg/venue"
)

// compileFlags holds the flags of the compile command.
type compileFlags struct {
	overrides  string
	output     string
	noCache    bool
	refresh    bool
	useSession bool
	standing   standingFlags
}

// compileCommand creates the compile command.
func (c *CLI) compileCommand() *cobra.Command {
	var flags compileFlags

	cmd := &cobra.Command{
		Use:   "compile [venue.toml|venue.json]",
		Short: "Compile a venue configuration into a seat layout",
		Long: `Compile a venue configuration into a seat layout.

The venue file describes sections, row blocks, numbering rules and standing
areas. The output is a layout.json file with every seat (id, row, number,
position, tier, price, status) and every row label.

Live statuses are merged from an override file:

  {"reserved": [{"seat_id": "S-A1"}], "blocked": [], "sold": []}

Compiled geometry is cached locally; statuses are merged on every run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompile(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.overrides, "overrides", "x", "", "override file with reserved/blocked/sold seat lists")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file, - for stdout (default: <venue>.layout.json)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompile even if a cached layout exists")
	cmd.Flags().BoolVar(&flags.useSession, "session", false, "reuse standing ids from the venue's editing session")
	flags.standing.register(cmd)

	return cmd
}

// runCompile loads the venue and overrides, runs the pipeline, and writes output.
func (c *CLI) runCompile(ctx context.Context, input string, flags compileFlags) error {
	v, err := seatio.ImportVenue(input)
	if err != nil {
		return err
	}
	var overrides venue.OverrideSet
	if flags.overrides != "" {
		if overrides, err = seatio.ImportOverrides(flags.overrides); err != nil {
			return err
		}
	}

	opts, err := c.options(flags.standing)
	if err != nil {
		return err
	}
	opts.Refresh = flags.refresh

	var store session.Store
	if flags.useSession {
		store, opts.Session, err = c.currentSession(ctx, input, v, false)
		if err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	toStdout := flags.output == "-"
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Compiling %s...", displayName(v, input)))
	spinner.Start()
	defer spinner.Stop()

	result, err := runner.Execute(ctx, v, overrides, opts)
	if err != nil {
		spinner.StopWithError("Compile failed")
		return fmt.Errorf("compile: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if opts.Session != nil {
		if err := store.Set(ctx, opts.Session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}

	if toStdout {
		spinner.Stop()
		return seatio.WriteLayout(result.Layout, stdout)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	spinner.SetMessage(fmt.Sprintf("Writing %s...", filepath.Base(outputPath)))
	err = seatio.ExportLayout(result.Layout, outputPath)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.Seats, len(result.Layout.Labels), result.CacheInfo.BuildHit)
	reportProblems(result)
	printNewline()
	printNextStep("Inspect", "seatplan inspect "+input)

	return nil
}

// reportProblems prints override conflicts and unknown ids.
func reportProblems(result *pipeline.Result) {
	for _, cf := range result.Conflicts {
		printWarning("%s is listed as %v, resolved to %s", cf.SeatID, cf.Categories, cf.Resolved)
	}
	if n := len(result.Unmatched); n > 0 {
		printWarning("%d override(s) name unknown seats", n)
		for _, id := range result.Unmatched {
			printDetail("%s", id)
		}
	}
	for _, id := range result.Duplicates {
		printWarning("seat id %s is produced more than once", id)
	}
}

// currentSession finds the venue's live editing session. When create is set
// a new session is started if none exists; otherwise the session is nil.
func (c *CLI) currentSession(ctx context.Context, input string, v venue.Venue, create bool) (session.Store, *session.Session, error) {
	store, err := c.newSessionStore()
	if err != nil {
		return nil, nil, err
	}
	hash, err := pipeline.VenueHash(v)
	if err != nil {
		return nil, nil, err
	}
	sess, err := session.Current(ctx, store, hash)
	if err != nil {
		return nil, nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil && create {
		abs, err := filepath.Abs(input)
		if err != nil {
			abs = input
		}
		sess = session.New(abs, hash, c.Config.Session.TTL)
		c.Logger.Debug("started session", "id", sess.ID, "venue", abs)
	}
	return store, sess, nil
}

func displayName(v venue.Venue, input string) string {
	if v.Name != "" {
		return v.Name
	}
	return filepath.Base(input)
}
