package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"habittracker/internal/habit"
	"habittracker/internal/model"
	"habittracker/internal/view"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List habits with their current streak",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			rows := view.BuildRows(a.store.Snapshot(), a.store.Today(), nil)
			fmt.Fprint(cmd.OutOrStdout(), renderRows(rows))
			return nil
		}),
	}
}

func newAddCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME...",
		Short: "Add a habit",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			h, ok := a.store.AddHabit(strings.Join(args, " "))
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Ignored blank habit name")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", h.Name, h.ID)
			return nil
		}),
	}
}

func newToggleCommand(opts *rootOptions) *cobra.Command {
	var dayFlag string
	cmd := &cobra.Command{
		Use:   "toggle HABIT",
		Short: "Flip a habit's completion for a day (default today)",
		Long:  "HABIT is an id or a habit name. --day accepts YYYY-MM-DD.",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			day := a.store.Today()
			if dayFlag != "" {
				d, err := model.ParseDay(dayFlag)
				if err != nil {
					return err
				}
				day = d
			}

			h, ok := lookupArg(cmd, a, args)
			if !ok {
				return nil
			}
			completed, _ := a.store.ToggleCompletion(h.ID, day)
			fmt.Fprintln(cmd.OutOrStdout(), toggleMessage(h.Name, day, completed))
			return nil
		}),
	}
	cmd.Flags().StringVar(&dayFlag, "day", "", "day to toggle (YYYY-MM-DD)")
	return cmd
}

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete HABIT",
		Short: "Delete a habit and its history",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			h, ok := lookupArg(cmd, a, args)
			if !ok {
				return nil
			}
			a.store.DeleteHabit(h.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", h.Name)
			return nil
		}),
	}
}

func newShowCommand(opts *rootOptions) *cobra.Command {
	var (
		asOfFlag string
		window   int
	)
	cmd := &cobra.Command{
		Use:   "show HABIT",
		Short: "Show streaks, success rate and recent days for a habit",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			asOf := a.store.Today()
			if asOfFlag != "" {
				d, err := model.ParseDay(asOfFlag)
				if err != nil {
					return err
				}
				asOf = d
			}
			if window <= 0 {
				window = a.cfg.Stats.WindowDays
			}

			h, ok := lookupArg(cmd, a, args)
			if !ok {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDetail(view.BuildDetail(h, asOf, window)))
			return nil
		}),
	}
	cmd.Flags().StringVar(&asOfFlag, "as-of", "", "reference day (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&window, "window", 0, fmt.Sprintf("days in the recent strip (default stats.window_days, %d)", habit.DefaultWindowDays))
	return cmd
}

// lookupArg 按 id 或名字查找，找不到时打印提示
func lookupArg(cmd *cobra.Command, a *app, args []string) (model.Habit, bool) {
	ref := strings.Join(args, " ")
	h, ok := view.Lookup(a.store.Snapshot(), ref)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "No habit matching %q\n", ref)
	}
	return h, ok
}

func toggleMessage(name string, day model.Day, completed bool) string {
	if completed {
		return fmt.Sprintf("Marked %q done on %s", name, day)
	}
	return fmt.Sprintf("Cleared %q on %s", name, day)
}
