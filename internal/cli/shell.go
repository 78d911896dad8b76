package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"habittracker/internal/habit"
	"habittracker/internal/model"
	"habittracker/internal/view"
)

const shellHelp = `Commands:
  list                 list habits (> marks the selection)
  add NAME             add a habit and select it
  select HABIT         select a habit by id or name
  toggle [YYYY-MM-DD]  flip the selected habit for a day (default today)
  show                 show the selected habit
  delete [HABIT]       delete HABIT, or the selected habit
  help                 show this help
  quit                 leave the shell`

// Shell is a line-oriented session over a loaded store. It owns the
// selection; the store never sees it.
type Shell struct {
	store      *habit.Store
	windowDays int
	sel        view.Selection
	out        io.Writer
}

func NewShell(store *habit.Store, windowDays int, out io.Writer) *Shell {
	return &Shell{store: store, windowDays: windowDays, out: out}
}

// Run reads commands from in until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	s.prompt()
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !s.Exec(scanner.Text()) {
			return nil
		}
		s.prompt()
	}
	return scanner.Err()
}

// Exec runs one command line and reports whether the session continues.
func (s *Shell) Exec(line string) bool {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit", "q":
		return false
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
	case "list", "ls":
		fmt.Fprint(s.out, renderRows(view.BuildRows(s.store.Snapshot(), s.store.Today(), &s.sel)))
	case "add":
		s.add(rest)
	case "select", "sel":
		s.selectHabit(rest)
	case "toggle", "t":
		s.toggle(rest)
	case "show":
		s.show()
	case "delete", "rm":
		s.delete(rest)
	default:
		fmt.Fprintf(s.out, "Unknown command %q, type help\n", cmd)
	}
	return true
}

func (s *Shell) prompt() {
	label := "habits"
	if h, ok := s.sel.Resolve(s.store.Snapshot()); ok {
		label = h.Name
	}
	fmt.Fprintf(s.out, "%s> ", label)
}

func (s *Shell) add(name string) {
	h, ok := s.store.AddHabit(name)
	if !ok {
		fmt.Fprintln(s.out, "Ignored blank habit name")
		return
	}
	s.sel.Select(h.ID)
	fmt.Fprintf(s.out, "Added %q (%s)\n", h.Name, h.ID)
}

func (s *Shell) selectHabit(ref string) {
	h, ok := view.Lookup(s.store.Snapshot(), ref)
	if !ok {
		fmt.Fprintf(s.out, "No habit matching %q\n", ref)
		return
	}
	s.sel.Select(h.ID)
	fmt.Fprintf(s.out, "Selected %q\n", h.Name)
}

func (s *Shell) selected() (model.Habit, bool) {
	h, ok := s.sel.Resolve(s.store.Snapshot())
	if !ok {
		fmt.Fprintln(s.out, "No habit selected, use: select HABIT")
	}
	return h, ok
}

func (s *Shell) toggle(dayArg string) {
	day := s.store.Today()
	if dayArg != "" {
		d, err := model.ParseDay(dayArg)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		day = d
	}

	h, ok := s.selected()
	if !ok {
		return
	}
	completed, _ := s.store.ToggleCompletion(h.ID, day)
	fmt.Fprintln(s.out, toggleMessage(h.Name, day, completed))
}

func (s *Shell) show() {
	h, ok := s.selected()
	if !ok {
		return
	}
	fmt.Fprintln(s.out, renderDetail(view.BuildDetail(h, s.store.Today(), s.windowDays)))
}

func (s *Shell) delete(ref string) {
	var (
		h  model.Habit
		ok bool
	)
	if ref == "" {
		h, ok = s.selected()
	} else if h, ok = view.Lookup(s.store.Snapshot(), ref); !ok {
		fmt.Fprintf(s.out, "No habit matching %q\n", ref)
	}
	if !ok {
		return
	}

	s.store.DeleteHabit(h.ID)
	s.sel.Forget(h.ID)
	fmt.Fprintf(s.out, "Deleted %q\n", h.Name)
}

func newShellCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session with a selected habit",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			sh := NewShell(a.store, a.cfg.Stats.WindowDays, cmd.OutOrStdout())
			return sh.Run(cmd.Context(), cmd.InOrStdin())
		}),
	}
}
