package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/macropower/pagewin/pkg/pagination"
	"github.com/macropower/pagewin/pkg/yaml"
)

var (
	ErrUnknownMove   = errors.New("unknown move")
	ErrUnknownOutput = errors.New("unknown output format")
)

var outputFormats = []string{"table", "yaml", "json"}

type SimulateArgs struct {
	*RootArgs

	Strategy string
	Output   string
	Total    int
	PerPage  int
	Start    int
}

// Move is a single parsed simulation move.
type Move struct {
	Down  bool
	Count int
}

func (m Move) String() string {
	if m.Down {
		return "down"
	}

	return "up"
}

// Step is the state after one move of a simulation.
type Step struct {
	Move        string `json:"move"`
	Step        int    `json:"step"`
	Index       int    `json:"index"`
	Page        int    `json:"page"`
	PageIndex   int    `json:"pageIndex"`
	WindowStart int    `json:"windowStart"`
	WindowEnd   int    `json:"windowEnd"`
	Slot        int    `json:"slot"`
	Shifted     bool   `json:"shifted"`
	Slots       []int  `json:"slots"`
}

func NewSimulateCmd(ra *RootArgs) *cobra.Command {
	args := &SimulateArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "simulate [move...]",
		Short: "Print the window after each move through a collection",
		Long: `Print the window after each move through a collection.

A move is "up", "down", "u" or "d", optionally followed by "xN" to repeat
it N times, e.g. "dx3".`,
		Example: `  pagewin simulate --total 7 --per-page 5 --strategy classic u u d
  pagewin simulate --total 20 -n 5 -s paginated dx7 -o yaml`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			return runSimulate(cmd.OutOrStdout(), args, posArgs)
		},
	}

	cmd.Flags().IntVar(&args.Total, "total", 20, "Number of items in the collection")
	cmd.Flags().IntVarP(&args.PerPage, "per-page", "n", 5, "Rows in the visible window")
	cmd.Flags().StringVarP(&args.Strategy, "strategy", "s", pagination.Classic.String(),
		fmt.Sprintf("Scroll strategy, one of: %s", strings.Join(pagination.AllStrategies, ", ")))
	cmd.Flags().IntVar(&args.Start, "start", 0, "Index selected before the first move")
	cmd.Flags().StringVarP(&args.Output, "output", "o", "table",
		fmt.Sprintf("Output format, one of: %s", strings.Join(outputFormats, ", ")))

	must(cmd.RegisterFlagCompletionFunc("strategy",
		cobra.FixedCompletions(pagination.AllStrategies, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.RegisterFlagCompletionFunc("output",
		cobra.FixedCompletions(outputFormats, cobra.ShellCompDirectiveNoFileComp),
	))

	return cmd
}

func runSimulate(w io.Writer, sa *SimulateArgs, posArgs []string) error {
	strategy, err := pagination.ParseStrategy(sa.Strategy)
	if err != nil {
		return fmt.Errorf("invalid argument: %w", err)
	}

	moves, err := ParseMoves(posArgs)
	if err != nil {
		return err
	}

	s, err := pagination.New(sa.PerPage, strategy)
	if err != nil {
		return fmt.Errorf("invalid argument: %w", err)
	}

	if sa.Total < 0 {
		return fmt.Errorf("invalid argument: total must not be negative, got %d", sa.Total)
	}

	s.SetTotalItems(sa.Total)
	s.Select(sa.Start)

	steps := Simulate(s, moves)

	switch sa.Output {
	case "table":
		_, err = fmt.Fprintln(w, renderSteps(steps))
	case "yaml":
		var b []byte

		b, err = yaml.Marshal(steps)
		if err == nil {
			_, err = w.Write(b)
		}
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(steps)
	default:
		return fmt.Errorf("invalid argument: %w: %q", ErrUnknownOutput, sa.Output)
	}

	if err != nil {
		return fmt.Errorf("write steps: %w", err)
	}

	return nil
}

// ParseMoves parses moves such as "up", "d" or "dx3".
func ParseMoves(args []string) ([]Move, error) {
	moves := make([]Move, 0, len(args))

	for _, arg := range args {
		name, repeat, hasRepeat := strings.Cut(strings.ToLower(arg), "x")

		m := Move{Count: 1}

		switch name {
		case "up", "u":
		case "down", "d":
			m.Down = true
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownMove, arg)
		}

		if hasRepeat {
			n, err := strconv.Atoi(repeat)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: %q: bad repeat count", ErrUnknownMove, arg)
			}

			m.Count = n
		}

		moves = append(moves, m)
	}

	return moves, nil
}

// Simulate applies moves to s and returns the state before the first move
// followed by the state after every single step.
func Simulate(s *pagination.State, moves []Move) []Step {
	steps := []Step{stepOf(s, 0, "start", false)}

	for _, m := range moves {
		for range m.Count {
			var shifted bool
			if m.Down {
				shifted = s.MoveDown()
			} else {
				shifted = s.MoveUp()
			}

			steps = append(steps, stepOf(s, len(steps), m.String(), shifted))
		}
	}

	return steps
}

func stepOf(s *pagination.State, n int, move string, shifted bool) Step {
	return Step{
		Step:        n,
		Move:        move,
		Shifted:     shifted,
		Index:       s.CurrentMenuIndex(),
		Page:        s.CurrentPage(),
		PageIndex:   s.CurrentPageIndex(),
		WindowStart: s.WindowStart(),
		WindowEnd:   s.WindowEnd(),
		Slot:        s.VisibleSlot(),
		Slots:       s.Slots(),
	}
}

func renderSteps(steps []Step) string {
	rows := make([][]string, 0, len(steps))
	for _, st := range steps {
		shifted := ""
		if st.Shifted {
			shifted = "yes"
		}

		rows = append(rows, []string{
			strconv.Itoa(st.Step),
			st.Move,
			strconv.Itoa(st.Index),
			strconv.Itoa(st.Page),
			fmt.Sprintf("%d-%d", st.WindowStart, st.WindowEnd),
			strconv.Itoa(st.Slot),
			shifted,
			formatSlots(st.Slots, st.Slot),
		})
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("STEP", "MOVE", "INDEX", "PAGE", "WINDOW", "SLOT", "SHIFTED", "SLOTS").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}

			return cell
		}).
		String()
}

// formatSlots renders the window as "[3 4 (5) 6 -]", with the selected slot
// in parentheses and empty slots as "-".
func formatSlots(slots []int, selected int) string {
	parts := make([]string, len(slots))
	for i, idx := range slots {
		v := "-"
		if idx >= 0 {
			v = strconv.Itoa(idx)
		}

		if i == selected && idx >= 0 {
			v = "(" + v + ")"
		}

		parts[i] = v
	}

	return "[" + strings.Join(parts, " ") + "]"
}
