package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/macropower/pagewin/pkg/config"
	"github.com/macropower/pagewin/pkg/log"
	"github.com/macropower/pagewin/pkg/pagination"
	"github.com/macropower/pagewin/pkg/ui/menu"
	"github.com/macropower/pagewin/pkg/ui/theme"
	"github.com/macropower/pagewin/pkg/yaml"
)

const cmdExamples = `
  # Pick from the lines of a file.
  pagewin ./hosts.txt

  # Pick from stdin, five rows at a time, paging by whole pages.
  ls | pagewin - --per-page 5 --strategy paginated

  # Pick from generated items and reload the window when the config changes.
  pagewin --count 100 --watch

  # Feed the chosen item to another command.
  pagewin ./hosts.txt | xargs ssh

  # Print the first window without drawing the menu.
  pagewin ./hosts.txt 2>/dev/null

  # Step through a simulated collection.
  pagewin simulate --total 7 --per-page 5 up down dx3`

var ErrNoItems = errors.New("no items")

type RunArgs struct {
	*RootArgs

	Path        string
	ConfigPath  string
	Strategy    string
	PerPage     int
	Count       int
	Watch       bool
	WriteConfig bool
	ShowConfig  bool
}

func NewRunArgs(ra *RootArgs) *RunArgs {
	return &RunArgs{RootArgs: ra}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.ConfigPath, "config", "", "Path to the config file")
	cmd.Flags().IntVarP(&ra.PerPage, "per-page", "n", 0, "Rows in the visible window, overrides the config")
	cmd.Flags().StringVarP(&ra.Strategy, "strategy", "s", "",
		fmt.Sprintf("Scroll strategy, one of: %s", strings.Join(pagination.AllStrategies, ", ")))
	cmd.Flags().IntVar(&ra.Count, "count", 0, "Generate this many numbered items instead of reading a file")
	cmd.Flags().BoolVarP(&ra.Watch, "watch", "w", false, "Reload the window settings when the config file changes")
	cmd.Flags().BoolVar(&ra.WriteConfig, "write-config", false, "Write the default config to the config path and exit")
	cmd.Flags().BoolVar(&ra.ShowConfig, "show-config", false, "Print the active config and exit")

	must(cmd.RegisterFlagCompletionFunc("strategy",
		cobra.FixedCompletions(pagination.AllStrategies, cobra.ShellCompDirectiveNoFileComp),
	))
}

func run(cmd *cobra.Command, rc *RunArgs) error {
	ctx := cmd.Context()
	logger := log.FromContext(ctx)

	configPath := rc.ConfigPath
	if configPath == "" {
		configPath = config.GetPath()
	}

	if rc.WriteConfig {
		err := config.WriteDefaultConfig(configPath, true)
		if err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		logger.InfoContext(ctx, "wrote default config", slog.String("path", configPath))

		return nil
	}

	err := config.WriteDefaultConfig(configPath, false)
	if err != nil {
		logger.WarnContext(ctx, "could not write default config", slog.Any("error", err))
	}

	cfg, err := loadConfig(ctx, configPath)
	if err != nil {
		return err
	}

	err = rc.applyOverrides(cfg)
	if err != nil {
		return err
	}

	if rc.ShowConfig {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}

		_, err = cmd.OutOrStdout().Write(b)
		if err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		return nil
	}

	items, fromConfig, err := rc.readItems(cmd.InOrStdin(), cfg)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		return ErrNoItems
	}

	perPage := *cfg.Menu.ItemsPerPage
	strategy := cfg.Menu.ParsedStrategy()

	// The menu draws on stderr so that stdout can carry the choice into a
	// pipeline.
	if !isTerminal(cmd.ErrOrStderr()) {
		logger.DebugContext(ctx, "stderr is not a terminal, printing the first window")
		return printWindow(cmd.OutOrStdout(), items, perPage, strategy)
	}

	// The TUI owns the terminal while it runs, so logs are held back and
	// flushed after it exits.
	logBuf := log.NewCircularBuffer(log.DefaultBufferCapacity)

	h, err := log.CreateHandlerWithStrings(logBuf, rc.LogLevel, rc.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	tuiLogger := slog.New(h)
	prev := slog.Default()
	slog.SetDefault(tuiLogger)

	defer func() {
		slog.SetDefault(prev)
		flushLogs(cmd.ErrOrStderr(), logBuf)
	}()

	m, err := menu.New(menu.Config{
		Logger:       tuiLogger,
		KeyBinds:     cfg.UI.KeyBinds,
		Theme:        theme.New(*cfg.UI.Theme),
		Title:        cmdName,
		Items:        items,
		ItemsPerPage: perPage,
		Strategy:     strategy,
	})
	if err != nil {
		return fmt.Errorf("create menu: %w", err)
	}

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(cmd.ErrOrStderr()),
	}
	if !isTerminal(cmd.InOrStdin()) {
		// Items came through a pipe; read keys from the controlling terminal.
		opts = append(opts, tea.WithInputTTY())
	}

	program := tea.NewProgram(m, opts...)

	if rc.Watch {
		watchCtx, cancel := context.WithCancel(log.NewContext(ctx, tuiLogger))
		defer cancel()

		err := watchConfig(watchCtx, program, configPath, rc, fromConfig)
		if err != nil {
			return err
		}
	}

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("run menu: %w", err)
	}

	fm, ok := final.(menu.Model)
	if !ok {
		return nil
	}

	choice, ok := fm.Chosen()
	if !ok {
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), choice)
	if err != nil {
		return fmt.Errorf("write choice: %w", err)
	}

	return nil
}

func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.FromContext(ctx).DebugContext(ctx, "no config file, using defaults", slog.String("path", path))
		return config.New(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// applyOverrides writes the window flags over the loaded config.
func (ra *RunArgs) applyOverrides(cfg *config.Config) error {
	if ra.PerPage != 0 {
		n := ra.PerPage
		cfg.Menu.ItemsPerPage = &n
	}

	if ra.Strategy != "" {
		s := ra.Strategy
		cfg.Menu.Strategy = &s
	}

	err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid argument: %w", err)
	}

	return nil
}

// readItems returns the items to show, and whether they came from the config.
func (ra *RunArgs) readItems(stdin io.Reader, cfg *config.Config) ([]string, bool, error) {
	switch {
	case ra.Path == "-":
		items, err := readLines(stdin)
		if err != nil {
			return nil, false, fmt.Errorf("read stdin: %w", err)
		}

		return items, false, nil

	case ra.Path != "":
		f, err := os.Open(ra.Path)
		if err != nil {
			return nil, false, fmt.Errorf("open items: %w", err)
		}
		defer f.Close() //nolint:errcheck // Read only.

		items, err := readLines(f)
		if err != nil {
			return nil, false, fmt.Errorf("read %s: %w", ra.Path, err)
		}

		return items, false, nil

	case ra.Count > 0:
		items := make([]string, ra.Count)
		for i := range items {
			items[i] = fmt.Sprintf("item %d", i+1)
		}

		return items, false, nil
	}

	return cfg.Items, true, nil
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		lines = append(lines, line)
	}

	return lines, sc.Err()
}

// printWindow writes the items of the first window, one per line.
func printWindow(w io.Writer, items []string, perPage int, strategy pagination.Strategy) error {
	s, err := pagination.New(perPage, strategy)
	if err != nil {
		return fmt.Errorf("invalid argument: %w", err)
	}

	s.SetTotalItems(len(items))

	for _, i := range s.Slots() {
		if i < 0 {
			continue
		}

		_, err := fmt.Fprintln(w, items[i])
		if err != nil {
			return fmt.Errorf("write window: %w", err)
		}
	}

	return nil
}

func watchConfig(ctx context.Context, p *tea.Program, path string, rc *RunArgs, itemsFromConfig bool) error {
	w, err := config.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}

	go func() {
		defer w.Close() //nolint:errcheck // Best effort.

		w.Run(ctx, func(c *config.Config) {
			// Flags still win over the reloaded file.
			err := rc.applyOverrides(c)
			if err != nil {
				log.FromContext(ctx).WarnContext(ctx, "ignore reloaded config", slog.Any("error", err))
				return
			}

			p.Send(menu.ConfigMsg{
				ItemsPerPage: *c.Menu.ItemsPerPage,
				Strategy:     c.Menu.ParsedStrategy(),
			})

			if itemsFromConfig && len(c.Items) > 0 {
				p.Send(menu.ItemsMsg(c.Items))
			}
		})
	}()

	return nil
}

// isTerminal reports whether f is a file descriptor attached to a terminal.
// Readers and writers without a descriptor are never terminals.
func isTerminal(f any) bool {
	fd, ok := f.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return term.IsTerminal(int(fd.Fd())) //nolint:gosec // File descriptors fit in an int.
}

func flushLogs(w io.Writer, buf *log.CircularBuffer) {
	if buf.Len() == 0 {
		return
	}

	_, err := buf.WriteTo(w)
	if err != nil {
		slog.Error("flush logs", slog.Any("error", err))
	}
}
