package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/1broseidon/monitile/internal/config"
	"github.com/1broseidon/monitile/internal/layout"
	"github.com/1broseidon/monitile/internal/monitor"
	"github.com/1broseidon/monitile/internal/preview"
	"github.com/1broseidon/monitile/internal/session"
	"github.com/1broseidon/monitile/internal/tui"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "plan":
		os.Exit(runPlan(os.Args[2:]))
	case "apply":
		os.Exit(runApply(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: monitile <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                 Arrange monitors interactively")
	fmt.Fprintln(w, "  monitors            List detected monitors")
	fmt.Fprintln(w, "  plan                Show the xrandr command for pending edits")
	fmt.Fprintln(w, "  apply               Apply edits with xrandr")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'monitile <command> --help' for command-specific options.")
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// reportStartup prints a startup failure and returns the exit code.
func reportStartup(err error) int {
	if errors.Is(err, layout.ErrEmptyRegistry) {
		fmt.Fprintln(os.Stderr, "No monitors found.")
		return 1
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/monitile/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: monitile tui [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Drag monitors on the canvas, then apply the arrangement with xrandr.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  mouse drag   Move a monitor")
		fmt.Fprintln(os.Stderr, "  click, tab   Select a monitor")
		fmt.Fprintln(os.Stderr, "  space        Toggle enabled")
		fmt.Fprintln(os.Stderr, "  r, enter     Edit resolution")
		fmt.Fprintln(os.Stderr, "  arrows, hjkl Nudge the selected monitor")
		fmt.Fprintln(os.Stderr, "  a            Apply pending changes")
		fmt.Fprintln(os.Stderr, "  q, ctrl+c    Quit")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "tui takes no arguments")
		fs.Usage()
		return 2
	}

	env, err := openEnv(*path, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer env.Close()

	ctx, cancel := signalContext()
	defer cancel()

	sess, err := env.newSession(ctx)
	if err != nil {
		return reportStartup(err)
	}
	cache := preview.NewCache(env.capturer(sess.Registry), env.cfg.CaptureInterval(), env.cfg.CaptureTimeout(), env.logger)

	if err := tui.Run(ctx, tui.New(sess, cache, env.logger)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

type monitorJSON struct {
	ID                 string `json:"id"`
	Enabled            bool   `json:"enabled"`
	Resolution         string `json:"resolution"`
	ProposedResolution string `json:"proposed_resolution"`
	ProposedStatus     bool   `json:"proposed_status"`
	X                  int    `json:"x"`
	Y                  int    `json:"y"`
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/monitile/config.yaml)")
	asJSON := fs.Bool("json", false, "Print JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: monitile monitors [--path PATH] [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List connected monitors. Outputs without a mode are shown as placeholders.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	env, err := openEnv(*path, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer env.Close()

	ctx, cancel := signalContext()
	defer cancel()

	sess, err := env.newSession(ctx)
	if err != nil {
		return reportStartup(err)
	}

	if *asJSON {
		out := make([]monitorJSON, 0, sess.Registry.Len())
		for _, m := range sess.Registry.Monitors {
			out = append(out, monitorJSON{
				ID:                 m.ID,
				Enabled:            m.Enabled,
				Resolution:         m.Resolution.String(),
				ProposedResolution: m.EffectiveResolution().String(),
				ProposedStatus:     m.ProposedStatus,
				X:                  int(m.Origin.X),
				Y:                  int(m.Origin.Y),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	printMonitors(os.Stdout, sess.Registry)
	return 0
}

func printMonitors(w io.Writer, reg *monitor.Registry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OUTPUT\tSTATE\tMODE\tPOSITION")
	for _, m := range reg.Monitors {
		state := "on"
		pos := fmt.Sprintf("+%d+%d", int(m.Origin.X), int(m.Origin.Y))
		if !m.Enabled {
			state = "off"
			pos = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Label(), state, m.Resolution, pos)
	}
	tw.Flush()
}

// editFlags collects the per-monitor edits shared by plan and apply.
type editFlags struct {
	enable  stringList
	disable stringList
	modes   stringList
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func (e *editFlags) register(fs *flag.FlagSet) {
	fs.Var(&e.enable, "enable", "Turn output ID on (repeatable)")
	fs.Var(&e.disable, "disable", "Turn output ID off (repeatable)")
	fs.Var(&e.modes, "mode", "Set output mode as ID=WxH (repeatable)")
}

// apply stages the edits on sess.
func (e *editFlags) apply(sess *session.Session) error {
	for _, id := range e.enable {
		if err := sess.SetEnabled(id, true); err != nil {
			return err
		}
	}
	for _, id := range e.disable {
		if err := sess.SetEnabled(id, false); err != nil {
			return err
		}
	}
	for _, arg := range e.modes {
		id, mode, ok := strings.Cut(arg, "=")
		if !ok || id == "" {
			return fmt.Errorf("--mode %q: expected ID=WxH", arg)
		}
		if err := sess.SetResolution(id, mode); err != nil {
			return err
		}
	}
	return nil
}

func printPlan(w io.Writer, plan session.Plan) {
	if !plan.Dirty {
		fmt.Fprintln(w, "No pending changes.")
		return
	}
	fmt.Fprintln(w, "Pending changes:")
	for _, c := range plan.Changes {
		fmt.Fprintf(w, "  %s\n", c)
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, plan.Command.String())
}

func runPlan(args []string) int {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/monitile/config.yaml)")
	var edits editFlags
	edits.register(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: monitile plan [--path PATH] [--enable ID] [--disable ID] [--mode ID=WxH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print pending changes and the xrandr command that would apply them.")
		fmt.Fprintln(os.Stderr, "Nothing is executed.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	env, err := openEnv(*path, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer env.Close()

	ctx, cancel := signalContext()
	defer cancel()

	sess, err := env.newSession(ctx)
	if err != nil {
		return reportStartup(err)
	}
	if err := edits.apply(sess); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	printPlan(os.Stdout, sess.Plan())
	return 0
}

func runApply(args []string) int {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/monitile/config.yaml)")
	yes := fs.Bool("yes", false, "Run xrandr without asking")
	var edits editFlags
	edits.register(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: monitile apply --yes [--path PATH] [--enable ID] [--disable ID] [--mode ID=WxH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Stage the edits on the detected arrangement and run the resulting xrandr")
		fmt.Fprintln(os.Stderr, "command. Without --yes only the plan is printed.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	env, err := openEnv(*path, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer env.Close()

	ctx, cancel := signalContext()
	defer cancel()

	sess, err := env.newSession(ctx)
	if err != nil {
		return reportStartup(err)
	}
	if err := edits.apply(sess); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	plan := sess.Plan()
	printPlan(os.Stdout, plan)
	if !plan.Dirty {
		return 0
	}
	if !*yes {
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Re-run with --yes to apply.")
		return 2
	}

	if _, err := sess.Apply(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("applied")
	return 0
}

func loadResult(path string) (*config.LoadResult, error) {
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return config.LoadFromPath(path)
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  monitile config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  monitile config print [--path PATH] [--effective|--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/monitile/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if _, err := loadResult(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/monitile/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		printEffective := fs.Bool("effective", false, "Print effective config (default)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			_ = printEffective // default
			res, err := loadResult(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			if res.File != "" {
				fmt.Printf("# file: %s\n", res.File)
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}
