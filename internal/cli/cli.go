// Package cli wires flags, config and output for the promptcraft command.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fsmiamoto/promptcraft/internal/clipboard"
	"github.com/fsmiamoto/promptcraft/internal/config"
	"github.com/fsmiamoto/promptcraft/internal/errs"
	"github.com/fsmiamoto/promptcraft/internal/logging"
	"github.com/fsmiamoto/promptcraft/internal/prompt"
	"github.com/fsmiamoto/promptcraft/internal/resolver"
	"github.com/fsmiamoto/promptcraft/internal/scaffold"
	"github.com/fsmiamoto/promptcraft/internal/ui"
)

// Options holds the parsed command-line flags.
type Options struct {
	Stdout  bool
	List    bool
	Init    bool
	Pick    bool
	Render  bool
	Verbose bool
}

// Copier places text on a clipboard.
type Copier interface {
	Copy(text string) (clipboard.Method, error)
}

// PickFunc asks the user to choose one of cmds. ok is false when the user
// cancelled.
type PickFunc func(cmds []resolver.CommandInfo) (chosen resolver.CommandInfo, ok bool, err error)

// Env is everything a run touches outside the process. Execute fills it from
// the OS; tests build their own.
type Env struct {
	In   io.Reader
	Out  io.Writer
	Err  io.Writer
	Cwd  string
	Home string

	// Clipboard overrides the system clipboard. Nil builds one from config.
	Clipboard Copier
	// Pick overrides the interactive picker. Nil runs the Bubble Tea picker,
	// which needs In to be a terminal.
	Pick PickFunc
}

const longHelp = `Generate prompts from slash command templates.

Templates are markdown files named <command>.md. They are looked up in
.promptcraft/commands/ under the current directory first, then under your
home directory. Every $ARGUMENTS in the template is replaced with the
arguments joined by single spaces.

The generated prompt is copied to the clipboard, or printed with --stdout.`

const examples = `  promptcraft /create-story "Epic Story" feature
  promptcraft /fix-bug urgent security
  promptcraft /code-review main.py --stdout
  promptcraft --list
  promptcraft --pick -- --dry-run`

// usageError marks failures that should be followed by the usage text.
type usageError struct{ err error }

func (u usageError) Error() string { return u.err.Error() }

type app struct {
	env     Env
	opts    Options
	console *ui.Console
	log     zerolog.Logger
	copier  Copier
}

// Execute runs promptcraft against the real process environment and returns
// the exit code.
func Execute(args []string) int {
	env := Env{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	cwd, err := os.Getwd()
	if err != nil {
		ui.NewConsole(env.Out, env.Err).Error("❌ Cannot determine the current directory: %v", err)
		return 1
	}
	env.Cwd = cwd
	// Without a home directory only project templates are searched.
	env.Home, _ = os.UserHomeDir()
	return Run(env, args)
}

// Run parses args, performs the requested action and returns the exit code:
// 0 on success, 1 on any failure.
func Run(env Env, args []string) int {
	a := &app{
		env:     env,
		console: ui.NewConsole(env.Out, env.Err),
		log:     zerolog.Nop(),
	}
	cmd := a.command()
	cmd.SetArgs(args)
	cmd.SetIn(env.In)
	cmd.SetOut(env.Out)
	cmd.SetErr(env.Err)

	if err := cmd.Execute(); err != nil {
		a.report(cmd, err)
		return 1
	}
	return 0
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "promptcraft [flags] COMMAND_NAME [ARGUMENTS...]",
		Short:         "Generate prompts from slash command templates",
		Long:          longHelp,
		Example:       examples,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args)
		},
	}
	cmd.SetVersionTemplate("promptcraft {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	f := cmd.Flags()
	f.BoolVar(&a.opts.Stdout, "stdout", false, "print the prompt instead of copying it to the clipboard")
	f.BoolVarP(&a.opts.List, "list", "l", false, "list available commands")
	f.BoolVar(&a.opts.Init, "init", false, "create .promptcraft/commands with an example template")
	f.BoolVarP(&a.opts.Pick, "pick", "p", false, "choose a command interactively; all arguments go to the template")
	f.BoolVar(&a.opts.Render, "render", false, "render a printed prompt as markdown when stdout is a terminal")
	f.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "log diagnostics to stderr")
	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	a.configure(cmd)
	res := resolver.New(resolver.StandardPaths(a.env.Cwd, a.env.Home), resolver.WithLogger(a.log))

	switch {
	case a.opts.Init:
		return a.initProject()
	case a.opts.List:
		return a.list(res)
	case a.opts.Pick:
		return a.pick(res, args)
	}
	if len(args) == 0 {
		return usageError{err: errors.New("missing COMMAND_NAME")}
	}
	return a.generate(res, args[0], args[1:])
}

// configure loads the user config, builds the logger and applies config
// values for flags that were not given explicitly.
func (a *app) configure(cmd *cobra.Command) {
	var path string
	if a.env.Home != "" {
		path = config.Path(a.env.Home)
	}
	cfg, unknown, cfgErr := config.Load(path)

	level, levelErr := logging.ParseLevel(cfg.Log.Level)
	if a.opts.Verbose {
		level = zerolog.DebugLevel
	}
	a.log = logging.New(a.env.Err, level)

	if cfgErr != nil {
		a.log.Warn().Err(cfgErr).Msg("ignoring config file")
	}
	if levelErr != nil {
		a.log.Warn().Err(levelErr).Msg("using default log level")
	}
	for _, key := range unknown {
		a.log.Warn().Str("key", key).Str("path", path).Msg("unknown config key")
	}

	flags := cmd.Flags()
	if !flags.Changed("stdout") {
		a.opts.Stdout = cfg.Output.Stdout
	}
	if !flags.Changed("render") {
		a.opts.Render = cfg.Output.Render
	}

	a.copier = a.env.Clipboard
	if a.copier == nil {
		a.copier = clipboard.New(cfg.Output.OSC52)
	}
	a.log.Debug().Str("cwd", a.env.Cwd).Str("home", a.env.Home).Bool("stdout", a.opts.Stdout).Msg("configured")
}

func (a *app) generate(res *resolver.Resolver, name string, args []string) error {
	name = strings.TrimPrefix(name, "/")
	text, err := prompt.NewGenerator(res, prompt.WithLogger(a.log)).Generate(name, args)
	if err != nil {
		return err
	}
	a.deliver(name, text)
	return nil
}

// deliver copies text to the clipboard, or prints it when --stdout is set or
// the clipboard is unavailable.
func (a *app) deliver(name, text string) {
	if a.opts.Stdout {
		a.console.Info("Prompt for '/%s' generated:", name)
		a.console.Prompt(text, a.opts.Render)
		return
	}

	method, err := a.copier.Copy(text)
	if err != nil {
		a.log.Debug().Err(err).Msg("clipboard copy failed")
		a.console.Warn("⚠️ Clipboard unavailable, use --stdout instead")
		a.console.Info("Prompt for '/%s' generated:", name)
		a.console.Prompt(text, a.opts.Render)
		return
	}
	a.log.Debug().Stringer("method", method).Int("bytes", len(text)).Msg("prompt copied")
	a.console.Success("✅ Prompt for '/%s' copied to clipboard!", name)
}

func (a *app) list(res *resolver.Resolver) error {
	cmds := res.Discover()
	if len(cmds) == 0 {
		a.noCommands()
		return nil
	}
	a.console.Title("Available Commands (%d found):", len(cmds))
	a.console.Println("")
	a.console.CommandTable(cmds)
	return nil
}

func (a *app) noCommands() {
	a.console.Println("No commands found")
	a.console.Println("Run 'promptcraft --init' to create examples")
}

func (a *app) pick(res *resolver.Resolver, args []string) error {
	cmds := res.Discover()
	if len(cmds) == 0 {
		a.noCommands()
		return nil
	}

	pickFn := a.env.Pick
	if pickFn == nil {
		if !ui.IsTerminal(a.env.In) {
			return usageError{err: errors.New("--pick needs an interactive terminal")}
		}
		pickFn = func(cmds []resolver.CommandInfo) (resolver.CommandInfo, bool, error) {
			return ui.Pick(cmds, a.env.In, a.env.Err)
		}
	}

	chosen, ok, err := pickFn(cmds)
	if err != nil {
		return err
	}
	if !ok {
		a.log.Debug().Msg("pick cancelled")
		return nil
	}

	// Render the chosen file directly so a shadowed global template stays
	// selectable.
	text, err := prompt.NewGenerator(res, prompt.WithLogger(a.log)).Render(chosen.Path, args)
	if err != nil {
		return err
	}
	a.deliver(chosen.Name, text)
	return nil
}

func (a *app) initProject() error {
	result, err := scaffold.Init(a.env.Cwd)
	if err != nil {
		return errors.WithHintf(err, "Check that %s is writable", a.env.Cwd)
	}

	if result.Created {
		a.console.Title("✅ PromptCraft initialized!")
		a.console.Println("Created %s", result.File)
	} else {
		a.console.Title("✅ PromptCraft already initialized")
		a.console.Println("Example template already exists: %s", result.File)
	}
	a.console.Println("")
	a.console.Println("Next steps:")
	a.console.Println("  promptcraft %s 'hello world'", scaffold.ExampleName)
	a.console.Println("  promptcraft --list")
	a.console.Println("  Add your own templates to %s", result.Dir)
	return nil
}

// report prints err for the user.
func (a *app) report(cmd *cobra.Command, err error) {
	var (
		usage    usageError
		notFound *errs.CommandNotFoundError
		read     *errs.TemplateReadError
	)
	switch {
	case errors.As(err, &usage):
		a.console.Error("Error: %s", usage.err)
		io.WriteString(a.env.Err, cmd.UsageString())
		return
	case errors.As(err, &notFound):
		if notFound.Reason != "" {
			a.console.Error("❌ Command '/%s' not found (%s)", notFound.Name, notFound.Reason)
		} else {
			a.console.Error("❌ Command '/%s' not found", notFound.Name)
		}
		a.log.Debug().Strs("searched", notFound.Searched).Str("code", notFound.Code).Msg("command not found")
	case errors.As(err, &read):
		a.console.Error("❌ %s", read.Error())
		a.log.Debug().Str("code", read.Code).Msg("template read failed")
	default:
		a.log.Error().Err(err).Msg("unexpected error")
		a.console.Error("❌ Unexpected error occurred")
	}
	for _, hint := range errs.Hints(err) {
		a.console.Hint("%s", hint)
	}
}
