package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"todo/internal/api"
	"todo/internal/config"
)

// ContainerFactory builds the dependency container for a loaded configuration
type ContainerFactory func(cfg *config.Config) (*api.Container, error)

// Option configures a RootCommand
type Option func(*RootCommand)

// WithLoader replaces the configuration loader
func WithLoader(loader *config.Loader) Option {
	return func(r *RootCommand) {
		r.loader = loader
	}
}

// WithContainerFactory replaces how the container is built
func WithContainerFactory(factory ContainerFactory) Option {
	return func(r *RootCommand) {
		r.factory = factory
	}
}

// WithStreams replaces the standard streams
func WithStreams(streams IOStreams) Option {
	return func(r *RootCommand) {
		r.streams = streams
	}
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	factory ContainerFactory
	streams IOStreams

	config *config.Config
	app    *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(opts ...Option) *RootCommand {
	root := &RootCommand{
		loader:  config.NewLoader(),
		factory: api.New,
		streams: DefaultStreams(),
	}
	for _, opt := range opts {
		opt(root)
	}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A local to-do list",
		Long: `todo keeps a list of tasks in a local SQLite database.

EXAMPLES:
  todo add Buy milk --comment "2 litres"   # Add a task
  todo list                                # Incomplete tasks first
  todo list --incomplete --format json     # Only open tasks, as JSON
  todo search milk                         # Tasks whose title contains "milk"
  todo done 1a2b3c4d                       # Toggle completion (id prefix is enough)
  todo edit 1a2b --title "Buy oat milk"    # Change title or comment
  todo rm 1a2b                             # Delete a task
  todo browse                              # Interactive list

CONFIGURATION:
  Priority order: command-line flags > environment variables > config file > defaults
  The config file is ~/.todo/config.toml (or $TODO_CONFIG); a .env file in the
  working directory is read into the environment first.

    TODO_DB_DIR                Database directory (default: ~/.todo)
    TODO_DB_FILENAME           Database filename, ":memory:" for a throwaway list (default: todo.db)
    TODO_DB_QUERY_TIMEOUT      Per-query timeout (default: 10s)
    TODO_DB_DIR_PERMISSIONS    Octal permissions for a new database directory (default: 755)
    TODO_LOG_LEVEL             debug, info, warn or error (default: info)
    TODO_LOG_FORMAT            console or json (default: console)
    TODO_LOG_FILE              Write logs to a file instead of stderr
    TODO_APP_TIMEOUT           Timeout for one command (default: 60s)
    TODO_LIST_DEFAULT_FORMAT   table, json or csv (default: table)
    TODO_DEBUG                 Any value forces debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig()
		},
	}

	root.cmd.SetIn(root.streams.In)
	root.cmd.SetOut(root.streams.Out)
	root.cmd.SetErr(root.streams.ErrOut)

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command and releases the container afterwards
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.app != nil {
		if closeErr := r.app.Close(); err == nil {
			err = closeErr
		}
		r.app = nil
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides TODO_CONFIG)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides TODO_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TODO_DB_FILENAME)")

	// Logging configuration
	flags.String("log-level", "", "Log level (overrides TODO_LOG_LEVEL)")
	flags.String("log-format", "", "Log format (overrides TODO_LOG_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides TODO_APP_TIMEOUT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.newAddCommand(),
		r.newEditCommand(),
		r.newDoneCommand(),
		r.newDeleteCommand(),
		r.newShowCommand(),
		r.newListCommand(),
		r.newSearchCommand(),
		r.newBrowseCommand(),
	)
}

func (r *RootCommand) newAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Long:  "Add a new, incomplete task. All arguments are joined to form the title.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.openApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			var opts AddOptions
			if cmd.Flags().Changed("comment") {
				comment, _ := cmd.Flags().GetString("comment")
				opts.Comment = &comment
			}
			return NewAddCommand(app).Execute(ctx, args, opts)
		},
	}
	cmd.Flags().StringP("comment", "c", "", "Optional comment")
	return cmd
}

func (r *RootCommand) newEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or comment of a task",
		Long: `Change the title or comment of a task. Flags that are not given keep
the current value. Nothing is saved when the content is unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.openApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			var opts EditOptions
			if cmd.Flags().Changed("title") {
				title, _ := cmd.Flags().GetString("title")
				opts.Title = &title
			}
			if cmd.Flags().Changed("comment") {
				comment, _ := cmd.Flags().GetString("comment")
				opts.Comment = &comment
			}
			opts.ClearComment, _ = cmd.Flags().GetBool("clear-comment")
			return NewEditCommand(app).Execute(ctx, args[0], opts)
		},
	}
	cmd.Flags().StringP("title", "t", "", "New title")
	cmd.Flags().StringP("comment", "c", "", "New comment")
	cmd.Flags().Bool("clear-comment", false, "Remove the comment")
	cmd.MarkFlagsMutuallyExclusive("comment", "clear-comment")
	return cmd
}

func (r *RootCommand) newDoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle whether a task is completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.openApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewDoneCommand(app).Execute(ctx, args[0])
		},
	}
}

func (r *RootCommand) newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Long:    "Delete a task permanently. This cannot be undone.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.openApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewDeleteCommand(app).Execute(ctx, args[0])
		},
	}
}

func (r *RootCommand) newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.openApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext(cmd)
			defer cancel()

			return NewShowCommand(app).Execute(ctx, args[0])
		},
	}
}

func (r *RootCommand) newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long:    "List tasks, incomplete ones first, each group in creation order.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runList(cmd, "")
		},
	}
	addListFlags(cmd)
	return cmd
}

func (r *RootCommand) newSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <text...>",
		Short: "Search tasks by title",
		Long: `List tasks whose title contains the text, ignoring case and accents.
Incomplete tasks come first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runList(cmd, strings.Join(args, " "))
		},
	}
	addListFlags(cmd)
	return cmd
}

func (r *RootCommand) newBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [text...]",
		Short: "Browse tasks interactively",
		Long: `Browse tasks in an interactive list.

  up/down, j/k   move
  space, x       toggle completed
  d              delete
  f              show only incomplete tasks
  /              search
  r              refresh
  q, esc         quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.openApp()
			if err != nil {
				return err
			}
			// No command timeout: the session lasts as long as the user wants.
			incompleteOnly, _ := cmd.Flags().GetBool("incomplete")
			return NewBrowseCommand(app).Execute(cmd.Context(), ListOptions{
				Query:          strings.Join(args, " "),
				IncompleteOnly: incompleteOnly,
			})
		},
	}
	cmd.Flags().BoolP("incomplete", "i", false, "Start with only incomplete tasks")
	return cmd
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("incomplete", "i", false, "Only incomplete tasks")
	cmd.Flags().StringP("format", "f", "", "Output format: table, json or csv (default from config)")
}

func (r *RootCommand) runList(cmd *cobra.Command, query string) error {
	app, err := r.openApp()
	if err != nil {
		return err
	}
	ctx, cancel := r.commandContext(cmd)
	defer cancel()

	incompleteOnly, _ := cmd.Flags().GetBool("incomplete")
	format, _ := cmd.Flags().GetString("format")
	return NewListCommand(app).Execute(ctx, ListOptions{
		Query:          query,
		IncompleteOnly: incompleteOnly,
		Format:         format,
	})
}

// loadConfig loads the configuration and applies flag overrides
func (r *RootCommand) loadConfig() error {
	flags := r.cmd.PersistentFlags()

	if path, _ := flags.GetString("config"); path != "" {
		r.loader.WithConfigFile(path)
	}

	cfg, err := r.loader.LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return err
	}
	r.config = cfg
	return nil
}

// overridesFromFlags collects the global flags the user actually set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		overrides.LogFormat = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}

	return overrides
}

// openApp builds the container on first use. Help and completion never
// reach it, so they work without a database.
func (r *RootCommand) openApp() (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	if r.config == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	container, err := r.factory(r.config)
	if err != nil {
		return nil, err
	}

	r.app = NewApp(container, r.streams)
	return r.app, nil
}

// commandContext bounds a command by the configured application timeout
func (r *RootCommand) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), r.getAppTimeout())
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}
