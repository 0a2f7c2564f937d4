package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"paper2plan/internal/api"
	"paper2plan/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RootOptions replace the default wiring, mainly for tests
type RootOptions struct {
	Out io.Writer
	// Open builds the planner once the configuration is loaded
	Open func(ctx context.Context, cfg *config.Config) (*api.App, error)
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	config *config.Config
	open   func(ctx context.Context, cfg *config.Config) (*api.App, error)
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(opts RootOptions) *RootCommand {
	root := &RootCommand{
		app:  NewApp(nil, opts.Out),
		open: opts.Open,
	}
	if root.open == nil {
		root.open = func(ctx context.Context, cfg *config.Config) (*api.App, error) {
			return api.New(ctx, cfg, api.Dependencies{})
		}
	}

	root.cmd = &cobra.Command{
		Use:   "p2p",
		Short: "Turn paper notes into a weekly plan",
		Long: `Paper2Plan (p2p) keeps a to-do list and a weekly calendar, fills them from
photos of handwritten notes and prints them back onto a foldable paper booklet.

FEATURES:
  • Tasks with completion and a start/pause timer
  • Weekly recurring and one-off events in toggleable calendars
  • AI import of note photos, magic scheduling, duration estimates and chat
  • iCalendar export and Google Calendar push
  • Printable 8-page booklet, one sheet side at a time
  • HTTP API for the web planner ("p2p serve")

EXAMPLES:
  p2p task add "Write report"              # Add a task
  p2p task list                            # Numbered task list
  p2p task timer 1                         # Start or pause the timer of task 1
  p2p event add "Gym" --day 2 --time 18:00 # Weekly event on Tuesdays
  p2p event drop 1 --date 2025-06-20       # Put task 1 on a date
  p2p import notes.jpg                     # Read tasks and events from a photo
  p2p magic                                # Let the AI place open tasks
  p2p export ics -o plan.ics               # Export to iCalendar
  p2p print A -o side-a.html               # Side A of the booklet sheet
  p2p serve                                # Run the HTTP API

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Storage:
    P2P_DB_DIR                             Database directory (default: ~/.paper2plan)
    P2P_DB_FILENAME                        Database filename (default: paper2plan.db)
    P2P_ENV                                production, development or testing (in-memory)

  Server:
    PORT                                   HTTP port (default: 3001)
    CORS_ORIGIN                            Allowed origin (default: http://localhost:5173)
    RATE_LIMIT_WINDOW_MS                   Rate limit window (default: 900000)
    RATE_LIMIT_MAX_REQUESTS                Requests per window and IP (default: 100)

  AI:
    AI_PROVIDER                            gemini, openai, claude, ollama, lmstudio or none
    AI_API_KEY                             Provider key (GEMINI_API_KEY is also read)
    AI_MODEL, AI_BASE_URL                  Model and endpoint overrides
    P2P_REDIS_ADDR                         Redis for duration estimates (default: in-process)

  Google Calendar:
    P2P_GOOGLE_CREDENTIALS                 OAuth client file
    P2P_GOOGLE_TOKEN                       Stored token file
    P2P_GOOGLE_CALENDAR_ID                 Target calendar (default: primary)

  Application:
    P2P_APP_TIMEOUT                        Command timeout (default: 60s)
    P2P_APP_VERBOSE                        Enable verbose output (default: false)

GETTING HELP:
  p2p [command] --help                     # Get help for any specific command
  p2p completion bash                      # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig()
		},
	}
	if opts.Out != nil {
		root.cmd.SetOut(opts.Out)
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with a parent context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs replaces os.Args, for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides P2P_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides P2P_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides P2P_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides P2P_DB_WRITE_TIMEOUT)")

	// Server configuration
	flags.Int("port", 0, "HTTP port for serve (overrides PORT)")
	flags.String("cors-origin", "", "Allowed CORS origin for serve (overrides CORS_ORIGIN)")

	// AI configuration
	flags.String("ai-provider", "", "AI provider (overrides AI_PROVIDER)")
	flags.String("ai-model", "", "AI model (overrides AI_MODEL)")
	flags.String("ai-base-url", "", "AI endpoint (overrides AI_BASE_URL)")
	flags.String("redis-addr", "", "Redis address for estimates (overrides P2P_REDIS_ADDR)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides P2P_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides P2P_APP_VERBOSE)")
	flags.String("env", "", "Environment: production, development or testing (overrides P2P_ENV)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	reg := r.app.Registry()

	// Tasks
	taskCmd := &cobra.Command{Use: "task", Short: "Manage the to-do list"}
	taskList := r.leaf("task list", "list", "List tasks", "", cobra.NoArgs, 1)
	taskList.Flags().BoolVar(&handler[*TaskListCommand](reg, "task list").ShowIDs, "ids", false, "Show task ids")
	taskCmd.AddCommand(
		r.leaf("task add", "add [title]", "Add a task", "", cobra.MinimumNArgs(1), 1),
		taskList,
		r.leaf("task rename", "rename [task] [title]", "Rename a task",
			"Rename a task. Tasks are given by list number, id or id prefix.\nAn empty title deletes the task.",
			cobra.MinimumNArgs(1), 1),
		r.leaf("task done", "done [task]", "Mark a task done or open again", "", cobra.ExactArgs(1), 1),
		r.leaf("task timer", "timer [task]", "Start or pause a task timer",
			"Start or pause the timer of a task. Time accrues while 'p2p serve' is running.",
			cobra.ExactArgs(1), 1),
		r.leaf("task delete", "delete [task]", "Delete a task", "", cobra.ExactArgs(1), 1),
		r.leaf("task estimate", "estimate [task]", "Ask the AI how long a task takes", "", cobra.ExactArgs(1), 2),
	)

	// Events
	eventCmd := &cobra.Command{Use: "event", Short: "Manage calendar events"}
	eventAdd := r.leaf("event add", "add [title]", "Add an event",
		"Add an event. --day makes it weekly (0 = Sunday), --date makes it one-off.\nWith neither it is placed on today.",
		cobra.MinimumNArgs(1), 1)
	bindEventFlags(eventAdd.Flags(), &handler[*EventAddCommand](reg, "event add").Options)
	eventEdit := r.leaf("event edit", "edit [event] [title]", "Change an event",
		"Change an event. Only the given flags and title are replaced.", cobra.MinimumNArgs(1), 1)
	bindEventFlags(eventEdit.Flags(), &handler[*EventEditCommand](reg, "event edit").Options)
	eventList := r.leaf("event list", "list", "List events of visible calendars", "", cobra.NoArgs, 1)
	eventListHandler := handler[*EventListCommand](reg, "event list")
	eventList.Flags().BoolVar(&eventListHandler.All, "all", false, "Include hidden calendars")
	eventList.Flags().BoolVar(&eventListHandler.ShowIDs, "ids", false, "Show event ids")
	eventDrop := r.leaf("event drop", "drop [task]", "Schedule a task on a day or date", "", cobra.ExactArgs(1), 1)
	dropHandler := handler[*EventDropCommand](reg, "event drop")
	eventDrop.Flags().IntVar(&dropHandler.DayOfWeek, "day", noDay, "Weekday, 0 (Sunday) to 6 (Saturday)")
	eventDrop.Flags().StringVar(&dropHandler.Date, "date", "", "Date as YYYY-MM-DD")
	eventCmd.AddCommand(
		eventAdd,
		eventEdit,
		eventList,
		r.leaf("event delete", "delete [event]", "Delete an event", "", cobra.ExactArgs(1), 1),
		eventDrop,
	)

	// Calendars
	calendarCmd := &cobra.Command{Use: "calendar", Short: "Show or hide calendars"}
	calendarCmd.AddCommand(
		r.leaf("calendar list", "list", "List calendars", "", cobra.NoArgs, 1),
		r.leaf("calendar toggle", "toggle [calendar id]", "Show or hide a calendar", "", cobra.ExactArgs(1), 1),
	)

	// Export
	exportCmd := &cobra.Command{Use: "export", Short: "Export events to other calendars"}
	exportICS := r.leaf("export ics", "ics", "Write events as an iCalendar file", "", cobra.NoArgs, 1)
	exportICS.Flags().StringVarP(&handler[*ExportICSCommand](reg, "export ics").Output, "output", "o", "", "Output file (default: stdout)")
	exportGoogle := r.leaf("export google", "google", "Push events to Google Calendar",
		`Push events to Google Calendar. Authorize once first:
  p2p export google --auth          # prints the consent link
  p2p export google --code <code>   # stores the token
Pushing again updates the events created before instead of duplicating them.`,
		cobra.NoArgs, 2)
	googleHandler := handler[*ExportGoogleCommand](reg, "export google")
	exportGoogle.Flags().BoolVar(&googleHandler.Auth, "auth", false, "Print the Google consent link")
	exportGoogle.Flags().StringVar(&googleHandler.Code, "code", "", "Authorization code from the consent page")
	exportCmd.AddCommand(exportICS, exportGoogle)

	printCmd := r.leaf("print", "print [A|B]", "Render one side of the printable booklet",
		"Render one side of the 8-page booklet as HTML. Print side A, flip the sheet on\nits long edge, then print side B.",
		cobra.ExactArgs(1), 1)
	printCmd.Flags().StringVarP(&handler[*PrintCommand](reg, "print").Output, "output", "o", "", "Output file (default: stdout)")

	chatCmd := r.leaf("chat", "chat [message]", "Talk to the planning assistant",
		"Send a message to the assistant. It can add events to the calendar.", cobra.ArbitraryArgs, 2)
	chatCmd.Flags().BoolVar(&handler[*ChatCommand](reg, "chat").History, "history", false, "Print the whole conversation")

	weekCmd := r.leaf("week", "week", "Show the week agenda", "", cobra.NoArgs, 1)
	weekCmd.Flags().StringVar(&handler[*WeekCommand](reg, "week").Date, "date", "", "Any date in the week, YYYY-MM-DD (default: today)")

	r.cmd.AddCommand(
		taskCmd,
		eventCmd,
		calendarCmd,
		r.leaf("theme", "theme [light|dark|midnight]", "Show or set the theme", "", cobra.MaximumNArgs(1), 1),
		r.leaf("import", "import [image]", "Import tasks and events from a photo of notes", "", cobra.ExactArgs(1), 2),
		r.leaf("magic", "magic", "Let the AI schedule open tasks into the week", "", cobra.NoArgs, 2),
		chatCmd,
		exportCmd,
		printCmd,
		r.leaf("provider", "provider", "Show the active AI provider", "", cobra.NoArgs, 1),
		r.leaf("status", "status", "Summarize the planner", "", cobra.NoArgs, 1),
		weekCmd,
		r.leaf("serve", "serve", "Run the HTTP API and the task timer", "", cobra.NoArgs, 0),
	)
}

// leaf builds a cobra command that runs the registered handler called
// name. The command timeout is the app timeout times timeoutFactor; AI
// commands get longer, serve (factor 0) runs until signalled.
func (r *RootCommand) leaf(name, use, short, long string, args cobra.PositionalArgs, timeoutFactor int) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeoutFactor > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, r.getAppTimeout()*time.Duration(timeoutFactor))
				defer cancel()
			}
			return r.run(ctx, name, args)
		},
	}
}

// run opens the planner, runs the handler and closes the planner again
func (r *RootCommand) run(ctx context.Context, name string, args []string) error {
	planner, err := r.open(ctx, r.config)
	if err != nil {
		return NewErrorHandler().Handle("open planner", err)
	}
	r.app.Attach(planner)
	defer func() {
		r.app.Attach(nil)
		if cerr := planner.Close(); cerr != nil {
			planner.Logger.Warn("failed to close planner", "error", cerr)
		}
	}()

	return r.app.registry.Execute(ctx, name, args)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// loadConfig reads the environment and applies the flags that were set
func (r *RootCommand) loadConfig() error {
	cfg, err := config.NewLoader().LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	r.config = cfg
	return nil
}

// overridesFromFlags collects the persistent flags given on the command line
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()

	return &config.ConfigOverrides{
		DBDir:          changedString(flags, "db-dir"),
		DBFilename:     changedString(flags, "db-filename"),
		DBQueryTimeout: changedDuration(flags, "db-query-timeout"),
		DBWriteTimeout: changedDuration(flags, "db-write-timeout"),
		Port:           changedInt(flags, "port"),
		CORSOrigin:     changedString(flags, "cors-origin"),
		AIProvider:     changedString(flags, "ai-provider"),
		AIModel:        changedString(flags, "ai-model"),
		AIBaseURL:      changedString(flags, "ai-base-url"),
		RedisAddr:      changedString(flags, "redis-addr"),
		Timeout:        changedDuration(flags, "app-timeout"),
		Verbose:        changedBool(flags, "verbose"),
		Environment:    changedString(flags, "env"),
	}
}

func bindEventFlags(flags *pflag.FlagSet, opts *EventOptions) {
	flags.IntVar(&opts.DayOfWeek, "day", noDay, "Repeat weekly on this weekday, 0 (Sunday) to 6 (Saturday)")
	flags.StringVar(&opts.Date, "date", "", "One-off date as YYYY-MM-DD")
	flags.StringVar(&opts.Time, "time", "", "Time of day, e.g. 09:30")
	flags.StringVar(&opts.Type, "type", "", "work, personal, deadline or other")
	flags.StringVar(&opts.CalendarID, "calendar", "", "Calendar id")
}

func changedString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

func changedInt(flags *pflag.FlagSet, name string) *int {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetInt(name)
	return &v
}

func changedBool(flags *pflag.FlagSet, name string) *bool {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetBool(name)
	return &v
}

func changedDuration(flags *pflag.FlagSet, name string) *time.Duration {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetDuration(name)
	return &v
}
