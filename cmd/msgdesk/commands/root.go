package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jask/msgdesk/internal/config"
	"github.com/jask/msgdesk/internal/database"
	"github.com/jask/msgdesk/internal/database/repository"
	"github.com/jask/msgdesk/internal/form"
	"github.com/jask/msgdesk/internal/gateway"
	"github.com/jask/msgdesk/internal/logging"
	"github.com/jask/msgdesk/internal/notify"
	"github.com/jask/msgdesk/internal/service"
	"github.com/jask/msgdesk/internal/tui"
)

const appName = "msgdesk"

// Commands annotated with annotationConfig: configOptional run without an
// existing config file.
const (
	annotationConfig = "msgdesk/config"
	configOptional   = "optional"
)

var (
	cfgPath   string
	baseURL   string
	debugMode bool

	appCtx *app
)

// app is what every command runs against.
type app struct {
	cfg      config.Config
	log      zerolog.Logger
	db       *sql.DB
	gateway  *gateway.Client
	journal  *repository.SubmissionRepo
	notifier notify.Notifier

	closers []io.Closer
}

func (a *app) directory() *service.SenderDirectory {
	return &service.SenderDirectory{Gateway: a.gateway, Log: a.log}
}

func (a *app) submitter() *service.MessageSubmitter {
	s := &service.MessageSubmitter{Gateway: a.gateway, Log: a.log}
	if a.journal != nil {
		s.Journal = a.journal
	}
	return s
}

func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// newApp builds the shared dependencies from cfg. A non-nil console gets the
// log lines instead of the log file.
func newApp(cfg config.Config, console io.Writer) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	if console != nil {
		level, _ := logging.ParseLevel(cfg.Log.Level)
		log = logging.Console(console, level)
	}
	a := &app{cfg: cfg, log: log, closers: []io.Closer{logCloser}}

	db, err := database.Prepare(cfg.Database.Path)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.closers = append(a.closers, db)
	a.db = db
	a.journal = repository.NewSubmissionRepo(db)
	a.gateway = gateway.New(cfg.Gateway, log)

	notifiers := notify.Multi{notify.LogNotifier{Log: log}}
	if cfg.UI.DesktopNotifications {
		notifiers = append(notifiers, notify.NewDesktopNotifier(appName, log))
	}
	a.notifier = notifiers
	return a, nil
}

// loadConfig reads the config file named by --config or MSGDESK_CONFIG and
// applies flag overrides. With optional set a missing file is not an error.
func loadConfig(optional bool) (config.Config, error) {
	path := cfgPath
	if path == "" {
		path = os.Getenv("MSGDESK_CONFIG")
	}
	load := config.LoadFrom
	if optional {
		load = config.LoadOptional
	}
	cfg, err := load(path)
	if err != nil {
		return cfg, err
	}
	if u := strings.TrimSpace(baseURL); u != "" {
		cfg.Gateway.BaseURL = u
	}
	if debugMode {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Compose and send SMS and WhatsApp messages through the messaging gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Annotations[annotationConfig] == configOptional)
			if err != nil {
				return err
			}
			var console io.Writer
			if debugMode && cmd.Name() != appName {
				console = cmd.ErrOrStderr()
			}
			appCtx, err = newApp(cfg, console)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, appCtx)
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/msgdesk/config.toml)")
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "gateway base URL, overrides gateway.base_url")
	root.PersistentFlags().BoolVar(&debugMode, "debug", false, "log at debug level")

	root.AddCommand(sendCmd(), sendersCmd(), historyCmd(), configCmd())
	return root
}

// Execute runs the msgdesk command tree until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, newRootCmd())
}

// execute runs root and releases the app whether or not the command failed.
func execute(ctx context.Context, root *cobra.Command) (err error) {
	defer func() {
		if appCtx != nil {
			err = errors.Join(err, appCtx.Close())
		}
	}()
	return root.ExecuteContext(ctx)
}

func runTUI(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	f := form.New(a.cfg.Compose.NewDraft(), a.notifier, a.log)
	defer f.Close()

	m := tui.New(ctx, f, tui.Services{Directory: a.directory(), Submitter: a.submitter()}, a.log)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
