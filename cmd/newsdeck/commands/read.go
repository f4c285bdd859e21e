package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"newsdeck/internal/config"
	"newsdeck/internal/eventbus"
	"newsdeck/internal/logging"
	"newsdeck/internal/metrics"
	"newsdeck/internal/source"
	"newsdeck/internal/ui"
)

type readFlags struct {
	page     int
	style    string
	noBottom bool
	noMouse  bool
}

func newReadCommand(global *globalFlags) *cobra.Command {
	flags := &readFlags{}

	cmd := &cobra.Command{
		Use:   "read [URL|DIR]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Open the reader (default command)",
		Long: `Open a paginated site in the reader. The location is an http(s) URL of
the site's front page or a local directory holding posts/page1.html, ...
It defaults to the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cfg)

			arg := "."
			if len(args) > 0 {
				arg = args[0]
			}
			loc, err := parseLocation(arg)
			if err != nil {
				return err
			}
			if flags.page > 0 {
				q := loc.Query()
				q.Set(cfg.Source.PageParam, strconv.Itoa(flags.page))
				loc.RawQuery = q.Encode()
			}

			final, err := runReader(cmd.Context(), cfg, loc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), final)
			return nil
		},
	}

	cmd.Flags().IntVar(&flags.page, "page", 0, "page to open (overrides the location's page parameter)")
	cmd.Flags().StringVar(&flags.style, "style", "", "content style: dark, light, notty, ascii")
	cmd.Flags().BoolVar(&flags.noBottom, "no-bottom", false, "hide the control below the content")
	cmd.Flags().BoolVar(&flags.noMouse, "no-mouse", false, "disable mouse support")

	return cmd
}

func (f *readFlags) apply(cfg *config.Config) {
	if f.style != "" {
		cfg.UI.Style = f.style
	}
	if f.noBottom {
		cfg.UI.ShowBottomControl = false
	}
	if f.noMouse {
		cfg.UI.Mouse = false
	}
}

// parseLocation accepts http(s) and file URLs or a directory path
func parseLocation(arg string) (*url.URL, error) {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") || strings.HasPrefix(arg, "file://") {
		u, err := url.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid location %q: %w", arg, err)
		}
		return u, nil
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", arg, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs) + "/"}, nil
}

// runReader runs the TUI until the user quits and returns the final
// address-bar URL
func runReader(ctx context.Context, cfg *config.Config, loc *url.URL) (string, error) {
	logFile, err := setupFileLog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
	}
	defer logFile.Close()
	log := logging.NewLogger("main")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	src, err := source.Open(loc, afero.NewOsFs(), sourceOptions(cfg))
	if err != nil {
		return "", err
	}

	if cfg.Metrics.Addr != "" {
		stop := serveMetrics(cfg.Metrics.Addr)
		defer stop()
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	model := ui.NewModel(ctx, ui.Options{
		Config: cfg,
		Source: src,
		Start:  loc,
		Bus:    bus,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)
	model.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Warn().Str("event", string(e.Type())).Msg("event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventNavigationChanged,
		eventbus.EventContentUpdated,
		eventbus.EventFetchFailed,
		eventbus.EventDiscoveryCompleted,
	} {
		bus.Subscribe(t, forward)
	}

	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info().Str("location", loc.String()).Msg("starting reader")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return "", fmt.Errorf("error running program: %w", err)
	}

	final := model.Location().String()
	log.Info().Str("location", final).Msg("reader closed")
	return final, nil
}

// serveMetrics exposes the Prometheus registry while the reader runs
func serveMetrics(addr string) func() {
	log := logging.NewLogger("metrics")

	r := chi.NewRouter()
	r.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics listener failed")
		}
	}()
	log.Info().Str("addr", addr).Msg("metrics listener started")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
