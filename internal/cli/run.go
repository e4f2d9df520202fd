package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"switchscan/internal/clock"
	"switchscan/internal/config"
	"switchscan/internal/coordinator"
	"switchscan/internal/domain"
	"switchscan/internal/eventbus"
	"switchscan/internal/loop"
	"switchscan/internal/slogs"
	"switchscan/internal/ui"
)

const (
	eventBuffer  = 100
	closeTimeout = 2 * time.Second
)

// forwardedEvents are the bus events the TUI reacts to
var forwardedEvents = []eventbus.EventType{
	domain.EventScanStateChanged,
	domain.EventStrategyChanged,
	domain.EventActionFired,
	domain.EventMenuChanged,
	domain.EventCommitted,
	domain.EventError,
}

func newRunCmd() *cobra.Command {
	var method string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scan the virtual keyboard in the terminal",
		Long: `Run the demo host. space and enter are the default switches; the config
file maps other keys. Press ? inside the program for the key list.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			closer := configureLogger()
			defer closer.Close()

			svc := configService()
			cfg, err := svc.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if method != "" {
				if _, err := domain.ParseStrategyKind(method); err != nil {
					return err
				}
				cfg.Scanning.Method = method
			}
			slog.Info("Starting", slogs.Path, svc.Path(), slogs.Strategy, cfg.Scanning.Method)
			return runHost(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&method, "method", "m", "", "scan method to start with: item, cursor or radar")
	return cmd
}

// closeEngine queues the engine close and waits until the executor ran it,
// so the loop is not cancelled with the close still queued
func closeEngine(ctx context.Context, engine *coordinator.Engine) {
	engine.Close()
	select {
	case <-engine.Done():
	case <-ctx.Done():
		slog.Warn("Executor stopped before the engine closed")
	case <-time.After(closeTimeout):
		slog.Warn("Timed out closing the engine", slogs.Delay, closeTimeout)
	}
}

// runHost runs the executor, the TUI and the event forwarding until the TUI
// exits
func runHost(parent context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()

	kb := ui.NewKeyboard()
	overlay := ui.NewOverlay()
	gestures := ui.NewGestures(kb, bus)
	serial := loop.NewSerial()

	engine, err := coordinator.New(cfg, coordinator.Deps{
		Exec:       serial,
		Source:     clock.RealSource{},
		Bus:        bus,
		Renderer:   overlay,
		Dispatcher: gestures,
	})
	if err != nil {
		return err
	}

	engine.SetScreen(kb.Size())
	engine.SetTargets(kb.Targets())
	engine.Start()

	model := ui.NewModel(engine, kb, overlay, gestures, ui.OptionsFromConfig(cfg))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(program)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, eventBuffer)
	for _, t := range forwardedEvents {
		unsubscribe := bus.Subscribe(t, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			default:
				slog.Warn("Event channel full, dropping event", slogs.Event, e.Type())
			}
		})
		defer unsubscribe()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serial.Run(ctx)
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e := <-eventChan:
				program.Send(ui.EventMsg{Event: e})
			}
		}
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-overlay.Changes():
				program.Send(ui.RedrawMsg{})
			}
		}
	})
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		closeEngine(ctx, engine)
		if err != nil && ctx.Err() != nil {
			// cancelled from outside, not a program failure
			return nil
		}
		return err
	})
	return g.Wait()
}
