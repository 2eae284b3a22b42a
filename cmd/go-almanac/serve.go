package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-almanac/internal/civil"
	"github.com/tartampluch/go-almanac/internal/config"
	"github.com/tartampluch/go-almanac/internal/feed"
	"github.com/tartampluch/go-almanac/internal/grid"
	"github.com/tartampluch/go-almanac/internal/server"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.ShortServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logStartupInfo()

			b, s, err := c.builder(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			gen := &feed.Generator{Clock: c.clock}

			srv := server.NewFeedServer(s.Port, func(_ context.Context, month civil.Date) ([]byte, error) {
				g, err := b.Build(month)
				if err != nil {
					return nil, err
				}
				return gen.Generate(g)
			})

			r, err := newRefresher(b.Options(), gen, srv, c.clock)
			if err != nil {
				return err
			}
			if err := r.start(); err != nil {
				return err
			}
			go r.run(ctx, time.Duration(s.RefreshMin)*time.Minute)

			if err := srv.Start(ctx); err != nil {
				return err
			}
			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}
	cmd.Flags().StringVar(&c.port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	return cmd
}

// publisher receives the feed of the current month.
type publisher interface {
	Update(data []byte)
}

// refresher keeps the published feed on the current month. The gate only
// rebuilds when the day crosses into another month.
type refresher struct {
	gate  *grid.Gate
	gen   *feed.Generator
	pub   publisher
	clock civil.Clock
}

func newRefresher(opts grid.Options, gen *feed.Generator, pub publisher, clock civil.Clock) (*refresher, error) {
	r := &refresher{gen: gen, pub: pub, clock: clock}
	gate, err := grid.NewGate(opts, r.onMonthChange)
	if err != nil {
		return nil, err
	}
	r.gate = gate
	return r, nil
}

// start builds and publishes the first grid.
func (r *refresher) start() error {
	g, _, err := r.gate.Update(civil.Today(r.clock), r.gate.WeekStart())
	if err != nil {
		return err
	}
	return r.publish(g)
}

func (r *refresher) tick() {
	g, transition, err := r.gate.Update(civil.Today(r.clock), r.gate.WeekStart())
	if err != nil {
		slog.Error(config.MsgRefreshFailed,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyError, err)
		return
	}
	slog.Debug(config.MsgGridBuilt,
		config.LogKeyComponent, config.CompWorker,
		config.LogKeyDate, g.Reference.Format(),
		config.LogKeyTransition, transition.String())
}

func (r *refresher) onMonthChange(ref civil.Date) {
	if err := r.publish(r.gate.Grid()); err != nil {
		slog.Error(config.MsgRefreshFailed,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyMonth, ref.Time().Format(config.DateFormatMonth),
			config.LogKeyError, err)
	}
}

func (r *refresher) publish(g grid.Grid) error {
	data, err := r.gen.Generate(g)
	if err != nil {
		return err
	}
	r.pub.Update(data)
	return nil
}

// run ticks until ctx is cancelled.
func (r *refresher) run(ctx context.Context, interval time.Duration) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return
		case <-ticker.C:
			r.tick()
		}
	}
}
