package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/topicnet/internal/server"
	"github.com/matzehuels/topicnet/pkg/observability"
	"github.com/matzehuels/topicnet/pkg/pipeline"
	"github.com/matzehuels/topicnet/pkg/render/nodelink"
)

// serveCommand creates the serve command, which exposes a network over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		noMetrics bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "serve [source]",
		Short: "Serve a network and its selections over HTTP",
		Long: `Serve a network and its selections over HTTP.

The server starts immediately and builds the network in the background;
GET /status reports loading until it is ready. Selections are shared by all
clients and applied one at a time.

Endpoints:
  GET  /status
  GET  /graph
  GET  /legend
  GET  /render.svg
  POST /events/click/{nodeID}
  POST /events/dblclick/{nodeID}
  POST /events/stage
  POST /events/legend/{topicID}
  GET  /metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			c.config.apply(&opts, cmd.Flags())
			if !cmd.Flags().Changed("addr") {
				addr = c.config.serverAddr(addr)
			}
			metrics := c.config.metricsEnabled() && !noMetrics
			return c.runServe(cmd.Context(), opts, addr, metrics, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not serve /metrics")
	cmd.Flags().BoolVar(&opts.Legend, "legend", false, "draw the topic legend in /render.svg")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "draw node labels in /render.svg")
	loadFlags(cmd, &opts, &noCache)
	layoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts pipeline.Options, addr string, metrics, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	var metricsHandler http.Handler
	if metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		hooks := observability.NewPrometheusHooks(reg)
		hooks.Install()
		defer observability.Reset()
		metricsHandler = hooks.Handler()
	}

	srv := server.New(server.Options{
		Addr:    addr,
		Render:  nodelink.Options{Legend: opts.Legend, Labels: opts.Labels},
		Metrics: metricsHandler,
		Logger:  c.Logger,
	})

	go func() {
		prog := newProgress(c.Logger)
		if err := srv.Load(ctx, runner, opts); err != nil {
			c.Logger.Error("load failed", "source", opts.Source, "err", err)
			return
		}
		prog.done("network ready", "source", opts.Source)
	}()

	printInfo("Serving %s", opts.Source)
	printKeyValue("address", addr)
	printKeyValue("session", srv.Session())
	if metrics {
		printKeyValue("metrics", addr+"/metrics")
	}
	printNewline()

	return srv.ListenAndServe(ctx)
}
