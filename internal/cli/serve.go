package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/internal/server"
	"github.com/matzehuels/mondrian/pkg/observability"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	maxWidth  int
	maxHeight int
	noCache   bool
	noMetrics bool
}

// serveCommand creates the serve command, which exposes generation over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve generated pictures over HTTP",
		Long: `Serve generated pictures over HTTP.

  GET /v1/mondrian/{mode}.{format}?width=600&height=600&seed=42
  GET /v1/info
  GET /healthz
  GET /metrics

The cache configured in the [cache] section is shared by all requests; set
cache.redis_url to share it between replicas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			flags := cmd.Flags()
			if !flags.Changed("addr") {
				opts.addr = cfg.Addr
			}
			if !flags.Changed("max-width") {
				opts.maxWidth = cfg.MaxWidth
			}
			if !flags.Changed("max-height") {
				opts.maxHeight = cfg.MaxHeight
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().IntVar(&opts.maxWidth, "max-width", 0, "largest width a request may ask for (0 = unlimited)")
	cmd.Flags().IntVar(&opts.maxHeight, "max-height", 0, "largest height a request may ask for (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "do not expose /metrics")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	cfg := server.Config{
		MaxWidth:  opts.maxWidth,
		MaxHeight: opts.maxHeight,
		Logger:    logger,
	}
	if !opts.noMetrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := observability.NewPrometheus(reg)
		observability.SetGenerateHooks(m)
		observability.SetCacheHooks(m)
		observability.SetHTTPHooks(m)
		cfg.Gatherer = reg
	}

	printSuccess("Serving on %s", StyleLink.Render(listenURL(opts.addr)))
	printKeyValue("limits", limitsText(opts.maxWidth, opts.maxHeight))
	printKeyValue("metrics", map[bool]string{true: "disabled", false: "/metrics"}[opts.noMetrics])
	printNextStep("Try", fmt.Sprintf("curl -o art.png '%s/v1/mondrian/complex.png?width=800&height=600'", listenURL(opts.addr)))

	return server.New(runner, cfg).ListenAndServe(ctx, opts.addr)
}

// listenURL turns a listen address into a URL a user can open.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

func limitsText(w, h int) string {
	dim := func(n int) string {
		if n <= 0 {
			return "∞"
		}
		return fmt.Sprint(n)
	}
	return dim(w) + "x" + dim(h) + " px"
}
