package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/doctree/pkg/cache"
	"github.com/matzehuels/doctree/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags corpusFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve [root]",
		Short: "Serve document graphs over HTTP",
		Long: `Serve the graph of the notes under root over HTTP. The corpus is re-read on
every request.

Endpoints:
  GET /graph?focus=&depth=&tag=&format=   the graph (dot, svg, png or json)
  GET /documents                          every document and its metadata
  GET /healthz                            liveness probe`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := rootArg(args)
			cfg, err := flags.loadConfig(root)
			if err != nil {
				return err
			}
			opts := flags.options(cmd, root, cfg)

			if !cmd.Flags().Changed("addr") && cfg.Server.Addr != "" {
				addr = cfg.Server.Addr
			}

			store, err := c.openCache(cmd.Context(), cfg, cache.BackendMemory, false)
			if err != nil {
				return err
			}
			defer store.Close()

			srv := server.New(server.Options{
				Root:       opts.Root,
				Extensions: opts.Extensions,
				Tags:       opts.Tags,
				DOTConfig:  opts.DOTConfig,
				Depth:      opts.Depth,
				Cache:      store,
				Logger:     c.Logger,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	flags.register(cmd)
	flags.registerGraph(cmd)
	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	return cmd
}
