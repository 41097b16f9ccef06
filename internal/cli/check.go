package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/doctree/pkg/graph"
	"github.com/matzehuels/doctree/pkg/pipeline"
)

// checkCommand creates the check command, which builds the full graph
// without rendering it and prints a summary.
func (c *CLI) checkCommand() *cobra.Command {
	var flags corpusFlags

	cmd := &cobra.Command{
		Use:   "check [root]",
		Short: "Validate a note collection",
		Long: `Load every note under root, resolve all dependencies, and report problems:
duplicate titles, dependencies on missing notes, and malformed front matter
fail the check. Dependency cycles are reported as a warning.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := rootArg(args)
			cfg, err := flags.loadConfig(root)
			if err != nil {
				return err
			}
			opts := flags.options(cmd, root, cfg)
			opts.Logger = c.Logger
			return c.runCheck(cmd, opts)
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, opts pipeline.Options) error {
	prog := newProgress(c.Logger)
	sp := c.spinner(cmd.Context(), "Checking "+opts.Root)
	sp.Start()
	res, err := pipeline.NewRunner(nil, c.Logger).Build(cmd.Context(), opts)
	sp.Stop()
	if err != nil {
		return err
	}
	prog.done("Checked " + opts.Root)

	s := res.Stats
	fmt.Fprintln(c.Out, StyleTitle.Render(opts.Root))
	printKeyValue(c.Out, "documents", strconv.Itoa(s.Documents))
	if len(opts.Tags) > 0 {
		printKeyValue(c.Out, "retained", fmt.Sprintf("%d (tags: %s)", s.Retained, strings.Join(opts.Tags, ", ")))
	}
	printStats(c.Out, s.NodeCount, s.EdgeCount, s.RootCount)

	if s.Cycle != nil {
		printWarning(c.Out, "dependency cycle: %s", cyclePath(res.Graph, s.Cycle))
		printDetail(c.Out, "cycles are drawn as-is; the graph has no single top")
	}
	printSuccess(c.Out, "%s documents, no errors", StyleNumber.Render(strconv.Itoa(s.Documents)))
	return nil
}

// cyclePath renders a cycle as "A → B → A".
func cyclePath(g *graph.Graph, cycle []int) string {
	labels := make([]string, 0, len(cycle)+1)
	for _, id := range cycle {
		n, _ := g.Node(id)
		labels = append(labels, n.Label)
	}
	labels = append(labels, labels[0])
	return strings.Join(labels, " "+iconArrow+" ")
}
