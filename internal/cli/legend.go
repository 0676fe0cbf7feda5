package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/topicnet/pkg/attr"
	"github.com/matzehuels/topicnet/pkg/pipeline"
	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

// legendCommand creates the legend command, which prints topic colors.
func (c *CLI) legendCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "legend [source]",
		Short: "Print the topics of a network with their colors",
		Long: `Print the topics of a network with their colors.

Topics are sorted numerically by ID. The count column is the number of
entities whose own topic is that row; a topic may be listed with no
entities when it only appeared on the other side of a relation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			c.config.apply(&opts, cmd.Flags())
			return c.runLegend(cmd.Context(), opts, noCache)
		},
	}

	loadFlags(cmd, &opts, &noCache)

	return cmd
}

func (c *CLI) runLegend(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	loaded, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	ds := runner.PrepareDataset(loaded.Dataset, opts)

	fmt.Println(legendTable(attr.Legend(ds.Topics), topicCounts(ds.Graph)))
	return nil
}

// topicCounts returns the number of entities per topic ID.
func topicCounts(g *topicgraph.Graph) map[string]int {
	counts := make(map[string]int)
	for _, e := range g.Entities() {
		counts[e.TopicID]++
	}
	return counts
}

// legendTable renders rows as a bordered table with a color swatch column.
func legendTable(rows []attr.LegendRow, counts map[string]int) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{swatch(r.Color), r.TopicID, r.Name, r.Color, strconv.Itoa(counts[r.TopicID])}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Topic", "Name", "Color", "Entities").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			switch col {
			case 1, 4:
				return lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
			case 3:
				return StyleDim
			}
			return StyleValue
		})
	return t.Render()
}
