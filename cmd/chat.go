package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tabletalk/tabletalk/core"
	"github.com/tabletalk/tabletalk/internal/contract"
	"github.com/tabletalk/tabletalk/internal/outwriter"
	"github.com/tabletalk/tabletalk/schema"
)

// chatCmd runs an interactive question loop with follow-up context.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively with follow-up context.",
	Long: `Start an interactive session against a dataset.

Each answer carries its resolved metric, dimension and aggregation into the
next question, so short follow-ups work:

  > total sales by region
  > now as a pie chart
  > average instead

Commands inside the session:
  :reset   forget the follow-up context
  :quit    leave the session (also Ctrl-D)

Examples:
  tabletalk chat --dataset sales.csv
  tabletalk chat -d ./data --dataset orders`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runChat(); err != nil {
			contract.LogFatal("Chat session failed", err)
		}
	},
}

func runChat() error {
	engine := core.New(datasetStore, core.WithTracer(engineTracer()), core.WithRowLimit(cfg.RowLimit))
	writer := outwriter.NewOutWriter()
	conversationID := uuid.NewString()

	var prior *schema.QueryContext

	fmt.Printf("Chatting with %q. Type :quit to leave, :reset to start over.\n", cfg.Dataset)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q", "exit":
			return nil
		case ":reset":
			prior = nil
			fmt.Println("Context cleared.")
			continue
		}

		start := time.Now()
		resp, err := engine.AnalyzeWithOptions(rootCtx, line, cfg.Dataset, prior, core.Options{
			FullView:   cfg.FullView,
			Breakdowns: cfg.Breakdowns,
			Normalize:  cfg.Normalize,
		})
		duration := time.Since(start)
		if err != nil {
			return err
		}

		recordHistory(line, conversationID, resp, duration)

		if resp == nil {
			contract.LogWarn("That question could not be answered. Try naming a column from the dataset.", nil)
			continue
		}
		prior = resp.Context
		if err := writer.WriteResponse(resp, cfg, duration); err != nil {
			return err
		}
	}
}
