package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/polaris/pkg/polaris"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// eventSummaryLimit caps how many events the table view prints per
// occurrence; the full tree is available via json/yaml output.
const eventSummaryLimit = 5

// NewEventsCommand creates the events command group.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect code-analysis events",
		Long:  "Fetch the event trail and captured source code of a finding",
	}

	cmd.AddCommand(newEventsGetCommand())
	cmd.AddCommand(newEventsSourceCommand())

	return cmd
}

func newEventsGetCommand() *cobra.Command {
	var (
		findingKey       string
		runID            string
		occurrenceNumber uint32
		maxDepth         uint32
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get the event trail of a finding",
		Long:  "Fetch the event tree with source snippets for one occurrence of a finding in a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := polaris.EventsOptions{
				FindingKey: findingKey,
				RunID:      runID,
			}

			if cmd.Flags().Changed("occurrence") {
				opts.OccurrenceNumber = &occurrenceNumber
			}

			if cmd.Flags().Changed("max-depth") {
				opts.MaxDepth = &maxDepth
			}

			return runEventsGetCommand(opts)
		},
	}

	cmd.Flags().StringVar(&findingKey, "finding-key", "", "finding key of the issue (required)")
	cmd.Flags().StringVar(&runID, "run", "", "run ID (required)")
	cmd.Flags().Uint32Var(&occurrenceNumber, "occurrence", 0, "occurrence number within the run")
	cmd.Flags().Uint32Var(&maxDepth, "max-depth", 0, "maximum nesting depth of evidence events")
	_ = cmd.MarkFlagRequired("finding-key")
	_ = cmd.MarkFlagRequired("run")

	return cmd
}

func runEventsGetCommand(opts polaris.EventsOptions) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	events, err := client.CodeAnalysis().EventsWithSource(context.Background(), opts)
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(events)
	case OutputFormatYAML:
		return StandardYAMLRenderer(events)
	default:
		renderEventsSummary(events)
	}

	return nil
}

// renderEventsSummary prints a compact view of each occurrence's event
// trail: the main event location plus the first few events with their
// role markers.
func renderEventsSummary(events *polaris.EventsResponse) {
	if len(events.Data) == 0 {
		_, _ = os.Stdout.WriteString("No events found\n")

		return
	}

	for _, tree := range events.Data {
		mainFile := NotAvailable
		if len(tree.MainEventFilePath) > 0 {
			mainFile = strings.Join(tree.MainEventFilePath, "/")
		}

		mainLine := NotAvailable
		if tree.MainEventLineNumber != nil {
			mainLine = fmt.Sprintf("%d", *tree.MainEventLineNumber)
		}

		language := tree.Language
		if language == "" {
			language = NotAvailable
		}

		_, _ = fmt.Fprintf(os.Stdout, "Main event: %s:%s (%s)\n", mainFile, mainLine, language)

		for i, event := range tree.Events {
			if i >= eventSummaryLimit {
				_, _ = fmt.Fprintf(os.Stdout, "  ... %d more events (use --output json for the full tree)\n",
					len(tree.Events)-eventSummaryLimit)

				break
			}

			line := NotAvailable
			if event.LineNumber != nil {
				line = fmt.Sprintf("%d", *event.LineNumber)
			}

			_, _ = fmt.Fprintf(os.Stdout, "  %s %s:%s: %s\n",
				eventMarker(event.EventType), event.FilePath, line, event.EventDescription)
		}
	}
}

// eventMarker maps an event type to its one-character table marker.
func eventMarker(eventType string) string {
	switch eventType {
	case "main":
		return ">"
	case "path":
		return "-"
	case "evidence":
		return "."
	default:
		return " "
	}
}

func newEventsSourceCommand() *cobra.Command {
	var (
		runID string
		path  string
	)

	cmd := &cobra.Command{
		Use:   "source",
		Short: "Get captured source code",
		Long:  "Fetch the full text of a file as captured by an analysis run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventsSourceCommand(runID, path)
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "run ID (required)")
	cmd.Flags().StringVar(&path, "path", "", "file path within the run (required)")
	_ = cmd.MarkFlagRequired("run")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func runEventsSourceCommand(runID, path string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	source, err := client.CodeAnalysis().SourceCode(context.Background(), runID, path)
	if err != nil {
		return fmt.Errorf("failed to get source code: %w", err)
	}

	_, _ = os.Stdout.WriteString(source)

	if !strings.HasSuffix(source, "\n") {
		_, _ = os.Stdout.WriteString("\n")
	}

	return nil
}
