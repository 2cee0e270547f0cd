package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/fivetwenty-io/polaris/internal/constants"
	"github.com/fivetwenty-io/polaris/pkg/polaris"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRunsCommand creates the runs command group.
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "runs",
		Aliases: []string{"run"},
		Short:   "Manage analysis runs",
		Long:    "List the analysis runs of a Polaris project",
	}

	cmd.AddCommand(newRunsListCommand())

	return cmd
}

func newRunsListCommand() *cobra.Command {
	var (
		projectID  string
		revisionID string
		allPages   bool
		perPage    uint32
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs",
		Long:  "List analysis runs of a project, optionally narrowed to a revision",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsListCommand(projectID, revisionID, allPages, perPage)
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "project ID (required)")
	cmd.Flags().StringVar(&revisionID, "revision", "", "revision ID")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().Uint32Var(&perPage, "per-page", constants.DefaultPageSize, "results per page")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func runRunsListCommand(projectID, revisionID string, allPages bool, perPage uint32) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var runs *polaris.PageEnvelope[polaris.Run]
	if allPages {
		runs, err = client.Runs().ListAll(ctx, projectID, revisionID, perPage)
	} else {
		runs, err = client.Runs().List(ctx, projectID, revisionID, perPage, 0)
	}

	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	return outputRuns(runs, allPages)
}

func outputRuns(runs *polaris.PageEnvelope[polaris.Run], allPages bool) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(runs.Data)
	case OutputFormatYAML:
		return StandardYAMLRenderer(runs.Data)
	default:
		return renderRunTable(runs, allPages)
	}
}

func renderRunTable(runs *polaris.PageEnvelope[polaris.Run], allPages bool) error {
	if len(runs.Data) == 0 {
		_, _ = os.Stdout.WriteString("No runs found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Status", "Created", "Completed")

	for _, run := range runs.Data {
		_ = table.Append(run.ID,
			humanize(derefOr(run.Attributes.Status, "")),
			derefOr(run.Attributes.DateCreated, NotAvailable),
			derefOr(run.Attributes.DateCompleted, NotAvailable))
	}

	_ = table.Render()

	printRemainingHint(runs.Meta, len(runs.Data), allPages)

	return nil
}
