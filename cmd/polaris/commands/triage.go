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

// NewTriageCommand creates the triage command group.
func NewTriageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Manage issue triage",
		Long:  "Inspect and update the triage state of Polaris issues",
	}

	cmd.AddCommand(newTriageGetCommand())
	cmd.AddCommand(newTriageUpdateCommand())
	cmd.AddCommand(newTriageHistoryCommand())

	return cmd
}

func newTriageGetCommand() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "get ISSUE_KEY",
		Short: "Get current triage state",
		Long:  "Display the current triage state of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTriageGetCommand(projectID, args[0])
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "project ID (required)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func runTriageGetCommand(projectID, issueKey string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	triage, err := client.Triage().GetCurrent(context.Background(), projectID, issueKey)
	if err != nil {
		return fmt.Errorf("failed to get triage: %w", err)
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(triage.Data)
	case OutputFormatYAML:
		return StandardYAMLRenderer(triage.Data)
	default:
		return renderTriageTable(triage.Data)
	}
}

func renderTriageTable(entries []polaris.TriageCurrent) error {
	if len(entries) == 0 {
		_, _ = os.Stdout.WriteString("No triage data found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Issue Key", "Project", "Dismissal Status", "Values")

	for _, entry := range entries {
		_ = table.Append(entry.Attributes.IssueKey,
			entry.Attributes.ProjectID,
			humanize(derefOr(entry.Attributes.DismissalStatus, "")),
			fmt.Sprintf("%d", len(entry.Attributes.TriageCurrentValues)))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newTriageUpdateCommand() *cobra.Command {
	var (
		projectID  string
		dismiss    string
		owner      string
		commentary string
	)

	cmd := &cobra.Command{
		Use:   "update ISSUE_KEY...",
		Short: "Update triage state",
		Long: `Update the triage state of one or more issues.

At least one of --dismiss, --owner, or --commentary must be given; fields
not given are left untouched on the server.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := polaris.TriageValues{}
			if cmd.Flags().Changed("dismiss") {
				values.Dismiss = &dismiss
			}

			if cmd.Flags().Changed("owner") {
				values.Owner = &owner
			}

			if cmd.Flags().Changed("commentary") {
				values.Commentary = &commentary
			}

			return runTriageUpdateCommand(projectID, args, values)
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "project ID (required)")
	cmd.Flags().StringVar(&dismiss, "dismiss", "", "dismissal status (e.g. DISMISSED_AS_FP, NOT_DISMISSED)")
	cmd.Flags().StringVar(&owner, "owner", "", "owner email address")
	cmd.Flags().StringVar(&commentary, "commentary", "", "triage comment")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func runTriageUpdateCommand(projectID string, issueKeys []string, values polaris.TriageValues) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	err = client.Triage().Update(context.Background(), projectID, issueKeys, values)
	if err != nil {
		return fmt.Errorf("failed to update triage: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Triage updated for %d issue(s)\n", len(issueKeys))

	return nil
}

func newTriageHistoryCommand() *cobra.Command {
	var (
		projectID string
		perPage   uint32
	)

	cmd := &cobra.Command{
		Use:   "history ISSUE_KEY",
		Short: "Get triage history",
		Long:  "Display the triage history of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTriageHistoryCommand(projectID, args[0], perPage)
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "project ID (required)")
	cmd.Flags().Uint32Var(&perPage, "per-page", constants.DefaultPageSize, "results per page")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func runTriageHistoryCommand(projectID, issueKey string, perPage uint32) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	history, err := client.Triage().History(context.Background(), projectID, issueKey, perPage, 0)
	if err != nil {
		return fmt.Errorf("failed to get triage history: %w", err)
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(history.Data)
	case OutputFormatYAML:
		return StandardYAMLRenderer(history.Data)
	default:
		return renderTriageHistoryTable(history.Data)
	}
}

func renderTriageHistoryTable(items []polaris.Resource) error {
	if len(items) == 0 {
		_, _ = os.Stdout.WriteString("No triage history found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Timestamp", "Field", "Value")

	for _, item := range items {
		_ = table.Append(item.ID,
			anyAttribute(item, "timestamp"),
			anyAttribute(item, "attribute-semantic-id"),
			anyAttribute(item, "display-value"))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// anyAttribute renders a generic resource attribute for table output.
func anyAttribute(res polaris.Resource, name string) string {
	value, ok := res.Attributes[name]
	if !ok || value == nil {
		return NotAvailable
	}

	return fmt.Sprintf("%v", value)
}
