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

// NewBranchesCommand creates the branches command group.
func NewBranchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "branches",
		Aliases: []string{"branch"},
		Short:   "Manage branches",
		Long:    "List the branches of a Polaris project",
	}

	cmd.AddCommand(newBranchesListCommand())

	return cmd
}

func newBranchesListCommand() *cobra.Command {
	var (
		projectID string
		allPages  bool
		perPage   uint32
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List branches",
		Long:  "List all branches of a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBranchesListCommand(projectID, allPages, perPage)
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "project ID (required)")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().Uint32Var(&perPage, "per-page", constants.DefaultPageSize, "results per page")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func runBranchesListCommand(projectID string, allPages bool, perPage uint32) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var branches *polaris.PageEnvelope[polaris.Branch]
	if allPages {
		branches, err = client.Branches().ListAll(ctx, projectID, perPage)
	} else {
		branches, err = client.Branches().List(ctx, projectID, perPage, 0)
	}

	if err != nil {
		return fmt.Errorf("failed to list branches: %w", err)
	}

	return outputBranches(branches, allPages)
}

func outputBranches(branches *polaris.PageEnvelope[polaris.Branch], allPages bool) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(branches.Data)
	case OutputFormatYAML:
		return StandardYAMLRenderer(branches.Data)
	default:
		return renderBranchTable(branches, allPages)
	}
}

func renderBranchTable(branches *polaris.PageEnvelope[polaris.Branch], allPages bool) error {
	if len(branches.Data) == 0 {
		_, _ = os.Stdout.WriteString("No branches found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Main")

	for _, branch := range branches.Data {
		main := ""
		if branch.Attributes.MainForProject != nil && *branch.Attributes.MainForProject {
			main = "yes"
		}

		_ = table.Append(branch.ID, branch.Attributes.Name, main)
	}

	_ = table.Render()

	printRemainingHint(branches.Meta, len(branches.Data), allPages)

	return nil
}
