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

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
		Long:    "List Polaris projects",
	}

	cmd.AddCommand(newProjectsListCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	var (
		nameFilter string
		allPages   bool
		perPage    uint32
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long:  "List all projects visible to the configured token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectsListCommand(nameFilter, allPages, perPage)
		},
	}

	cmd.Flags().StringVar(&nameFilter, "name", "", "filter by exact project name")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().Uint32Var(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func runProjectsListCommand(nameFilter string, allPages bool, perPage uint32) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var projects *polaris.PageEnvelope[polaris.Project]
	if allPages {
		projects, err = client.Projects().ListAll(ctx, nameFilter, perPage)
	} else {
		projects, err = client.Projects().List(ctx, nameFilter, perPage, 0)
	}

	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	return outputProjects(projects, allPages)
}

func outputProjects(projects *polaris.PageEnvelope[polaris.Project], allPages bool) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(projects.Data)
	case OutputFormatYAML:
		return StandardYAMLRenderer(projects.Data)
	default:
		return renderProjectTable(projects, allPages)
	}
}

func renderProjectTable(projects *polaris.PageEnvelope[polaris.Project], allPages bool) error {
	if len(projects.Data) == 0 {
		_, _ = os.Stdout.WriteString("No projects found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Description")

	for _, project := range projects.Data {
		_ = table.Append(project.ID, project.Attributes.Name,
			derefOr(project.Attributes.Description, NotAvailable))
	}

	_ = table.Render()

	printRemainingHint(projects.Meta, len(projects.Data), allPages)

	return nil
}

// printRemainingHint tells the user when a single page view left results
// behind.
func printRemainingHint(meta *polaris.PaginationMeta, shown int, allPages bool) {
	if allPages || meta == nil || meta.Total == nil {
		return
	}

	if uint64(shown) < *meta.Total {
		_, _ = fmt.Fprintf(os.Stdout, "\nShowing %d of %d. Use --all to fetch everything.\n", shown, *meta.Total)
	}
}
