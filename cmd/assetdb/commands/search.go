package commands

import (
	"github.com/spf13/cobra"

	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	var (
		status        string
		exactMatch    bool
		caseSensitive bool
	)

	cmd := &cobra.Command{
		Use:   "search <field> <keyword>",
		Short: "Search the asset collection",
		Long: `Search the asset collection by one domain attribute.

Searchable fields: type, parent, serialnumber, program, hostname, model, mac.
The keyword is a regular expression unless --exact is given; parent searches
always match exactly.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			records, err := client.Search(cmd.Context(), assetdb.SearchFilter{
				Field:         args[0],
				Keyword:       args[1],
				Status:        status,
				ExactMatch:    exactMatch,
				CaseSensitive: caseSensitive,
			})
			if err != nil {
				return err
			}

			return renderRecords(records)
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", assetdb.StatusAny, "status filter (valid, invalid, \"to verify\", *)")
	cmd.Flags().BoolVar(&exactMatch, "exact", false, "match the keyword exactly instead of as a regular expression")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "match case sensitively")

	return cmd
}
