package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <attribute> <value>",
		Short: "Validate an attribute value",
		Long: `Check an attribute value against the configured reference lists and print
the normalized value and the numeric field id it would be stored under.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			field, ok, err := client.Field(args[0], args[1])
			if err != nil {
				return err
			}

			if !ok {
				fmt.Println("Empty value: attribute would be omitted")

				return nil
			}

			fmt.Printf("OK: field %d = %s\n", field.ID, field.Value.String())

			return nil
		},
	}
}
