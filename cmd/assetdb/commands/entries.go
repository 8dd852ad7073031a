package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

// NewEntriesCommand creates the entries command group
func NewEntriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"entry"},
		Short:   "Manage asset entries",
		Long:    "Create, inspect, update and delete entries in the asset database",
	}

	cmd.AddCommand(createEntriesGetCommand())
	cmd.AddCommand(createEntriesListCommand())
	cmd.AddCommand(createEntriesCreateCommand())
	cmd.AddCommand(createEntriesUpdateCommand())
	cmd.AddCommand(createEntriesDeleteCommand())

	return cmd
}

func createEntriesGetCommand() *cobra.Command {
	var byID bool

	cmd := &cobra.Command{
		Use:   "get <name-or-id>",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			var entry *assetdb.Entry
			if byID {
				entry, err = client.Entries().Get(cmd.Context(), assetdb.ID(args[0]))
			} else {
				entry, err = client.Entries().GetByName(cmd.Context(), args[0])
			}

			if err != nil {
				return err
			}

			return renderEntry(entry)
		},
	}

	cmd.Flags().BoolVar(&byID, "id", false, "look up by numeric id instead of name")

	return cmd
}

func createEntriesListCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all entries",
		Long: `Fetch the whole collection via paginated requests and print it.

The --filter value is passed to the server verbatim, e.g. "status_id=1".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			entries, err := client.Entries().GetAll(cmd.Context(), filter)
			if err != nil {
				return err
			}

			return renderEntryList(entries)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "server-side filter query, passed verbatim")

	return cmd
}

func createEntriesCreateCommand() *cobra.Command {
	var (
		description string
		fields      []string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an entry",
		Long: `Create an entry under the configured project.

Domain attributes are given as --field attribute=value pairs and are
validated against the reference lists before anything is sent, for example:

  assetdb entries create SC-300012 --field hostname=srv-01 --field state=Installed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			entry := &assetdb.Entry{
				Name:        args[0],
				Description: description,
			}

			if err := applyFields(client, entry, fields); err != nil {
				return err
			}

			id, err := client.Entries().Create(cmd.Context(), entry)
			if err != nil {
				return err
			}

			fmt.Printf("Created entry %s (%s)\n", args[0], id)

			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "entry description")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "attribute=value pair (repeatable)")

	return cmd
}

func createEntriesUpdateCommand() *cobra.Command {
	var (
		description string
		fields      []string
	)

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Update an entry",
		Long: `Fetch the entry by name, apply --field attribute=value changes to it and
write the full record back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			entry, err := client.Entries().GetByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if description != "" {
				entry.Description = description
			}

			if err := applyFields(client, entry, fields); err != nil {
				return err
			}

			if err := client.Entries().Update(cmd.Context(), entry); err != nil {
				return err
			}

			fmt.Printf("Updated entry %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "entry description")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "attribute=value pair (repeatable)")

	return cmd
}

func createEntriesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			entry, err := client.Entries().GetByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !force {
				fmt.Printf("Really delete entry '%s' (%s)? [y/N]: ", entry.Name, entry.ID)

				var response string
				_, _ = fmt.Scanln(&response)

				if response != "y" && response != "Y" {
					fmt.Println("Cancelled")

					return nil
				}
			}

			if err := client.Entries().Delete(cmd.Context(), entry.ID); err != nil {
				return err
			}

			fmt.Printf("Deleted entry %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation prompt")

	return cmd
}

// applyFields validates each attribute=value pair and sets the resulting
// numbered custom field on the entry.
func applyFields(client assetdb.Client, entry *assetdb.Entry, pairs []string) error {
	for _, pair := range pairs {
		attribute, value, found := strings.Cut(pair, "=")
		if !found {
			return fmt.Errorf("invalid field %q: expected attribute=value", pair)
		}

		field, ok, err := client.Field(attribute, value)
		if err != nil {
			return err
		}

		if !ok {
			continue
		}

		entry.SetCustomField(field.ID, field.Value)
	}

	return nil
}
