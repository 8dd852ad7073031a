package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/opsinv/assetdb-client/pkg/assetdb"
	"github.com/opsinv/assetdb-client/pkg/dbclient"
)

// createClient builds a client from the resolved viper configuration.
func createClient(ctx context.Context) (assetdb.Client, error) {
	endpoint := viper.GetString("endpoint")
	if endpoint == "" {
		return nil, fmt.Errorf("no API endpoint configured, use 'assetdb login' or --endpoint")
	}

	config := &assetdb.Config{
		Endpoint:  endpoint,
		ProjectID: viper.GetString("project"),
		APIKey:    viper.GetString("api-key"),
		Username:  viper.GetString("username"),
		Password:  viper.GetString("password"),
	}

	if refdata := viper.GetString("refdata"); refdata != "" {
		provider, err := assetdb.NewFileReferenceProvider(refdata)
		if err != nil {
			return nil, fmt.Errorf("loading reference data: %w", err)
		}

		config.ReferenceProvider = provider
	}

	if viper.GetBool("verbose") {
		config.Logger = newZerologAdapter()
		config.Debug = true
	}

	client, err := dbclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// zerologAdapter adapts a zerolog.Logger to the client's Logger interface.
type zerologAdapter struct {
	logger zerolog.Logger
}

func newZerologAdapter() *zerologAdapter {
	return &zerologAdapter{
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	}
}

func (z *zerologAdapter) Debug(msg string, fields map[string]interface{}) {
	z.logger.Debug().Fields(fields).Msg(msg)
}

func (z *zerologAdapter) Info(msg string, fields map[string]interface{}) {
	z.logger.Info().Fields(fields).Msg(msg)
}

func (z *zerologAdapter) Warn(msg string, fields map[string]interface{}) {
	z.logger.Warn().Fields(fields).Msg(msg)
}

func (z *zerologAdapter) Error(msg string, fields map[string]interface{}) {
	z.logger.Error().Fields(fields).Msg(msg)
}

// renderStructured prints value as JSON or YAML per the output flag. It
// reports false when the flag asked for the default table rendering instead.
func renderStructured(value interface{}) (bool, error) {
	switch viper.GetString("output") {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return true, encoder.Encode(value)
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)

		return true, encoder.Encode(value)
	default:
		return false, nil
	}
}

// renderEntry prints one entry as a property table.
func renderEntry(entry *assetdb.Entry) error {
	if done, err := renderStructured(entry); done {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")
	_ = table.Append("ID", string(entry.ID))
	_ = table.Append("Name", entry.Name)
	_ = table.Append("Description", entry.Description)
	_ = table.Append("Project", refLabel(entry.Project))
	_ = table.Append("Type", refLabel(entry.Type))
	_ = table.Append("Status", refLabel(entry.Status))
	_ = table.Append("Author", refLabel(entry.Author))
	_ = table.Append("Created", entry.CreatedOn)
	_ = table.Append("Updated", entry.UpdatedOn)

	fields := make([]assetdb.CustomField, len(entry.CustomFields))
	copy(fields, entry.CustomFields)
	sort.Slice(fields, func(i, j int) bool { return fields[i].ID < fields[j].ID })

	for _, field := range fields {
		_ = table.Append(fmt.Sprintf("Field %d", field.ID), field.Value.String())
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderRecords prints search results as a table with one column per domain
// attribute present in the result set.
func renderRecords(records []assetdb.DisplayRecord) error {
	if done, err := renderStructured(records); done {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No entries found")

		return nil
	}

	columns := assetdb.FieldColumns(records)
	header := append([]string{"ID", "Name", "Type", "Status"}, columns...)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(cells(header)...)

	for _, record := range records {
		row := []string{string(record.ID), record.Name, record.Type, record.Status}
		for _, column := range columns {
			row = append(row, record.Fields[column])
		}

		_ = table.Append(cells(row)...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderEntryList prints the whole collection, sorted by id.
func renderEntryList(entries map[assetdb.ID]*assetdb.Entry) error {
	sorted := make([]*assetdb.Entry, 0, len(entries))
	for _, entry := range entries {
		sorted = append(sorted, entry)
	}

	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID.Int() < sorted[j].ID.Int() })

	if done, err := renderStructured(sorted); done {
		return err
	}

	if len(sorted) == 0 {
		fmt.Println("No entries found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Type", "Status", "Updated")

	for _, entry := range sorted {
		_ = table.Append(string(entry.ID), entry.Name, refLabel(entry.Type), refLabel(entry.Status), entry.UpdatedOn)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func cells(values []string) []any {
	row := make([]any, len(values))
	for i, value := range values {
		row[i] = value
	}

	return row
}

func refLabel(ref *assetdb.Ref) string {
	if ref == nil {
		return ""
	}

	if ref.Name != "" {
		return ref.Name
	}

	return fmt.Sprintf("%d", ref.ID)
}
