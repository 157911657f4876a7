package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print the queried records as JSON",
	Example: `  templee query -d people.yaml -s where:address.city -s is:Oslo
  templee query -d people.json -s sortby:age -s reverse -s slice:0:3 --indent`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	c, err := loadCollection()
	if err != nil {
		return err
	}
	logger.Debug("queried", zap.Int("records", c.Len()))

	enc := json.NewEncoder(cmd.OutOrStdout())
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(c.Get())
}
