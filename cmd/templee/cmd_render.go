package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/elclanrs/templee/pkg/pipeline"
	"github.com/elclanrs/templee/pkg/query"
	"github.com/elclanrs/templee/pkg/records"
	"github.com/elclanrs/templee/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Expand a template over the queried records",
	Example: `  templee render -d people.yaml -t '<p>#{name} @{<i>={tags}</i>}</p>'
  templee render -d people.json -f row.html -w '<table>' -s where:age -s 'is:>=18'`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	tmpl, err := loadTemplate()
	if err != nil {
		return err
	}
	c, err := loadCollection()
	if err != nil {
		return err
	}

	html := c.HTML(tmpl, wrapTag)
	logger.Debug("rendered",
		zap.Int("records", c.Len()),
		zap.Int("bytes", len(html)))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
	return err
}

func loadTemplate() (string, error) {
	switch {
	case templateText != "" && templateFile != "":
		return "", types.NewError(types.ErrConflictingArg, "use either --template or --template-file")
	case templateFile != "":
		data, err := os.ReadFile(templateFile)
		if err != nil {
			return "", types.NewError(types.ErrReadFailed, "cannot read template").
				WithSource(templateFile).WithCause(err)
		}
		return string(data), nil
	case templateText != "":
		return templateText, nil
	default:
		return "", types.NewError(types.ErrMissingSource, "a template is required (--template or --template-file)")
	}
}

// loadCollection reads --data and applies every --step in order.
func loadCollection() (*query.Collection, error) {
	if dataFile == "" {
		return nil, types.NewError(types.ErrMissingSource, "a records file is required (--data)")
	}
	parsed, err := pipeline.ParseSteps(steps)
	if err != nil {
		return nil, err
	}
	recs, err := records.LoadFile(dataFile)
	if err != nil {
		return nil, err
	}
	logger.Debug("records loaded",
		zap.String("file", dataFile),
		zap.Int("records", len(recs)),
		zap.Strings("steps", steps))

	return pipeline.Apply(query.New(recs, queryOptions()...), parsed), nil
}
