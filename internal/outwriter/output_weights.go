package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintWeights writes the fixed weight table in the configured format.
func PrintWeights(rows []schema.WeightRow, cfg *contract.Config) error {
	switch cfg.Format {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"media", "weight"}, func(cw *csv.Writer) error {
				for _, r := range rows {
					if err := cw.Write([]string{string(r.Media), strconv.FormatFloat(r.Weight, 'g', -1, 64)}); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWeightsTable(w, rows)
		}, "Wrote table")
	}
}

func writeWeightsTable(w io.Writer, rows []schema.WeightRow) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Media", "Points per Unit", "Units per Point"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			string(r.Media),
			strconv.FormatFloat(r.Weight, 'f', 4, 64),
			strconv.FormatFloat(1/r.Weight, 'f', 2, 64),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
