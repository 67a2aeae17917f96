package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/motofuel/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [pdf | xlsx | csv]",
	Short: "Export a vehicle's fill-up log as PDF, Excel or CSV",
	Long: `Export a vehicle's fill-up log with its stats and monthly spending.

The format may be left out when --out ends in .pdf, .xlsx or .csv.

Examples:
  motofuel report pdf
  motofuel report --out activa.xlsx --vehicle activa`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")

		formatArg := out
		if len(args) == 1 {
			formatArg = args[0]
		}
		if formatArg == "" {
			printError(fmt.Errorf("give a format (pdf, xlsx or csv) or --out with one of those extensions"))
			return
		}
		format, err := report.ParseFormat(formatArg)
		if err != nil {
			printError(err)
			return
		}

		vehicle, entries, err := vehicleEntries(cmd)
		if err != nil {
			printError(err)
			return
		}

		now := time.Now()
		if out == "" {
			name := fmt.Sprintf("motofuel_%s_%s.%s", strings.ToLower(strings.ReplaceAll(vehicle.Name, " ", "_")), now.Format("20060102"), format)
			out = filepath.Join(cfg.Backup.Dir, name)
		}

		r := report.New(*vehicle, entries, cfg.Currency, now)
		if err := r.WriteFile(out, format); err != nil {
			printError(err)
			return
		}
		fmt.Printf("✅ %s report for %s written to %s (%d fill-ups)\n", strings.ToUpper(string(format)), vehicle.Name, out, len(entries))
	},
}

func init() {
	reportCmd.Flags().StringP("out", "o", "", "Output file")
	reportCmd.Flags().StringP("vehicle", "v", "", "Vehicle name or ID")
}
