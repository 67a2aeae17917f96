package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:         "guide",
	Short:       "Show a one-page guide to every motofuel command",
	Annotations: map[string]string{"skipApp": "true"},
	Run: func(cmd *cobra.Command, args []string) {
		showGuide()
	},
}

func showGuide() {
	fmt.Print(`
███╗   ███╗ ██████╗ ████████╗ ██████╗ ███████╗██╗   ██╗███████╗██╗
████╗ ████║██╔═══██╗╚══██╔══╝██╔═══██╗██╔════╝██║   ██║██╔════╝██║
██╔████╔██║██║   ██║   ██║   ██║   ██║█████╗  ██║   ██║█████╗  ██║
██║╚██╔╝██║██║   ██║   ██║   ██║   ██║██╔══╝  ██║   ██║██╔══╝  ██║
██║ ╚═╝ ██║╚██████╔╝   ██║   ╚██████╔╝██║     ╚██████╔╝███████╗███████╗
╚═╝     ╚═╝ ╚═════╝    ╚═╝    ╚═════╝ ╚═╝      ╚═════╝ ╚══════╝╚══════╝

motofuel - CLI fuel expense and mileage tracker

GETTING STARTED:

  motofuel price set 1.85
  motofuel vehicle add activa --make Honda --model "Activa 6G"
  motofuel fill 12450km 5.2l

COMMANDS:

  vehicle add <name>        Add a vehicle
    --make, --model         Make and model
    --plate                 Registration plate
    --fuel                  petrol|diesel|cng|electric (default petrol)
  vehicle ls | edit | rm    List, change or delete vehicles
  vehicle select <name>     Make a vehicle the default for every command

  fill <fill-up>            Log a fill-up with smart parsing
    -i, --interactive       Open the fill-up form
    --no-ui                 Never open the form
    -v, --vehicle           Vehicle name or ID

    Smart syntax:
      12450km       Odometer reading
      5.2l          Litres filled
      partial       Tank not filled up
      date:2d       Date (today, yesterday, 2d, dd/mm/yyyy)
      @activa       Vehicle
      type:diesel   Fuel type

  entries ls | rm <id>      List or delete fill-ups
  stats                     Efficiency, cost per km and spending
  insights                  Observations about recent fill-ups
  trend                     Efficiency of the last fill-ups as a chart
  monthly                   Spending per month
    --json                  JSON output (stats, insights)

  trip start <name|a|b>     Start a named trip or a quick trip meter
    --odo                   Start odometer (default the last fill-up)
  trip end <id> --odo N     End a trip
  trip reset a|b            Restart a quick trip meter
  trip ls | stats | watch   List trips, show one, or watch it live

  price get | set | history Current prices per fuel type and their history

  backup export             Write a JSON backup (.zst compresses)
    --passphrase            Encrypt the backup
  backup import <file>      Restore a backup
    --merge                 Keep existing data

  report pdf|xlsx|csv       Export a vehicle's log
  dashboard                 Interactive dashboard
  serve                     Local read-only JSON API
  status                    Setup progress, running trips and reminders
  notify on|off             Turn reminders on or off
  version                   Print version information

Use --config to point at another config file.

`)
}
