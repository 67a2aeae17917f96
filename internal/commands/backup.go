package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/motofuel/internal/backup"
	"github.com/balkashynov/motofuel/internal/db"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore all vehicles, fill-ups, trips and prices",
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup file",
	Long: `Write every vehicle, fill-up and trip plus the current fuel prices to a JSON backup.

Files ending in .zst are zstd compressed. With --passphrase the file is encrypted.

Examples:
  motofuel backup export
  motofuel backup export --out ~/motofuel.json.zst --passphrase secret`,
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")
		passphrase, _ := cmd.Flags().GetString("passphrase")

		now := time.Now()
		if out == "" {
			out = filepath.Join(cfg.Backup.Dir, backup.FileName(now))
		}

		snap, err := exportBackup(out, passphrase, now)
		if err != nil {
			printError(err)
			return
		}
		fmt.Printf("✅ Backup written to %s\n", out)
		fmt.Printf("  %d vehicles, %d fill-ups, %d trips\n", len(snap.Vehicles), len(snap.FuelEntries), len(snap.Trips))
	},
}

// exportBackup snapshots the store and prices and writes them to path
func exportBackup(path, passphrase string, now time.Time) (*backup.Snapshot, error) {
	snap, err := backup.Export(store, prefs, now)
	if err != nil {
		return nil, err
	}
	if err := backup.WriteFile(path, snap, passphrase); err != nil {
		return nil, err
	}
	return snap, nil
}

var backupImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Restore a backup file",
	Long: `Restore a backup file. By default everything currently stored is replaced;
with --merge the backup is added next to the existing data.

Fill-ups and trips whose vehicle is missing from the backup are skipped.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		passphrase, _ := cmd.Flags().GetString("passphrase")
		mode := backup.Replace
		if merge, _ := cmd.Flags().GetBool("merge"); merge {
			mode = backup.Merge
		}

		res, err := importBackup(args[0], passphrase, mode)
		if errors.Is(err, backup.ErrInvalidSnapshot) {
			fmt.Println("❌ Invalid backup file")
			fmt.Printf("  %v\n", err)
			return
		}
		if err != nil {
			printError(err)
			return
		}

		fmt.Printf("✅ Backup restored (%s)\n", mode)
		fmt.Printf("  %d vehicles, %d fill-ups, %d trips\n", res.Vehicles, res.Entries, res.Trips)
		if res.SkippedEntries+res.SkippedTrips > 0 {
			fmt.Printf("⚠️  Skipped %d fill-ups and %d trips without a vehicle\n", res.SkippedEntries, res.SkippedTrips)
		}
	},
}

// importBackup reads path and restores it in one transaction, so a failed
// restore leaves the store untouched. Prices live in the preferences file,
// outside the transaction, and are only applied after the commit.
func importBackup(path, passphrase string, mode backup.Mode) (backup.Result, error) {
	snap, err := backup.ReadFile(path, passphrase)
	if err != nil {
		return backup.Result{}, err
	}

	var res backup.Result
	err = store.Transaction(func(tx *db.Store) error {
		var err error
		res, err = backup.Import(tx, snap, mode)
		return err
	})
	if err != nil {
		return backup.Result{}, err
	}

	if err := backup.RestorePrices(snap, prefs.RestorePrice); err != nil {
		return res, err
	}

	// Old vehicle ids are gone after a replace
	if mode == backup.Replace {
		if err := prefs.SetSelectedVehicle(0); err != nil {
			return res, err
		}
	}
	return res, nil
}

func init() {
	backupExportCmd.Flags().StringP("out", "o", "", "Output file (default <backup.dir>/motofuel_backup_<date>.json)")
	backupExportCmd.Flags().String("passphrase", "", "Encrypt the backup with this passphrase")
	backupImportCmd.Flags().Bool("merge", false, "Add to existing data instead of replacing it")
	backupImportCmd.Flags().String("passphrase", "", "Passphrase of an encrypted backup")

	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
}
