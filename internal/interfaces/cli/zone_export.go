package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opslake/subregops/internal/domain/entity"
	"github.com/opslake/subregops/internal/infrastructure/backup"
)

var (
	exportPush     bool
	exportSnapshot bool
	exportOutDir   string
)

var zoneCmd = &cobra.Command{
	Use:   "zone",
	Short: "Zone file export and backup",
}

var zoneExportCmd = &cobra.Command{
	Use:   "export [domain]",
	Short: "Export zones as RFC 1035 zone files",
	Long:  "Exports live zones (or the local snapshot with --snapshot) as zone files, optionally pushing them to the configured SFTP backup target.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		runZoneExport(name, exportSnapshot, exportPush, exportOutDir)
	},
}

func init() {
	rootCmd.AddCommand(zoneCmd)
	zoneCmd.AddCommand(zoneExportCmd)
	zoneExportCmd.Flags().BoolVar(&exportPush, "push", false, "Push exported zones to the backup target")
	zoneExportCmd.Flags().BoolVar(&exportSnapshot, "snapshot", false, "Export from the local snapshot instead of the live zones")
	zoneExportCmd.Flags().StringVarP(&exportOutDir, "out", "o", "", "Output directory (default <config>/export)")
}

func runZoneExport(name string, fromSnapshot, push bool, outDir string) {
	app := mustLoadApp()
	ctx := context.Background()

	if outDir == "" {
		outDir = filepath.Join(ConfigDir, "export")
	}

	var domains []string
	if name != "" {
		domains = []string{name}
	} else {
		if len(app.Config.Zones) == 0 {
			fatalf("No zones configured; pass a domain name explicitly.")
		}
		for _, z := range app.Config.Zones {
			domains = append(domains, z.Domain)
		}
	}

	zones := make(map[string][]entity.DNSRecord, len(domains))
	if fromSnapshot {
		snapshot, err := app.Store.Load()
		if err != nil {
			fatalf("Error loading snapshot: %v", err)
		}
		for _, d := range domains {
			records := snapshot.ZoneRecords(d)
			if records == nil {
				fatalf("Zone %s is not in the snapshot; run 'dns pull' first.", d)
			}
			zones[d] = records
		}
	} else {
		for _, d := range domains {
			records, err := app.Registrar.GetDNSZone(ctx, d)
			if err != nil {
				fatalf("Error fetching zone %s: %v", d, err)
			}
			zones[d] = records
		}
	}

	exporter := backup.NewExporter(outDir, app.Config.Backup)
	for _, d := range domains {
		path, err := exporter.ExportLocal(d, zones[d])
		if err != nil {
			fatalf("Error exporting zone %s: %v", d, err)
		}
		fmt.Printf("exported %s -> %s\n", d, path)
	}

	if push {
		if app.Config.Backup == nil {
			fatalf("No backup target configured.")
		}
		if err := exporter.Push(zones, app.Config.Backup.Password.Plain); err != nil {
			fatalf("Error pushing zones: %v", err)
		}
		fmt.Printf("pushed %d zone(s) to %s\n", len(zones), app.Config.Backup.Host)
	}
}
