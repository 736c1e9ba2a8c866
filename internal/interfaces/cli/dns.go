package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opslake/subregops/internal/domain"
	"github.com/opslake/subregops/internal/domain/entity"
	"github.com/opslake/subregops/internal/domain/service"
	"github.com/opslake/subregops/internal/domain/valueobject"
	dnsprovider "github.com/opslake/subregops/internal/providers/dns"
)

var (
	dnsDomainFilter string
	dnsRecordFilter string
	dnsAutoApprove  bool
	dnsRecordTTL    int
	dnsRecordPrio   int
)

var dnsCmd = &cobra.Command{
	Use:   "dns",
	Short: "DNS zone management commands",
	Long:  "Manage DNS zones hosted at the registrar's nameservers.",
}

var dnsListCmd = &cobra.Command{
	Use:   "list [domain]",
	Short: "List live DNS records",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		runDNSList(name)
	},
}

var dnsPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull live zones into the local snapshot",
	Run: func(cmd *cobra.Command, args []string) {
		runDNSPull(dnsDomainFilter)
	},
}

var dnsPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the change plan between zones.yaml and the live zones",
	Run: func(cmd *cobra.Command, args []string) {
		runDNSPlan(dnsDomainFilter, dnsRecordFilter)
	},
}

var dnsApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply zones.yaml to the live zones",
	Run: func(cmd *cobra.Command, args []string) {
		runDNSApply(dnsDomainFilter, dnsRecordFilter, dnsAutoApprove)
	},
}

var dnsAddCmd = &cobra.Command{
	Use:   "add <domain> <type> <name> <content>",
	Short: "Add a single DNS record",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		runDNSAdd(args[0], args[1], args[2], args[3])
	},
}

var dnsRmCmd = &cobra.Command{
	Use:   "rm <domain> <record-id>",
	Short: "Delete a single DNS record by ID",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runDNSRm(args[0], args[1])
	},
}

var dnsGoogleMXCmd = &cobra.Command{
	Use:   "set-google-mx <domain>",
	Short: "Replace all MX records with the Google Workspace set",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDNSGoogleMX(args[0], dnsAutoApprove)
	},
}

var dnsMirrorCmd = &cobra.Command{
	Use:   "mirror <domain>",
	Short: "Replicate a live zone to its configured mirror provider",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDNSMirror(args[0])
	},
}

func init() {
	rootCmd.AddCommand(dnsCmd)

	dnsCmd.AddCommand(dnsListCmd)

	dnsCmd.AddCommand(dnsPullCmd)
	dnsPullCmd.Flags().StringVarP(&dnsDomainFilter, "domain", "d", "", "Only pull this domain")

	dnsCmd.AddCommand(dnsPlanCmd)
	dnsPlanCmd.Flags().StringVarP(&dnsDomainFilter, "domain", "d", "", "Filter by domain")
	dnsPlanCmd.Flags().StringVarP(&dnsRecordFilter, "record", "r", "", "Filter by record host name")

	dnsCmd.AddCommand(dnsApplyCmd)
	dnsApplyCmd.Flags().StringVarP(&dnsDomainFilter, "domain", "d", "", "Filter by domain")
	dnsApplyCmd.Flags().StringVarP(&dnsRecordFilter, "record", "r", "", "Filter by record host name")
	dnsApplyCmd.Flags().BoolVar(&dnsAutoApprove, "auto-approve", false, "Skip confirmation prompt")

	dnsCmd.AddCommand(dnsAddCmd)
	dnsAddCmd.Flags().IntVar(&dnsRecordTTL, "ttl", 1800, "Record TTL")
	dnsAddCmd.Flags().IntVar(&dnsRecordPrio, "prio", 0, "Record priority (MX/SRV)")

	dnsCmd.AddCommand(dnsRmCmd)

	dnsCmd.AddCommand(dnsGoogleMXCmd)
	dnsGoogleMXCmd.Flags().BoolVar(&dnsAutoApprove, "auto-approve", false, "Skip confirmation prompt")

	dnsCmd.AddCommand(dnsMirrorCmd)
}

func runDNSList(name string) {
	app := mustLoadApp()
	ctx := context.Background()

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

	for _, d := range domains {
		records, err := app.Registrar.GetDNSZone(ctx, d)
		if err != nil {
			fatalf("Error fetching zone %s: %v", d, err)
		}
		fmt.Printf("%s:\n", d)
		if len(records) == 0 {
			fmt.Println("  (empty zone)")
			continue
		}
		for i := range records {
			printRecord(&records[i])
		}
	}
}

func printRecord(r *entity.DNSRecord) {
	prio := ""
	if r.Type == entity.DNSRecordTypeMX || r.Type == entity.DNSRecordTypeSRV {
		prio = fmt.Sprintf(" prio %d", r.Prio)
	}
	fmt.Printf("  %-8s %-6s %-20s -> %-30s (ttl %d%s)\n", r.ID, r.Type, r.Host(), r.Content, r.TTL, prio)
}

func runDNSPull(domainFilter string) {
	app := mustLoadApp()
	ctx := context.Background()

	snapshot, err := app.Store.Load()
	if err != nil {
		fatalf("Error loading snapshot: %v", err)
	}

	pulled := 0
	for _, zone := range app.Config.Zones {
		if domainFilter != "" && zone.Domain != domainFilter {
			continue
		}
		records, err := app.Registrar.GetDNSZone(ctx, zone.Domain)
		if err != nil {
			fatalf("Error fetching zone %s: %v", zone.Domain, err)
		}
		snapshot.SetZone(zone.Domain, records)
		fmt.Printf("pulled %s (%d records)\n", zone.Domain, len(records))
		pulled++
	}

	if pulled == 0 {
		fmt.Println("Nothing to pull.")
		return
	}
	if err := app.Store.Save(snapshot); err != nil {
		fatalf("Error saving snapshot: %v", err)
	}
}

// buildPlan fetches the live zones in scope and diffs them against the
// declared records. A zone the registrar does not host yet plans as all
// creates and is reported in missingZones so apply can create it first.
func buildPlan(app *App, scope *valueobject.Scope) (*valueobject.Plan, []string, error) {
	ctx := context.Background()
	live := make(map[string][]entity.DNSRecord)
	var missingZones []string
	for _, zone := range app.Config.Zones {
		if !scope.MatchesDomain(zone.Domain) {
			continue
		}
		records, err := app.Registrar.GetDNSZone(ctx, zone.Domain)
		if err != nil {
			if errors.Is(err, domain.ErrZoneNotFound) {
				missingZones = append(missingZones, zone.Domain)
				continue
			}
			return nil, nil, fmt.Errorf("fetching zone %s: %w", zone.Domain, err)
		}
		live[zone.Domain] = records
	}

	plan := valueobject.NewPlanWithScope(scope)
	service.NewDiffer().DiffZones(plan, app.Config.Zones, live)
	return plan, missingZones, nil
}

func printPlan(plan *valueobject.Plan) {
	for _, ch := range plan.Changes() {
		fmt.Printf("%s %s: %s\n", ch.Type().Symbol(), ch.Entity(), ch.Name())
	}
}

func runDNSPlan(domainFilter, recordFilter string) {
	app := mustLoadApp()

	plan, missingZones, err := buildPlan(app, &valueobject.Scope{Domain: domainFilter, Record: recordFilter})
	if err != nil {
		fatalf("Error generating plan: %v", err)
	}

	if !plan.HasChanges() && len(missingZones) == 0 {
		fmt.Println("No DNS changes detected.")
		return
	}
	fmt.Println("DNS Change Plan:")
	fmt.Println("================")
	for _, zone := range missingZones {
		fmt.Printf("+ dns_zone: %s\n", zone)
	}
	printPlan(plan)
}

func runDNSApply(domainFilter, recordFilter string, autoApprove bool) {
	app := mustLoadApp()
	ctx := context.Background()

	plan, missingZones, err := buildPlan(app, &valueobject.Scope{Domain: domainFilter, Record: recordFilter})
	if err != nil {
		fatalf("Error generating plan: %v", err)
	}

	if !plan.HasChanges() && len(missingZones) == 0 {
		fmt.Println("No DNS changes to apply.")
		return
	}

	fmt.Println("DNS Changes:")
	for _, zone := range missingZones {
		fmt.Printf("+ dns_zone: %s\n", zone)
	}
	printPlan(plan)

	if !autoApprove && !confirm("\nProceed?") {
		fmt.Println("Cancelled.")
		return
	}

	hasError := false
	for _, zone := range missingZones {
		if err := app.Registrar.AddDNSZone(ctx, zone, ""); err != nil {
			fmt.Printf("✗ dns_zone: %s - %v\n", zone, err)
			hasError = true
			continue
		}
		fmt.Printf("✓ dns_zone: %s\n", zone)
	}
	for _, ch := range plan.Changes() {
		if err := applyChange(ctx, app, ch); err != nil {
			fmt.Printf("✗ %s: %s - %v\n", ch.Entity(), ch.Name(), err)
			hasError = true
			continue
		}
		fmt.Printf("✓ %s: %s\n", ch.Entity(), ch.Name())
	}
	if hasError {
		fatalf("Some changes failed.")
	}
}

func applyChange(ctx context.Context, app *App, ch *valueobject.Change) error {
	switch ch.Type() {
	case valueobject.ChangeTypeCreate:
		record := ch.NewState().(*entity.DNSRecord)
		_, err := app.Registrar.AddDNSRecord(ctx, record.Domain, record)
		return err
	case valueobject.ChangeTypeUpdate:
		record := ch.NewState().(*entity.DNSRecord)
		return app.Registrar.ModifyDNSRecord(ctx, record.Domain, record)
	case valueobject.ChangeTypeDelete:
		record := ch.OldState().(*entity.DNSRecord)
		return app.Registrar.DeleteDNSRecord(ctx, record.Domain, record.ID)
	default:
		return nil
	}
}

func runDNSAdd(domainName, recordType, host, content string) {
	app := mustLoadApp()

	if host == "@" {
		host = ""
	}
	record := &entity.DNSRecord{
		Domain:  domainName,
		Name:    host,
		Type:    entity.DNSRecordType(recordType),
		Content: content,
		Prio:    dnsRecordPrio,
		TTL:     dnsRecordTTL,
	}
	if err := record.Validate(); err != nil {
		fatalf("Error: %v", err)
	}

	id, err := app.Registrar.AddDNSRecord(context.Background(), domainName, record)
	if err != nil {
		fatalf("Error adding record: %v", err)
	}
	fmt.Printf("Record created with ID %s\n", id)
}

func runDNSRm(domainName, recordID string) {
	app := mustLoadApp()
	if err := app.Registrar.DeleteDNSRecord(context.Background(), domainName, recordID); err != nil {
		fatalf("Error deleting record: %v", err)
	}
	fmt.Printf("Record %s deleted from %s\n", recordID, domainName)
}

func runDNSGoogleMX(domainName string, autoApprove bool) {
	app := mustLoadApp()

	if !autoApprove && !confirm(fmt.Sprintf("Replace ALL MX records of %s with the Google set?", domainName)) {
		fmt.Println("Cancelled.")
		return
	}
	if err := app.Registrar.SetGoogleMXRecords(context.Background(), domainName); err != nil {
		fatalf("Error setting Google MX records: %v", err)
	}
	fmt.Printf("Google MX records installed for %s\n", domainName)
}

func runDNSMirror(domainName string) {
	app := mustLoadApp()
	ctx := context.Background()

	zones := app.Config.GetZoneMap()
	zone, ok := zones[domainName]
	if !ok {
		fatalf("Zone %s is not declared in zones.yaml", domainName)
	}
	if zone.Mirror == "" {
		fatalf("Zone %s has no mirror provider configured", domainName)
	}

	providerCfg := app.Config.GetProviderMap()[zone.Mirror]
	provider, err := dnsprovider.NewFactory().Create(providerCfg, app.Config.GetSecretsMap())
	if err != nil {
		fatalf("Error creating provider %s: %v", zone.Mirror, err)
	}

	source := dnsprovider.NewSubregProvider(app.Registrar)
	records, err := source.ListRecords(ctx, domainName)
	if err != nil {
		fatalf("Error fetching zone %s: %v", domainName, err)
	}

	if err := dnsprovider.MirrorZone(ctx, provider, domainName, records); err != nil {
		fatalf("Error mirroring zone: %v", err)
	}
	fmt.Printf("Zone %s mirrored to %s (%d records)\n", domainName, provider.Name(), len(records))
}
