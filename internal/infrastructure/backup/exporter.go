package backup

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/opslake/subregops/internal/domain/entity"
	"github.com/opslake/subregops/internal/infrastructure/logger"
	"github.com/opslake/subregops/internal/infrastructure/ssh"
)

const defaultTTL = 1800

// RenderZoneFile renders a record set as RFC 1035 master-file text, suitable
// for feeding a secondary nameserver or keeping as an offsite backup.
func RenderZoneFile(domainName string, records []entity.DNSRecord, now time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "; zone file for %s\n", domainName)
	fmt.Fprintf(&sb, "; exported %s\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&sb, "$ORIGIN %s.\n", domainName)
	fmt.Fprintf(&sb, "$TTL %d\n", defaultTTL)

	sorted := make([]entity.DNSRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Host() != sorted[j].Host() {
			return sorted[i].Host() < sorted[j].Host()
		}
		return sorted[i].Type < sorted[j].Type
	})

	for i := range sorted {
		r := &sorted[i]
		ttl := r.TTL
		if ttl == 0 {
			ttl = defaultTTL
		}
		switch r.Type {
		case entity.DNSRecordTypeMX:
			fmt.Fprintf(&sb, "%s\t%d\tIN\tMX\t%d\t%s\n", r.Host(), ttl, r.Prio, qualify(r.Content))
		case entity.DNSRecordTypeSRV:
			fmt.Fprintf(&sb, "%s\t%d\tIN\tSRV\t%d %s\n", r.Host(), ttl, r.Prio, r.Content)
		case entity.DNSRecordTypeTXT, entity.DNSRecordTypeSPF:
			fmt.Fprintf(&sb, "%s\t%d\tIN\t%s\t%q\n", r.Host(), ttl, r.Type, r.Content)
		case entity.DNSRecordTypeCNAME, entity.DNSRecordTypeNS:
			fmt.Fprintf(&sb, "%s\t%d\tIN\t%s\t%s\n", r.Host(), ttl, r.Type, qualify(r.Content))
		default:
			fmt.Fprintf(&sb, "%s\t%d\tIN\t%s\t%s\n", r.Host(), ttl, r.Type, r.Content)
		}
	}
	return sb.String()
}

// qualify appends the trailing dot hostname-valued fields need in zone file
// syntax. The registrar API strips it, zone files require it.
func qualify(content string) string {
	if strings.HasSuffix(content, ".") {
		return content
	}
	return content + "."
}

// Exporter writes rendered zone files locally and optionally pushes them to
// the configured SFTP target.
type Exporter struct {
	outDir string
	target *entity.BackupTarget
	log    *logger.Logger
}

func NewExporter(outDir string, target *entity.BackupTarget) *Exporter {
	return &Exporter{
		outDir: outDir,
		target: target,
		log:    logger.WithFields("component", "backup"),
	}
}

// ExportLocal renders one zone into the output directory and returns the
// file path.
func (e *Exporter) ExportLocal(domainName string, records []entity.DNSRecord) (string, error) {
	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	content := RenderZoneFile(domainName, records, time.Now())
	filePath := filepath.Join(e.outDir, domainName+".zone")
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write zone file: %w", err)
	}
	e.log.Info("zone exported", "domain", domainName, "path", filePath)
	return filePath, nil
}

// Push uploads rendered zones to the backup target over SFTP. The password
// must already be resolved to plaintext.
func (e *Exporter) Push(zones map[string][]entity.DNSRecord, password string) error {
	client, err := ssh.NewClient(e.target.Host, e.target.Port, e.target.User, password)
	if err != nil {
		return err
	}
	defer client.Close()

	uploader, err := ssh.NewUploader(client)
	if err != nil {
		return err
	}
	defer uploader.Close()

	now := time.Now()
	for domainName, records := range zones {
		content := RenderZoneFile(domainName, records, now)
		remotePath := path.Join(e.target.Path, domainName+".zone")
		if err := uploader.Upload(remotePath, []byte(content)); err != nil {
			return err
		}
		e.log.Info("zone pushed", "domain", domainName, "host", e.target.Host, "path", remotePath)
	}
	return nil
}
