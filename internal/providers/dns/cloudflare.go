package dns

import (
	"context"
	"fmt"

	"github.com/cloudflare/cloudflare-go/v2"
	cfdns "github.com/cloudflare/cloudflare-go/v2/dns"
	"github.com/cloudflare/cloudflare-go/v2/option"
	"github.com/cloudflare/cloudflare-go/v2/zones"

	"github.com/opslake/subregops/internal/domain"
	"github.com/opslake/subregops/internal/domain/entity"
)

type CloudflareProvider struct {
	client *cloudflare.Client
}

func NewCloudflareProvider(apiToken string) *CloudflareProvider {
	client := cloudflare.NewClient(
		option.WithAPIToken(apiToken),
	)
	return &CloudflareProvider{client: client}
}

func (p *CloudflareProvider) Name() string {
	return "cloudflare"
}

func (p *CloudflareProvider) getZoneID(ctx context.Context, domainName string) (string, error) {
	resp, err := p.client.Zones.List(ctx, zones.ZoneListParams{
		Name: cloudflare.F(domainName),
	})
	if err != nil {
		return "", fmt.Errorf("list zones: %w", err)
	}
	if len(resp.Result) == 0 {
		return "", fmt.Errorf("%w: %s", domain.ErrDomainNotFound, domainName)
	}
	return resp.Result[0].ID, nil
}

func (p *CloudflareProvider) ListDomains(ctx context.Context) ([]string, error) {
	var names []string
	pager := p.client.Zones.ListAutoPaging(ctx, zones.ZoneListParams{})
	for pager.Next() {
		names = append(names, pager.Current().Name)
	}
	if err := pager.Err(); err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	return names, nil
}

func (p *CloudflareProvider) ListRecords(ctx context.Context, domainName string) ([]entity.DNSRecord, error) {
	zoneID, err := p.getZoneID(ctx, domainName)
	if err != nil {
		return nil, err
	}

	var records []entity.DNSRecord
	pager := p.client.DNS.Records.ListAutoPaging(ctx, cfdns.RecordListParams{
		ZoneID: cloudflare.F(zoneID),
	})
	for pager.Next() {
		record := pager.Current()
		content := ""
		if str, ok := record.Content.(string); ok {
			content = str
		}
		records = append(records, entity.DNSRecord{
			ID:      record.ID,
			Domain:  domainName,
			Name:    relativeHost(record.Name, domainName),
			Type:    entity.DNSRecordType(record.Type),
			Content: content,
			Prio:    int(record.Priority),
			TTL:     int(record.TTL),
		})
	}
	if err := pager.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (p *CloudflareProvider) CreateRecord(ctx context.Context, domainName string, record *entity.DNSRecord) error {
	zoneID, err := p.getZoneID(ctx, domainName)
	if err != nil {
		return err
	}

	_, err = p.client.DNS.Records.New(ctx, cfdns.RecordNewParams{
		ZoneID: cloudflare.F(zoneID),
		Record: p.recordParam(domainName, record),
	})
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

func (p *CloudflareProvider) UpdateRecord(ctx context.Context, domainName string, recordID string, record *entity.DNSRecord) error {
	zoneID, err := p.getZoneID(ctx, domainName)
	if err != nil {
		return err
	}

	_, err = p.client.DNS.Records.Edit(ctx, recordID, cfdns.RecordEditParams{
		ZoneID: cloudflare.F(zoneID),
		Record: p.recordParam(domainName, record),
	})
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

func (p *CloudflareProvider) DeleteRecord(ctx context.Context, domainName string, recordID string) error {
	zoneID, err := p.getZoneID(ctx, domainName)
	if err != nil {
		return err
	}

	_, err = p.client.DNS.Records.Delete(ctx, recordID, cfdns.RecordDeleteParams{
		ZoneID: cloudflare.F(zoneID),
	})
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// recordParam maps a record to the SDK union. MX needs its own variant to
// carry the priority; everything else rides the generic shape.
func (p *CloudflareProvider) recordParam(domainName string, record *entity.DNSRecord) cfdns.RecordUnionParam {
	name := absoluteHost(record.Name, domainName)
	ttl := cfdns.TTL(ClampTTL(record.TTL))

	if record.Type == entity.DNSRecordTypeMX {
		return cfdns.MXRecordParam{
			Name:     cloudflare.F(name),
			Type:     cloudflare.F(cfdns.MXRecordTypeMX),
			Content:  cloudflare.F(record.Content),
			Priority: cloudflare.F(float64(record.Prio)),
			TTL:      cloudflare.F(ttl),
		}
	}
	return cfdns.ARecordParam{
		Name:    cloudflare.F(name),
		Type:    cloudflare.F(cfdns.ARecordType(record.Type)),
		Content: cloudflare.F(record.Content),
		TTL:     cloudflare.F(ttl),
	}
}

// absoluteHost qualifies a zone-relative host name.
func absoluteHost(host, domainName string) string {
	if host == "" || host == "@" {
		return domainName
	}
	return host + "." + domainName
}

// relativeHost strips the zone suffix from a fully qualified record name.
func relativeHost(fqdn, domainName string) string {
	if fqdn == domainName {
		return ""
	}
	suffix := "." + domainName
	if len(fqdn) > len(suffix) && fqdn[len(fqdn)-len(suffix):] == suffix {
		return fqdn[:len(fqdn)-len(suffix)]
	}
	return fqdn
}
