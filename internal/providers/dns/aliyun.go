package dns

import (
	"context"
	"fmt"

	alidns "github.com/alibabacloud-go/alidns-20150109/v4/client"
	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	"github.com/alibabacloud-go/tea/tea"

	"github.com/opslake/subregops/internal/domain/entity"
)

type AliyunProvider struct {
	client *alidns.Client
}

func NewAliyunProvider(accessKeyID, accessKeySecret string) (*AliyunProvider, error) {
	config := &openapi.Config{
		AccessKeyId:     tea.String(accessKeyID),
		AccessKeySecret: tea.String(accessKeySecret),
	}
	config.Endpoint = tea.String("dns.aliyuncs.com")
	client, err := alidns.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("create aliyun dns client: %w", err)
	}
	return &AliyunProvider{client: client}, nil
}

func (p *AliyunProvider) Name() string {
	return "aliyun"
}

func (p *AliyunProvider) ListDomains(_ context.Context) ([]string, error) {
	req := &alidns.DescribeDomainsRequest{}
	resp, err := p.client.DescribeDomains(req)
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}

	var domains []string
	if resp.Body != nil && resp.Body.Domains != nil {
		for _, d := range resp.Body.Domains.Domain {
			domains = append(domains, tea.StringValue(d.DomainName))
		}
	}
	return domains, nil
}

func (p *AliyunProvider) ListRecords(_ context.Context, domainName string) ([]entity.DNSRecord, error) {
	req := &alidns.DescribeDomainRecordsRequest{
		DomainName: tea.String(domainName),
	}
	resp, err := p.client.DescribeDomainRecords(req)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	var records []entity.DNSRecord
	if resp.Body != nil && resp.Body.DomainRecords != nil {
		for _, r := range resp.Body.DomainRecords.Record {
			records = append(records, entity.DNSRecord{
				ID:      tea.StringValue(r.RecordId),
				Domain:  domainName,
				Name:    tea.StringValue(r.RR),
				Type:    entity.DNSRecordType(tea.StringValue(r.Type)),
				Content: tea.StringValue(r.Value),
				Prio:    int(tea.Int64Value(r.Priority)),
				TTL:     int(tea.Int64Value(r.TTL)),
			})
		}
	}
	return records, nil
}

func (p *AliyunProvider) CreateRecord(_ context.Context, domainName string, record *entity.DNSRecord) error {
	req := &alidns.AddDomainRecordRequest{
		DomainName: tea.String(domainName),
		RR:         tea.String(record.Host()),
		Type:       tea.String(string(record.Type)),
		Value:      tea.String(record.Content),
		TTL:        tea.Int64(int64(ClampTTL(record.TTL))),
	}
	if record.Type == entity.DNSRecordTypeMX {
		req.Priority = tea.Int64(int64(record.Prio))
	}

	if _, err := p.client.AddDomainRecord(req); err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

func (p *AliyunProvider) UpdateRecord(_ context.Context, domainName string, recordID string, record *entity.DNSRecord) error {
	req := &alidns.UpdateDomainRecordRequest{
		RecordId: tea.String(recordID),
		RR:       tea.String(record.Host()),
		Type:     tea.String(string(record.Type)),
		Value:    tea.String(record.Content),
		TTL:      tea.Int64(int64(ClampTTL(record.TTL))),
	}
	if record.Type == entity.DNSRecordTypeMX {
		req.Priority = tea.Int64(int64(record.Prio))
	}

	if _, err := p.client.UpdateDomainRecord(req); err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

func (p *AliyunProvider) DeleteRecord(_ context.Context, domainName string, recordID string) error {
	req := &alidns.DeleteDomainRecordRequest{
		RecordId: tea.String(recordID),
	}

	if _, err := p.client.DeleteDomainRecord(req); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}
