package dns

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	dnspod "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/dnspod/v20210323"

	"github.com/opslake/subregops/internal/domain/entity"
)

type TencentProvider struct {
	client *dnspod.Client
}

func NewTencentProvider(secretID, secretKey string) (*TencentProvider, error) {
	credential := common.NewCredential(secretID, secretKey)
	cpf := profile.NewClientProfile()
	cpf.HttpProfile.Endpoint = "dnspod.tencentcloudapi.com"
	client, err := dnspod.NewClient(credential, "", cpf)
	if err != nil {
		return nil, fmt.Errorf("create tencent dns client: %w", err)
	}
	return &TencentProvider{client: client}, nil
}

func (p *TencentProvider) Name() string {
	return "tencent"
}

func (p *TencentProvider) ListDomains(ctx context.Context) ([]string, error) {
	req := dnspod.NewDescribeDomainListRequest()
	resp, err := p.client.DescribeDomainListWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}

	var domains []string
	if resp.Response != nil && resp.Response.DomainList != nil {
		for _, d := range resp.Response.DomainList {
			domains = append(domains, *d.Name)
		}
	}
	return domains, nil
}

func (p *TencentProvider) ListRecords(ctx context.Context, domainName string) ([]entity.DNSRecord, error) {
	req := dnspod.NewDescribeRecordListRequest()
	req.Domain = common.StringPtr(domainName)

	resp, err := p.client.DescribeRecordListWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	var records []entity.DNSRecord
	if resp.Response != nil && resp.Response.RecordList != nil {
		for _, r := range resp.Response.RecordList {
			record := entity.DNSRecord{
				ID:      strconv.FormatUint(*r.RecordId, 10),
				Domain:  domainName,
				Name:    *r.Name,
				Type:    entity.DNSRecordType(*r.Type),
				Content: *r.Value,
			}
			if r.TTL != nil {
				record.TTL = int(*r.TTL)
			}
			if r.MX != nil {
				record.Prio = int(*r.MX)
			}
			records = append(records, record)
		}
	}
	return records, nil
}

func (p *TencentProvider) CreateRecord(ctx context.Context, domainName string, record *entity.DNSRecord) error {
	req := dnspod.NewCreateRecordRequest()
	req.Domain = common.StringPtr(domainName)
	req.SubDomain = common.StringPtr(record.Host())
	req.RecordType = common.StringPtr(string(record.Type))
	req.RecordLine = common.StringPtr("默认")
	req.Value = common.StringPtr(record.Content)
	req.TTL = common.Uint64Ptr(uint64(ClampTTL(record.TTL)))
	if record.Type == entity.DNSRecordTypeMX {
		req.MX = common.Uint64Ptr(uint64(record.Prio))
	}

	if _, err := p.client.CreateRecordWithContext(ctx, req); err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

func (p *TencentProvider) UpdateRecord(ctx context.Context, domainName string, recordID string, record *entity.DNSRecord) error {
	recordIDInt, err := strconv.ParseUint(recordID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid record ID: %w", err)
	}

	req := dnspod.NewModifyRecordRequest()
	req.Domain = common.StringPtr(domainName)
	req.RecordId = common.Uint64Ptr(recordIDInt)
	req.SubDomain = common.StringPtr(record.Host())
	req.RecordType = common.StringPtr(string(record.Type))
	req.RecordLine = common.StringPtr("默认")
	req.Value = common.StringPtr(record.Content)
	req.TTL = common.Uint64Ptr(uint64(ClampTTL(record.TTL)))
	if record.Type == entity.DNSRecordTypeMX {
		req.MX = common.Uint64Ptr(uint64(record.Prio))
	}

	if _, err := p.client.ModifyRecordWithContext(ctx, req); err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

func (p *TencentProvider) DeleteRecord(ctx context.Context, domainName string, recordID string) error {
	recordIDInt, err := strconv.ParseUint(recordID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid record ID: %w", err)
	}

	req := dnspod.NewDeleteRecordRequest()
	req.Domain = common.StringPtr(domainName)
	req.RecordId = common.Uint64Ptr(recordIDInt)

	if _, err := p.client.DeleteRecordWithContext(ctx, req); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}
