package dns

import (
	"context"

	"github.com/opslake/subregops/internal/domain/contract"
	"github.com/opslake/subregops/internal/domain/entity"
)

// SubregProvider adapts the registrar client to the Provider interface so
// the registrar's own nameservers participate in mirror operations like any
// other provider.
type SubregProvider struct {
	registrar contract.Registrar
}

func NewSubregProvider(registrar contract.Registrar) *SubregProvider {
	return &SubregProvider{registrar: registrar}
}

func (p *SubregProvider) Name() string {
	return "subreg"
}

func (p *SubregProvider) ListDomains(ctx context.Context) ([]string, error) {
	entries, err := p.registrar.ListDomains(ctx)
	if err != nil {
		return nil, err
	}
	domains := make([]string, 0, len(entries))
	for _, e := range entries {
		domains = append(domains, e.Name)
	}
	return domains, nil
}

func (p *SubregProvider) ListRecords(ctx context.Context, domain string) ([]entity.DNSRecord, error) {
	return p.registrar.GetDNSZone(ctx, domain)
}

func (p *SubregProvider) CreateRecord(ctx context.Context, domain string, record *entity.DNSRecord) error {
	_, err := p.registrar.AddDNSRecord(ctx, domain, record)
	return err
}

func (p *SubregProvider) UpdateRecord(ctx context.Context, domain string, recordID string, record *entity.DNSRecord) error {
	update := *record
	update.ID = recordID
	return p.registrar.ModifyDNSRecord(ctx, domain, &update)
}

func (p *SubregProvider) DeleteRecord(ctx context.Context, domain string, recordID string) error {
	return p.registrar.DeleteDNSRecord(ctx, domain, recordID)
}
