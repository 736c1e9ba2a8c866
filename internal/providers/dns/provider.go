package dns

import (
	"context"

	"github.com/opslake/subregops/internal/domain/entity"
)

// Provider is the least-common-denominator DNS surface shared by the
// registrar's own nameservers and the mirror services.
type Provider interface {
	Name() string
	ListDomains(ctx context.Context) ([]string, error)
	ListRecords(ctx context.Context, domain string) ([]entity.DNSRecord, error)
	CreateRecord(ctx context.Context, domain string, record *entity.DNSRecord) error
	UpdateRecord(ctx context.Context, domain string, recordID string, record *entity.DNSRecord) error
	DeleteRecord(ctx context.Context, domain string, recordID string) error
}
