package contract

import (
	"context"

	"github.com/opslake/subregops/internal/domain/entity"
)

// Registrar is the registrar-side API surface the rest of the tool depends
// on. The Subreg SOAP client is the production implementation; tests use
// in-memory fakes.
type Registrar interface {
	CheckDomain(ctx context.Context, domain string) (bool, error)
	InfoDomain(ctx context.Context, domain string) (*entity.DomainInfo, error)
	ListDomains(ctx context.Context) ([]entity.DomainListEntry, error)
	SetAutorenew(ctx context.Context, domain string, policy entity.AutorenewPolicy) error

	GetDNSZone(ctx context.Context, domain string) ([]entity.DNSRecord, error)
	AddDNSZone(ctx context.Context, domain, template string) error
	DeleteDNSZone(ctx context.Context, domain string) error
	SetDNSZone(ctx context.Context, domain string, records []entity.DNSRecord) error
	AddDNSRecord(ctx context.Context, domain string, record *entity.DNSRecord) (string, error)
	ModifyDNSRecord(ctx context.Context, domain string, record *entity.DNSRecord) error
	DeleteDNSRecord(ctx context.Context, domain, recordID string) error
}

// Account covers the non-DNS account commands.
type Account interface {
	GetCredit(ctx context.Context) (*entity.Credit, error)
	ListUsers(ctx context.Context) ([]entity.User, error)
	ListContacts(ctx context.Context) ([]entity.Contact, error)
	ListPricelists(ctx context.Context) ([]entity.Pricelist, error)
	ListDocuments(ctx context.Context) ([]entity.Document, error)
	PollGet(ctx context.Context) (*entity.PollEvent, error)
	PollAck(ctx context.Context, id int) error
}
