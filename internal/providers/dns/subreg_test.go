package dns

import (
	"context"
	"strconv"
	"testing"

	"github.com/opslake/subregops/internal/domain"
	"github.com/opslake/subregops/internal/domain/entity"
)

// fakeRegistrarAPI is an in-memory registrar backing the SubregProvider
// adapter tests.
type fakeRegistrarAPI struct {
	zones  map[string][]entity.DNSRecord
	nextID int
}

func newFakeRegistrarAPI(domains ...string) *fakeRegistrarAPI {
	f := &fakeRegistrarAPI{zones: make(map[string][]entity.DNSRecord)}
	for _, d := range domains {
		f.zones[d] = []entity.DNSRecord{}
	}
	return f
}

func (f *fakeRegistrarAPI) CheckDomain(ctx context.Context, domain string) (bool, error) {
	_, hosted := f.zones[domain]
	return !hosted, nil
}

func (f *fakeRegistrarAPI) InfoDomain(ctx context.Context, domain string) (*entity.DomainInfo, error) {
	return &entity.DomainInfo{}, nil
}

func (f *fakeRegistrarAPI) ListDomains(ctx context.Context) ([]entity.DomainListEntry, error) {
	entries := make([]entity.DomainListEntry, 0, len(f.zones))
	for d := range f.zones {
		entries = append(entries, entity.DomainListEntry{Name: d})
	}
	return entries, nil
}

func (f *fakeRegistrarAPI) SetAutorenew(ctx context.Context, domain string, policy entity.AutorenewPolicy) error {
	return nil
}

func (f *fakeRegistrarAPI) GetDNSZone(ctx context.Context, domainName string) ([]entity.DNSRecord, error) {
	records, ok := f.zones[domainName]
	if !ok {
		return nil, domain.ErrZoneNotFound
	}
	out := make([]entity.DNSRecord, len(records))
	copy(out, records)
	return out, nil
}

func (f *fakeRegistrarAPI) AddDNSZone(ctx context.Context, domainName, template string) error {
	f.zones[domainName] = []entity.DNSRecord{}
	return nil
}

func (f *fakeRegistrarAPI) DeleteDNSZone(ctx context.Context, domainName string) error {
	delete(f.zones, domainName)
	return nil
}

func (f *fakeRegistrarAPI) SetDNSZone(ctx context.Context, domainName string, records []entity.DNSRecord) error {
	f.zones[domainName] = records
	return nil
}

func (f *fakeRegistrarAPI) AddDNSRecord(ctx context.Context, domainName string, record *entity.DNSRecord) (string, error) {
	if _, ok := f.zones[domainName]; !ok {
		return "", domain.ErrZoneNotFound
	}
	f.nextID++
	created := *record
	created.ID = strconv.Itoa(f.nextID)
	created.Domain = domainName
	f.zones[domainName] = append(f.zones[domainName], created)
	return created.ID, nil
}

func (f *fakeRegistrarAPI) ModifyDNSRecord(ctx context.Context, domainName string, record *entity.DNSRecord) error {
	records := f.zones[domainName]
	for i := range records {
		if records[i].ID == record.ID {
			records[i] = *record
			records[i].Domain = domainName
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

func (f *fakeRegistrarAPI) DeleteDNSRecord(ctx context.Context, domainName, recordID string) error {
	records := f.zones[domainName]
	for i := range records {
		if records[i].ID == recordID {
			f.zones[domainName] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

func TestSubregProvider_RecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	registrar := newFakeRegistrarAPI("example.com")
	provider := NewSubregProvider(registrar)

	if provider.Name() != "subreg" {
		t.Errorf("Name() = %q", provider.Name())
	}

	record := entity.DNSRecord{Type: entity.DNSRecordTypeA, Name: "www", Content: "1.2.3.4", TTL: 600}
	if err := provider.CreateRecord(ctx, "example.com", &record); err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}

	live, err := provider.ListRecords(ctx, "example.com")
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(live) != 1 || live[0].ID == "" {
		t.Fatalf("live = %+v", live)
	}

	changed := record
	changed.TTL = 3600
	if err := provider.UpdateRecord(ctx, "example.com", live[0].ID, &changed); err != nil {
		t.Fatalf("UpdateRecord: %v", err)
	}
	live, _ = provider.ListRecords(ctx, "example.com")
	if live[0].TTL != 3600 || live[0].ID == "" {
		t.Errorf("update must keep the record ID, got %+v", live[0])
	}

	if err := provider.DeleteRecord(ctx, "example.com", live[0].ID); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
	live, _ = provider.ListRecords(ctx, "example.com")
	if len(live) != 0 {
		t.Errorf("expected empty zone, got %+v", live)
	}
}

func TestSubregProvider_ListDomains(t *testing.T) {
	provider := NewSubregProvider(newFakeRegistrarAPI("example.com", "example.org"))

	domains, err := provider.ListDomains(context.Background())
	if err != nil {
		t.Fatalf("ListDomains: %v", err)
	}
	if len(domains) != 2 {
		t.Fatalf("domains = %v", domains)
	}
	seen := map[string]bool{}
	for _, d := range domains {
		seen[d] = true
	}
	if !seen["example.com"] || !seen["example.org"] {
		t.Errorf("domains = %v", domains)
	}
}

func TestMirrorZone_OntoRegistrar(t *testing.T) {
	registrar := newFakeRegistrarAPI("example.com")
	registrar.zones["example.com"] = []entity.DNSRecord{
		{ID: "1", Type: entity.DNSRecordTypeA, Name: "www", Content: "1.2.3.4", TTL: 600},
		{ID: "2", Type: entity.DNSRecordTypeTXT, Content: "stale", TTL: 600},
	}
	registrar.nextID = 2
	desired := []entity.DNSRecord{
		{Type: entity.DNSRecordTypeA, Name: "www", Content: "1.2.3.4", TTL: 600},
		{Type: entity.DNSRecordTypeMX, Content: "mail.example.com", Prio: 10, TTL: 3600},
	}

	provider := NewSubregProvider(registrar)
	if err := MirrorZone(context.Background(), provider, "example.com", desired); err != nil {
		t.Fatalf("MirrorZone: %v", err)
	}

	live := registrar.zones["example.com"]
	if len(live) != 2 {
		t.Fatalf("expected 2 records after mirror, got %+v", live)
	}
	for _, r := range live {
		if r.Content == "stale" {
			t.Error("stale record survived the mirror")
		}
	}
}
