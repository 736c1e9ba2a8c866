package dns

import (
	"context"
	"testing"

	"github.com/opslake/subregops/internal/domain/entity"
)

// fakeProvider keeps records in memory and counts mutations.
type fakeProvider struct {
	records []entity.DNSRecord
	nextID  int

	creates int
	updates int
	deletes int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ListDomains(ctx context.Context) ([]string, error) {
	return []string{"example.com"}, nil
}

func (f *fakeProvider) ListRecords(ctx context.Context, domain string) ([]entity.DNSRecord, error) {
	out := make([]entity.DNSRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeProvider) CreateRecord(ctx context.Context, domain string, record *entity.DNSRecord) error {
	f.creates++
	f.nextID++
	created := *record
	created.ID = string(rune('a' + f.nextID))
	f.records = append(f.records, created)
	return nil
}

func (f *fakeProvider) UpdateRecord(ctx context.Context, domain string, recordID string, record *entity.DNSRecord) error {
	f.updates++
	for i := range f.records {
		if f.records[i].ID == recordID {
			updated := *record
			updated.ID = recordID
			f.records[i] = updated
			return nil
		}
	}
	return nil
}

func (f *fakeProvider) DeleteRecord(ctx context.Context, domain string, recordID string) error {
	f.deletes++
	for i := range f.records {
		if f.records[i].ID == recordID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestEnsureRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing record", func(t *testing.T) {
		provider := &fakeProvider{}
		record := entity.DNSRecord{Type: entity.DNSRecordTypeA, Name: "www", Content: "1.2.3.4", TTL: 600}

		if err := EnsureRecord(ctx, provider, "example.com", &record); err != nil {
			t.Fatalf("EnsureRecord: %v", err)
		}
		if provider.creates != 1 || provider.updates != 0 {
			t.Errorf("creates=%d updates=%d", provider.creates, provider.updates)
		}
	})

	t.Run("updates drifted record", func(t *testing.T) {
		provider := &fakeProvider{records: []entity.DNSRecord{
			{ID: "x", Domain: "example.com", Type: entity.DNSRecordTypeA, Name: "www", Content: "1.2.3.4", TTL: 300},
		}}
		record := entity.DNSRecord{Type: entity.DNSRecordTypeA, Name: "www", Content: "1.2.3.4", TTL: 600}

		if err := EnsureRecord(ctx, provider, "example.com", &record); err != nil {
			t.Fatalf("EnsureRecord: %v", err)
		}
		if provider.updates != 1 || provider.creates != 0 {
			t.Errorf("creates=%d updates=%d", provider.creates, provider.updates)
		}
	})

	t.Run("leaves matching record alone", func(t *testing.T) {
		provider := &fakeProvider{records: []entity.DNSRecord{
			{ID: "x", Domain: "example.com", Type: entity.DNSRecordTypeA, Name: "www", Content: "1.2.3.4", TTL: 600},
		}}
		record := entity.DNSRecord{Type: entity.DNSRecordTypeA, Name: "www", Content: "1.2.3.4", TTL: 600}

		if err := EnsureRecord(ctx, provider, "example.com", &record); err != nil {
			t.Fatalf("EnsureRecord: %v", err)
		}
		if provider.creates != 0 || provider.updates != 0 || provider.deletes != 0 {
			t.Errorf("matching record must be a no-op, got creates=%d updates=%d deletes=%d",
				provider.creates, provider.updates, provider.deletes)
		}
	})
}

func TestMirrorZone(t *testing.T) {
	provider := &fakeProvider{records: []entity.DNSRecord{
		{ID: "keep", Type: entity.DNSRecordTypeA, Name: "www", Content: "1.2.3.4", TTL: 600},
		{ID: "stale", Type: entity.DNSRecordTypeTXT, Content: "old", TTL: 600},
	}}
	desired := []entity.DNSRecord{
		{Type: entity.DNSRecordTypeA, Name: "www", Content: "1.2.3.4", TTL: 600},
		{Type: entity.DNSRecordTypeMX, Content: "mail.example.com", Prio: 10, TTL: 3600},
	}

	if err := MirrorZone(context.Background(), provider, "example.com", desired); err != nil {
		t.Fatalf("MirrorZone: %v", err)
	}

	if provider.creates != 1 {
		t.Errorf("expected 1 create, got %d", provider.creates)
	}
	if provider.deletes != 1 {
		t.Errorf("expected 1 delete, got %d", provider.deletes)
	}
	if len(provider.records) != 2 {
		t.Errorf("expected 2 records after mirror, got %d", len(provider.records))
	}
	for _, r := range provider.records {
		if r.Content == "old" {
			t.Error("stale record survived the mirror")
		}
	}
}

func TestClampTTL(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{90, 60},
		{600, 600},
		{1799, 900},
		{1800, 1800},
		{100000, 86400},
	}
	for _, tt := range tests {
		if got := ClampTTL(tt.in); got != tt.want {
			t.Errorf("ClampTTL(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseTTL(t *testing.T) {
	ttl, err := ParseTTL("650")
	if err != nil {
		t.Fatalf("ParseTTL: %v", err)
	}
	if ttl != 600 {
		t.Errorf("ParseTTL(650) = %d, want 600", ttl)
	}

	if _, err := ParseTTL("soon"); err == nil {
		t.Error("expected an error for a non-numeric TTL")
	}
}
