package entity

import (
	"errors"
	"testing"

	"github.com/opslake/subregops/internal/domain"
)

func TestZone_Validate(t *testing.T) {
	tests := []struct {
		name    string
		zone    Zone
		wantErr error
	}{
		{
			name:    "missing domain",
			zone:    Zone{},
			wantErr: domain.ErrInvalidDomain,
		},
		{
			name:    "invalid domain format",
			zone:    Zone{Domain: "-bad-.example.com"},
			wantErr: domain.ErrInvalidDomain,
		},
		{
			name: "valid empty zone",
			zone: Zone{Domain: "example.com"},
		},
		{
			name: "valid records",
			zone: Zone{Domain: "example.com", Records: []DNSRecord{
				{Type: DNSRecordTypeA, Name: "www", Content: "1.2.3.4"},
				{Type: DNSRecordTypeMX, Content: "mail.example.com", Prio: 10},
				{Type: DNSRecordTypeMX, Content: "mail2.example.com", Prio: 20},
			}},
		},
		{
			name: "invalid record bubbles up",
			zone: Zone{Domain: "example.com", Records: []DNSRecord{
				{Type: DNSRecordTypeA, Name: "www"},
			}},
			wantErr: domain.ErrRequired,
		},
		{
			name: "duplicate record",
			zone: Zone{Domain: "example.com", Records: []DNSRecord{
				{Type: DNSRecordTypeA, Name: "www", Content: "1.2.3.4"},
				{Type: DNSRecordTypeA, Name: "www", Content: "1.2.3.4", TTL: 600},
			}},
			wantErr: domain.ErrRecordConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.zone.Validate()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestValidDomainName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"example.com", true},
		{"sub.example.co.uk", true},
		{"*.example.com", true},
		{"xn--krovinky-0db.cz", true},
		{"", false},
		{"*.", false},
		{"-bad.example.com", false},
		{"bad-.example.com", false},
	}
	for _, tt := range tests {
		if got := ValidDomainName(tt.name); got != tt.valid {
			t.Errorf("ValidDomainName(%q) = %v, want %v", tt.name, got, tt.valid)
		}
	}
}

func TestZone_FlattenRecords(t *testing.T) {
	zone := Zone{Domain: "example.com", Records: []DNSRecord{
		{Type: DNSRecordTypeA, Name: "www", Content: "1.2.3.4"},
		{Type: DNSRecordTypeTXT, Content: "v=spf1 -all"},
	}}

	flat := zone.FlattenRecords()
	if len(flat) != 2 {
		t.Fatalf("expected 2 records, got %d", len(flat))
	}
	for i, r := range flat {
		if r.Domain != "example.com" {
			t.Errorf("records[%d].Domain = %q, want example.com", i, r.Domain)
		}
	}
	if zone.Records[0].Domain != "" {
		t.Error("FlattenRecords must not mutate the zone")
	}
}

func TestParseAutorenewPolicy(t *testing.T) {
	for _, valid := range []string{"EXPIRE", "AUTORENEW", "RENEWONCE"} {
		policy, err := ParseAutorenewPolicy(valid)
		if err != nil {
			t.Errorf("ParseAutorenewPolicy(%q) unexpected error: %v", valid, err)
		}
		if string(policy) != valid {
			t.Errorf("ParseAutorenewPolicy(%q) = %q", valid, policy)
		}
	}

	if _, err := ParseAutorenewPolicy("renew"); !errors.Is(err, domain.ErrInvalidPolicy) {
		t.Errorf("expected ErrInvalidPolicy, got %v", err)
	}
}
