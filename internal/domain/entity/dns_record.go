package entity

import (
	"fmt"
	"strings"

	"github.com/opslake/subregops/internal/domain"
)

type DNSRecordType string

const (
	DNSRecordTypeA     DNSRecordType = "A"
	DNSRecordTypeAAAA  DNSRecordType = "AAAA"
	DNSRecordTypeCNAME DNSRecordType = "CNAME"
	DNSRecordTypeMX    DNSRecordType = "MX"
	DNSRecordTypeTXT   DNSRecordType = "TXT"
	DNSRecordTypeNS    DNSRecordType = "NS"
	DNSRecordTypeSRV   DNSRecordType = "SRV"
	DNSRecordTypeSPF   DNSRecordType = "SPF"
)

var validRecordTypes = map[DNSRecordType]bool{
	DNSRecordTypeA:     true,
	DNSRecordTypeAAAA:  true,
	DNSRecordTypeCNAME: true,
	DNSRecordTypeMX:    true,
	DNSRecordTypeTXT:   true,
	DNSRecordTypeNS:    true,
	DNSRecordTypeSRV:   true,
	DNSRecordTypeSPF:   true,
}

// DNSRecord is a single record in a registrar-hosted zone. Name is the host
// part relative to the zone apex ("" or "@" for the apex itself), Content is
// the record value and Prio carries the MX/SRV preference.
type DNSRecord struct {
	ID      string        `yaml:"-"`
	Domain  string        `yaml:"-"`
	Name    string        `yaml:"name"`
	Type    DNSRecordType `yaml:"type"`
	Content string        `yaml:"content"`
	Prio    int           `yaml:"prio,omitempty"`
	TTL     int           `yaml:"ttl,omitempty"`
}

func (r *DNSRecord) Validate() error {
	if !validRecordTypes[r.Type] {
		return fmt.Errorf("%w: dns record type %s", domain.ErrInvalidType, r.Type)
	}
	if r.Content == "" {
		return domain.RequiredField("content")
	}
	if r.TTL < 0 {
		return fmt.Errorf("%w: ttl must be non-negative", domain.ErrInvalidTTL)
	}
	switch r.Type {
	case DNSRecordTypeMX, DNSRecordTypeSRV:
		if r.Prio < 0 {
			return fmt.Errorf("%w: prio must be non-negative", domain.ErrInvalidPrio)
		}
	default:
		if r.Prio != 0 {
			return fmt.Errorf("%w: prio is only valid for MX and SRV records", domain.ErrInvalidPrio)
		}
	}
	return nil
}

// Host returns the record name normalized for display: the zone apex is
// rendered as "@".
func (r *DNSRecord) Host() string {
	if r.Name == "" {
		return "@"
	}
	return r.Name
}

// FQDN returns the fully qualified host name within the record's domain.
func (r *DNSRecord) FQDN() string {
	if r.Name == "" || r.Name == "@" {
		return r.Domain
	}
	return r.Name + "." + r.Domain
}

// Key identifies a record within a record set. Zones legitimately hold
// several records under one (type, name) pair, so content is part of the
// identity and TTL/prio drift counts as an update to the same record.
func (r *DNSRecord) Key() string {
	return fmt.Sprintf("%s:%s:%s:%s", r.Domain, r.Type, r.Host(), strings.ToLower(r.Content))
}

func (r *DNSRecord) Equals(other *DNSRecord) bool {
	return r.Domain == other.Domain &&
		r.Type == other.Type &&
		r.Host() == other.Host() &&
		r.Content == other.Content &&
		r.Prio == other.Prio &&
		r.TTL == other.TTL
}
