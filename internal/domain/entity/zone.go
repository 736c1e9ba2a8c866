package entity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/opslake/subregops/internal/domain"
)

var domainRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// Zone is the desired record set for one registered domain, as declared in
// zones.yaml.
type Zone struct {
	Domain  string      `yaml:"domain"`
	Mirror  string      `yaml:"mirror,omitempty"`
	Records []DNSRecord `yaml:"records"`
}

func ValidDomainName(name string) bool {
	if strings.HasPrefix(name, "*.") {
		name = name[2:]
	}
	return name != "" && domainRegex.MatchString(name)
}

func (z *Zone) Validate() error {
	if z.Domain == "" {
		return fmt.Errorf("%w: zone domain is required", domain.ErrInvalidDomain)
	}
	if !ValidDomainName(z.Domain) {
		return fmt.Errorf("%w: invalid domain format %s", domain.ErrInvalidDomain, z.Domain)
	}
	seen := make(map[string]bool)
	for i := range z.Records {
		r := z.Records[i]
		r.Domain = z.Domain
		if err := r.Validate(); err != nil {
			return fmt.Errorf("records[%d]: %w", i, err)
		}
		key := r.Key()
		if seen[key] {
			return fmt.Errorf("%w: %s", domain.ErrRecordConflict, key)
		}
		seen[key] = true
	}
	return nil
}

// FlattenRecords returns the zone's records with the Domain field stamped in.
func (z *Zone) FlattenRecords() []DNSRecord {
	result := make([]DNSRecord, 0, len(z.Records))
	for _, r := range z.Records {
		record := r
		record.Domain = z.Domain
		result = append(result, record)
	}
	return result
}
