package dns

import (
	"context"
	"fmt"
	"strconv"

	"github.com/opslake/subregops/internal/domain/entity"
)

// EnsureRecord converges one record: create it when missing, update it when
// the live copy drifted, do nothing when it already matches. Matching keys
// on (type, host, content) so multi-record sets stay intact.
func EnsureRecord(ctx context.Context, p Provider, domain string, record *entity.DNSRecord) error {
	live, err := p.ListRecords(ctx, domain)
	if err != nil {
		return err
	}

	record.Domain = domain
	for i := range live {
		live[i].Domain = domain
		if live[i].Key() != record.Key() {
			continue
		}
		if live[i].Equals(record) {
			return nil
		}
		return p.UpdateRecord(ctx, domain, live[i].ID, record)
	}
	return p.CreateRecord(ctx, domain, record)
}

// MirrorZone converges a whole desired record set onto a provider and
// deletes live records that are not part of it.
func MirrorZone(ctx context.Context, p Provider, domain string, desired []entity.DNSRecord) error {
	for i := range desired {
		if err := EnsureRecord(ctx, p, domain, &desired[i]); err != nil {
			return fmt.Errorf("ensure %s: %w", desired[i].FQDN(), err)
		}
	}

	wanted := make(map[string]bool, len(desired))
	for i := range desired {
		desired[i].Domain = domain
		wanted[desired[i].Key()] = true
	}

	live, err := p.ListRecords(ctx, domain)
	if err != nil {
		return err
	}
	for i := range live {
		live[i].Domain = domain
		if !wanted[live[i].Key()] {
			if err := p.DeleteRecord(ctx, domain, live[i].ID); err != nil {
				return fmt.Errorf("delete %s: %w", live[i].FQDN(), err)
			}
		}
	}
	return nil
}

// ClampTTL snaps a TTL onto the steps mirror services accept, rounding down.
func ClampTTL(ttl int) int {
	validTTLs := []int{1, 5, 10, 20, 30, 60, 120, 180, 300, 600, 900, 1800, 3600, 7200, 18000, 43200, 86400}
	if ttl <= 0 {
		return validTTLs[0]
	}
	result := validTTLs[0]
	for _, v := range validTTLs {
		if v <= ttl {
			result = v
		}
	}
	return result
}

func ParseTTL(ttlStr string) (int, error) {
	ttl, err := strconv.Atoi(ttlStr)
	if err != nil {
		return 0, fmt.Errorf("invalid TTL: %s", ttlStr)
	}
	return ClampTTL(ttl), nil
}
