package service

import (
	"github.com/opslake/subregops/internal/domain/entity"
	"github.com/opslake/subregops/internal/domain/valueobject"
)

// Differ computes the change set between the declared zone records and the
// live zone fetched from the registrar.
type Differ struct{}

func NewDiffer() *Differ {
	return &Differ{}
}

// DiffZone plans one domain. Records match by (type, host, content); a match
// with drifted TTL or prio becomes an update carrying the live record ID so
// the registrar modifies in place instead of delete-and-recreate.
func (d *Differ) DiffZone(plan *valueobject.Plan, domain string, desired, live []entity.DNSRecord) {
	liveMap := make(map[string]*entity.DNSRecord, len(live))
	for i := range live {
		live[i].Domain = domain
		liveMap[live[i].Key()] = &live[i]
	}

	desiredMap := make(map[string]*entity.DNSRecord, len(desired))
	for i := range desired {
		desired[i].Domain = domain
		desiredMap[desired[i].Key()] = &desired[i]
	}

	scope := plan.Scope()

	for key, want := range desiredMap {
		if !scope.MatchesRecord(domain, want.Host()) {
			continue
		}
		have, exists := liveMap[key]
		if !exists {
			plan.AddChange(valueobject.NewChange(
				valueobject.ChangeTypeCreate, "dns_record", key, nil, want))
			continue
		}
		if !have.Equals(want) {
			// carry the live ID so apply can Modify_DNS_Record
			update := *want
			update.ID = have.ID
			plan.AddChange(valueobject.NewChange(
				valueobject.ChangeTypeUpdate, "dns_record", key, have, &update))
		}
	}

	for key, have := range liveMap {
		if !scope.MatchesRecord(domain, have.Host()) {
			continue
		}
		if _, exists := desiredMap[key]; !exists {
			plan.AddChange(valueobject.NewChange(
				valueobject.ChangeTypeDelete, "dns_record", key, have, nil))
		}
	}
}

// DiffZones plans every declared zone against its live counterpart. Zones
// outside the plan scope are skipped entirely.
func (d *Differ) DiffZones(plan *valueobject.Plan, zones []entity.Zone, liveZones map[string][]entity.DNSRecord) {
	for i := range zones {
		zone := &zones[i]
		if !plan.Scope().MatchesDomain(zone.Domain) {
			continue
		}
		d.DiffZone(plan, zone.Domain, zone.FlattenRecords(), liveZones[zone.Domain])
	}
	plan.Sort()
}
