package subreg

import (
	"context"
	"strings"

	"github.com/opslake/subregops/internal/domain"
	"github.com/opslake/subregops/internal/domain/entity"
	"github.com/opslake/subregops/internal/infrastructure/soap"
)

// GoogleMXHosts is the canonical Google Workspace MX record set installed by
// SetGoogleMXRecords.
var GoogleMXHosts = []entity.DNSRecord{
	{Type: entity.DNSRecordTypeMX, Content: "ASPMX.L.GOOGLE.COM", Prio: 1, TTL: 3600},
	{Type: entity.DNSRecordTypeMX, Content: "ALT1.ASPMX.L.GOOGLE.COM", Prio: 5, TTL: 3600},
	{Type: entity.DNSRecordTypeMX, Content: "ALT2.ASPMX.L.GOOGLE.COM", Prio: 5, TTL: 3600},
	{Type: entity.DNSRecordTypeMX, Content: "ASPMX2.GOOGLEMAIL.COM", Prio: 10, TTL: 3600},
	{Type: entity.DNSRecordTypeMX, Content: "ASPMX3.GOOGLEMAIL.COM", Prio: 10, TTL: 3600},
}

// GetDNSZone lists all records of a hosted zone. A zone with no records is
// an empty slice, not an error: the endpoint simply omits the records key.
func (c *Client) GetDNSZone(ctx context.Context, name string) ([]entity.DNSRecord, error) {
	data, err := c.call(ctx, "Get_DNS_Zone", soap.Params{
		{Key: "domain", Value: name},
	})
	if err != nil {
		return nil, domain.WrapEntity("zone", name, err)
	}

	items := data.Get("records").List()
	records := make([]entity.DNSRecord, 0, len(items))
	for _, item := range items {
		records = append(records, entity.DNSRecord{
			ID:      item.Get("id").String(),
			Domain:  name,
			Name:    item.Get("name").String(),
			Type:    entity.DNSRecordType(item.Get("type").String()),
			Content: item.Get("content").String(),
			Prio:    item.Get("prio").Int(),
			TTL:     item.Get("ttl").Int(),
		})
	}
	return records, nil
}

// AddDNSZone creates the zone at the registrar's nameservers, optionally
// from a named zone template.
func (c *Client) AddDNSZone(ctx context.Context, name, template string) error {
	params := soap.Params{
		{Key: "domain", Value: name},
	}
	if template != "" {
		params = params.Set("template", template)
	}
	_, err := c.call(ctx, "Add_DNS_Zone", params)
	return domain.WrapEntity("zone", name, err)
}

// DeleteDNSZone removes the zone and every record in it.
func (c *Client) DeleteDNSZone(ctx context.Context, name string) error {
	_, err := c.call(ctx, "Delete_DNS_Zone", soap.Params{
		{Key: "domain", Value: name},
	})
	return domain.WrapEntity("zone", name, err)
}

// SetDNSZone replaces the complete record set of a zone.
func (c *Client) SetDNSZone(ctx context.Context, name string, records []entity.DNSRecord) error {
	items := make([]soap.Params, 0, len(records))
	for i := range records {
		items = append(items, recordParams(&records[i], false))
	}
	_, err := c.call(ctx, "Set_DNS_Zone", soap.Params{
		{Key: "domain", Value: name},
		{Key: "records", Value: items},
	})
	return domain.WrapEntity("zone", name, err)
}

// AddDNSRecord creates one record and returns its registrar-assigned ID.
func (c *Client) AddDNSRecord(ctx context.Context, name string, record *entity.DNSRecord) (string, error) {
	if err := record.Validate(); err != nil {
		return "", err
	}
	data, err := c.call(ctx, "Add_DNS_Record", soap.Params{
		{Key: "domain", Value: name},
		{Key: "record", Value: recordParams(record, false)},
	})
	if err != nil {
		return "", domain.WrapEntity("zone", name, err)
	}
	return data.Get("record_id").String(), nil
}

// ModifyDNSRecord updates an existing record in place; the record must carry
// the ID returned by AddDNSRecord or GetDNSZone.
func (c *Client) ModifyDNSRecord(ctx context.Context, name string, record *entity.DNSRecord) error {
	if record.ID == "" {
		return domain.RequiredField("record.id")
	}
	if err := record.Validate(); err != nil {
		return err
	}
	_, err := c.call(ctx, "Modify_DNS_Record", soap.Params{
		{Key: "domain", Value: name},
		{Key: "record", Value: recordParams(record, true)},
	})
	return domain.WrapEntity("zone", name, err)
}

// DeleteDNSRecord removes one record by ID.
func (c *Client) DeleteDNSRecord(ctx context.Context, name, recordID string) error {
	if recordID == "" {
		return domain.RequiredField("record.id")
	}
	_, err := c.call(ctx, "Delete_DNS_Record", soap.Params{
		{Key: "domain", Value: name},
		{Key: "record", Value: soap.Params{{Key: "id", Value: recordID}}},
	})
	return domain.WrapEntity("zone", name, err)
}

// SetGoogleMXRecords replaces every MX record in the zone with the Google
// Workspace set.
func (c *Client) SetGoogleMXRecords(ctx context.Context, name string) error {
	records, err := c.GetDNSZone(ctx, name)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].Type == entity.DNSRecordTypeMX {
			if err := c.DeleteDNSRecord(ctx, name, records[i].ID); err != nil {
				return err
			}
		}
	}
	for i := range GoogleMXHosts {
		record := GoogleMXHosts[i]
		if _, err := c.AddDNSRecord(ctx, name, &record); err != nil {
			return err
		}
	}
	return nil
}

// recordParams flattens a record into command arguments. The registrar
// rejects a trailing dot on content, so it is stripped here once instead of
// by every caller.
func recordParams(record *entity.DNSRecord, withID bool) soap.Params {
	params := soap.Params{}
	if withID {
		params = params.Set("id", record.ID)
	}
	params = params.Set("name", record.Name)
	params = params.Set("type", string(record.Type))
	params = params.Set("content", strings.TrimSuffix(record.Content, "."))
	// MX and SRV always carry their preference, even a zero one
	if record.Type == entity.DNSRecordTypeMX || record.Type == entity.DNSRecordTypeSRV {
		params = params.Set("prio", record.Prio)
	} else if record.Prio > 0 {
		params = params.Set("prio", record.Prio)
	}
	if record.TTL > 0 {
		params = params.Set("ttl", record.TTL)
	}
	return params
}
