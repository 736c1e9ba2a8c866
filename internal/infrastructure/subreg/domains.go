package subreg

import (
	"context"

	"github.com/opslake/subregops/internal/domain"
	"github.com/opslake/subregops/internal/domain/entity"
	"github.com/opslake/subregops/internal/infrastructure/soap"
)

// CheckDomain reports whether a domain is available for registration.
func (c *Client) CheckDomain(ctx context.Context, name string) (bool, error) {
	data, err := c.call(ctx, "Check_Domain", soap.Params{
		{Key: "domain", Value: name},
	})
	if err != nil {
		return false, domain.WrapOp("check domain", err)
	}
	return data.Get("avail").Int() == 1, nil
}

// InfoDomain fetches the registrar's record of a single domain on the
// account.
func (c *Client) InfoDomain(ctx context.Context, name string) (*entity.DomainInfo, error) {
	data, err := c.call(ctx, "Info_Domain", soap.Params{
		{Key: "domain", Value: name},
	})
	if err != nil {
		return nil, domain.WrapEntity("domain", name, err)
	}

	info := &entity.DomainInfo{
		Name:         data.Get("name").String(),
		CreateDate:   data.Get("crDate").String(),
		ExpireDate:   data.Get("exDate").String(),
		Autorenew:    autorenewFromCode(data.Get("autorenew").Int()),
		RegistrantID: data.Get("registrant", "id").String(),
	}
	if info.Name == "" {
		info.Name = name
	}
	for _, ns := range data.Get("ns").List() {
		info.Nameservers = append(info.Nameservers, ns.String())
	}
	for _, st := range data.Get("status").List() {
		info.Status = append(info.Status, st.String())
	}
	return info, nil
}

// ListDomains returns every domain on the account with its expiration date.
func (c *Client) ListDomains(ctx context.Context) ([]entity.DomainListEntry, error) {
	data, err := c.call(ctx, "Domains_List", nil)
	if err != nil {
		return nil, domain.WrapOp("list domains", err)
	}

	items := data.Get("domains").List()
	entries := make([]entity.DomainListEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, entity.DomainListEntry{
			Name:       item.Get("name").String(),
			ExpireDate: item.Get("expire").String(),
			Autorenew:  item.Get("autorenew").Int(),
		})
	}
	return entries, nil
}

// SetAutorenew sets the expiration policy for a registered domain. The
// policy is validated locally before any network round trip.
func (c *Client) SetAutorenew(ctx context.Context, name string, policy entity.AutorenewPolicy) error {
	if _, err := entity.ParseAutorenewPolicy(string(policy)); err != nil {
		return err
	}
	_, err := c.call(ctx, "Set_Autorenew", soap.Params{
		{Key: "domain", Value: name},
		{Key: "autorenew", Value: string(policy)},
	})
	return domain.WrapEntity("domain", name, err)
}

func autorenewFromCode(code int) entity.AutorenewPolicy {
	switch code {
	case 1:
		return entity.AutorenewAuto
	case 2:
		return entity.AutorenewRenewOnce
	default:
		return entity.AutorenewExpire
	}
}
