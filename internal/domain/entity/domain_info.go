package entity

import (
	"fmt"

	"github.com/opslake/subregops/internal/domain"
)

type AutorenewPolicy string

const (
	AutorenewExpire    AutorenewPolicy = "EXPIRE"
	AutorenewAuto      AutorenewPolicy = "AUTORENEW"
	AutorenewRenewOnce AutorenewPolicy = "RENEWONCE"
)

func ParseAutorenewPolicy(s string) (AutorenewPolicy, error) {
	switch AutorenewPolicy(s) {
	case AutorenewExpire, AutorenewAuto, AutorenewRenewOnce:
		return AutorenewPolicy(s), nil
	}
	return "", fmt.Errorf("%w: %s (allowed: EXPIRE, AUTORENEW, RENEWONCE)", domain.ErrInvalidPolicy, s)
}

// DomainInfo is the registrar's view of a registered domain.
type DomainInfo struct {
	Name         string          `yaml:"name"`
	CreateDate   string          `yaml:"create_date,omitempty"`
	ExpireDate   string          `yaml:"expire_date,omitempty"`
	Autorenew    AutorenewPolicy `yaml:"autorenew,omitempty"`
	Nameservers  []string        `yaml:"nameservers,omitempty"`
	Status       []string        `yaml:"status,omitempty"`
	RegistrantID string          `yaml:"registrant,omitempty"`
}

// DomainListEntry is one row of the account's domain list.
type DomainListEntry struct {
	Name       string `yaml:"name"`
	ExpireDate string `yaml:"expire"`
	Autorenew  int    `yaml:"autorenew,omitempty"`
}
