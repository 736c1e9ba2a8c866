package entity

import (
	"fmt"

	"github.com/opslake/subregops/internal/domain"
	"github.com/opslake/subregops/internal/domain/valueobject"
)

type ProviderType string

const (
	ProviderTypeSubreg     ProviderType = "subreg"
	ProviderTypeCloudflare ProviderType = "cloudflare"
	ProviderTypeAliyun     ProviderType = "aliyun"
	ProviderTypeTencent    ProviderType = "tencent"
)

// Registrar holds the Subreg SOAP login and endpoint.
type Registrar struct {
	Endpoint string                `yaml:"endpoint,omitempty"`
	Username string                `yaml:"username"`
	Password valueobject.SecretRef `yaml:"password"`
}

func (r *Registrar) Validate() error {
	if r.Username == "" {
		return domain.RequiredField("registrar.username")
	}
	if err := r.Password.Validate(); err != nil {
		return fmt.Errorf("registrar.password: %w", err)
	}
	return nil
}

// MirrorProvider is a third-party DNS service a zone can be replicated to.
type MirrorProvider struct {
	Name        string                           `yaml:"name"`
	Type        ProviderType                     `yaml:"type"`
	Credentials map[string]valueobject.SecretRef `yaml:"credentials"`
}

func (p *MirrorProvider) Validate() error {
	if p.Name == "" {
		return domain.RequiredField("provider.name")
	}
	switch p.Type {
	case ProviderTypeCloudflare, ProviderTypeAliyun, ProviderTypeTencent:
	default:
		return fmt.Errorf("%w: provider type %s", domain.ErrInvalidType, p.Type)
	}
	for key, ref := range p.Credentials {
		if err := ref.Validate(); err != nil {
			return fmt.Errorf("provider[%s].credentials[%s]: %w", p.Name, key, err)
		}
	}
	return nil
}

// BackupTarget is an SFTP destination for exported zone files.
type BackupTarget struct {
	Host     string                `yaml:"host"`
	Port     int                   `yaml:"port,omitempty"`
	User     string                `yaml:"user"`
	Password valueobject.SecretRef `yaml:"password"`
	Path     string                `yaml:"path"`
}

func (b *BackupTarget) Validate() error {
	if b.Host == "" {
		return domain.RequiredField("backup.host")
	}
	if b.User == "" {
		return domain.RequiredField("backup.user")
	}
	if b.Path == "" {
		return domain.RequiredField("backup.path")
	}
	return nil
}

type Secret struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Config aggregates everything loaded from the configuration directory.
type Config struct {
	Registrar Registrar        `yaml:"registrar"`
	Providers []MirrorProvider `yaml:"providers,omitempty"`
	Backup    *BackupTarget    `yaml:"backup,omitempty"`
	Secrets   []Secret         `yaml:"-"`
	Zones     []Zone           `yaml:"-"`
}

func (c *Config) Validate() error {
	if err := c.Registrar.Validate(); err != nil {
		return err
	}
	for i := range c.Providers {
		if err := c.Providers[i].Validate(); err != nil {
			return err
		}
	}
	if c.Backup != nil {
		if err := c.Backup.Validate(); err != nil {
			return err
		}
	}
	for i := range c.Zones {
		if err := c.Zones[i].Validate(); err != nil {
			return domain.WrapEntity("zone", c.Zones[i].Domain, err)
		}
	}
	return nil
}

func (c *Config) GetSecretsMap() map[string]string {
	m := make(map[string]string, len(c.Secrets))
	for _, s := range c.Secrets {
		m[s.Name] = s.Value
	}
	return m
}

func (c *Config) GetZoneMap() map[string]*Zone {
	m := make(map[string]*Zone, len(c.Zones))
	for i := range c.Zones {
		m[c.Zones[i].Domain] = &c.Zones[i]
	}
	return m
}

func (c *Config) GetProviderMap() map[string]*MirrorProvider {
	m := make(map[string]*MirrorProvider, len(c.Providers))
	for i := range c.Providers {
		m[c.Providers[i].Name] = &c.Providers[i]
	}
	return m
}

// GetAllDNSRecords flattens every zone's desired records.
func (c *Config) GetAllDNSRecords() []DNSRecord {
	var records []DNSRecord
	for i := range c.Zones {
		records = append(records, c.Zones[i].FlattenRecords()...)
	}
	return records
}
