package config

import (
	"fmt"

	"github.com/opslake/subregops/internal/domain/entity"
	"github.com/opslake/subregops/internal/domain/valueobject"
)

type SecretResolver struct {
	secrets map[string]string
}

func NewSecretResolver(secrets []entity.Secret) *SecretResolver {
	s := &SecretResolver{
		secrets: make(map[string]string),
	}
	for _, secret := range secrets {
		s.secrets[secret.Name] = secret.Value
	}
	return s
}

func (r *SecretResolver) Resolve(ref valueobject.SecretRef) (string, error) {
	return ref.Resolve(r.secrets)
}

// ResolveAll rewrites every secret reference in the config to its resolved
// plaintext so downstream code never touches the secrets table.
func (r *SecretResolver) ResolveAll(cfg *entity.Config) error {
	val, err := r.Resolve(cfg.Registrar.Password)
	if err != nil {
		return fmt.Errorf("registrar.password: %w", err)
	}
	cfg.Registrar.Password = valueobject.SecretRef{Plain: val}

	for i := range cfg.Providers {
		for key, ref := range cfg.Providers[i].Credentials {
			val, err := r.Resolve(ref)
			if err != nil {
				return fmt.Errorf("providers[%s].credentials[%s]: %w", cfg.Providers[i].Name, key, err)
			}
			cfg.Providers[i].Credentials[key] = valueobject.SecretRef{Plain: val}
		}
	}

	if cfg.Backup != nil {
		val, err := r.Resolve(cfg.Backup.Password)
		if err != nil {
			return fmt.Errorf("backup.password: %w", err)
		}
		cfg.Backup.Password = valueobject.SecretRef{Plain: val}
	}

	return nil
}
