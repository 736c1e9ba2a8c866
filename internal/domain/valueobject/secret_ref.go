package valueobject

import (
	"fmt"
	"os"
	"strings"

	"github.com/opslake/subregops/internal/domain"
)

// SecretRef is either a plain YAML scalar, a `{secret: name}` reference into
// the secrets table, or an `env:NAME` scalar resolved from the process
// environment. Plaintext credentials never need to live in config files.
type SecretRef struct {
	Plain  string `yaml:"plain,omitempty"`
	Secret string `yaml:"secret,omitempty"`
}

const envPrefix = "env:"

func (s *SecretRef) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var plain string
	if err := unmarshal(&plain); err == nil {
		s.Plain = plain
		return nil
	}

	type alias SecretRef
	var ref alias
	if err := unmarshal(&ref); err != nil {
		return err
	}
	s.Plain = ref.Plain
	s.Secret = ref.Secret
	return nil
}

func (s SecretRef) MarshalYAML() (interface{}, error) {
	if s.Secret != "" {
		return map[string]string{"secret": s.Secret}, nil
	}
	return s.Plain, nil
}

func (s *SecretRef) Resolve(secrets map[string]string) (string, error) {
	if s.Secret != "" {
		val, ok := secrets[s.Secret]
		if !ok {
			return "", fmt.Errorf("%w: %s", domain.ErrMissingSecret, s.Secret)
		}
		return val, nil
	}
	if strings.HasPrefix(s.Plain, envPrefix) {
		name := strings.TrimPrefix(s.Plain, envPrefix)
		val, ok := os.LookupEnv(name)
		if !ok {
			return "", fmt.Errorf("%w: environment variable %s", domain.ErrMissingSecret, name)
		}
		return val, nil
	}
	return s.Plain, nil
}

func (s *SecretRef) Validate() error {
	if s.Plain == "" && s.Secret == "" {
		return domain.ErrEmptyValue
	}
	return nil
}
