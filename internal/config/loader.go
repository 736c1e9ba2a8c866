package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/opslake/subregops/internal/domain"
	"github.com/opslake/subregops/internal/domain/entity"
)

// Loader reads the configuration directory: config.yaml (registrar login,
// mirror providers, backup target), secrets.yaml and zones.yaml. Missing
// optional files are simply skipped.
type Loader struct {
	baseDir string
	config  *entity.Config
}

func NewLoader(baseDir string) *Loader {
	return &Loader{
		baseDir: baseDir,
		config:  &entity.Config{},
	}
}

func (l *Loader) Load() (*entity.Config, error) {
	if _, err := os.Stat(l.baseDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: config directory does not exist: %s", domain.ErrConfigReadFailed, l.baseDir)
	}

	l.config = &entity.Config{}

	files := []struct {
		filename string
		required bool
		loader   func(string) error
	}{
		{"config.yaml", true, l.loadMain},
		{"secrets.yaml", false, l.loadSecrets},
		{"zones.yaml", false, l.loadZones},
	}

	for _, f := range files {
		filePath := filepath.Join(l.baseDir, f.filename)
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			if f.required {
				return nil, fmt.Errorf("%w: %s", domain.ErrConfigReadFailed, filePath)
			}
			continue
		}
		if err := f.loader(filePath); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f.filename, err)
		}
	}

	return l.config, nil
}

func (l *Loader) loadMain(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	type mainFile struct {
		Registrar entity.Registrar        `yaml:"registrar"`
		Providers []entity.MirrorProvider `yaml:"providers"`
		Backup    *entity.BackupTarget    `yaml:"backup"`
	}

	var mf mainFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConfigParseFailed, err)
	}

	l.config.Registrar = mf.Registrar
	l.config.Providers = mf.Providers
	l.config.Backup = mf.Backup
	return nil
}

func (l *Loader) loadSecrets(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	type secretsFile struct {
		Secrets []entity.Secret `yaml:"secrets"`
	}

	var sf secretsFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConfigParseFailed, err)
	}

	l.config.Secrets = sf.Secrets
	return nil
}

func (l *Loader) loadZones(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	type zonesFile struct {
		Zones []entity.Zone `yaml:"zones"`
	}

	var zf zonesFile
	if err := yaml.Unmarshal(data, &zf); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConfigParseFailed, err)
	}

	l.config.Zones = zf.Zones
	return nil
}

// Validate runs entity validation plus the cross-file reference checks.
func (l *Loader) Validate() error {
	if l.config == nil {
		return domain.ErrConfigValidateFail
	}

	if err := l.config.Validate(); err != nil {
		return err
	}

	if err := l.validateSecretReferences(); err != nil {
		return err
	}

	return l.validateMirrorReferences()
}

func (l *Loader) validateSecretReferences() error {
	secrets := l.config.GetSecretsMap()

	if name := l.config.Registrar.Password.Secret; name != "" {
		if _, ok := secrets[name]; !ok {
			return fmt.Errorf("%w: secret '%s' referenced by registrar password does not exist", domain.ErrMissingRef, name)
		}
	}

	for _, p := range l.config.Providers {
		for key, ref := range p.Credentials {
			if ref.Secret == "" {
				continue
			}
			if _, ok := secrets[ref.Secret]; !ok {
				return fmt.Errorf("%w: secret '%s' referenced by provider '%s' credential '%s' does not exist", domain.ErrMissingRef, ref.Secret, p.Name, key)
			}
		}
	}

	if b := l.config.Backup; b != nil && b.Password.Secret != "" {
		if _, ok := secrets[b.Password.Secret]; !ok {
			return fmt.Errorf("%w: secret '%s' referenced by backup password does not exist", domain.ErrMissingRef, b.Password.Secret)
		}
	}

	return nil
}

func (l *Loader) validateMirrorReferences() error {
	providers := l.config.GetProviderMap()
	for _, zone := range l.config.Zones {
		if zone.Mirror == "" {
			continue
		}
		if _, ok := providers[zone.Mirror]; !ok {
			return fmt.Errorf("%w: provider '%s' referenced by zone '%s' does not exist", domain.ErrMissingRef, zone.Mirror, zone.Domain)
		}
	}
	return nil
}

func (l *Loader) GetConfig() *entity.Config {
	return l.config
}
