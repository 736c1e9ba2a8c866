package dns

import (
	"fmt"

	"github.com/opslake/subregops/internal/domain/entity"
	"github.com/opslake/subregops/internal/domain/valueobject"
)

type CreatorFunc func(provider *entity.MirrorProvider, secrets map[string]string) (Provider, error)

// Factory builds mirror providers from config credentials. The subreg
// provider is not built here: it wraps the already-authenticated registrar
// client instead of standalone credentials.
type Factory struct {
	creators map[entity.ProviderType]CreatorFunc
}

func NewFactory() *Factory {
	return &Factory{
		creators: map[entity.ProviderType]CreatorFunc{
			entity.ProviderTypeCloudflare: createCloudflare,
			entity.ProviderTypeAliyun:     createAliyun,
			entity.ProviderTypeTencent:    createTencent,
		},
	}
}

func (f *Factory) Create(provider *entity.MirrorProvider, secrets map[string]string) (Provider, error) {
	creator, ok := f.creators[provider.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported provider type: %s", provider.Type)
	}
	return creator(provider, secrets)
}

func (f *Factory) Register(providerType entity.ProviderType, creator CreatorFunc) {
	f.creators[providerType] = creator
}

func resolveCredential(creds map[string]valueobject.SecretRef, key string, secrets map[string]string) (string, error) {
	ref, ok := creds[key]
	if !ok {
		return "", fmt.Errorf("missing credential: %s", key)
	}
	return ref.Resolve(secrets)
}

func createCloudflare(provider *entity.MirrorProvider, secrets map[string]string) (Provider, error) {
	apiToken, err := resolveCredential(provider.Credentials, "api_token", secrets)
	if err != nil {
		return nil, fmt.Errorf("resolve api_token: %w", err)
	}
	return NewCloudflareProvider(apiToken), nil
}

func createAliyun(provider *entity.MirrorProvider, secrets map[string]string) (Provider, error) {
	accessKeyID, err := resolveCredential(provider.Credentials, "access_key_id", secrets)
	if err != nil {
		return nil, fmt.Errorf("resolve access_key_id: %w", err)
	}
	accessKeySecret, err := resolveCredential(provider.Credentials, "access_key_secret", secrets)
	if err != nil {
		return nil, fmt.Errorf("resolve access_key_secret: %w", err)
	}
	return NewAliyunProvider(accessKeyID, accessKeySecret)
}

func createTencent(provider *entity.MirrorProvider, secrets map[string]string) (Provider, error) {
	secretID, err := resolveCredential(provider.Credentials, "secret_id", secrets)
	if err != nil {
		return nil, fmt.Errorf("resolve secret_id: %w", err)
	}
	secretKey, err := resolveCredential(provider.Credentials, "secret_key", secrets)
	if err != nil {
		return nil, fmt.Errorf("resolve secret_key: %w", err)
	}
	return NewTencentProvider(secretID, secretKey)
}
