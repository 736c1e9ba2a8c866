package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/opslake/subregops/internal/config"
	"github.com/opslake/subregops/internal/domain/entity"
	"github.com/opslake/subregops/internal/infrastructure/state"
	"github.com/opslake/subregops/internal/infrastructure/subreg"
)

// App bundles everything a command needs: validated config with resolved
// secrets, the authenticated registrar client and the local snapshot store.
type App struct {
	Config    *entity.Config
	Registrar *subreg.Client
	Store     *state.FileStore
}

func loadApp() (*App, error) {
	loader := config.NewLoader(ConfigDir)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := loader.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	resolver := config.NewSecretResolver(cfg.Secrets)
	if err := resolver.ResolveAll(cfg); err != nil {
		return nil, fmt.Errorf("resolving secrets: %w", err)
	}

	registrar := subreg.NewClient(
		cfg.Registrar.Endpoint,
		cfg.Registrar.Username,
		cfg.Registrar.Password.Plain,
	)

	return &App{
		Config:    cfg,
		Registrar: registrar,
		Store:     state.NewFileStore(filepath.Join(ConfigDir, "state", "zones.yaml")),
	}, nil
}

// mustLoadApp exits with a message on any config error, the way every
// command front door behaves.
func mustLoadApp() *App {
	app, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return app
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// printEntity dumps any entity as YAML under a title-cased heading.
func printEntity(kind, name string, v interface{}) {
	data, err := yaml.Marshal(v)
	if err != nil {
		fatalf("Error marshaling %s: %v", kind, err)
	}
	title := cases.Title(language.English).String(kind)
	if name != "" {
		fmt.Printf("%s: %s\n", title, name)
	} else {
		fmt.Println(title + ":")
	}
	fmt.Println(strings.TrimRight(string(data), "\n"))
}
