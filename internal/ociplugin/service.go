// Package ociplugin distributes precompiled shared-object plugin
// bundles over OCI registries: pull, verify, and cache a bundle in a
// local bundle directory. The search-root walker in internal/bank
// scans that directory only when it is listed among the host's scan
// roots; this package does not add it there.
package ociplugin

import (
	"log/slog"
	"os"
	"path/filepath"

	hostplugin "github.com/reglet-dev/reglet-host-sdk/plugin"
	hostoci "github.com/reglet-dev/reglet-host-sdk/plugin/oci"
	hostrepository "github.com/reglet-dev/reglet-host-sdk/plugin/repository"
	hostresolvers "github.com/reglet-dev/reglet-host-sdk/plugin/resolvers"
	hostservices "github.com/reglet-dev/reglet-host-sdk/plugin/services"
	hostsigning "github.com/reglet-dev/reglet-host-sdk/plugin/signing"

	"github.com/modbank-dev/modbank/internal/meta"
)

// ServiceConfig holds configuration for the bundle distribution stack.
type ServiceConfig struct {
	// CacheDir is where pulled bundles are stored. Default:
	// ~/.bankctl/bundles/
	CacheDir string

	// RequireSigning controls whether cosign signature verification is
	// mandatory for a pulled bundle.
	RequireSigning bool

	// Logger for bundle operations. If nil, uses slog.Default().
	Logger *slog.Logger
}

// Stack holds the initialized host-sdk components that distribute
// native .so bundles the way the host-sdk this package is adapted from
// distributes WASM binaries: the wire format changes, the distribution
// primitives (pull, cache, sign, resolve) do not.
type Stack struct {
	Service    *hostplugin.PluginService
	Repository *hostrepository.FSPluginRepository
}

// NewStack creates the full host-sdk bundle distribution stack.
func NewStack(cfg ServiceConfig) (*Stack, error) {
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultBundlesDir()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	authProvider := hostoci.NewEnvAuthProvider()
	registryAdapter := hostoci.NewOCIRegistryAdapter(authProvider)

	repository, err := hostrepository.NewFSPluginRepository(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	integrityVerifier := hostsigning.NewCosignVerifier(nil, nil)
	integrityService := hostservices.NewIntegrityService(cfg.RequireSigning)

	registryResolver := hostresolvers.NewRegistryPluginResolver(
		registryAdapter,
		repository,
		cfg.Logger,
	)
	cachedResolver := hostresolvers.NewCachedPluginResolver(repository)
	cachedResolver.SetNext(registryResolver)

	service := hostplugin.NewPluginService(
		repository,
		registryAdapter,
		hostplugin.WithResolver(cachedResolver),
		hostplugin.WithIntegrityVerifier(integrityVerifier),
		hostplugin.WithIntegrityService(integrityService),
		hostplugin.WithLogger(cfg.Logger),
	)

	return &Stack{
		Service:    service,
		Repository: repository,
	}, nil
}

// DefaultBundlesDir returns the default local bundle cache directory:
// ~/.bankctl/bundles/
func DefaultBundlesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+meta.AppName, "bundles")
	}
	return filepath.Join(home, "."+meta.AppName, "bundles")
}

// EnsureBundlesDir creates the bundle cache directory if it doesn't exist.
func EnsureBundlesDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
