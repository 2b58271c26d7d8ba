package config

import (
	"sync"

	"go.uber.org/zap"
)

// Resolver chooses the backend profile for this process and owns the
// "current profile" pointer. Exactly one profile is current at any time;
// switching it does not tear down in-flight sessions or the loaded index,
// so operators must treat a switch like a fresh process for those.
type Resolver struct {
	cfg    *Config
	logger *zap.Logger

	mu      sync.RWMutex
	current Profile
}

// NewResolver resolves the initial profile. An unresolvable explicit mode
// is fatal here, at startup.
func NewResolver(cfg *Config, logger *zap.Logger) (*Resolver, error) {
	r := &Resolver{cfg: cfg, logger: logger}

	profile, err := r.resolve()
	if err != nil {
		return nil, err
	}
	r.current = profile

	logger.Info("backend profile resolved",
		zap.String("mode", string(profile.Mode())),
		zap.String("profile", profile.Describe()),
	)
	return r, nil
}

// resolve applies the resolution order: explicit override, then the
// development environment signal, then production credential presence,
// then the cloud default.
func (r *Resolver) resolve() (Profile, error) {
	if r.cfg.ModeOverride != "" {
		mode, err := ParseMode(r.cfg.ModeOverride)
		if err != nil {
			return nil, err
		}
		return r.profileFor(mode), nil
	}

	if r.cfg.IsDevelopment() {
		return r.profileFor(ModeLocal), nil
	}

	if r.cfg.ProductionHost != "" && r.cfg.ProductionUsername != "" {
		return r.profileFor(ModeProduction), nil
	}

	return r.profileFor(ModeCloud), nil
}

func (r *Resolver) profileFor(mode Mode) Profile {
	switch mode {
	case ModeLocal:
		return LocalProfile{
			Address:      r.cfg.LocalEndpoint,
			DocumentRoot: r.cfg.LocalDocumentRoot,
		}
	case ModeProduction:
		return ProductionProfile{
			Host:      r.cfg.ProductionHost,
			ShareName: r.cfg.ProductionShare,
			Username:  r.cfg.ProductionUsername,
			Password:  r.cfg.ProductionPassword,
		}
	default:
		return CloudProfile{
			Address:      r.cfg.CloudEndpoint,
			StorageSpace: r.cfg.CloudStorageSpace,
			ServiceKey:   r.cfg.CloudServiceKey,
		}
	}
}

// Current returns the profile this process is addressing.
func (r *Resolver) Current() Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// CurrentMode implements auth.ModeSource.
func (r *Resolver) CurrentMode() string {
	return string(r.Current().Mode())
}

// SwitchMode atomically repoints the current profile. Operator-only.
func (r *Resolver) SwitchMode(mode string) (Profile, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	profile := r.profileFor(m)

	r.mu.Lock()
	r.current = profile
	r.mu.Unlock()

	r.logger.Info("backend profile switched",
		zap.String("mode", string(m)),
		zap.String("profile", profile.Describe()),
	)
	return profile, nil
}

// Recommendations returns static operator guidance for a profile. No side
// effects.
func Recommendations(p Profile) []string {
	switch p.(type) {
	case LocalProfile:
		return []string{
			"Local fixture mode is for development and integration tests only.",
			"Run 'corpusgen' to rebuild the document corpus if searches return no results.",
			"Switch to cloud mode before validating caller retry behaviour against real latency.",
		}
	case ProductionProfile:
		return []string{
			"Production share access requires the vessel network; probes are disabled ashore.",
			"Verify PRODUCTION_USERNAME has read access to the technical documents share.",
			"Coordinate outage simulations with the bridge before triggering them on board.",
		}
	default:
		return []string{
			"Cloud mode needs a CLOUD_SERVICE_KEY with read access to the storage space.",
			"Check the storage space identifier if probes succeed but listings are empty.",
			"Expect injected latency of up to 500ms per request in this environment.",
		}
	}
}
