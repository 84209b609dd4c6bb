package distance

import (
	"fmt"

	"shiningstar/internal/app/config"
)

// FromConfig создает resolver по distance.mode. При cache == nil кэширование отключено.
func FromConfig(cfg config.DistanceConfig, cache Cache) (Resolver, error) {
	var r Resolver
	switch cfg.Mode {
	case config.DistanceModeTable:
		r = NewTable(cfg.Table)
	case config.DistanceModeMatrix:
		r = NewMatrixClient(cfg.Endpoint, cfg.APIKey, cfg.Timeout, cfg.Rate, cfg.Burst)
	default:
		return nil, fmt.Errorf("unknown distance mode %q", cfg.Mode)
	}

	if cache != nil {
		r = NewCached(r, cache, cfg.CacheTTL)
	}
	return r, nil
}
