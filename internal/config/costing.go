package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CostingConfig holds tunable thresholds used by the costing, yield and
// ordering engines. Values ship with the defaults the kitchens expect;
// operators can override them in costing.yml without a redeploy.
type CostingConfig struct {
	// DefaultGSTRatePercent is applied when a calculator request enables
	// GST handling without supplying an explicit rate.
	DefaultGSTRatePercent float64 `mapstructure:"defaultGstRatePercent"`

	// Order urgency: shortfall/required ratios above these mark an
	// aggregated ingredient critical or needed.
	CriticalShortfallRatio float64 `mapstructure:"criticalShortfallRatio"`
	NeededShortfallRatio   float64 `mapstructure:"neededShortfallRatio"`

	// Yield trend heuristics.
	YieldStdDevThreshold     float64 `mapstructure:"yieldStdDevThreshold"`
	YieldAvgBelowTargetGap   float64 `mapstructure:"yieldAvgBelowTargetGap"`
	YieldConsecutiveBelow    int     `mapstructure:"yieldConsecutiveBelow"`
	PreparerBelowTargetGap   float64 `mapstructure:"preparerBelowTargetGap"`
}

func DefaultCostingConfig() CostingConfig {
	return CostingConfig{
		DefaultGSTRatePercent:  10,
		CriticalShortfallRatio: 0.8,
		NeededShortfallRatio:   0.3,
		YieldStdDevThreshold:   5,
		YieldAvgBelowTargetGap: 3,
		YieldConsecutiveBelow:  3,
		PreparerBelowTargetGap: 5,
	}
}

type CostingConfigHolder struct {
	current atomic.Value // holds CostingConfig
}

func NewCostingConfigHolder() (*CostingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("costing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/chefos/config")
	v.AddConfigPath("/etc/chefos")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CHEFOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultCostingConfig()
	v.SetDefault("costing.defaultGstRatePercent", defaults.DefaultGSTRatePercent)
	v.SetDefault("costing.criticalShortfallRatio", defaults.CriticalShortfallRatio)
	v.SetDefault("costing.neededShortfallRatio", defaults.NeededShortfallRatio)
	v.SetDefault("costing.yieldStdDevThreshold", defaults.YieldStdDevThreshold)
	v.SetDefault("costing.yieldAvgBelowTargetGap", defaults.YieldAvgBelowTargetGap)
	v.SetDefault("costing.yieldConsecutiveBelow", defaults.YieldConsecutiveBelow)
	v.SetDefault("costing.preparerBelowTargetGap", defaults.PreparerBelowTargetGap)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg CostingConfig
	if err := v.UnmarshalKey("costing", &cfg); err != nil {
		return nil, err
	}
	if err := validateCostingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &CostingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CostingConfig
		if err := v.UnmarshalKey("costing", &updated); err != nil {
			log.Printf("[costing-config] reload failed: %v", err)
			return
		}
		if err := validateCostingConfig(updated); err != nil {
			log.Printf("[costing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[costing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *CostingConfigHolder) Get() CostingConfig {
	return h.current.Load().(CostingConfig)
}

// HolderFor wraps a fixed config, for tests and callers that do not want
// file watching.
func HolderFor(cfg CostingConfig) *CostingConfigHolder {
	holder := &CostingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validateCostingConfig(cfg CostingConfig) error {
	if cfg.DefaultGSTRatePercent < 0 {
		return errors.New("costing.defaultGstRatePercent cannot be negative")
	}
	if cfg.CriticalShortfallRatio <= cfg.NeededShortfallRatio {
		return errors.New("costing.criticalShortfallRatio must exceed neededShortfallRatio")
	}
	if cfg.NeededShortfallRatio < 0 || cfg.CriticalShortfallRatio > 1 {
		return errors.New("costing shortfall ratios must stay within [0,1]")
	}
	if cfg.YieldConsecutiveBelow <= 0 {
		return errors.New("costing.yieldConsecutiveBelow must be positive")
	}
	return nil
}
