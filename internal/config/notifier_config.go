package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type NotifierConfig struct {
	RetentionDays      int           `mapstructure:"retention_days"`
	FanoutWorkers      int           `mapstructure:"fanout_workers"`
	MaxWritesPerSecond float32       `mapstructure:"max_writes_per_second"`
	AlertsCacheTTL     time.Duration `mapstructure:"alerts_cache_ttl"`
}

func (config NotifierConfig) validate() error {
	var errs []error

	if config.RetentionDays <= 0 {
		errs = append(errs, fmt.Errorf("invalid variable: retention_days"))
	}
	if config.FanoutWorkers <= 0 {
		errs = append(errs, fmt.Errorf("invalid variable: fanout_workers"))
	}
	if config.AlertsCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("invalid variable: alerts_cache_ttl"))
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}

func (config NotifierConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("notifier.retention_days", "RETENTION_DAYS"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("notifier.fanout_workers", "FANOUT_WORKERS"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("notifier.max_writes_per_second", "MAX_WRITES_PER_SECOND"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("notifier.alerts_cache_ttl", "ALERTS_CACHE_TTL"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
