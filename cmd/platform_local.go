//go:build !gcloud

package main

import (
	"context"

	"github.com/KasumiMercury/primind-calendar-remind/internal/config"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/logging"
)

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    "calendar-remind",
			Version: Version,
		},
		Environment:   logging.EnvDev,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("reminder"),
		LogLevel:      logging.ParseLevel(cfg.Log.Level),
	})
}
