//go:build gcloud

package main

import (
	"context"
	"os"

	"github.com/KasumiMercury/primind-calendar-remind/internal/config"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/logging"
)

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "calendar-remind"
	}

	env := logging.EnvProd
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = cfg.PubSub.GCloudProjectID
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		GCPProjectID:  projectID,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("reminder"),
		LogLevel:      logging.ParseLevel(cfg.Log.Level),
	})
}
