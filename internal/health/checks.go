package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cardcomposer/internal/config"

	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

func NewHealthHandler(cfg *config.Config, httpClient *http.Client) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "cardcomposer",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:      "catalog",
				Timeout:   5 * time.Second,
				SkipOnErr: true,
				Check: func(ctx context.Context) error {
					req, err := http.NewRequestWithContext(ctx, http.MethodHead, cfg.Catalog.BaseURL, nil)
					if err != nil {
						return fmt.Errorf("failed to build catalog probe: %w", err)
					}

					resp, err := httpClient.Do(req)
					if err != nil {
						return fmt.Errorf("failed to reach catalog upstream: %w", err)
					}

					resp.Body.Close()

					return nil
				},
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
