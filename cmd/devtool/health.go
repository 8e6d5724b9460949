package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/osse101/QuestAcademy_Go/internal/handler"
)

const (
	healthClientTimeout = 5 * time.Second
	healthSlowThreshold = time.Second
	stagingPort         = "8081"
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string { return "health-check" }

func (c *HealthCheckCommand) Description() string {
	return "Probe /healthz and /readyz of a running server [staging|production]"
}

func (c *HealthCheckCommand) Run(args []string) error {
	env := envProduction
	if len(args) > 0 {
		env = args[0]
	}
	base := "http://127.0.0.1:" + serverPort(env)

	section(fmt.Sprintf("Health check: %s (%s)", env, base))

	client := &http.Client{Timeout: healthClientTimeout}
	start := time.Now()
	for _, path := range []string{"/healthz", "/readyz"} {
		health, err := probeEndpoint(client, base+path)
		reportChecks(path, health)
		if err != nil {
			fail("%s: %v", path, err)
			return err
		}
	}

	if elapsed := time.Since(start); elapsed > healthSlowThreshold {
		warn("Healthy but slow (%v)", elapsed)
	} else {
		success("Healthy (%v)", elapsed)
	}
	return nil
}

func serverPort(env string) string {
	if env == envStaging {
		return stagingPort
	}
	return getEnv("PORT", "8080")
}

// probeEndpoint GETs url and decodes the health body. A non-200 status is an
// error, but the decoded body is still returned so failing checks can be shown.
func probeEndpoint(client *http.Client, url string) (handler.HealthResponse, error) {
	var health handler.HealthResponse

	resp, err := client.Get(url)
	if err != nil {
		return health, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return health, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return health, fmt.Errorf("status %d (%s)", resp.StatusCode, health.Status)
	}
	return health, nil
}

func reportChecks(path string, health handler.HealthResponse) {
	names := make([]string, 0, len(health.Checks))
	for name := range health.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		check := health.Checks[name]
		if check.Error != "" {
			fail("%s %s: %s (%s)", path, name, check.Status, check.Error)
			continue
		}
		note("%s %s: %s in %dms", path, name, check.Status, check.LatencyMS)
	}
}
