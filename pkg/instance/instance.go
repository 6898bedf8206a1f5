package instance

import (
	"os"

	"github.com/angelmondragon/skuexport/pkg/env"
)

const fallbackID = "local"

// GetID returns an identifier for the running process: an explicit instance id,
// the platform dyno name, the hostname, or "local".
func GetID() string {
	if id := env.Get("SKUEXPORT_INSTANCE_ID", env.Get("DYNO", "")); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return fallbackID
}
