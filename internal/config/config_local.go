//go:build !gcloud

package config

// Enabled reports whether a NATS server is configured. Without one, event
// publishing is disabled.
func (c *PubSubConfig) Enabled() bool {
	return c.NatsURL != ""
}

func (c *PubSubConfig) Validate() error {
	return nil
}
