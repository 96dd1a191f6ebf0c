package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	switch c.Provider.Type {
	case "local":
		// No credentials needed.
	case "openai":
		if c.Provider.OpenaiApiKey == "" {
			return errors.New("provider.openai_api_key is required when provider.type is 'openai'")
		}
	case "gemini":
		if c.Provider.GoogleApiKey == "" {
			return errors.New("provider.google_api_key is required when provider.type is 'gemini'")
		}
	default:
		return fmt.Errorf("provider.type must be 'local', 'openai' or 'gemini', got '%s'", c.Provider.Type)
	}

	if c.Language.MaxHypotheses <= 0 {
		return errors.New("language.max_hypotheses must be a positive integer")
	}
	for lang, boost := range c.Language.Hints {
		if lang == "" {
			return errors.New("language.hints contains an empty language code")
		}
		if boost < 0 {
			return fmt.Errorf("language.hints boost for '%s' must not be negative", lang)
		}
	}

	if c.Assets.FetchDelayMs < 0 {
		return errors.New("assets.fetch_delay_ms must not be negative")
	}

	if c.Worker.Concurrency <= 0 {
		return errors.New("worker.concurrency must be a positive integer")
	}
	for name, priority := range c.Worker.Queues {
		if name == "" {
			return errors.New("worker.queues contains an empty queue name")
		}
		if priority <= 0 {
			return fmt.Errorf("worker.queues priority for queue '%s' must be positive", name)
		}
	}
	return nil
}
