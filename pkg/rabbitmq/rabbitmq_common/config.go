package rabbitmq_common

import (
	"fmt"
	"strings"
)

// Config - общая часть конфигурации производителей
type Config struct {
	URL string
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return fmt.Errorf("rabbitmq: URL is required")
	}
	return nil
}
