package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/tick/internal/core/config"
)

// ConfigCheck reports on the config file and runs deep validation.
type ConfigCheck struct {
	cfg  *config.Config
	path string
}

// NewConfigCheck creates a new configuration check.
func NewConfigCheck(cfg *config.Config, path string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, path: path}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	switch _, err := os.Stat(c.path); {
	case c.path == "":
		result.Items = append(result.Items, CheckItem{Label: "Config file", Status: StatusPass, Detail: "none, using defaults"})
	case os.IsNotExist(err):
		result.Items = append(result.Items, CheckItem{Label: "Config file", Status: StatusPass, Detail: "not found, using defaults"})
	default:
		result.Items = append(result.Items, CheckItem{Label: "Config file", Status: StatusPass, Detail: c.path})
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "Theme",
		Status: StatusPass,
		Detail: c.cfg.Theme,
	})

	err := c.cfg.ValidateDeep(c.path)
	if err == nil {
		result.Items = append(result.Items, CheckItem{Label: "Validation", Status: StatusPass})
		return result
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		result.Items = append(result.Items, CheckItem{Label: "Validation", Status: StatusFail, Detail: err.Error()})
		return result
	}

	for _, fe := range fieldErrs {
		result.Items = append(result.Items, CheckItem{
			Label:  fe.Field,
			Status: StatusFail,
			Detail: fmt.Sprint(fe.Err),
		})
	}
	return result
}
