package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dishoutapp/dishout/internal/phone"
	"github.com/dishoutapp/dishout/internal/trending"
)

// Policy is the regional tuning file: numbering plan, trending seeds and
// images, and the delivery providers offered per region. A deployment for
// another market ships a different policy file, not a fork.
type Policy struct {
	Phone     phone.Plan          `yaml:"phone"`
	Trending  trending.Policy     `yaml:"trending"`
	Providers map[string][]string `yaml:"providers"`
}

func DefaultPolicy() *Policy {
	return &Policy{
		Phone:     phone.DefaultPlan(),
		Trending:  trending.DefaultPolicy(),
		Providers: nil, // nil means the built-in provider tables
	}
}

// LoadPolicy reads the policy file at path, overlaying it on the defaults.
// An empty path returns the defaults; a missing or malformed file is an
// error, since a deployment that names a policy file means it.
func LoadPolicy(path string) (*Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, policy); err != nil {
		return nil, fmt.Errorf("parsing policy file %s: %w", path, err)
	}
	return policy, nil
}
