package session

import (
	"github.com/mitchellh/mapstructure"

	"github.com/amplifierhq/kernel/errors"
)

// Config is the decoded form of a session's configuration mapping. Only
// the paths the kernel itself reads through are given named fields; every
// other path — including arbitrary module-specific sub-schemas nested under
// "session" — survives untouched in Raw.
type Config struct {
	Orchestrator           string
	Context                string
	InjectionBudgetPerTurn int
	InjectionSizeLimit     int

	// Raw is the entire original configuration mapping, preserved verbatim
	// so module-specific schemas the kernel does not interpret round-trip
	// byte-for-byte.
	Raw map[string]any
}

// sessionSection mirrors the "session" sub-mapping's recognised keys for
// mapstructure decoding.
type sessionSection struct {
	Orchestrator           string `mapstructure:"orchestrator"`
	Context                string `mapstructure:"context"`
	InjectionBudgetPerTurn int    `mapstructure:"injection_budget_per_turn"`
	InjectionSizeLimit     int    `mapstructure:"injection_size_limit"`
}

// DecodeConfig decodes raw's "session" sub-mapping into a Config,
// validating that session.orchestrator and session.context are both
// present and non-empty. raw is retained whole as Config.Raw.
func DecodeConfig(raw map[string]any) (*Config, error) {
	sectionRaw, _ := raw["session"].(map[string]any)

	var section sessionSection
	if sectionRaw != nil {
		if err := mapstructure.Decode(sectionRaw, &section); err != nil {
			return nil, errors.NewSessionOtherError("decode session config: " + err.Error())
		}
	}

	if section.Orchestrator == "" {
		return nil, errors.NewConfigMissingError("session.orchestrator")
	}
	if section.Context == "" {
		return nil, errors.NewConfigMissingError("session.context")
	}

	return &Config{
		Orchestrator:           section.Orchestrator,
		Context:                section.Context,
		InjectionBudgetPerTurn: section.InjectionBudgetPerTurn,
		InjectionSizeLimit:     section.InjectionSizeLimit,
		Raw:                    raw,
	}, nil
}
