package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/player-auction/internal/auction"
	"gopkg.in/yaml.v3"
)

// rulesFile mirrors the on-disk rules document. Sport keys are matched
// case-insensitively and missing fields keep their defaults.
type rulesFile struct {
	PurseLimit     *int                           `yaml:"purse_limit"`
	MaxSquadSize   *int                           `yaml:"max_squad_size"`
	BasePrice      *int                           `yaml:"base_price"`
	CategoryLimits map[string]auction.GradeLimits `yaml:"category_limits"`
}

// LoadRules reads tournament rules from a YAML (or JSON) file. An empty path
// yields the defaults.
func LoadRules(path string) (auction.Rules, error) {
	rules := auction.DefaultRules()
	if path == "" {
		return rules, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return auction.Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}
	rules, err = ParseRules(data)
	if err != nil {
		return auction.Rules{}, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	log.Info("Rules loaded from file", "path", path, "purse_limit", rules.PurseLimit, "max_squad_size", rules.MaxSquadSize, "base_price", rules.BasePrice)
	return rules, nil
}

// ParseRules decodes a rules document on top of the defaults.
func ParseRules(data []byte) (auction.Rules, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return auction.Rules{}, err
	}

	rules := auction.DefaultRules()
	if file.PurseLimit != nil {
		rules.PurseLimit = *file.PurseLimit
	}
	if file.MaxSquadSize != nil {
		rules.MaxSquadSize = *file.MaxSquadSize
	}
	if file.BasePrice != nil {
		rules.BasePrice = *file.BasePrice
	}
	for name, limits := range file.CategoryLimits {
		sport, ok := auction.ParseSport(name)
		if !ok {
			return auction.Rules{}, fmt.Errorf("unknown sport %q in category_limits", name)
		}
		rules.CategoryLimits[sport] = limits
	}
	return rules.Normalize()
}
