package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRewind loads game tuning.
// Search order: customPath -> ~/.rewind/configs/rewind.yaml -> ./configs/rewind.yaml -> embedded default
func LoadRewind(customPath string) (RewindConfig, error) {
	cfg := DefaultRewindConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("configs", "rewind.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultRewindConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/rewind.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultRewindConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultRewindYAML, &cfg); err != nil {
		return DefaultRewindConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadLevels loads every level file keyed by id.
// Search order per file: customDir -> ~/.rewind/levels -> ./configs/levels -> embedded.
// A level found earlier in the order shadows one with the same id later on.
func LoadLevels(customDir string) (map[string]Level, error) {
	levels := make(map[string]Level)

	if customDir != "" {
		if err := loadLevelDir(os.DirFS(customDir), ".", levels); err != nil {
			return nil, err
		}
	}
	if dir := userConfigPath("levels"); dir != "" {
		if _, err := os.Stat(dir); err == nil {
			if err := loadLevelDir(os.DirFS(dir), ".", levels); err != nil {
				return nil, err
			}
		}
	}
	if _, err := os.Stat("configs/levels"); err == nil {
		if err := loadLevelDir(os.DirFS("configs/levels"), ".", levels); err != nil {
			return nil, err
		}
	}
	if err := loadLevelDir(defaultLevels, "levels", levels); err != nil {
		return nil, err
	}
	return levels, nil
}

// ParseLevel decodes and validates a single level file.
func ParseLevel(data []byte) (Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return lvl, fmt.Errorf("failed to parse level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return lvl, err
	}
	return lvl, nil
}

func loadLevelDir(fsys fs.FS, dir string, into map[string]Level) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read levels %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(dir, e.Name())))
		if err != nil {
			return fmt.Errorf("failed to read level %s: %w", e.Name(), err)
		}
		lvl, err := ParseLevel(data)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
		if _, ok := into[lvl.ID]; !ok {
			into[lvl.ID] = lvl
		}
	}
	return nil
}

// CampaignOrder returns the levels to play in order. Ids listed in the
// campaign come first; any other loaded levels follow sorted by id.
func CampaignOrder(cfg CampaignConfig, levels map[string]Level) ([]Level, error) {
	seen := make(map[string]bool)
	order := make([]Level, 0, len(levels))
	for _, id := range cfg.Levels {
		lvl, ok := levels[id]
		if !ok {
			return nil, fmt.Errorf("campaign level %q not found", id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, lvl)
	}

	var rest []string
	for id := range levels {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		order = append(order, levels[id])
	}
	return order, nil
}

// userConfigPath returns a path under ~/.rewind, or empty if home is unavailable.
func userConfigPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, ".rewind"}, elem...)...)
}

// ApplyRewindPreset modifies the config based on a difficulty preset.
func ApplyRewindPreset(cfg *RewindConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust survivability based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHealth *= 1.5
		cfg.Player.RewindCooldown *= 0.75
	case DifficultyHard:
		cfg.Player.MaxHealth *= 0.6
		cfg.Player.RewindCooldown *= 1.5
	}
}
