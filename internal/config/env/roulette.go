package env

import (
	"fmt"
	"os"
	"time"

	"vaultory_backend/internal/config"

	"gopkg.in/yaml.v3"
)

// rouletteYAML - структура секции roulette в config.yaml
type rouletteYAML struct {
	Roulette struct {
		BaseCount        int     `yaml:"base_count"`
		SpinCount        int     `yaml:"spin_count"`
		ItemWidth        float64 `yaml:"item_width"`
		ViewportWidth    float64 `yaml:"viewport_width"`
		SpinDelayMs      int     `yaml:"spin_delay_ms"`
		SettleDurationMs int     `yaml:"settle_duration_ms"`
		RevealDelayMs    int     `yaml:"reveal_delay_ms"`
		PendingTTLMin    int     `yaml:"pending_ttl_minutes"`
	} `yaml:"roulette"`
}

type rouletteConfig struct {
	baseCount      int
	spinCount      int
	itemWidth      float64
	viewportWidth  float64
	spinDelay      time.Duration
	settleDuration time.Duration
	revealDelay    time.Duration
	pendingTTL     time.Duration
}

func NewRouletteConfigFromYAML(path string) (config.RouletteConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roulette config: %w", err)
	}

	var parsed rouletteYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse roulette config: %w", err)
	}

	r := parsed.Roulette

	// Дефолты для незаполненных значений
	if r.BaseCount <= 0 {
		r.BaseCount = 50
	}
	if r.SpinCount <= 0 {
		r.SpinCount = 4
	}
	if r.ItemWidth <= 0 {
		r.ItemWidth = 128
	}
	if r.ViewportWidth <= 0 {
		r.ViewportWidth = 640
	}
	if r.SpinDelayMs <= 0 {
		r.SpinDelayMs = 100
	}
	if r.SettleDurationMs <= 0 {
		r.SettleDurationMs = 6000
	}
	if r.RevealDelayMs <= 0 {
		r.RevealDelayMs = 500
	}
	if r.PendingTTLMin <= 0 {
		r.PendingTTLMin = 10
	}

	return &rouletteConfig{
		baseCount:      r.BaseCount,
		spinCount:      r.SpinCount,
		itemWidth:      r.ItemWidth,
		viewportWidth:  r.ViewportWidth,
		spinDelay:      time.Duration(r.SpinDelayMs) * time.Millisecond,
		settleDuration: time.Duration(r.SettleDurationMs) * time.Millisecond,
		revealDelay:    time.Duration(r.RevealDelayMs) * time.Millisecond,
		pendingTTL:     time.Duration(r.PendingTTLMin) * time.Minute,
	}, nil
}

func (cfg *rouletteConfig) BaseCount() int { return cfg.baseCount }
func (cfg *rouletteConfig) SpinCount() int { return cfg.spinCount }
func (cfg *rouletteConfig) ItemWidth() float64 { return cfg.itemWidth }
func (cfg *rouletteConfig) ViewportWidth() float64 { return cfg.viewportWidth }
func (cfg *rouletteConfig) SpinDelay() time.Duration { return cfg.spinDelay }
func (cfg *rouletteConfig) SettleDuration() time.Duration { return cfg.settleDuration }
func (cfg *rouletteConfig) RevealDelay() time.Duration { return cfg.revealDelay }
func (cfg *rouletteConfig) PendingTTL() time.Duration { return cfg.pendingTTL }
