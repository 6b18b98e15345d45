package tools

import "sync"

// MarketRates holds the process-wide market exchange rate. It is shared
// by all sessions, so every access goes through one mutex.
type MarketRates struct {
	mu   sync.Mutex
	rate int
}

// NewMarketRates creates the rate setting with its configured default.
func NewMarketRates(defaultRate int) *MarketRates {
	return &MarketRates{rate: defaultRate}
}

// Current returns the rate in effect.
func (m *MarketRates) Current() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rate
}

// Set overrides the rate for the whole process.
func (m *MarketRates) Set(rate int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rate = rate
}
