package simulation

import (
	"github.com/andrescamacho/sc-commander/internal/domain/shared"
)

// GameSession owns the state of a single game and applies turns to it.
// It is not safe for concurrent use.
type GameSession struct {
	cfg    Config
	rng    shared.RandomSource
	opts   []EngineOption
	engine *TurnEngine
	state  GameState
}

// NewGameSession validates cfg and starts a game at week 1
func NewGameSession(cfg Config, rng shared.RandomSource, opts ...EngineOption) (*GameSession, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &GameSession{rng: rng, opts: opts}
	s.install(cfg)
	return s, nil
}

func (s *GameSession) install(cfg Config) {
	s.cfg = cfg.Clone()
	s.engine = NewTurnEngine(s.cfg, s.rng, s.opts...)
	s.state = NewGameState(s.cfg)
}

// Reset restarts the game with the current configuration
func (s *GameSession) Reset() GameState {
	s.state = NewGameState(s.cfg)
	return s.state.Clone()
}

// ResetWith restarts the game under a new configuration
func (s *GameSession) ResetWith(cfg Config) (GameState, error) {
	if err := cfg.Validate(); err != nil {
		return s.state.Clone(), err
	}
	s.install(cfg)
	return s.state.Clone(), nil
}

// Submit plays one week. An invalid decision leaves the state untouched.
func (s *GameSession) Submit(decision PlayerDecision) (TurnResult, error) {
	next, result, err := s.engine.Run(s.state, decision)
	if err != nil {
		return TurnResult{}, err
	}
	s.state = next
	return result, nil
}

// Snapshot returns a deep copy of the current state
func (s *GameSession) Snapshot() GameState {
	return s.state.Clone()
}

func (s *GameSession) IsTerminal() bool {
	return s.state.Terminal
}

// History returns a copy of every settled turn in order
func (s *GameSession) History() []TurnResult {
	return s.state.Clone().History
}

func (s *GameSession) Config() Config {
	return s.cfg.Clone()
}

func (s *GameSession) Week() int {
	return s.state.Week
}

// EffectiveLeadTime previews the lead time for an order placed this week
func (s *GameSession) EffectiveLeadTime(mode ShippingMode) int {
	return s.engine.EffectiveLeadTime(s.state, mode)
}

// KpiBand classifies the current reputation score
func (s *GameSession) KpiBand() KpiBand {
	return s.engine.Reputation().Band(s.state.KpiScore)
}

// BuyMarketIntel activates forecast hints. The cost is charged in the next settlement.
func (s *GameSession) BuyMarketIntel() error {
	if !s.cfg.Capabilities.HasMarketIntel {
		return ErrMarketIntelUnavailable
	}
	if s.state.Terminal {
		return newInvalidDecision("market_intel", "game is over")
	}
	if s.state.MarketIntelActive {
		return ErrMarketIntelAlreadyActive
	}
	if s.state.Cash < s.cfg.Intel.Cost {
		return &InsufficientFundsError{Required: s.cfg.Intel.Cost, Available: s.state.Cash}
	}
	s.state.MarketIntelActive = true
	s.state.IntelChargePending = s.cfg.Intel.Cost
	return nil
}

// Forecast returns hints for the coming weeks, or nil without market intelligence
func (s *GameSession) Forecast() []ForecastHint {
	if !s.state.MarketIntelActive || s.state.Terminal {
		return nil
	}
	return BuildForecast(s.cfg, s.engine.Events(), s.state.Week)
}
