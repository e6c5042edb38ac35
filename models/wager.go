package models

// GameKind identifies a wagering game
type GameKind string

const (
	GameSlots    GameKind = "slots"
	GameJackpot  GameKind = "jackpot"
	GameRoulette GameKind = "roulette"
	GameDice     GameKind = "dice"
)

// RouletteColor is a bettable roulette pocket color
type RouletteColor string

const (
	RouletteRed   RouletteColor = "red"
	RouletteBlack RouletteColor = "black"
	RouletteGreen RouletteColor = "green"
)

// WagerResult represents the outcome of a single wager.
// Delta is the signed net change already applied to the account:
// floor(bet * multiplier) - bet.
type WagerResult struct {
	Game       GameKind
	Bet        int64
	Multiplier float64
	Payout     int64 // floor(bet * multiplier)
	Delta      int64
	NewBalance int64

	// Per-game detail for the presentation layer
	Symbols     []string      // slots: the three drawn symbols
	DiceRolls   [2]int        // dice: both die faces
	DiceSum     int           // dice: sum of both faces
	ChosenColor RouletteColor // roulette: the player's pick
	RolledColor RouletteColor // roulette: where the wheel landed
}

// Won reports whether the wager paid out more than the stake
func (r *WagerResult) Won() bool {
	return r.Delta > 0
}

// Push reports whether the stake was returned with no net change
func (r *WagerResult) Push() bool {
	return r.Delta == 0
}

// TransferResult represents the outcome of a completed transfer
type TransferResult struct {
	Amount     int64
	TargetID   int64
	NewBalance int64
}

// DailyBonusResult represents a successful daily bonus claim
type DailyBonusResult struct {
	Bonus      int64
	NewBalance int64
}
