package service

import (
	"pointsbot/models"
)

// slotSymbols is the five-symbol alphabet each reel draws from
var slotSymbols = []string{"🍒", "🍋", "🔔", "💎", "7️⃣"}

// jackpotBucket pairs a payout multiplier with its probability mass
type jackpotBucket struct {
	multiplier float64
	chance     float64
}

// jackpotTable is the declared jackpot distribution, walked cumulatively
// in this order. The chances sum to 1.0.
var jackpotTable = []jackpotBucket{
	{multiplier: 0, chance: 0.40},
	{multiplier: 0.5, chance: 0.25},
	{multiplier: 1, chance: 0.20},
	{multiplier: 2, chance: 0.10},
	{multiplier: 5, chance: 0.04},
	{multiplier: 10, chance: 0.01},
}

// spinSlots draws three independent symbols. A triple pays 5x.
func spinSlots(rng Rand) ([]string, float64) {
	symbols := make([]string, 3)
	for i := range symbols {
		symbols[i] = slotSymbols[rng.Intn(len(slotSymbols))]
	}

	if symbols[0] == symbols[1] && symbols[1] == symbols[2] {
		return symbols, 5
	}
	return symbols, 0
}

// rollJackpot walks the cumulative distribution with a single uniform draw.
// The first bucket whose cumulative sum reaches the roll wins; if floating
// error leaves the total just short of the roll, the last bucket wins.
func rollJackpot(rng Rand) float64 {
	roll := rng.Float64()

	acc := 0.0
	for _, bucket := range jackpotTable {
		acc += bucket.chance
		if roll <= acc {
			return bucket.multiplier
		}
	}
	return jackpotTable[len(jackpotTable)-1].multiplier
}

// spinRoulette maps a uniform draw onto the wheel: green occupies [0, 0.027),
// red the next 0.4865, black the rest. Green pays 14x on a match, red and
// black pay 2x.
func spinRoulette(rng Rand, chosen models.RouletteColor) (models.RouletteColor, float64) {
	wheel := rng.Float64()

	rolled := models.RouletteBlack
	if wheel < 0.027 {
		rolled = models.RouletteGreen
	} else if wheel < 0.5135 {
		rolled = models.RouletteRed
	}

	if chosen != rolled {
		return rolled, 0
	}
	if rolled == models.RouletteGreen {
		return rolled, 14
	}
	return rolled, 2
}

// rollDice rolls two d6. Above seven doubles the stake, exactly seven
// returns it, below seven loses it.
func rollDice(rng Rand) ([2]int, int, float64) {
	rolls := [2]int{rng.Intn(6) + 1, rng.Intn(6) + 1}
	sum := rolls[0] + rolls[1]

	switch {
	case sum > 7:
		return rolls, sum, 2
	case sum == 7:
		return rolls, sum, 1
	default:
		return rolls, sum, 0
	}
}
