// skins.go — the skins game.
//
// Every opted-in player antes the entry fee, and every evaluated hole carries
// one equal stake of the pot. Win a hole outright on net and the skin is
// yours; tie for low and nobody wins it. What happens to a tied hole's stake
// depends on the trip's carryover setting: forfeited, or rolled into the next
// decided hole.
//
// Team formats play skins as teams: the competing unit is the match side, and
// a side's winnings are split evenly among its opted-in members afterward.
// SCRAMBLE sides compete on gross (the team handicap already shaped the
// round); other team formats compete on team-handicap net.
package engine

import (
	"math"
	"sort"
)

// SkinsEntry is one competing unit's score on one hole. In individual games
// UnitID is a player ID and Members is just that player; in team games it is
// a match side and Members are the side's opted-in players.
type SkinsEntry struct {
	UnitID  string
	Members []string
	Net     *int // nil = not recorded yet
}

// SkinsHole is one hole's entries across all competing units.
type SkinsHole struct {
	Number  int
	Entries []SkinsEntry
}

// SkinsInput is everything the skins engine needs for one round.
type SkinsInput struct {
	Holes       []SkinsHole
	EntryFee    float64
	PlayerCount int  // opted-in players (pot = fee × count)
	Carryover   bool // roll tied holes' stakes forward
}

// ComputeSkins resolves a round of skins.
//
// A hole is evaluated only once every competing unit has a score on it —
// otherwise it is excluded entirely, so a skin is never awarded before all
// competitors have played the hole. The per-hole stake is
// totalPot / evaluatedHoles, in both carryover modes; with carryover on, a
// decided hole collects its own stake plus every stake rolled into it. Tied
// stakes with no later decided hole are dead money, which keeps total payouts
// within the pot.
func ComputeSkins(in SkinsInput) SkinsResult {
	result := SkinsResult{
		TotalPot: round2(in.EntryFee * float64(in.PlayerCount)),
	}

	// First pass: find the holes that can be evaluated at all.
	type evaluated struct {
		hole     SkinsHole
		winnerID string // empty = tied
		winners  []string
		lowNet   int
	}
	var holes []evaluated
	for _, h := range in.Holes {
		if len(h.Entries) == 0 {
			continue
		}
		complete := true
		for _, e := range h.Entries {
			if e.Net == nil {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}

		low := *h.Entries[0].Net
		lowCount := 0
		var lowUnit string
		for _, e := range h.Entries {
			if *e.Net < low {
				low = *e.Net
			}
		}
		for _, e := range h.Entries {
			if *e.Net == low {
				lowCount++
				lowUnit = e.UnitID
			}
		}

		ev := evaluated{hole: h, lowNet: low}
		if lowCount == 1 {
			ev.winnerID = lowUnit
			for _, e := range h.Entries {
				if e.UnitID == lowUnit {
					ev.winners = e.Members
				}
			}
		}
		holes = append(holes, ev)
	}

	if len(holes) == 0 {
		return result
	}
	// The stake stays unrounded while stakes are distributed; SkinValue is
	// rounded for display only. Rounding the stake first and multiplying
	// would let 18 holes at 5.555… pay out 18 × 5.56 — more than the pot.
	pot := in.EntryFee * float64(in.PlayerCount)
	stake := pot / float64(len(holes))
	result.SkinValue = round2(stake)

	// Second pass: distribute stakes hole by hole.
	memberMoney := make(map[string]float64)
	memberSkins := make(map[string]int)
	unresolved := 0
	for _, ev := range holes {
		hr := SkinsHoleResult{HoleNumber: ev.hole.Number, NetScore: ev.lowNet}
		if ev.winnerID == "" {
			// Tied: the stake rolls forward with carryover, dies without.
			if in.Carryover {
				unresolved++
			}
			result.Holes = append(result.Holes, hr)
			continue
		}

		stakes := 1 + unresolved
		unresolved = 0
		money := stake * float64(stakes)

		hr.WinnerID = ev.winnerID
		hr.SkinsWorth = stakes
		hr.Money = round2(money)
		result.Holes = append(result.Holes, hr)
		result.SkinsAwarded++

		// Split among the unit's opted-in members (a lone player gets it all).
		// Shares accumulate unrounded; totals are rounded once at the end.
		if n := len(ev.winners); n > 0 {
			share := money / float64(n)
			for _, m := range ev.winners {
				memberMoney[m] += share
				memberSkins[m] += stakes
			}
		}
	}

	players := make([]string, 0, len(memberMoney))
	for p := range memberMoney {
		players = append(players, p)
	}
	sort.Strings(players)
	for _, p := range players {
		result.PlayerTotals = append(result.PlayerTotals, SkinsPlayerTotal{
			PlayerID: p,
			SkinsWon: memberSkins[p],
			MoneyWon: round2(memberMoney[p]),
		})
	}
	return result
}

// round2 rounds to 2 decimal places. Money is rounded only at the boundary
// of money-producing results, never mid-fold, so rounding error can't
// compound across holes or rounds.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
