package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// solo builds a SkinsEntry for an individual player.
func solo(id string, net *int) SkinsEntry {
	return SkinsEntry{UnitID: id, Members: []string{id}, Net: net}
}

func skinsHole(n int, entries ...SkinsEntry) SkinsHole {
	return SkinsHole{Number: n, Entries: entries}
}

func TestSkinsOutrightWinner(t *testing.T) {
	res := ComputeSkins(SkinsInput{
		Holes: []SkinsHole{
			skinsHole(1, solo("a", intp(4)), solo("b", intp(5)), solo("c", intp(5))),
			skinsHole(2, solo("a", intp(4)), solo("b", intp(3)), solo("c", intp(5))),
		},
		EntryFee:    10,
		PlayerCount: 3,
	})
	require.Equal(t, 30.0, res.TotalPot)
	require.Equal(t, 15.0, res.SkinValue) // 30 / 2 evaluated holes
	require.Equal(t, 2, res.SkinsAwarded)
	require.Equal(t, "a", res.Holes[0].WinnerID)
	require.Equal(t, "b", res.Holes[1].WinnerID)
	require.Equal(t, []SkinsPlayerTotal{
		{PlayerID: "a", SkinsWon: 1, MoneyWon: 15},
		{PlayerID: "b", SkinsWon: 1, MoneyWon: 15},
	}, res.PlayerTotals)
}

func TestSkinsTieAwardsNothing(t *testing.T) {
	res := ComputeSkins(SkinsInput{
		Holes: []SkinsHole{
			skinsHole(1, solo("a", intp(4)), solo("b", intp(4)), solo("c", intp(6))),
		},
		EntryFee:    5,
		PlayerCount: 3,
	})
	require.Equal(t, 0, res.SkinsAwarded)
	require.Empty(t, res.PlayerTotals)
	require.Empty(t, res.Holes[0].WinnerID)
}

func TestSkinsNoCarryoverForfeitsTiedHoles(t *testing.T) {
	res := ComputeSkins(SkinsInput{
		Holes: []SkinsHole{
			skinsHole(1, solo("a", intp(4)), solo("b", intp(4))), // tie — stake forfeited
			skinsHole(2, solo("a", intp(3)), solo("b", intp(5))), // a wins one stake only
		},
		EntryFee:    10,
		PlayerCount: 2,
		Carryover:   false,
	})
	require.Equal(t, 10.0, res.SkinValue) // 20 / 2 evaluated
	require.Equal(t, 1, res.SkinsAwarded)
	require.Equal(t, []SkinsPlayerTotal{{PlayerID: "a", SkinsWon: 1, MoneyWon: 10}}, res.PlayerTotals)
}

func TestSkinsCarryoverAccumulates(t *testing.T) {
	res := ComputeSkins(SkinsInput{
		Holes: []SkinsHole{
			skinsHole(1, solo("a", intp(4)), solo("b", intp(4))), // carries
			skinsHole(2, solo("a", intp(5)), solo("b", intp(5))), // carries again
			skinsHole(3, solo("a", intp(3)), solo("b", intp(4))), // worth three stakes
			skinsHole(4, solo("a", intp(6)), solo("b", intp(4))), // back to one stake
		},
		EntryFee:    9,
		PlayerCount: 2,
		Carryover:   true,
	})
	require.Equal(t, 4.5, res.SkinValue) // 18 / 4 evaluated
	require.Equal(t, 2, res.SkinsAwarded)
	require.Equal(t, 3, res.Holes[2].SkinsWorth)
	require.Equal(t, 13.5, res.Holes[2].Money)
	require.Equal(t, []SkinsPlayerTotal{
		{PlayerID: "a", SkinsWon: 3, MoneyWon: 13.5},
		{PlayerID: "b", SkinsWon: 1, MoneyWon: 4.5},
	}, res.PlayerTotals)
}

func TestSkinsTrailingCarryoverIsDeadMoney(t *testing.T) {
	res := ComputeSkins(SkinsInput{
		Holes: []SkinsHole{
			skinsHole(1, solo("a", intp(3)), solo("b", intp(4))),
			skinsHole(2, solo("a", intp(4)), solo("b", intp(4))), // final hole ties — nobody collects
		},
		EntryFee:    10,
		PlayerCount: 2,
		Carryover:   true,
	})
	require.Equal(t, []SkinsPlayerTotal{{PlayerID: "a", SkinsWon: 1, MoneyWon: 10}}, res.PlayerTotals)

	total := 0.0
	for _, pt := range res.PlayerTotals {
		total += pt.MoneyWon
	}
	require.LessOrEqual(t, total, res.TotalPot)
}

func TestSkinsPayoutsNeverExceedPot(t *testing.T) {
	// 100 / 18 = 5.555… — rounding the stake before multiplying would pay
	// 18 × 5.56 = 100.08 out of a 100 pot.
	var holes []SkinsHole
	for n := 1; n <= 18; n++ {
		holes = append(holes, skinsHole(n, solo("a", intp(3)), solo("b", intp(5))))
	}
	res := ComputeSkins(SkinsInput{
		Holes:       holes,
		EntryFee:    10,
		PlayerCount: 10,
	})
	require.Equal(t, 100.0, res.TotalPot)
	require.Equal(t, 5.56, res.SkinValue)

	total := 0.0
	for _, pt := range res.PlayerTotals {
		total += pt.MoneyWon
	}
	require.LessOrEqual(t, total, res.TotalPot)
	require.Equal(t, []SkinsPlayerTotal{{PlayerID: "a", SkinsWon: 18, MoneyWon: 100}}, res.PlayerTotals)
}

func TestSkinsIncompleteHoleExcluded(t *testing.T) {
	res := ComputeSkins(SkinsInput{
		Holes: []SkinsHole{
			// c hasn't played the hole yet — a's low score must not win early.
			skinsHole(1, solo("a", intp(3)), solo("b", intp(5)), solo("c", nil)),
			skinsHole(2, solo("a", intp(4)), solo("b", intp(3)), solo("c", intp(5))),
		},
		EntryFee:    10,
		PlayerCount: 3,
	})
	require.Len(t, res.Holes, 1)
	require.Equal(t, 2, res.Holes[0].HoleNumber)
	require.Equal(t, 30.0, res.SkinValue) // only one evaluated hole
}

func TestSkinsTeamWinningsSplit(t *testing.T) {
	team := func(unit string, members []string, net int) SkinsEntry {
		return SkinsEntry{UnitID: unit, Members: members, Net: intp(net)}
	}
	res := ComputeSkins(SkinsInput{
		Holes: []SkinsHole{
			skinsHole(1,
				team("m1s1", []string{"a", "b"}, 3),
				team("m1s2", []string{"c", "d"}, 5),
			),
		},
		EntryFee:    10,
		PlayerCount: 4,
	})
	require.Equal(t, 40.0, res.TotalPot)
	require.Equal(t, []SkinsPlayerTotal{
		{PlayerID: "a", SkinsWon: 1, MoneyWon: 20},
		{PlayerID: "b", SkinsWon: 1, MoneyWon: 20},
	}, res.PlayerTotals)
}

func TestSkinsEmptyInput(t *testing.T) {
	res := ComputeSkins(SkinsInput{EntryFee: 10, PlayerCount: 4})
	require.Equal(t, 40.0, res.TotalPot)
	require.Equal(t, 0.0, res.SkinValue)
	require.Empty(t, res.Holes)
}
