package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/golf-trip/internal/engine"
	"github.com/trentd187/golf-trip/internal/models"
)

func rosterPlayer(name string) models.TripPlayer {
	return models.TripPlayer{
		ID:         uuid.New(),
		User:       models.User{DisplayName: name},
		SkinsOptIn: true,
		TiltOptIn:  true,
	}
}

func balanceFor(t *testing.T, balances []engine.PlayerBalance, id string) float64 {
	t.Helper()
	for _, b := range balances {
		if b.PlayerID == id {
			return b.Amount
		}
	}
	t.Fatalf("no balance for %s", id)
	return 0
}

func TestFoldBalancesSkinsAntesOnlyParticipants(t *testing.T) {
	p1, p2, sitter := rosterPlayer("p1"), rosterPlayer("p2"), rosterPlayer("sitter")
	trip := models.Trip{
		SkinsEntryFee: 10,
		Players:       []models.TripPlayer{p1, p2, sitter},
	}

	// Two players fund a 20 pot; p1 takes it all. The sitter is opted in but
	// not in the round, so skins must not touch their balance.
	round := roundSkins{
		participants: []string{p1.ID.String(), p2.ID.String()},
		result: engine.SkinsResult{
			TotalPot: 20,
			PlayerTotals: []engine.SkinsPlayerTotal{
				{PlayerID: p1.ID.String(), SkinsWon: 2, MoneyWon: 20},
			},
		},
	}

	balances := foldBalances(trip, nil, []roundSkins{round}, nil)
	require.Equal(t, 10.0, balanceFor(t, balances, p1.ID.String()))
	require.Equal(t, -10.0, balanceFor(t, balances, p2.ID.String()))
	require.Equal(t, 0.0, balanceFor(t, balances, sitter.ID.String()))

	// Every dollar anted is a dollar won, so the balances settle clean.
	sum := 0.0
	for _, b := range balances {
		sum += b.Amount
	}
	require.InDelta(t, 0, sum, 0.001)
	transfers := engine.SimplifyDebts(balances)
	require.Len(t, transfers, 1)
	require.Equal(t, p2.ID.String(), transfers[0].FromID)
	require.Equal(t, p1.ID.String(), transfers[0].ToID)
}

func TestFoldBalancesDuesAndExpenses(t *testing.T) {
	p1, p2 := rosterPlayer("p1"), rosterPlayer("p2")
	p1.AmountPaid = 100
	trip := models.Trip{
		EntryFee: 100,
		Players:  []models.TripPlayer{p1, p2},
	}

	// p1 fronted 60, split 30/30.
	expense := models.Expense{
		PaidByID: p1.ID,
		Amount:   60,
		Splits: []models.ExpenseSplit{
			{TripPlayerID: p1.ID, Amount: 30, IsPayer: true},
			{TripPlayerID: p2.ID, Amount: 30},
		},
	}

	balances := foldBalances(trip, []models.Expense{expense}, nil, nil)
	require.Equal(t, 30.0, balanceFor(t, balances, p1.ID.String()))   // dues square, owed 30
	require.Equal(t, -130.0, balanceFor(t, balances, p2.ID.String())) // unpaid dues plus their share
}

func TestFoldBalancesTiltPotMatchesAntes(t *testing.T) {
	p1, p2, p3 := rosterPlayer("p1"), rosterPlayer("p2"), rosterPlayer("p3")
	trip := models.Trip{
		TiltEntryFee: 50,
		Players:      []models.TripPlayer{p1, p2, p3},
	}
	totals := map[string]int{
		p1.ID.String(): 30,
		p2.ID.String(): 20,
		p3.ID.String(): 10,
	}

	balances := foldBalances(trip, nil, nil, totals)
	// 150 pot pays 90/45/15; each player anted 50.
	require.Equal(t, 40.0, balanceFor(t, balances, p1.ID.String()))
	require.Equal(t, -5.0, balanceFor(t, balances, p2.ID.String()))
	require.Equal(t, -35.0, balanceFor(t, balances, p3.ID.String()))
}
