// settlement.go — turning the trip's signed balances into the fewest
// payments, and splitting a shared expense into per-player shares.
package engine

import (
	"fmt"
	"sort"
)

// settleEpsilon treats sub-cent balances as settled; they are float residue,
// not debts anyone should Venmo.
const settleEpsilon = 0.01

// SimplifyDebts reduces a set of signed balances (positive = owed money,
// negative = owes money) to a minimal transfer list: repeatedly pair the
// largest creditor with the largest debtor and move as much as possible
// between them. Balances are fully fungible — transfers need not match the
// original expenses — and N non-zero balances settle in at most N−1
// payments.
func SimplifyDebts(balances []PlayerBalance) []Transfer {
	// Work on copies; callers keep their balances intact.
	var creditors, debtors []PlayerBalance
	for _, b := range balances {
		switch {
		case b.Amount > settleEpsilon:
			creditors = append(creditors, b)
		case b.Amount < -settleEpsilon:
			debtors = append(debtors, b)
		}
	}

	var transfers []Transfer
	for len(creditors) > 0 && len(debtors) > 0 {
		// Largest creditor and largest debtor by magnitude. IDs break ties so
		// a given set of balances always simplifies the same way.
		sort.Slice(creditors, func(i, j int) bool {
			if creditors[i].Amount != creditors[j].Amount {
				return creditors[i].Amount > creditors[j].Amount
			}
			return creditors[i].PlayerID < creditors[j].PlayerID
		})
		sort.Slice(debtors, func(i, j int) bool {
			if debtors[i].Amount != debtors[j].Amount {
				return debtors[i].Amount < debtors[j].Amount
			}
			return debtors[i].PlayerID < debtors[j].PlayerID
		})

		c, d := &creditors[0], &debtors[0]
		amount := c.Amount
		if -d.Amount < amount {
			amount = -d.Amount
		}
		transfers = append(transfers, Transfer{
			FromID: d.PlayerID,
			From:   d.Name,
			ToID:   c.PlayerID,
			To:     c.Name,
			Amount: round2(amount),
		})
		c.Amount -= amount
		d.Amount += amount

		if c.Amount <= settleEpsilon {
			creditors = creditors[1:]
		}
		if -d.Amount <= settleEpsilon {
			debtors = debtors[1:]
		}
	}
	return transfers
}

// CalculateExpenseSplits divides one paid expense into per-player shares.
//
//   - SplitEvenAll: split evenly among everyone; the payer's own share is
//     recorded too, flagged IsPayer.
//   - SplitEvenSome: split evenly among the selected players; the payer is
//     force-included even when not selected.
//   - SplitCustom: the caller supplies exact amounts per player.
//   - SplitFullPayback: one borrower owes the whole amount; the payer owes
//     nothing.
//
// The only hard error is a caller contract violation: a custom split naming
// a player not on the trip, or modes missing their required inputs. All
// amounts come back rounded to 2 decimal places.
func CalculateExpenseSplits(amount float64, mode SplitMode, allPlayers []string, payerID string, selected []string, custom map[string]float64) ([]ExpenseShare, error) {
	known := make(map[string]bool, len(allPlayers))
	for _, p := range allPlayers {
		known[p] = true
	}

	switch mode {
	case SplitEvenAll:
		return evenShares(amount, allPlayers, payerID), nil

	case SplitEvenSome:
		participants := selected
		included := false
		for _, p := range participants {
			if !known[p] {
				return nil, fmt.Errorf("even split references unknown player %q", p)
			}
			if p == payerID {
				included = true
			}
		}
		if !included {
			participants = append(append([]string{}, participants...), payerID)
		}
		return evenShares(amount, participants, payerID), nil

	case SplitCustom:
		if len(custom) == 0 {
			return nil, fmt.Errorf("custom split requires per-player amounts")
		}
		players := make([]string, 0, len(custom))
		for p := range custom {
			if !known[p] {
				return nil, fmt.Errorf("custom split references unknown player %q", p)
			}
			players = append(players, p)
		}
		sort.Strings(players)
		shares := make([]ExpenseShare, 0, len(players))
		for _, p := range players {
			shares = append(shares, ExpenseShare{
				PlayerID: p,
				Amount:   round2(custom[p]),
				IsPayer:  p == payerID,
			})
		}
		return shares, nil

	case SplitFullPayback:
		if len(selected) != 1 {
			return nil, fmt.Errorf("full payback requires exactly one borrower")
		}
		if !known[selected[0]] {
			return nil, fmt.Errorf("full payback references unknown player %q", selected[0])
		}
		return []ExpenseShare{{PlayerID: selected[0], Amount: round2(amount)}}, nil
	}
	return nil, fmt.Errorf("unknown split mode %q", mode)
}

func evenShares(amount float64, players []string, payerID string) []ExpenseShare {
	if len(players) == 0 {
		return nil
	}
	share := round2(amount / float64(len(players)))
	out := make([]ExpenseShare, 0, len(players))
	for _, p := range players {
		out = append(out, ExpenseShare{PlayerID: p, Amount: share, IsPayer: p == payerID})
	}
	return out
}
