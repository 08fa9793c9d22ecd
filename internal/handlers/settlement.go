// settlement.go — shared expenses and the end-of-trip money math.
//
// Settlement folds everything a player owes or is owed — trip dues versus
// what they've paid, shared expenses fronted and owed, skins and TILT
// winnings net of their side-game entries — into one signed balance per
// player, then asks the engine for the fewest payments that zero everyone
// out. Balances are fungible: the transfers won't match the original
// expenses, and that's the point.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/golf-trip/internal/engine"
	"github.com/trentd187/golf-trip/internal/models"
)

// CreateExpenseRequest is the JSON body for POST /api/v1/trips/:id/expenses.
type CreateExpenseRequest struct {
	Description string             `json:"description"`
	Amount      float64            `json:"amount"`
	SplitMode   string             `json:"split_mode"`               // EVEN_ALL, EVEN_SOME, CUSTOM, FULL_PAYBACK
	Selected    []string           `json:"selected,omitempty"`       // trip_player IDs for EVEN_SOME / FULL_PAYBACK
	Custom      map[string]float64 `json:"custom_amounts,omitempty"` // trip_player ID -> amount for CUSTOM
}

// CreateExpense returns a handler for POST /api/v1/trips/:id/expenses.
// The authenticated user is the payer; the split is computed by the engine
// and stored alongside the expense. A custom split naming someone not on the
// trip is rejected before anything is written.
func CreateExpense(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		tripID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid trip ID"})
		}

		var req CreateExpenseRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Description == "" || req.Amount <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "description and a positive amount are required"})
		}

		// The payer must be on the roster.
		var payer models.TripPlayer
		if err := db.Where("trip_id = ? AND user_id = ?", tripID, userID).First(&payer).Error; err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not a member of this trip"})
		}

		var roster []models.TripPlayer
		if err := db.Where("trip_id = ?", tripID).Find(&roster).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load roster"})
		}
		rosterIDs := make([]string, 0, len(roster))
		for _, p := range roster {
			rosterIDs = append(rosterIDs, p.ID.String())
		}

		shares, err := engine.CalculateExpenseSplits(
			req.Amount, engine.SplitMode(req.SplitMode), rosterIDs, payer.ID.String(), req.Selected, req.Custom)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		var expense models.Expense
		txErr := db.Transaction(func(tx *gorm.DB) error {
			expense = models.Expense{
				TripID:      tripID,
				PaidByID:    payer.ID,
				Description: req.Description,
				Amount:      req.Amount,
				SplitMode:   engine.SplitMode(req.SplitMode),
			}
			if err := tx.Create(&expense).Error; err != nil {
				return err
			}
			for _, share := range shares {
				playerID, err := uuid.Parse(share.PlayerID)
				if err != nil {
					return err
				}
				split := models.ExpenseSplit{
					ExpenseID:    expense.ID,
					TripPlayerID: playerID,
					Amount:       share.Amount,
					IsPayer:      share.IsPayer,
				}
				if err := tx.Create(&split).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record expense"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": expense.ID.String(), "splits": shares})
	}
}

// SettlementResponse is the full picture: every player's signed balance and
// the minimal transfer list that settles them.
type SettlementResponse struct {
	Balances  []engine.PlayerBalance `json:"balances"`
	Transfers []engine.Transfer      `json:"transfers"`
}

// GetSettlement returns a handler for GET /api/v1/trips/:id/settlement.
func GetSettlement(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tripID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid trip ID"})
		}
		var trip models.Trip
		if err := db.Preload("Players.User").First(&trip, "id = ?", tripID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "trip not found"})
		}

		balances, err := tripBalances(db, trip)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute balances"})
		}
		return c.JSON(SettlementResponse{
			Balances:  balances,
			Transfers: engine.SimplifyDebts(balances),
		})
	}
}

// roundSkins is one round's skins outcome for settlement: who anted and what
// the engine paid out.
type roundSkins struct {
	participants []string
	result       engine.SkinsResult
}

// tripBalances loads everything settlement needs and folds it into one
// signed balance per player. Positive = the trip owes them.
func tripBalances(db *gorm.DB, trip models.Trip) ([]engine.PlayerBalance, error) {
	var expenses []models.Expense
	if err := db.Preload("Splits").Where("trip_id = ?", trip.ID).Find(&expenses).Error; err != nil {
		return nil, err
	}

	var rounds []models.Round
	if err := db.Preload("Trip").
		Preload("Tee.Holes", func(tx *gorm.DB) *gorm.DB { return tx.Order("hole_number") }).
		Preload("Matches.Players.TripPlayer").
		Where("trip_id = ?", trip.ID).Order("round_number").Find(&rounds).Error; err != nil {
		return nil, err
	}
	var skinsRounds []roundSkins
	for _, round := range rounds {
		input, participants, err := buildSkinsInput(db, round)
		if err != nil {
			return nil, err
		}
		if len(participants) == 0 {
			continue
		}
		skinsRounds = append(skinsRounds, roundSkins{
			participants: participants,
			result:       engine.ComputeSkins(input),
		})
	}

	tiltTotals := map[string]int{}
	if trip.TiltEntryFee > 0 {
		totals, _, err := replayTilt(db, trip, rounds, false)
		if err != nil {
			return nil, err
		}
		tiltTotals = totals
	}

	return foldBalances(trip, expenses, skinsRounds, tiltTotals), nil
}

// foldBalances is the settlement arithmetic, separated from the loading so
// the money flow can be checked on plain values. Every dollar it moves has a
// matching dollar somewhere else, so the balances always sum to zero (within
// rounding) and SimplifyDebts leaves no residue.
func foldBalances(trip models.Trip, expenses []models.Expense, skinsRounds []roundSkins, tiltTotals map[string]int) []engine.PlayerBalance {
	amounts := map[string]float64{}
	names := map[string]string{}

	optedTilt := 0
	for _, p := range trip.Players {
		id := p.ID.String()
		names[id] = p.User.DisplayName
		// Dues: what they've paid minus what the trip charges.
		amounts[id] += p.AmountPaid - trip.EntryFee
		if p.TiltOptIn {
			optedTilt++
		}
	}

	// Shared expenses: the payer fronted the full amount; every share owed
	// comes back out. The payer's own share cancels against their front.
	for _, e := range expenses {
		amounts[e.PaidByID.String()] += e.Amount
		for _, s := range e.Splits {
			amounts[s.TripPlayerID.String()] -= s.Amount
		}
	}

	// Skins: antes charge exactly the players who funded the round's pot —
	// opted-in players who are in the round. Charging the whole opted-in
	// roster would take money in that never reaches a pot, and the balances
	// would stop summing to zero.
	for _, rs := range skinsRounds {
		for _, id := range rs.participants {
			amounts[id] -= trip.SkinsEntryFee
		}
		for _, pt := range rs.result.PlayerTotals {
			amounts[pt.PlayerID] += pt.MoneyWon
		}
	}

	// TILT: one ante for the trip, paid out from the cumulative standings.
	if trip.TiltEntryFee > 0 && optedTilt > 0 {
		for _, p := range trip.Players {
			if p.TiltOptIn {
				amounts[p.ID.String()] -= trip.TiltEntryFee
			}
		}
		pot := trip.TiltEntryFee * float64(optedTilt)
		for _, payout := range engine.CalculateTiltPayouts(tiltTotals, pot) {
			amounts[payout.PlayerID] += payout.Money
		}
	}

	balances := make([]engine.PlayerBalance, 0, len(trip.Players))
	for _, p := range trip.Players {
		id := p.ID.String()
		balances = append(balances, engine.PlayerBalance{
			PlayerID: id,
			Name:     names[id],
			Amount:   amounts[id],
		})
	}
	return balances
}
