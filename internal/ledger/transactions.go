package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Jay-Patell/AuctionBotLeague/internal/model"
)

// ApplySale settles a finalized sale in one transaction: debit the winning
// participant's purse, debit the buying team's purse, append the item to the
// roster. Every check runs before any mutation, so a failure is a clean
// abort.
func (l *Ledger) ApplySale(participantID string, teamID, itemID uuid.UUID, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("sale amount %d must be >= 0", amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.participants[participantID]
	if !ok {
		return fmt.Errorf("participant %s: %w", participantID, model.ErrNotFound)
	}
	team, ok := l.teams[teamID]
	if !ok {
		return fmt.Errorf("team %s: %w", teamID, model.ErrNotFound)
	}

	if amount > p.Purse {
		return fmt.Errorf("bid %d exceeds bidder purse %d: %w", amount, p.Purse, model.ErrInsufficientFunds)
	}
	if amount > team.Purse {
		return fmt.Errorf("bid %d exceeds team %q purse %d: %w", amount, team.Name, team.Purse, model.ErrInsufficientFunds)
	}
	if len(team.Roster) >= team.Capacity {
		return fmt.Errorf("team %q at %d/%d: %w", team.Name, len(team.Roster), team.Capacity, model.ErrCapacityExceeded)
	}
	for _, id := range team.Roster {
		if id == itemID {
			return fmt.Errorf("item %s on team %q: %w", itemID, team.Name, model.ErrDuplicate)
		}
	}

	p.Purse -= amount
	team.Purse -= amount
	team.Roster = append(team.Roster, itemID)

	l.logger.Info("sale applied",
		"team", team.Name,
		"participant", participantID,
		"item", itemID,
		"amount", amount,
		"team_purse", team.Purse,
	)
	return nil
}

// Trade moves an item between two rosters, honoring the receiving team's
// capacity. All-or-nothing.
func (l *Ledger) Trade(fromID, toID, itemID uuid.UUID) error {
	if fromID == toID {
		return fmt.Errorf("trade within team %s", fromID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	from, ok := l.teams[fromID]
	if !ok {
		return fmt.Errorf("team %s: %w", fromID, model.ErrNotFound)
	}
	to, ok := l.teams[toID]
	if !ok {
		return fmt.Errorf("team %s: %w", toID, model.ErrNotFound)
	}

	if len(to.Roster) >= to.Capacity {
		return fmt.Errorf("team %q at %d/%d: %w", to.Name, len(to.Roster), to.Capacity, model.ErrCapacityExceeded)
	}

	if err := l.removeFromRosterLocked(fromID, itemID); err != nil {
		return err
	}
	to.Roster = append(to.Roster, itemID)

	l.logger.Info("item traded", "item", itemID, "from", from.Name, "to", to.Name)
	return nil
}
