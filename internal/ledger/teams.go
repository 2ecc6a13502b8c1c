package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Jay-Patell/AuctionBotLeague/internal/model"
)

// CreateTeam registers a new team. Team names stay unique even though they
// are not keys; the generated ID is. The owner's participant record is
// created alongside when missing, seeded with the same purse.
func (l *Ledger) CreateTeam(name, ownerID string, capacity int, purse int64) (model.Team, error) {
	if name == "" {
		return model.Team{}, fmt.Errorf("team name is required")
	}
	if capacity < 1 {
		return model.Team{}, fmt.Errorf("capacity %d must be >= 1", capacity)
	}
	if purse < 0 {
		return model.Team{}, fmt.Errorf("purse %d must be >= 0", purse)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.teamsByName[name]; ok {
		return model.Team{}, fmt.Errorf("team %q: %w", name, model.ErrDuplicate)
	}

	team := &model.Team{
		ID:       uuid.New(),
		Name:     name,
		OwnerID:  ownerID,
		Capacity: capacity,
		Purse:    purse,
	}
	l.teams[team.ID] = team
	l.teamsByName[name] = team.ID

	if _, ok := l.participants[ownerID]; !ok {
		l.participants[ownerID] = &model.Participant{ID: ownerID, Purse: purse}
	}

	l.logger.Info("team created", "team", name, "owner", ownerID, "capacity", capacity, "purse", purse)
	return copyTeam(team), nil
}

// DeleteTeam removes a team. Forbidden while the roster is non-empty: sold
// items must be traded away first so no item ever dangles.
func (l *Ledger) DeleteTeam(teamID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	team, ok := l.teams[teamID]
	if !ok {
		return fmt.Errorf("team %s: %w", teamID, model.ErrNotFound)
	}
	if len(team.Roster) > 0 {
		return fmt.Errorf("team %q holds %d items: %w", team.Name, len(team.Roster), model.ErrNotEmpty)
	}

	delete(l.teams, teamID)
	delete(l.teamsByName, team.Name)
	l.logger.Info("team deleted", "team", team.Name)
	return nil
}

// Team returns a copy of a team record.
func (l *Ledger) Team(teamID uuid.UUID) (model.Team, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	team, ok := l.teams[teamID]
	if !ok {
		return model.Team{}, fmt.Errorf("team %s: %w", teamID, model.ErrNotFound)
	}
	return copyTeam(team), nil
}

// TeamByOwner returns the team owned by a participant.
func (l *Ledger) TeamByOwner(ownerID string) (model.Team, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, team := range l.teams {
		if team.OwnerID == ownerID {
			return copyTeam(team), nil
		}
	}
	return model.Team{}, fmt.Errorf("owner %s: %w", ownerID, model.ErrNotFound)
}

// Teams returns copies of all team records sorted by name.
func (l *Ledger) Teams() []model.Team {
	teams, _ := l.Export()
	return teams
}

// AddToRoster appends an item to a team's roster.
func (l *Ledger) AddToRoster(teamID, itemID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.addToRosterLocked(teamID, itemID)
}

func (l *Ledger) addToRosterLocked(teamID, itemID uuid.UUID) error {
	team, ok := l.teams[teamID]
	if !ok {
		return fmt.Errorf("team %s: %w", teamID, model.ErrNotFound)
	}
	if len(team.Roster) >= team.Capacity {
		return fmt.Errorf("team %q at %d/%d: %w", team.Name, len(team.Roster), team.Capacity, model.ErrCapacityExceeded)
	}
	for _, id := range team.Roster {
		if id == itemID {
			return fmt.Errorf("item %s on team %q: %w", itemID, team.Name, model.ErrDuplicate)
		}
	}
	team.Roster = append(team.Roster, itemID)
	return nil
}

// RemoveFromRoster drops an item from a team's roster.
func (l *Ledger) RemoveFromRoster(teamID, itemID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.removeFromRosterLocked(teamID, itemID)
}

func (l *Ledger) removeFromRosterLocked(teamID, itemID uuid.UUID) error {
	team, ok := l.teams[teamID]
	if !ok {
		return fmt.Errorf("team %s: %w", teamID, model.ErrNotFound)
	}
	for i, id := range team.Roster {
		if id == itemID {
			team.Roster = append(team.Roster[:i], team.Roster[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("item %s not on team %q: %w", itemID, team.Name, model.ErrNotFound)
}
