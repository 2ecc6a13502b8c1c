package ledger

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Jay-Patell/AuctionBotLeague/internal/model"
)

// Ledger owns team and participant records. All mutations go through its
// operations and are applied as a single atomic step: a failed check leaves
// no partial state behind.
type Ledger struct {
	mu           sync.RWMutex
	teams        map[uuid.UUID]*model.Team
	teamsByName  map[string]uuid.UUID
	participants map[string]*model.Participant
	logger       *slog.Logger
}

// New creates an empty ledger.
func New(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		teams:        make(map[uuid.UUID]*model.Team),
		teamsByName:  make(map[string]uuid.UUID),
		participants: make(map[string]*model.Participant),
		logger:       logger,
	}
}

// FromState restores a ledger from persisted records.
func FromState(st model.State, logger *slog.Logger) *Ledger {
	l := New(logger)
	for _, t := range st.Teams {
		team := t
		team.Roster = append([]uuid.UUID(nil), t.Roster...)
		l.teams[team.ID] = &team
		l.teamsByName[team.Name] = team.ID
	}
	for _, p := range st.Participants {
		participant := p
		l.participants[participant.ID] = &participant
	}
	return l
}

// GetPurse returns a participant's available funds.
func (l *Ledger) GetPurse(participantID string) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.participants[participantID]
	if !ok {
		return 0, fmt.Errorf("participant %s: %w", participantID, model.ErrNotFound)
	}
	return p.Purse, nil
}

// SetPurse assigns a participant's purse, creating the record on first
// assignment.
func (l *Ledger) SetPurse(participantID string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("purse amount %d must be >= 0", amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.participants[participantID]
	if !ok {
		l.participants[participantID] = &model.Participant{ID: participantID, Purse: amount}
		return nil
	}
	p.Purse = amount
	return nil
}

// Credit adds funds to a participant's purse.
func (l *Ledger) Credit(participantID string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("credit amount %d must be >= 0", amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.participants[participantID]
	if !ok {
		return fmt.Errorf("participant %s: %w", participantID, model.ErrNotFound)
	}
	p.Purse += amount
	return nil
}

// Debit removes funds from a participant's purse. No partial debit: the purse
// is untouched unless the full amount is available.
func (l *Ledger) Debit(participantID string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("debit amount %d must be >= 0", amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.participants[participantID]
	if !ok {
		return fmt.Errorf("participant %s: %w", participantID, model.ErrNotFound)
	}
	if amount > p.Purse {
		return fmt.Errorf("debit %d exceeds purse %d: %w", amount, p.Purse, model.ErrInsufficientFunds)
	}
	p.Purse -= amount
	return nil
}

// Export returns deep copies of all records in deterministic order.
func (l *Ledger) Export() (teams []model.Team, participants []model.Participant) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	teams = make([]model.Team, 0, len(l.teams))
	for _, t := range l.teams {
		teams = append(teams, copyTeam(t))
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })

	participants = make([]model.Participant, 0, len(l.participants))
	for _, p := range l.participants {
		participants = append(participants, *p)
	}
	sort.Slice(participants, func(i, j int) bool { return participants[i].ID < participants[j].ID })

	return teams, participants
}

func copyTeam(t *model.Team) model.Team {
	out := *t
	out.Roster = append([]uuid.UUID(nil), t.Roster...)
	return out
}
