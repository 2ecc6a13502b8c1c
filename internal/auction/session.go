package auction

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Jay-Patell/AuctionBotLeague/internal/catalog"
	"github.com/Jay-Patell/AuctionBotLeague/internal/ledger"
	"github.com/Jay-Patell/AuctionBotLeague/internal/model"
)

// Store persists the full auction state after every committed mutation.
type Store interface {
	Save(model.State) error
}

// Authorizer gates privileged operations (skip, finalize).
type Authorizer interface {
	IsAuthorized(actorID string) bool
}

// Notifier receives a snapshot after every state transition.
type Notifier interface {
	Publish(model.Snapshot)
}

// Recorder receives auction events for archival.
type Recorder interface {
	Record(model.Event)
}

// Session is the bidding state machine for one item at a time. All mutating
// operations run under a single lock: the increment check and the bid update
// are atomic together, so two concurrent bidders can never both be admitted
// at the same tier.
type Session struct {
	mu sync.RWMutex

	ledger  *ledger.Ledger
	catalog *catalog.Catalog

	store    Store
	auth     Authorizer
	notifier Notifier
	recorder Recorder
	logger   *slog.Logger

	phase         model.Phase
	current       *model.Item
	currentBid    int64
	highestBidder string
}

// Option configures a Session.
type Option func(*Session)

// WithStore sets the persistence gateway.
func WithStore(st Store) Option {
	return func(s *Session) { s.store = st }
}

// WithAuthorizer sets the privileged-action allow-list. Without one, every
// privileged call is rejected.
func WithAuthorizer(a Authorizer) Option {
	return func(s *Session) { s.auth = a }
}

// WithNotifier sets the transition sink (e.g. the WebSocket hub).
func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithRecorder sets the event archive sink.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates an idle session over a ledger and catalog.
func New(l *ledger.Ledger, c *catalog.Catalog, opts ...Option) *Session {
	s := &Session{
		ledger:  l,
		catalog: c,
		phase:   model.PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Start opens the session and draws the first item. Calling Start on a
// running session is harmless and returns the live snapshot.
func (s *Session) Start() (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case model.PhaseExhausted:
		return s.snapshotLocked(""), model.ErrSessionClosed
	case model.PhaseAwaitingBids:
		return s.snapshotLocked(""), nil
	}

	s.record(model.EventSessionStart, nil, "", 0)
	s.advanceLocked()
	return s.commitLocked(), nil
}

// PlaceBid admits a bid from a participant. observedBid is the current bid
// the participant saw when acting; if the session has moved past it the
// attempt fails StaleBid. A negative observedBid skips the guard.
//
// A repeat bid by the already-highest bidder is a no-op: the unchanged
// snapshot comes back with no error.
//
// Placing a bid is a pure legality check against the participant's purse.
// Funds move only at finalize.
func (s *Session) PlaceBid(participantID string, observedBid int64) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireBiddingLocked(); err != nil {
		return s.snapshotLocked(""), err
	}

	if participantID == s.highestBidder {
		return s.snapshotLocked(""), nil
	}

	if observedBid >= 0 && observedBid != s.currentBid {
		return s.snapshotLocked(""), fmt.Errorf("saw %d, current is %d: %w", observedBid, s.currentBid, model.ErrStaleBid)
	}

	next := NextRequiredBid(s.currentBid)
	purse, err := s.ledger.GetPurse(participantID)
	if err != nil {
		return s.snapshotLocked(""), err
	}
	if purse < next {
		return s.snapshotLocked(""), fmt.Errorf("next bid %d exceeds purse %d: %w", next, purse, model.ErrInsufficientFunds)
	}

	s.currentBid = next
	s.highestBidder = participantID
	s.record(model.EventBid, s.current, participantID, next)
	s.logger.Info("bid admitted", "item", s.current.Name, "bidder", participantID, "bid", next)
	return s.commitLocked(), nil
}

// Skip sets the current item aside as unsold and advances. Privileged.
func (s *Session) Skip(actorID string) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authorized(actorID) {
		return s.snapshotLocked(""), fmt.Errorf("actor %s: %w", actorID, model.ErrUnauthorized)
	}
	if err := s.requireBiddingLocked(); err != nil {
		return s.snapshotLocked(""), err
	}

	item := *s.current
	s.catalog.MarkUnsold(item)
	s.record(model.EventSkip, &item, actorID, s.currentBid)
	s.logger.Info("item skipped", "item", item.Name, "actor", actorID)

	s.advanceLocked()
	return s.commitLocked(), nil
}

// FinalizeSale settles the current item with the highest bidder's team:
// debit purses, transfer the item, remove it from the catalog, then advance.
// One logical transaction; any failure aborts with no partial state change
// and the bidding window stays open for retry or skip. Privileged.
func (s *Session) FinalizeSale(actorID string) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authorized(actorID) {
		return s.snapshotLocked(""), fmt.Errorf("actor %s: %w", actorID, model.ErrUnauthorized)
	}
	if err := s.requireBiddingLocked(); err != nil {
		return s.snapshotLocked(""), err
	}
	if s.highestBidder == "" {
		return s.snapshotLocked(""), model.ErrNoBidder
	}

	team, err := s.ledger.TeamByOwner(s.highestBidder)
	if err != nil {
		return s.snapshotLocked(""), fmt.Errorf("bidder %s: %w", s.highestBidder, model.ErrNoTeamForBidder)
	}

	item := *s.current
	if err := s.ledger.ApplySale(s.highestBidder, team.ID, item.ID, s.currentBid); err != nil {
		return s.snapshotLocked(""), err
	}
	if err := s.catalog.RemovePermanently(item.ID); err != nil {
		// Cannot happen while the lock is held; surface it loudly if it does.
		s.logger.Error("catalog out of sync at finalize", "item", item.ID, "error", err)
		return s.snapshotLocked(""), err
	}

	s.record(model.EventSale, &item, s.highestBidder, s.currentBid)
	s.logger.Info("item sold",
		"item", item.Name,
		"team", team.Name,
		"bidder", s.highestBidder,
		"amount", s.currentBid,
	)

	// Emit the transient Sold view before auto-advancing.
	s.phase = model.PhaseSold
	s.publish(s.snapshotLocked(""))

	s.advanceLocked()
	return s.commitLocked(), nil
}

// Checkpoint persists and broadcasts current state. Used after committed
// mutations that happen outside the bidding flow (team setup, purse
// assignment, catalog edits) so every mutation reaches durable storage.
func (s *Session) Checkpoint() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked()
}

// Query returns a consistent snapshot without mutating anything.
func (s *Session) Query() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked("")
}

// requireBiddingLocked rejects operations outside an active bidding window.
func (s *Session) requireBiddingLocked() error {
	switch s.phase {
	case model.PhaseAwaitingBids:
		return nil
	case model.PhaseExhausted:
		return model.ErrSessionClosed
	default:
		return model.ErrNoActiveItem
	}
}

// advanceLocked draws the next item or exhausts the session.
func (s *Session) advanceLocked() {
	item, ok := s.catalog.DrawNext()
	if !ok {
		s.phase = model.PhaseExhausted
		s.current = nil
		s.currentBid = 0
		s.highestBidder = ""
		s.record(model.EventExhausted, nil, "", 0)
		s.logger.Info("catalog exhausted, session closed")
		return
	}

	s.phase = model.PhaseAwaitingBids
	s.current = &item
	s.currentBid = item.BasePrice
	s.highestBidder = ""
	s.logger.Info("item up for auction", "item", item.Name, "category", item.Category, "base_price", item.BasePrice)
}

// commitLocked persists after a committed mutation and publishes the
// resulting snapshot. A failed save is reported on the snapshot and logged;
// the in-memory commit stands.
func (s *Session) commitLocked() model.Snapshot {
	var persistErr string
	if s.store != nil {
		if err := s.store.Save(s.stateLocked()); err != nil {
			persistErr = err.Error()
			s.logger.Error("state save failed", "error", err)
		}
	}
	snap := s.snapshotLocked(persistErr)
	s.publish(snap)
	return snap
}

func (s *Session) stateLocked() model.State {
	pending, unsold := s.catalog.Export()
	teams, participants := s.ledger.Export()
	return model.State{
		Pending:      pending,
		Unsold:       unsold,
		Teams:        teams,
		Participants: participants,
	}
}

func (s *Session) snapshotLocked(persistErr string) model.Snapshot {
	snap := model.Snapshot{
		Phase:           s.phase,
		CurrentBid:      s.currentBid,
		HighestBidderID: s.highestBidder,
		PendingCount:    len(s.catalog.Pending()),
		UnsoldCount:     len(s.catalog.Unsold()),
		PersistError:    persistErr,
	}
	if s.current != nil {
		item := *s.current
		snap.Item = &item
	}
	if s.phase == model.PhaseAwaitingBids {
		snap.NextBid = NextRequiredBid(s.currentBid)
	}
	return snap
}

func (s *Session) authorized(actorID string) bool {
	return s.auth != nil && s.auth.IsAuthorized(actorID)
}

func (s *Session) publish(snap model.Snapshot) {
	if s.notifier != nil {
		s.notifier.Publish(snap)
	}
}

func (s *Session) record(kind string, item *model.Item, actor string, amount int64) {
	if s.recorder == nil {
		return
	}
	ev := model.Event{
		EventID:    uuid.New(),
		Kind:       kind,
		Actor:      actor,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	}
	if item != nil {
		ev.ItemID = item.ID
		ev.ItemName = item.Name
	}
	s.recorder.Record(ev)
}
