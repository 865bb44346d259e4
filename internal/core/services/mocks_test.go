package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/core/ports"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Clock ---

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock { return &fakeClock{now: start} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// --- Event publisher ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

var _ ports.EventPublisher = (*recordingPublisher)(nil)

func (p *recordingPublisher) Publish(_ context.Context, e domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]domain.EventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

// --- Mock CasinoRepository ---
type MockCasinoRepository struct {
	mock.Mock
}

var _ portsrepo.CasinoRepositoryFacade = (*MockCasinoRepository)(nil)

func (m *MockCasinoRepository) FindCasinoByID(ctx context.Context, casinoID string) (*domain.Casino, error) {
	args := m.Called(ctx, casinoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Casino), args.Error(1)
}

func (m *MockCasinoRepository) FindSettings(ctx context.Context, casinoID string) (*domain.CasinoSettings, error) {
	args := m.Called(ctx, casinoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Copy so the caller can mutate its settings without changing the fixture.
	settings := *args.Get(0).(*domain.CasinoSettings)
	return &settings, args.Error(1)
}

func (m *MockCasinoRepository) CountCasinos(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCasinoRepository) CreateCasinoWithAdmin(ctx context.Context, casino domain.Casino, settings domain.CasinoSettings, admin domain.Staff) error {
	args := m.Called(ctx, casino, settings, admin)
	return args.Error(0)
}

func (m *MockCasinoRepository) UpdateSettings(ctx context.Context, settings domain.CasinoSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Mock StaffRepository ---
type MockStaffRepository struct {
	mock.Mock
}

var _ portsrepo.StaffRepositoryFacade = (*MockStaffRepository)(nil)

func (m *MockStaffRepository) FindStaffByID(ctx context.Context, casinoID, staffID string) (*domain.Staff, error) {
	args := m.Called(ctx, casinoID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindStaffByEmailForLogin(ctx context.Context, email string) (*domain.Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *MockStaffRepository) ListStaff(ctx context.Context, casinoID string) ([]domain.Staff, error) {
	args := m.Called(ctx, casinoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Staff), args.Error(1)
}

func (m *MockStaffRepository) SaveStaff(ctx context.Context, staff domain.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

// --- Mock PlayerRepository ---
type MockPlayerRepository struct {
	mock.Mock
}

var _ portsrepo.PlayerRepositoryFacade = (*MockPlayerRepository)(nil)

func (m *MockPlayerRepository) FindPlayerByID(ctx context.Context, casinoID, playerID string) (*domain.Player, error) {
	args := m.Called(ctx, casinoID, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockPlayerRepository) SearchPlayers(ctx context.Context, search portsrepo.PlayerSearch) ([]domain.Player, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Player), args.Error(1)
}

func (m *MockPlayerRepository) SavePlayer(ctx context.Context, player domain.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpdatePlayer(ctx context.Context, player domain.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

// --- Mock VisitRepository ---
type MockVisitRepository struct {
	mock.Mock
}

var _ portsrepo.VisitRepositoryFacade = (*MockVisitRepository)(nil)

func (m *MockVisitRepository) FindVisitByID(ctx context.Context, casinoID, visitID string) (*domain.Visit, error) {
	args := m.Called(ctx, casinoID, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visit), args.Error(1)
}

func (m *MockVisitRepository) FindActiveVisitByPlayer(ctx context.Context, casinoID, playerID string) (*domain.Visit, error) {
	args := m.Called(ctx, casinoID, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visit), args.Error(1)
}

func (m *MockVisitRepository) SaveVisit(ctx context.Context, visit domain.Visit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

// --- Mock TableRepository ---
type MockTableRepository struct {
	mock.Mock
}

var _ portsrepo.TableRepositoryFacade = (*MockTableRepository)(nil)

func (m *MockTableRepository) FindTableByID(ctx context.Context, casinoID, tableID string) (*domain.GamingTable, error) {
	args := m.Called(ctx, casinoID, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GamingTable), args.Error(1)
}

func (m *MockTableRepository) ListTables(ctx context.Context, casinoID string, status *domain.TableStatus) ([]domain.GamingTable, error) {
	args := m.Called(ctx, casinoID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GamingTable), args.Error(1)
}

func (m *MockTableRepository) SaveTable(ctx context.Context, table domain.GamingTable) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

// --- Mock FinancialRepository ---
type MockFinancialRepository struct {
	mock.Mock
}

var _ portsrepo.FinancialRepositoryFacade = (*MockFinancialRepository)(nil)

func (m *MockFinancialRepository) FindTransactionByID(ctx context.Context, casinoID, transactionID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, casinoID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}

func (m *MockFinancialRepository) FindTransactionByIdempotencyKey(ctx context.Context, casinoID, key string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, casinoID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}

func (m *MockFinancialRepository) ListTransactions(ctx context.Context, filter portsrepo.FinancialFilter) ([]domain.FinancialTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialTransaction), args.Error(1)
}

func (m *MockFinancialRepository) InsertTransaction(ctx context.Context, txn domain.FinancialTransaction) (*domain.FinancialTransaction, bool, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Bool(1), args.Error(2)
}

// --- Mock LoyaltyRepository ---
type MockLoyaltyRepository struct {
	mock.Mock
}

var _ portsrepo.LoyaltyRepositoryFacade = (*MockLoyaltyRepository)(nil)

func (m *MockLoyaltyRepository) GetBalance(ctx context.Context, casinoID, playerID string) (decimal.Decimal, error) {
	args := m.Called(ctx, casinoID, playerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLoyaltyRepository) ListEntries(ctx context.Context, casinoID, playerID string, limit int) ([]domain.LoyaltyLedgerEntry, error) {
	args := m.Called(ctx, casinoID, playerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoyaltyLedgerEntry), args.Error(1)
}

func (m *MockLoyaltyRepository) AppendEntry(ctx context.Context, entry domain.LoyaltyLedgerEntry) (*domain.LoyaltyLedgerEntry, bool, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.LoyaltyLedgerEntry), args.Bool(1), args.Error(2)
}

// --- Mock LoyaltyAccrualSvc ---
type MockLoyaltyAccrual struct {
	mock.Mock
}

var _ portssvc.LoyaltyAccrualSvc = (*MockLoyaltyAccrual)(nil)

func (m *MockLoyaltyAccrual) AccrueForRatingSlip(ctx context.Context, actor domain.Actor, slip domain.RatingSlip) (*domain.LoyaltyLedgerEntry, error) {
	args := m.Called(ctx, actor, slip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoyaltyLedgerEntry), args.Error(1)
}

// --- Mock GamingDaySvc ---
type MockGamingDaySvc struct {
	mock.Mock
}

var _ portssvc.GamingDaySvc = (*MockGamingDaySvc)(nil)

func (m *MockGamingDaySvc) ResolveGamingDay(ctx context.Context, casinoID string, at time.Time) (domain.GamingDay, error) {
	args := m.Called(ctx, casinoID, at)
	return args.Get(0).(domain.GamingDay), args.Error(1)
}

func (m *MockGamingDaySvc) GamingDayBounds(ctx context.Context, casinoID string, day domain.GamingDay) (time.Time, time.Time, error) {
	args := m.Called(ctx, casinoID, day)
	return args.Get(0).(time.Time), args.Get(1).(time.Time), args.Error(2)
}

// --- In-memory floor store ---

// memFloor is a RatingSlipRepositoryWithTx held in maps. Transactions are serialized by a
// single mutex and roll back by restoring a snapshot. InsertPause rejects a second active
// pause and InsertRatingSlip a second active slip per player and table, like the database's
// partial unique indexes.
type memFloor struct {
	mu     sync.Mutex
	visits map[string]domain.Visit
	tables map[string]domain.GamingTable
	slips  map[string]domain.RatingSlip
}

var _ portsrepo.RatingSlipRepositoryWithTx = (*memFloor)(nil)

func newMemFloor() *memFloor {
	return &memFloor{
		visits: map[string]domain.Visit{},
		tables: map[string]domain.GamingTable{},
		slips:  map[string]domain.RatingSlip{},
	}
}

func copySlip(s domain.RatingSlip) domain.RatingSlip {
	s.Pauses = append([]domain.RatingSlipPause{}, s.Pauses...)
	return s
}

func (f *memFloor) snapshot() (map[string]domain.Visit, map[string]domain.GamingTable, map[string]domain.RatingSlip) {
	visits := make(map[string]domain.Visit, len(f.visits))
	for k, v := range f.visits {
		visits[k] = v
	}
	tables := make(map[string]domain.GamingTable, len(f.tables))
	for k, v := range f.tables {
		tables[k] = v
	}
	slips := make(map[string]domain.RatingSlip, len(f.slips))
	for k, v := range f.slips {
		slips[k] = copySlip(v)
	}
	return visits, tables, slips
}

func (f *memFloor) WithFloorTx(ctx context.Context, casinoID string, fn func(ctx context.Context, tx portsrepo.FloorTx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	visits, tables, slips := f.snapshot()
	if err := fn(ctx, &memTx{f: f, casinoID: casinoID}); err != nil {
		f.visits, f.tables, f.slips = visits, tables, slips
		return err
	}
	return nil
}

func (f *memFloor) FindRatingSlipByID(_ context.Context, casinoID, slipID string) (*domain.RatingSlip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slips[slipID]
	if !ok || s.CasinoID != casinoID {
		return nil, apperrors.ErrNotFound
	}
	s = copySlip(s)
	return &s, nil
}

func (f *memFloor) ListRatingSlipsByVisit(_ context.Context, casinoID, visitID string) ([]domain.RatingSlip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.RatingSlip
	for _, s := range f.slips {
		if s.CasinoID == casinoID && s.VisitID == visitID {
			out = append(out, copySlip(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *memFloor) ListActiveRatingSlipsByTable(_ context.Context, casinoID, tableID string) ([]domain.RatingSlip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.RatingSlip
	for _, s := range f.slips {
		if s.CasinoID == casinoID && s.TableID == tableID && s.Status.IsActive() {
			out = append(out, copySlip(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
	return out, nil
}

type memTx struct {
	f        *memFloor
	casinoID string
}

func (t *memTx) LockVisit(_ context.Context, visitID string) (*domain.Visit, error) {
	v, ok := t.f.visits[visitID]
	if !ok || v.CasinoID != t.casinoID {
		return nil, apperrors.ErrNotFound
	}
	return &v, nil
}

func (t *memTx) UpdateVisit(_ context.Context, visit domain.Visit) error {
	t.f.visits[visit.VisitID] = visit
	return nil
}

func (t *memTx) LockTable(_ context.Context, tableID string) (*domain.GamingTable, error) {
	tbl, ok := t.f.tables[tableID]
	if !ok || tbl.CasinoID != t.casinoID {
		return nil, apperrors.ErrNotFound
	}
	return &tbl, nil
}

func (t *memTx) UpdateTable(_ context.Context, table domain.GamingTable) error {
	t.f.tables[table.TableID] = table
	return nil
}

func (t *memTx) LockRatingSlip(_ context.Context, slipID string) (*domain.RatingSlip, error) {
	s, ok := t.f.slips[slipID]
	if !ok || s.CasinoID != t.casinoID {
		return nil, apperrors.ErrNotFound
	}
	s = copySlip(s)
	return &s, nil
}

func (t *memTx) countActive(match func(domain.RatingSlip) bool) int {
	n := 0
	for _, s := range t.f.slips {
		if s.CasinoID == t.casinoID && s.Status.IsActive() && match(s) {
			n++
		}
	}
	return n
}

func (t *memTx) CountActiveSlipsForVisit(_ context.Context, visitID string) (int, error) {
	return t.countActive(func(s domain.RatingSlip) bool { return s.VisitID == visitID }), nil
}

func (t *memTx) CountActiveSlipsForTable(_ context.Context, tableID string) (int, error) {
	return t.countActive(func(s domain.RatingSlip) bool { return s.TableID == tableID }), nil
}

func (t *memTx) HasActiveSlipForPlayerAtTable(_ context.Context, playerID, tableID string) (bool, error) {
	n := t.countActive(func(s domain.RatingSlip) bool {
		return s.PlayerID != nil && *s.PlayerID == playerID && s.TableID == tableID
	})
	return n > 0, nil
}

func (t *memTx) InsertRatingSlip(ctx context.Context, slip domain.RatingSlip) error {
	if slip.PlayerID != nil {
		if dup, _ := t.HasActiveSlipForPlayerAtTable(ctx, *slip.PlayerID, slip.TableID); dup {
			return domain.ErrSlipDuplicateActive
		}
	}
	t.f.slips[slip.RatingSlipID] = copySlip(slip)
	return nil
}

// UpdateRatingSlip writes the slip columns; pause rows are only changed by InsertPause and EndPause.
func (t *memTx) UpdateRatingSlip(_ context.Context, slip domain.RatingSlip) error {
	stored, ok := t.f.slips[slip.RatingSlipID]
	if !ok {
		return apperrors.ErrNotFound
	}
	slip.Pauses = stored.Pauses
	t.f.slips[slip.RatingSlipID] = slip
	return nil
}

func (t *memTx) InsertPause(_ context.Context, pause domain.RatingSlipPause) error {
	stored, ok := t.f.slips[pause.RatingSlipID]
	if !ok {
		return apperrors.ErrNotFound
	}
	for _, p := range stored.Pauses {
		if p.IsActive() {
			return domain.ErrSlipNotOpen
		}
	}
	stored.Pauses = append(stored.Pauses, pause)
	t.f.slips[pause.RatingSlipID] = stored
	return nil
}

func (t *memTx) EndPause(_ context.Context, pause domain.RatingSlipPause) error {
	stored, ok := t.f.slips[pause.RatingSlipID]
	if !ok {
		return apperrors.ErrNotFound
	}
	for i := range stored.Pauses {
		if stored.Pauses[i].PauseID == pause.PauseID {
			stored.Pauses[i].EndedAt = pause.EndedAt
			t.f.slips[pause.RatingSlipID] = stored
			return nil
		}
	}
	return apperrors.ErrNotFound
}
