package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/google/uuid"
)

type tableService struct {
	BaseService
	tableRepo portsrepo.TableRepositoryFacade
	slipRepo  portsrepo.RatingSlipRepositoryWithTx
}

// NewTableService creates the table context service.
func NewTableService(tableRepo portsrepo.TableRepositoryFacade, slipRepo portsrepo.RatingSlipRepositoryWithTx, opts ...Option) portssvc.TableSvcFacade {
	return &tableService{
		BaseService: newBaseService(opts...),
		tableRepo:   tableRepo,
		slipRepo:    slipRepo,
	}
}

var _ portssvc.TableSvcFacade = (*tableService)(nil)

// CreateTable adds an active table to the actor's casino.
func (s *tableService) CreateTable(ctx context.Context, actor domain.Actor, req dto.CreateTableRequest) (*domain.GamingTable, error) {
	if err := s.Authorize(ctx, actor, domain.RolePitBoss); err != nil {
		return nil, err
	}
	table := domain.GamingTable{
		TableID:          uuid.NewString(),
		CasinoID:         actor.CasinoID,
		Label:            strings.TrimSpace(req.Label),
		GameType:         strings.TrimSpace(req.GameType),
		Seats:            req.Seats,
		HouseEdge:        req.HouseEdge,
		DecisionsPerHour: req.DecisionsPerHour,
		Status:           domain.TableActive,
		AuditFields:      domain.NewAuditFields(actor.StaffID, s.Now()),
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if err := s.tableRepo.SaveTable(ctx, table); err != nil {
		if !errors.Is(err, domain.ErrTableLabelTaken) {
			s.LogError(ctx, err, "Failed to save table", slog.String("label", table.Label))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Table created",
		slog.String("table_id", table.TableID),
		slog.String("label", table.Label))
	return &table, nil
}

// GetTable retrieves a table of the actor's casino.
func (s *tableService) GetTable(ctx context.Context, actor domain.Actor, tableID string) (*domain.GamingTable, error) {
	table, err := s.tableRepo.FindTableByID(ctx, actor.CasinoID, tableID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrTableNotFound
		}
		s.LogError(ctx, err, "Failed to find table", slog.String("table_id", tableID))
		return nil, err
	}
	return table, nil
}

// ListTables lists the tables of the actor's casino.
func (s *tableService) ListTables(ctx context.Context, actor domain.Actor, status *domain.TableStatus) ([]domain.GamingTable, error) {
	if status != nil && !status.Valid() {
		return nil, domain.ErrInvalidTableStatus
	}
	tables, err := s.tableRepo.ListTables(ctx, actor.CasinoID, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tables", slog.String("casino_id", actor.CasinoID))
		return nil, err
	}
	if tables == nil {
		return []domain.GamingTable{}, nil
	}
	return tables, nil
}

// SetTableStatus changes a table's state under a row lock.
func (s *tableService) SetTableStatus(ctx context.Context, actor domain.Actor, tableID string, status domain.TableStatus) (*domain.GamingTable, error) {
	if err := s.Authorize(ctx, actor, domain.RolePitBoss); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidTableStatus
	}

	var table *domain.GamingTable
	err := s.slipRepo.WithFloorTx(ctx, actor.CasinoID, func(ctx context.Context, tx portsrepo.FloorTx) error {
		t, err := tx.LockTable(ctx, tableID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return domain.ErrTableNotFound
			}
			return err
		}
		if status != domain.TableActive {
			active, err := tx.CountActiveSlipsForTable(ctx, tableID)
			if err != nil {
				return err
			}
			if active > 0 {
				return domain.ErrTableHasActiveSlips
			}
		}
		t.Status = status
		t.Touch(actor.StaffID, s.Now())
		if err := tx.UpdateTable(ctx, *t); err != nil {
			return err
		}
		table = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Table status changed",
		slog.String("table_id", tableID),
		slog.String("status", string(status)))
	s.Publish(ctx, actor, domain.EventTableStatusChanged, tableID, tableID, table)
	return table, nil
}

// ListActiveSlips lists the open and paused slips at a table.
func (s *tableService) ListActiveSlips(ctx context.Context, actor domain.Actor, tableID string) ([]domain.RatingSlip, error) {
	if _, err := s.GetTable(ctx, actor, tableID); err != nil {
		return nil, err
	}
	slips, err := s.slipRepo.ListActiveRatingSlipsByTable(ctx, actor.CasinoID, tableID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active slips", slog.String("table_id", tableID))
		return nil, err
	}
	if slips == nil {
		return []domain.RatingSlip{}, nil
	}
	return slips, nil
}
