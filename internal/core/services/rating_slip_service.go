package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/player_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type ratingSlipService struct {
	BaseService
	slipRepo   portsrepo.RatingSlipRepositoryWithTx
	casinoRepo portsrepo.CasinoReader
	loyalty    portssvc.LoyaltyAccrualSvc
}

// NewRatingSlipService creates the rating slip service. Closed slips are handed to loyalty
// for accrual after commit.
func NewRatingSlipService(
	slipRepo portsrepo.RatingSlipRepositoryWithTx,
	casinoRepo portsrepo.CasinoReader,
	loyalty portssvc.LoyaltyAccrualSvc,
	opts ...Option,
) portssvc.RatingSlipSvcFacade {
	return &ratingSlipService{
		BaseService: newBaseService(opts...),
		slipRepo:    slipRepo,
		casinoRepo:  casinoRepo,
		loyalty:     loyalty,
	}
}

var _ portssvc.RatingSlipSvcFacade = (*ratingSlipService)(nil)

func notFoundAs(err, target error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return target
	}
	return err
}

// StartSlip opens a slip for an active visit at an active table seat.
func (s *ratingSlipService) StartSlip(ctx context.Context, actor domain.Actor, req dto.StartRatingSlipRequest) (slip *domain.RatingSlip, err error) {
	if err := s.Authorize(ctx, actor, domain.RolePitBoss); err != nil {
		return nil, err
	}
	ctx, span := s.StartSpan(ctx, "RatingSlipService.StartSlip",
		attribute.String("visit_id", req.VisitID),
		attribute.String("table_id", req.TableID))
	defer func() { s.EndSpan(span, err) }()

	err = s.slipRepo.WithFloorTx(ctx, actor.CasinoID, func(ctx context.Context, tx portsrepo.FloorTx) error {
		visit, err := tx.LockVisit(ctx, req.VisitID)
		if err != nil {
			return notFoundAs(err, domain.ErrVisitNotFound)
		}
		table, err := tx.LockTable(ctx, req.TableID)
		if err != nil {
			return notFoundAs(err, domain.ErrTableNotFound)
		}
		if visit.PlayerID != nil {
			dup, err := tx.HasActiveSlipForPlayerAtTable(ctx, *visit.PlayerID, table.TableID)
			if err != nil {
				return err
			}
			if dup {
				return domain.ErrSlipDuplicateActive
			}
		}
		created, err := domain.NewRatingSlip(uuid.NewString(), *visit, *table, req.SeatNumber, req.AverageBet, actor.StaffID, s.Now())
		if err != nil {
			return err
		}
		if err := tx.InsertRatingSlip(ctx, *created); err != nil {
			return err
		}
		slip = created
		return nil
	})
	if err != nil {
		s.logTransitionFailure(ctx, "start", "", err)
		return nil, err
	}

	s.LogInfo(ctx, "Rating slip started",
		slog.String("rating_slip_id", slip.RatingSlipID),
		slog.String("table_id", slip.TableID),
		slog.Int("seat", slip.SeatNumber))
	s.Publish(ctx, actor, domain.EventRatingSlipStarted, slip.RatingSlipID, slip.TableID, slip)
	return slip, nil
}

// transition locks a slip, applies fn and writes the slip back in one transaction. The event
// is published only after commit.
func (s *ratingSlipService) transition(
	ctx context.Context,
	actor domain.Actor,
	slipID, op string,
	eventType domain.EventType,
	fn func(ctx context.Context, tx portsrepo.FloorTx, slip *domain.RatingSlip, now time.Time) error,
) (slip *domain.RatingSlip, err error) {
	ctx, span := s.StartSpan(ctx, "RatingSlipService."+op, attribute.String("rating_slip_id", slipID))
	defer func() { s.EndSpan(span, err) }()

	err = s.slipRepo.WithFloorTx(ctx, actor.CasinoID, func(ctx context.Context, tx portsrepo.FloorTx) error {
		locked, err := tx.LockRatingSlip(ctx, slipID)
		if err != nil {
			return notFoundAs(err, domain.ErrSlipNotFound)
		}
		if err := fn(ctx, tx, locked, s.Now()); err != nil {
			return err
		}
		if err := tx.UpdateRatingSlip(ctx, *locked); err != nil {
			return err
		}
		slip = locked
		return nil
	})
	if err != nil {
		s.logTransitionFailure(ctx, op, slipID, err)
		return nil, err
	}

	s.LogInfo(ctx, "Rating slip transition",
		slog.String("op", op),
		slog.String("rating_slip_id", slipID),
		slog.String("status", string(slip.Status)))
	s.Publish(ctx, actor, eventType, slip.RatingSlipID, slip.TableID, slip)
	return slip, nil
}

func (s *ratingSlipService) logTransitionFailure(ctx context.Context, op, slipID string, err error) {
	if apperrors.HTTPStatus(err) >= 500 {
		s.LogError(ctx, err, "Rating slip transition failed",
			slog.String("op", op),
			slog.String("rating_slip_id", slipID))
		return
	}
	s.LogDebug(ctx, "Rating slip transition rejected",
		slog.String("op", op),
		slog.String("rating_slip_id", slipID),
		slog.String("code", apperrors.CodeOf(err)))
}

// PauseSlip pauses an open slip.
func (s *ratingSlipService) PauseSlip(ctx context.Context, actor domain.Actor, slipID string) (*domain.RatingSlip, error) {
	if err := s.Authorize(ctx, actor, domain.RolePitBoss, domain.RoleDealer); err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, slipID, "Pause", domain.EventRatingSlipPaused,
		func(ctx context.Context, tx portsrepo.FloorTx, slip *domain.RatingSlip, now time.Time) error {
			pause, err := slip.Pause(uuid.NewString(), now, actor.StaffID)
			if err != nil {
				return err
			}
			return tx.InsertPause(ctx, pause)
		})
}

// ResumeSlip resumes a paused slip.
func (s *ratingSlipService) ResumeSlip(ctx context.Context, actor domain.Actor, slipID string) (*domain.RatingSlip, error) {
	if err := s.Authorize(ctx, actor, domain.RolePitBoss, domain.RoleDealer); err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, slipID, "Resume", domain.EventRatingSlipResumed,
		func(ctx context.Context, tx portsrepo.FloorTx, slip *domain.RatingSlip, now time.Time) error {
			ended, err := slip.Resume(now, actor.StaffID)
			if err != nil {
				return err
			}
			return tx.EndPause(ctx, ended)
		})
}

// CloseSlip closes an open or paused slip and then accrues loyalty for it.
func (s *ratingSlipService) CloseSlip(ctx context.Context, actor domain.Actor, slipID string, req dto.CloseRatingSlipRequest) (*domain.RatingSlip, error) {
	if err := s.Authorize(ctx, actor, domain.RolePitBoss); err != nil {
		return nil, err
	}
	settings, err := s.casinoRepo.FindSettings(ctx, actor.CasinoID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrCasinoNotFound)
	}

	slip, err := s.transition(ctx, actor, slipID, "Close", domain.EventRatingSlipClosed,
		func(ctx context.Context, tx portsrepo.FloorTx, slip *domain.RatingSlip, now time.Time) error {
			if settings.RequireAverageBetOnClose && req.AverageBet == nil && slip.AverageBet == nil && slip.Status.IsActive() {
				return domain.ErrSlipAverageBetNeeded
			}
			ended, err := slip.Close(now, req.AverageBet, actor.StaffID)
			if err != nil {
				return err
			}
			if ended != nil {
				return tx.EndPause(ctx, *ended)
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	s.accrue(ctx, actor, *slip)
	return slip, nil
}

// UpdateAverageBet sets the average bet of an active slip.
func (s *ratingSlipService) UpdateAverageBet(ctx context.Context, actor domain.Actor, slipID string, req dto.UpdateAverageBetRequest) (*domain.RatingSlip, error) {
	if err := s.Authorize(ctx, actor, domain.RolePitBoss); err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, slipID, "UpdateAverageBet", domain.EventRatingSlipBetChange,
		func(_ context.Context, _ portsrepo.FloorTx, slip *domain.RatingSlip, now time.Time) error {
			return slip.UpdateAverageBet(req.AverageBet, now, actor.StaffID)
		})
}

// MoveSlip closes the slip and starts a new one at the target seat in the same transaction.
// The new slip keeps the visit and links back to the closed one.
func (s *ratingSlipService) MoveSlip(ctx context.Context, actor domain.Actor, slipID string, req dto.MoveRatingSlipRequest) (resp *dto.MoveRatingSlipResponse, err error) {
	if err := s.Authorize(ctx, actor, domain.RolePitBoss); err != nil {
		return nil, err
	}
	ctx, span := s.StartSpan(ctx, "RatingSlipService.Move",
		attribute.String("rating_slip_id", slipID),
		attribute.String("table_id", req.TableID))
	defer func() { s.EndSpan(span, err) }()

	err = s.slipRepo.WithFloorTx(ctx, actor.CasinoID, func(ctx context.Context, tx portsrepo.FloorTx) error {
		old, err := tx.LockRatingSlip(ctx, slipID)
		if err != nil {
			return notFoundAs(err, domain.ErrSlipNotFound)
		}
		if old.Status == domain.SlipClosed {
			return domain.ErrSlipInvalidState
		}
		if old.TableID == req.TableID && old.SeatNumber == req.SeatNumber {
			return domain.ErrSlipSameSeat
		}
		visit, err := tx.LockVisit(ctx, old.VisitID)
		if err != nil {
			return notFoundAs(err, domain.ErrVisitNotFound)
		}
		table, err := tx.LockTable(ctx, req.TableID)
		if err != nil {
			return notFoundAs(err, domain.ErrTableNotFound)
		}

		now := s.Now()
		bet := req.AverageBet
		if bet == nil {
			bet = old.AverageBet
		}
		ended, err := old.Close(now, nil, actor.StaffID)
		if err != nil {
			return err
		}
		if ended != nil {
			if err := tx.EndPause(ctx, *ended); err != nil {
				return err
			}
		}
		if err := tx.UpdateRatingSlip(ctx, *old); err != nil {
			return err
		}

		if visit.PlayerID != nil {
			dup, err := tx.HasActiveSlipForPlayerAtTable(ctx, *visit.PlayerID, table.TableID)
			if err != nil {
				return err
			}
			if dup {
				return domain.ErrSlipDuplicateActive
			}
		}
		started, err := domain.NewRatingSlip(uuid.NewString(), *visit, *table, req.SeatNumber, bet, actor.StaffID, now)
		if err != nil {
			return err
		}
		started.MovedFromID = &old.RatingSlipID
		if err := tx.InsertRatingSlip(ctx, *started); err != nil {
			return err
		}
		resp = &dto.MoveRatingSlipResponse{Closed: *old, Started: *started}
		return nil
	})
	if err != nil {
		s.logTransitionFailure(ctx, "Move", slipID, err)
		return nil, err
	}

	s.LogInfo(ctx, "Rating slip moved",
		slog.String("rating_slip_id", slipID),
		slog.String("new_rating_slip_id", resp.Started.RatingSlipID),
		slog.String("table_id", resp.Started.TableID),
		slog.Int("seat", resp.Started.SeatNumber))
	s.Publish(ctx, actor, domain.EventRatingSlipClosed, resp.Closed.RatingSlipID, resp.Closed.TableID, resp.Closed)
	s.Publish(ctx, actor, domain.EventRatingSlipMoved, resp.Started.RatingSlipID, resp.Started.TableID, resp)
	s.accrue(ctx, actor, resp.Closed)
	return resp, nil
}

// accrue runs loyalty accrual for a committed close. A failure leaves the slip closed and is
// retried through AccrueLoyalty.
func (s *ratingSlipService) accrue(ctx context.Context, actor domain.Actor, slip domain.RatingSlip) {
	if s.loyalty == nil {
		return
	}
	if _, err := s.loyalty.AccrueForRatingSlip(ctx, actor, slip); err != nil {
		s.LogError(ctx, err, "Loyalty accrual failed after close",
			slog.String("rating_slip_id", slip.RatingSlipID))
	}
}

// AccrueLoyalty retries the accrual of a closed slip.
func (s *ratingSlipService) AccrueLoyalty(ctx context.Context, actor domain.Actor, slipID string) (*domain.LoyaltyLedgerEntry, error) {
	if err := s.Authorize(ctx, actor, domain.RolePitBoss); err != nil {
		return nil, err
	}
	slip, err := s.GetSlip(ctx, actor, slipID)
	if err != nil {
		return nil, err
	}
	if slip.Status != domain.SlipClosed {
		return nil, domain.ErrSlipNotClosed
	}
	return s.loyalty.AccrueForRatingSlip(ctx, actor, *slip)
}

// GetSlip retrieves a slip with its pauses.
func (s *ratingSlipService) GetSlip(ctx context.Context, actor domain.Actor, slipID string) (*domain.RatingSlip, error) {
	slip, err := s.slipRepo.FindRatingSlipByID(ctx, actor.CasinoID, slipID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find rating slip", slog.String("rating_slip_id", slipID))
		}
		return nil, notFoundAs(err, domain.ErrSlipNotFound)
	}
	return slip, nil
}

// ListSlipsForVisit lists the slips of a visit.
func (s *ratingSlipService) ListSlipsForVisit(ctx context.Context, actor domain.Actor, visitID string) ([]domain.RatingSlip, error) {
	slips, err := s.slipRepo.ListRatingSlipsByVisit(ctx, actor.CasinoID, visitID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rating slips", slog.String("visit_id", visitID))
		return nil, err
	}
	if slips == nil {
		return []domain.RatingSlip{}, nil
	}
	return slips, nil
}
