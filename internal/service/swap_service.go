package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/dto"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/repository"
)

// ── swap module errors ──

var (
	ErrSwapNotFound         = errors.New("swap request not found")
	ErrSwapNotPending       = errors.New("swap request is not pending")
	ErrSwapNotOwnEntry      = errors.New("requester entry does not belong to the caller")
	ErrSwapCounterpartEntry = errors.New("counterpart entry does not belong to that teacher")
	ErrSwapNotParticipant   = errors.New("caller is not a participant of this swap")
	ErrSwapAlreadyResponded = errors.New("counterpart has already responded")
	ErrSwapNotAllAccepted   = errors.New("not every counterpart has accepted yet")
	ErrSwapDateInPast       = errors.New("swap dates must not be in the past")
	ErrSwapNotCancellable   = errors.New("only a pending swap can be cancelled by its requester")
)

// SwapService manages the swap-request workflow: submission by a teacher,
// accept/decline by each counterpart, final approval or rejection by an
// admin. Only approved swaps ever reach the reconciler.
type SwapService interface {
	Create(ctx context.Context, req *dto.CreateSwapRequest, callerID string) (*dto.SwapRequestResponse, error)
	GetByID(ctx context.Context, swapID string) (*dto.SwapRequestResponse, error)
	ListMine(ctx context.Context, teacherID string, req *dto.SwapListRequest) ([]dto.SwapRequestResponse, int64, error)
	List(ctx context.Context, req *dto.SwapListRequest) ([]dto.SwapRequestResponse, int64, error)
	Respond(ctx context.Context, swapID string, req *dto.RespondSwapRequest, callerID string) (*dto.SwapRequestResponse, error)
	Approve(ctx context.Context, swapID string, callerID string) (*dto.SwapRequestResponse, error)
	Reject(ctx context.Context, swapID string, req *dto.RejectSwapRequest, callerID string) (*dto.SwapRequestResponse, error)
	Cancel(ctx context.Context, swapID string, callerID string) (*dto.SwapRequestResponse, error)
}

type swapService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewSwapService creates a SwapService.
func NewSwapService(repo *repository.Repository, logger *zap.Logger) SwapService {
	return &swapService{repo: repo, logger: logger, now: time.Now}
}

func (s *swapService) Create(ctx context.Context, req *dto.CreateSwapRequest, callerID string) (*dto.SwapRequestResponse, error) {
	swapOut, err := time.Parse("2006-01-02", req.SwapOutDate)
	if err != nil {
		return nil, err
	}
	target, err := time.Parse("2006-01-02", req.TargetDate)
	if err != nil {
		return nil, err
	}

	today := s.now()
	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if swapOut.Before(todayMidnight) || target.Before(todayMidnight) {
		return nil, ErrSwapDateInPast
	}

	// The requester must give away their own slot.
	entry, err := s.repo.Schedule.GetByID(ctx, req.RequesterEntryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleEntryNotFound
		}
		s.logger.Error("load requester entry failed", zap.Error(err))
		return nil, err
	}
	if entry.TeacherID != callerID {
		return nil, ErrSwapNotOwnEntry
	}

	// Each counterpart must contribute a slot they actually teach.
	counterparts := make([]model.SwapCounterpart, 0, len(req.Counterparts))
	for _, cp := range req.Counterparts {
		cpEntry, err := s.repo.Schedule.GetByID(ctx, cp.EntryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrScheduleEntryNotFound
			}
			s.logger.Error("load counterpart entry failed", zap.Error(err))
			return nil, err
		}
		if cpEntry.TeacherID != cp.TeacherID {
			return nil, ErrSwapCounterpartEntry
		}
		counterparts = append(counterparts, model.SwapCounterpart{
			TeacherID: cp.TeacherID,
			EntryID:   cp.EntryID,
		})
	}

	swap := &model.SwapRequest{
		RequesterID:      callerID,
		RequesterEntryID: req.RequesterEntryID,
		SwapOutDate:      swapOut,
		TargetDate:       target,
		Reason:           req.Reason,
		Status:           model.SwapStatusPending,
		Counterparts:     counterparts,
	}
	swap.CreatedBy = &callerID

	if err := s.repo.Swap.Create(ctx, swap); err != nil {
		s.logger.Error("create swap request failed", zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, swap.SwapRequestID)
}

func (s *swapService) GetByID(ctx context.Context, swapID string) (*dto.SwapRequestResponse, error) {
	swap, err := s.repo.Swap.GetByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		s.logger.Error("load swap request failed", zap.Error(err))
		return nil, err
	}
	resp := swapRequestResponse(*swap)
	return &resp, nil
}

func (s *swapService) ListMine(ctx context.Context, teacherID string, req *dto.SwapListRequest) ([]dto.SwapRequestResponse, int64, error) {
	req.Normalize()

	swaps, total, err := s.repo.Swap.ListByTeacher(ctx, teacherID, req.Status, req.Offset(), req.PageSize)
	if err != nil {
		s.logger.Error("list own swap requests failed", zap.Error(err))
		return nil, 0, err
	}
	return swapRequestResponses(swaps), total, nil
}

func (s *swapService) List(ctx context.Context, req *dto.SwapListRequest) ([]dto.SwapRequestResponse, int64, error) {
	req.Normalize()

	swaps, total, err := s.repo.Swap.List(ctx, req.Status, req.Offset(), req.PageSize)
	if err != nil {
		s.logger.Error("list swap requests failed", zap.Error(err))
		return nil, 0, err
	}
	return swapRequestResponses(swaps), total, nil
}

func (s *swapService) Respond(ctx context.Context, swapID string, req *dto.RespondSwapRequest, callerID string) (*dto.SwapRequestResponse, error) {
	swap, err := s.repo.Swap.GetByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		s.logger.Error("load swap request failed", zap.Error(err))
		return nil, err
	}
	if swap.Status != model.SwapStatusPending {
		return nil, ErrSwapNotPending
	}

	var cp *model.SwapCounterpart
	for i := range swap.Counterparts {
		if swap.Counterparts[i].TeacherID == callerID {
			cp = &swap.Counterparts[i]
			break
		}
	}
	if cp == nil {
		return nil, ErrSwapNotParticipant
	}
	if cp.Accepted != nil {
		return nil, ErrSwapAlreadyResponded
	}

	now := s.now()
	accepted := req.Accept
	cp.Accepted = &accepted
	cp.RespondedAt = &now
	cp.UpdatedBy = &callerID

	if err := s.repo.Swap.SaveCounterpart(ctx, cp); err != nil {
		s.logger.Error("save counterpart response failed", zap.Error(err))
		return nil, err
	}

	// A decline settles the request immediately.
	if !accepted {
		swap.Status = model.SwapStatusRejected
		swap.RejectReason = "declined by counterpart"
		swap.UpdatedBy = &callerID
		if err := s.repo.Swap.Update(ctx, swap); err != nil {
			s.logger.Error("reject swap request failed", zap.Error(err))
			return nil, err
		}
	}

	resp := swapRequestResponse(*swap)
	return &resp, nil
}

func (s *swapService) Approve(ctx context.Context, swapID string, callerID string) (*dto.SwapRequestResponse, error) {
	swap, err := s.repo.Swap.GetByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		s.logger.Error("load swap request failed", zap.Error(err))
		return nil, err
	}
	if swap.Status != model.SwapStatusPending {
		return nil, ErrSwapNotPending
	}
	for _, cp := range swap.Counterparts {
		if cp.Accepted == nil || !*cp.Accepted {
			return nil, ErrSwapNotAllAccepted
		}
	}

	now := s.now()
	swap.Status = model.SwapStatusApproved
	swap.ApprovedAt = &now
	swap.ApprovedBy = &callerID
	swap.UpdatedBy = &callerID

	if err := s.repo.Swap.Update(ctx, swap); err != nil {
		s.logger.Error("approve swap request failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("swap request approved",
		zap.String("swap_id", swap.SwapRequestID),
		zap.String("approved_by", callerID),
	)

	resp := swapRequestResponse(*swap)
	return &resp, nil
}

func (s *swapService) Reject(ctx context.Context, swapID string, req *dto.RejectSwapRequest, callerID string) (*dto.SwapRequestResponse, error) {
	swap, err := s.repo.Swap.GetByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		s.logger.Error("load swap request failed", zap.Error(err))
		return nil, err
	}
	if swap.Status != model.SwapStatusPending {
		return nil, ErrSwapNotPending
	}

	swap.Status = model.SwapStatusRejected
	swap.RejectReason = req.Reason
	swap.UpdatedBy = &callerID

	if err := s.repo.Swap.Update(ctx, swap); err != nil {
		s.logger.Error("reject swap request failed", zap.Error(err))
		return nil, err
	}

	resp := swapRequestResponse(*swap)
	return &resp, nil
}

func (s *swapService) Cancel(ctx context.Context, swapID string, callerID string) (*dto.SwapRequestResponse, error) {
	swap, err := s.repo.Swap.GetByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		s.logger.Error("load swap request failed", zap.Error(err))
		return nil, err
	}
	if swap.Status != model.SwapStatusPending || swap.RequesterID != callerID {
		return nil, ErrSwapNotCancellable
	}

	swap.Status = model.SwapStatusCancelled
	swap.UpdatedBy = &callerID

	if err := s.repo.Swap.Update(ctx, swap); err != nil {
		s.logger.Error("cancel swap request failed", zap.Error(err))
		return nil, err
	}

	resp := swapRequestResponse(*swap)
	return &resp, nil
}

// ── mapping helpers ──

func swapRequestResponses(swaps []model.SwapRequest) []dto.SwapRequestResponse {
	resp := make([]dto.SwapRequestResponse, 0, len(swaps))
	for _, sw := range swaps {
		resp = append(resp, swapRequestResponse(sw))
	}
	return resp
}

func swapRequestResponse(sw model.SwapRequest) dto.SwapRequestResponse {
	resp := dto.SwapRequestResponse{
		ID:           sw.SwapRequestID,
		SwapOutDate:  sw.SwapOutDate.Format("2006-01-02"),
		TargetDate:   sw.TargetDate.Format("2006-01-02"),
		Reason:       sw.Reason,
		Status:       sw.Status,
		RejectReason: sw.RejectReason,
		CreatedAt:    sw.CreatedAt.Format(time.RFC3339),
		Counterparts: make([]dto.SwapCounterpartResponse, 0, len(sw.Counterparts)),
	}
	if sw.Requester != nil {
		resp.Requester = &dto.TeacherBrief{
			ID:   sw.Requester.UserID,
			Name: sw.Requester.Name,
			NIP:  sw.Requester.NIP,
		}
	}
	if sw.RequesterEntry != nil {
		e := scheduleEntryResponse(*sw.RequesterEntry)
		resp.RequesterEntry = &e
	}
	for _, cp := range sw.Counterparts {
		cpResp := dto.SwapCounterpartResponse{
			ID:       cp.CounterpartID,
			Accepted: cp.Accepted,
		}
		if cp.RespondedAt != nil {
			cpResp.RespondedAt = cp.RespondedAt.Format(time.RFC3339)
		}
		if cp.Teacher != nil {
			cpResp.Teacher = &dto.TeacherBrief{
				ID:   cp.Teacher.UserID,
				Name: cp.Teacher.Name,
				NIP:  cp.Teacher.NIP,
			}
		}
		if cp.Entry != nil {
			e := scheduleEntryResponse(*cp.Entry)
			cpResp.Entry = &e
		}
		resp.Counterparts = append(resp.Counterparts, cpResp)
	}
	return resp
}
