package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/holiday"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/validator"
)

type ServiceImpl struct {
	holiday.Repository
}

func NewHolidayService(repo holiday.Repository) holiday.Service {
	return &ServiceImpl{Repository: repo}
}

// CreateHoliday implements holiday.Service.
func (s *ServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	h := holiday.Holiday{
		Type:      holiday.Type(req.Type),
		StartDate: start,
		Name:      req.Name,
		Active:    true,
	}
	if req.EndDate != nil {
		end, _ := validator.IsValidDate(*req.EndDate)
		h.EndDate = &end
	}

	created, err := s.Repository.Create(ctx, h)
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return holiday.ToResponse(created), nil
}

// ListHolidays implements holiday.Service.
func (s *ServiceImpl) ListHolidays(ctx context.Context) (holiday.ListHolidaysResponse, error) {
	holidays, err := s.Repository.List(ctx)
	if err != nil {
		return holiday.ListHolidaysResponse{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	resp := holiday.ListHolidaysResponse{
		Holidays: make([]holiday.HolidayResponse, 0, len(holidays)),
	}
	for _, h := range holidays {
		resp.Holidays = append(resp.Holidays, holiday.ToResponse(h))
	}
	return resp, nil
}

// IsWorkingDay implements holiday.Service.
func (s *ServiceImpl) IsWorkingDay(ctx context.Context, day time.Time) (bool, error) {
	holidays, err := s.Repository.ListActiveOn(ctx, day)
	if err != nil {
		return false, fmt.Errorf("failed to consult holiday calendar: %w", err)
	}
	return len(holidays) == 0, nil
}
