package get_available_slots

import (
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	SalonID         int64           `json:"salonId"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	StaffID         *int64 `json:"staffId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.GetAvailableSlotsResponse) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			StaffID:         slot.StaffID,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		SalonID:         resp.SalonID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(salonID int64, serviceIDsStr, dateStr, staffIDStr string) (getAvailableSlots.GetAvailableSlotsRequest, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return getAvailableSlots.GetAvailableSlotsRequest{}, err
	}

	serviceIDs, err := parseServiceIDs(serviceIDsStr)
	if err != nil {
		return getAvailableSlots.GetAvailableSlotsRequest{}, err
	}

	req := getAvailableSlots.GetAvailableSlotsRequest{
		SalonID:    salonID,
		ServiceIDs: serviceIDs,
		Date:       date,
	}

	if staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			return getAvailableSlots.GetAvailableSlotsRequest{}, err
		}
		req.StaffID = &staffID
	}

	return req, nil
}

// parseServiceIDs парсит список ID услуг из строки "1,2,3"
func parseServiceIDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
