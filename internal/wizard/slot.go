package wizard

import (
	"fmt"
	"strconv"
	"strings"
)

// SlotField 時段可更新的欄位
type SlotField string

const (
	SlotFieldStartTime SlotField = "startTime"
	SlotFieldEndTime   SlotField = "endTime"
	SlotFieldCapacity  SlotField = "capacity"
)

// TimeSlot 單一日期內的一個可預訂時段
type TimeSlot struct {
	StartTime      string           `json:"startTime"`
	EndTime        string           `json:"endTime"`
	Duration       string           `json:"duration"`
	Capacity       *int             `json:"capacity,omitempty"`
	SeatCategories []TicketCategory `json:"seatCategories"`
}

// Clone 深拷貝，包含票種清單
func (t TimeSlot) Clone() TimeSlot {
	out := t
	if t.Capacity != nil {
		c := *t.Capacity
		out.Capacity = &c
	}
	out.SeatCategories = make([]TicketCategory, len(t.SeatCategories))
	copy(out.SeatCategories, t.SeatCategories)
	return out
}

// ParseClock 解析 "HH:mm"，回傳當日分鐘數
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 || !allDigits(parts[0]) || !allDigits(parts[1]) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return h*60 + m, nil
}

// FormatDuration 以 "Xh Ym" 顯示分鐘數
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// SlotDuration 計算顯示用時長；任一端為空時回傳空字串
func SlotDuration(start, end string, policy OvernightPolicy) (string, error) {
	if start == "" || end == "" {
		return "", nil
	}
	s, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	e, err := ParseClock(end)
	if err != nil {
		return "", err
	}
	diff := e - s
	if diff < 0 {
		if policy == OvernightReject {
			return "", ErrInvalidTimeRange
		}
		diff += 24 * 60
	}
	return FormatDuration(diff), nil
}

func (w *Wizard) slotsOf(d Date) ([]TimeSlot, error) {
	if !w.state.IsSelected(d) {
		return nil, ErrDateNotSelected
	}
	return w.state.TimeSlots[d], nil
}

func (w *Wizard) slotAt(d Date, index int) (*TimeSlot, error) {
	slots, err := w.slotsOf(d)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(slots) {
		return nil, ErrSlotNotFound
	}
	return &slots[index], nil
}

// AddTimeSlot 為日期新增空白時段，回傳新時段索引
func (w *Wizard) AddTimeSlot(d Date) (int, error) {
	slots, err := w.slotsOf(d)
	if err != nil {
		return -1, err
	}
	slots = append(slots, TimeSlot{SeatCategories: make([]TicketCategory, 0)})
	w.state.TimeSlots[d] = slots
	return len(slots) - 1, nil
}

// UpdateTimeSlot 更新時段單一欄位；開始或結束時間變動時重算 duration
func (w *Wizard) UpdateTimeSlot(d Date, index int, field SlotField, value string) error {
	slot, err := w.slotAt(d, index)
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)

	switch field {
	case SlotFieldStartTime, SlotFieldEndTime:
		if value != "" {
			if _, err := ParseClock(value); err != nil {
				return err
			}
		}
		start, end := slot.StartTime, slot.EndTime
		if field == SlotFieldStartTime {
			start = value
		} else {
			end = value
		}
		duration, err := SlotDuration(start, end, w.cfg.Overnight)
		if err != nil {
			return err
		}
		slot.StartTime, slot.EndTime, slot.Duration = start, end, duration
	case SlotFieldCapacity:
		if value == "" {
			slot.Capacity = nil
			return nil
		}
		c := coerceInt(value)
		slot.Capacity = &c
	default:
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return nil
}

// RemoveTimeSlot 刪除時段與其票種，後續索引往前遞補
func (w *Wizard) RemoveTimeSlot(d Date, index int) error {
	if _, err := w.slotAt(d, index); err != nil {
		return err
	}
	slots := w.state.TimeSlots[d]
	out := make([]TimeSlot, 0, len(slots)-1)
	out = append(out, slots[:index]...)
	out = append(out, slots[index+1:]...)
	w.state.TimeSlots[d] = out
	return nil
}
