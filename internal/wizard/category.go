package wizard

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CategoryField 票種可更新的欄位，name/label 與 quantity/totalTickets 互為別名
type CategoryField string

const (
	CategoryFieldName         CategoryField = "name"
	CategoryFieldLabel        CategoryField = "label"
	CategoryFieldPrice        CategoryField = "price"
	CategoryFieldQuantity     CategoryField = "quantity"
	CategoryFieldTotalTickets CategoryField = "totalTickets"
)

// TicketCategory 單一時段內的票種
type TicketCategory struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	Price        float64 `json:"price"`
	TotalTickets int     `json:"totalTickets"`
	Booked       int     `json:"booked"`
	Held         int     `json:"held"`
}

// SlotRevenue Σ(price × totalTickets)，每次讀取時計算
func SlotRevenue(slot TimeSlot) float64 {
	var total float64
	for _, c := range slot.SeatCategories {
		total += c.Price * float64(c.TotalTickets)
	}
	return total
}

// coercePrice 非數字、NaN、無限大或負數一律為 0
func coercePrice(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return clampPrice(f)
}

func clampPrice(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// coerceInt 取整數部分；無效或負數為 0
func coerceInt(v string) int {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return clampCount(n)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

func findCategory(slot *TimeSlot, id string) int {
	for i, c := range slot.SeatCategories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// AddTicketCategoryToSlot 新增空白票種，回傳產生的 id
func (w *Wizard) AddTicketCategoryToSlot(d Date, slotIndex int) (string, error) {
	slot, err := w.slotAt(d, slotIndex)
	if err != nil {
		return "", err
	}
	id := w.cfg.IDs.NewID()
	for findCategory(slot, id) >= 0 {
		id = w.cfg.IDs.NewID()
	}
	slot.SeatCategories = append(slot.SeatCategories, TicketCategory{ID: id})
	return id, nil
}

// UpdateTicketCategoryInSlot 依 id 更新票種單一欄位
func (w *Wizard) UpdateTicketCategoryInSlot(d Date, slotIndex int, id string, field CategoryField, value string) error {
	slot, err := w.slotAt(d, slotIndex)
	if err != nil {
		return err
	}
	i := findCategory(slot, id)
	if i < 0 {
		return ErrCategoryNotFound
	}
	c := &slot.SeatCategories[i]

	switch field {
	case CategoryFieldName, CategoryFieldLabel:
		c.Label = value
	case CategoryFieldPrice:
		c.Price = coercePrice(value)
	case CategoryFieldQuantity, CategoryFieldTotalTickets:
		c.TotalTickets = coerceInt(value)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return nil
}

// RemoveTicketCategoryFromSlot 依 id 刪除票種
func (w *Wizard) RemoveTicketCategoryFromSlot(d Date, slotIndex int, id string) error {
	slot, err := w.slotAt(d, slotIndex)
	if err != nil {
		return err
	}
	i := findCategory(slot, id)
	if i < 0 {
		return ErrCategoryNotFound
	}
	out := make([]TicketCategory, 0, len(slot.SeatCategories)-1)
	out = append(out, slot.SeatCategories[:i]...)
	slot.SeatCategories = append(out, slot.SeatCategories[i+1:]...)
	return nil
}
