package wizard

// CategoryTemplate 套用至全部時用的票種樣板(彈窗輸入)；負數價格與張數寫入時視為 0
type CategoryTemplate struct {
	Label        string  `json:"label"`
	Price        float64 `json:"price"`
	TotalTickets int     `json:"totalTickets"`
}

// Broadcast 套用至全部的來源，SourceDate 與 Categories 擇一
type Broadcast struct {
	SourceDate *Date
	Categories []CategoryTemplate
}

// ApplyToAll 以樣板覆寫其他已選日期的設定(不合併)，回傳被覆寫的日期數；兩者皆未提供時不做任何事
func (w *Wizard) ApplyToAll(b Broadcast) (int, error) {
	switch {
	case b.SourceDate != nil && b.Categories != nil:
		return 0, ErrAmbiguousBroadcast
	case b.SourceDate != nil:
		return w.applyDate(*b.SourceDate)
	case b.Categories != nil:
		return w.applyCategories(b.Categories)
	default:
		return 0, nil
	}
}

func (w *Wizard) applyDate(source Date) (int, error) {
	s := w.state
	template, err := w.slotsOf(source)
	if err != nil {
		return 0, err
	}
	if len(template) == 0 && !w.cfg.AllowEmptyBroadcast {
		return 0, ErrEmptyTemplate
	}

	n := 0
	for _, d := range s.SelectedDates {
		if d == source {
			continue
		}
		clones := make([]TimeSlot, len(template))
		for i, slot := range template {
			clones[i] = slot.Clone()
		}
		s.TimeSlots[d] = clones
		n++
	}
	return n, nil
}

func (w *Wizard) applyCategories(template []CategoryTemplate) (int, error) {
	s := w.state
	if len(template) == 0 && !w.cfg.AllowEmptyBroadcast {
		return 0, ErrEmptyTemplate
	}

	n := 0
	for _, d := range s.SelectedDates {
		slots := s.TimeSlots[d]
		if len(slots) == 0 {
			continue
		}
		for i := range slots {
			categories := make([]TicketCategory, len(template))
			for j, t := range template {
				categories[j] = TicketCategory{
					ID:           w.cfg.IDs.NewID(),
					Label:        t.Label,
					Price:        clampPrice(t.Price),
					TotalTickets: clampCount(t.TotalTickets),
				}
			}
			slots[i].SeatCategories = categories
		}
		n++
	}
	return n, nil
}
