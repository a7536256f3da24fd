package wizard

// PayloadCategory 送出時的票種格式，booked/held 一律為 0
type PayloadCategory struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	Price        float64 `json:"price"`
	TotalTickets int     `json:"totalTickets"`
	Booked       int     `json:"booked"`
	Held         int     `json:"held"`
}

type PayloadSlot struct {
	StartTime      string            `json:"startTime"`
	EndTime        string            `json:"endTime"`
	Duration       string            `json:"duration"`
	Capacity       *int              `json:"capacity,omitempty"`
	SeatCategories []PayloadCategory `json:"seatCategories"`
}

// Payload 活動時段建立 API 的請求本文
type Payload struct {
	EventRefID string                 `json:"event_ref_id"`
	EventDates []Date                 `json:"event_dates"`
	SlotData   map[Date][]PayloadSlot `json:"slot_data"`
}

// TransformToAPIPayload 將表單狀態轉成 API 格式，不做任何 I/O
func TransformToAPIPayload(s *State) Payload {
	p := Payload{
		EventRefID: s.EventRefID,
		EventDates: make([]Date, 0, len(s.SelectedDates)),
		SlotData:   make(map[Date][]PayloadSlot, len(s.SelectedDates)),
	}

	dates := sortedUnique(s.SelectedDates)
	for _, d := range dates {
		p.EventDates = append(p.EventDates, d)

		slots := s.TimeSlots[d]
		out := make([]PayloadSlot, 0, len(slots))
		for _, slot := range slots {
			ps := PayloadSlot{
				StartTime:      slot.StartTime,
				EndTime:        slot.EndTime,
				Duration:       slot.Duration,
				SeatCategories: make([]PayloadCategory, 0, len(slot.SeatCategories)),
			}
			if slot.Capacity != nil {
				c := *slot.Capacity
				ps.Capacity = &c
			}
			for _, c := range slot.SeatCategories {
				ps.SeatCategories = append(ps.SeatCategories, PayloadCategory{
					ID:           c.ID,
					Label:        c.Label,
					Price:        c.Price,
					TotalTickets: c.TotalTickets,
				})
			}
			out = append(out, ps)
		}
		p.SlotData[d] = out
	}
	return p
}

// Revenue 每個已選日期各時段的營收，供畫面顯示
func Revenue(s *State) map[Date][]float64 {
	out := make(map[Date][]float64, len(s.SelectedDates))
	for _, d := range s.SelectedDates {
		slots := s.TimeSlots[d]
		values := make([]float64, len(slots))
		for i, slot := range slots {
			values[i] = SlotRevenue(slot)
		}
		out[d] = values
	}
	return out
}
