package wizard

// CheckSelectable 日曆層的選取檢查：已存在日期一律不可選，其次檢查區間與過去日期
func (w *Wizard) CheckSelectable(d Date) error {
	s := w.state
	if s.IsExisting(d) {
		return ErrDateAlreadyExists
	}
	if !s.Range.Contains(d) {
		return ErrDateOutOfRange
	}
	if d.Before(w.Today()) {
		return ErrDateInPast
	}
	return nil
}

// ToggleDateSelection 已選取則移除，否則加入；本身不做任何檢查，回傳切換後是否為選取狀態
func (w *Wizard) ToggleDateSelection(d Date) bool {
	s := w.state
	if i := indexOfDate(s.SelectedDates, d); i >= 0 {
		kept := make([]Date, 0, len(s.SelectedDates)-1)
		kept = append(kept, s.SelectedDates[:i]...)
		s.SelectedDates = append(kept, s.SelectedDates[i+1:]...)
		w.forget(d)
		return false
	}
	s.SelectedDates = append(s.SelectedDates, d)
	sortDates(s.SelectedDates)
	return true
}

// SetActiveDate 切換目前編輯的日期，不影響選取集合
func (w *Wizard) SetActiveDate(d Date) error {
	if !w.state.IsSelected(d) {
		return ErrDateNotSelected
	}
	active := d
	w.state.ActiveDate = &active
	return nil
}

// SetDateRange 更換區間並剔除落在新區間外的已選日期
func (w *Wizard) SetDateRange(r DateRange) {
	s := w.state
	s.Range = r
	kept := make([]Date, 0, len(s.SelectedDates))
	for _, d := range s.SelectedDates {
		if r.Contains(d) {
			kept = append(kept, d)
			continue
		}
		w.forget(d)
	}
	s.SelectedDates = kept
}

// forget 日期離開選取集合時的清理
func (w *Wizard) forget(d Date) {
	s := w.state
	if s.ActiveDate != nil && *s.ActiveDate == d {
		s.ActiveDate = nil
	}
	if w.cfg.Deselect == DeselectPurge {
		delete(s.TimeSlots, d)
	}
}
