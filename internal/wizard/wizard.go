package wizard

import (
	"sort"
	"time"
)

// OvernightPolicy 結束時間早於開始時間時的處理方式
type OvernightPolicy string

const (
	// OvernightWrap 視為跨日，22:00 → 01:30 為 3h 30m
	OvernightWrap OvernightPolicy = "wrap"
	// OvernightReject 回傳 ErrInvalidTimeRange，不修改時段
	OvernightReject OvernightPolicy = "reject"
)

func (p OvernightPolicy) IsValid() bool {
	return p == OvernightWrap || p == OvernightReject
}

// DeselectPolicy 日期被取消選取後，該日時段資料的處理方式
type DeselectPolicy string

const (
	// DeselectRetain 保留資料，重新選取時恢復先前編輯
	DeselectRetain DeselectPolicy = "retain"
	// DeselectPurge 取消選取即刪除該日時段
	DeselectPurge DeselectPolicy = "purge"
)

func (p DeselectPolicy) IsValid() bool {
	return p == DeselectRetain || p == DeselectPurge
}

// State 建立/編輯活動畫面的完整表單狀態
type State struct {
	EventRefID    string              `json:"event_ref_id"`
	Range         DateRange           `json:"range"`
	SelectedDates []Date              `json:"selected_dates"`
	ExistingDates []Date              `json:"existing_dates"`
	ActiveDate    *Date               `json:"active_date,omitempty"`
	TimeSlots     map[Date][]TimeSlot `json:"time_slots"`
}

// NewState 建立空白狀態
func NewState(eventRefID string) *State {
	return &State{
		EventRefID:    eventRefID,
		SelectedDates: make([]Date, 0),
		ExistingDates: make([]Date, 0),
		TimeSlots:     make(map[Date][]TimeSlot),
	}
}

// Config 可注入的依賴與策略；nil 或零值時使用預設
type Config struct {
	IDs                 IDGenerator
	Now                 func() time.Time
	Location            *time.Location
	Overnight           OvernightPolicy
	Deselect            DeselectPolicy
	AllowEmptyBroadcast bool
}

func defaultConfig() Config {
	return Config{
		IDs:       UUIDGenerator{},
		Now:       time.Now,
		Location:  time.Local,
		Overnight: OvernightWrap,
		Deselect:  DeselectRetain,
	}
}

// Wizard 包裝一份 State 與其注入設定，所有修改操作都透過它進行
type Wizard struct {
	state *State
	cfg   Config
}

// New 建立 Wizard。config 可為 nil
func New(state *State, config *Config) *Wizard {
	if state == nil {
		state = NewState("")
	}
	if state.TimeSlots == nil {
		state.TimeSlots = make(map[Date][]TimeSlot)
	}
	if state.SelectedDates == nil {
		state.SelectedDates = make([]Date, 0)
	}
	if state.ExistingDates == nil {
		state.ExistingDates = make([]Date, 0)
	}

	cfg := defaultConfig()
	if config != nil {
		if config.IDs != nil {
			cfg.IDs = config.IDs
		}
		if config.Now != nil {
			cfg.Now = config.Now
		}
		if config.Location != nil {
			cfg.Location = config.Location
		}
		if config.Overnight.IsValid() {
			cfg.Overnight = config.Overnight
		}
		if config.Deselect.IsValid() {
			cfg.Deselect = config.Deselect
		}
		cfg.AllowEmptyBroadcast = config.AllowEmptyBroadcast
	}
	return &Wizard{state: state, cfg: cfg}
}

func (w *Wizard) State() *State {
	return w.state
}

// Today 依設定時區取今天的日曆日期
func (w *Wizard) Today() Date {
	return DateOf(w.cfg.Now(), w.cfg.Location)
}

func (s *State) IsSelected(d Date) bool {
	return indexOfDate(s.SelectedDates, d) >= 0
}

func (s *State) IsExisting(d Date) bool {
	return indexOfDate(s.ExistingDates, d) >= 0
}

// SetExistingDates 編輯模式下標記伺服器已存在的日期
func (s *State) SetExistingDates(dates []Date) {
	s.ExistingDates = sortedUnique(dates)
}

func indexOfDate(dates []Date, d Date) int {
	for i, v := range dates {
		if v == d {
			return i
		}
	}
	return -1
}

func sortedUnique(dates []Date) []Date {
	out := make([]Date, 0, len(dates))
	for _, d := range dates {
		if indexOfDate(out, d) < 0 {
			out = append(out, d)
		}
	}
	sortDates(out)
	return out
}

func sortDates(dates []Date) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}
