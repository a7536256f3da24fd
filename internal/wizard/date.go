package wizard

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date 日曆日期(不含時區)，文字格式為 YYYY-MM-DD
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate 以年/月/日分別建構日期，避免 "YYYY-MM-DD" 被當成 UTC 解析而位移
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 ||
		!allDigits(parts[0]) || !allDigits(parts[1]) || !allDigits(parts[2]) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	y, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	d, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	date := Date{Year: y, Month: time.Month(m), Day: d}
	// 拒絕 2025-02-30 這類會被 time.Date 正規化的日期
	if date.AddDays(0) != date {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return date, nil
}

// allDigits strconv.Atoi 接受 +/- 前綴，固定寬度欄位需先排除
func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// MustParseDate 測試與常數用
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf 取 t 在 loc 時區下的日曆日期
func DateOf(t time.Time, loc *time.Location) Date {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// AddDays 以本地日期運算加減天數
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC)
	return DateOf(t, nil)
}

// Midnight 該日在 loc 的 00:00，寫入 DATE 欄位時使用
func (d Date) Midnight(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) After(other Date) bool {
	return other.Before(d)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange 活動日期區間，兩端皆有值且 StartDate <= EndDate 時才有展開日
type DateRange struct {
	StartDate *Date `json:"startDate,omitempty"`
	EndDate   *Date `json:"endDate,omitempty"`
}

// Days 展開區間內所有日期
func (r DateRange) Days() []Date {
	return GetDatesBetween(r.StartDate, r.EndDate)
}

// Contains 檢查日期是否落在區間內(含兩端)
func (r DateRange) Contains(d Date) bool {
	if r.StartDate == nil || r.EndDate == nil || r.EndDate.Before(*r.StartDate) {
		return false
	}
	return !d.Before(*r.StartDate) && !d.After(*r.EndDate)
}

// GetDatesBetween 回傳 start 到 end(含)的每一天；任一端缺值或 start > end 時回傳空清單
func GetDatesBetween(start, end *Date) []Date {
	dates := make([]Date, 0)
	if start == nil || end == nil || end.Before(*start) {
		return dates
	}
	for d := *start; !d.After(*end); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}
