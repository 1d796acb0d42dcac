package model

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// ClockTime 牆上時鐘時間(一天內的時刻)，內部以「午夜起算的分鐘數」表示
type ClockTime struct {
	minutes int
}

func ClockTimeOf(hour, minute int) ClockTime {
	return FromMinutes(hour*60 + minute)
}

// FromMinutes 建立 ClockTime，超出一天的部分會 wrap 回 [0, 1440)
func FromMinutes(m int) ClockTime {
	m %= minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return ClockTime{minutes: m}
}

// ParseClockTime 同時接受 24 小時制 "15:04" 與 12 小時制 "03:04 PM"
func ParseClockTime(s string) (ClockTime, error) {
	for _, layout := range []string{"15:04", "03:04 PM", "3:04 PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTimeOf(t.Hour(), t.Minute()), nil
		}
	}
	return ClockTime{}, fmt.Errorf("invalid clock time %q", s)
}

func (c ClockTime) Hour() int {
	return c.minutes / 60
}

func (c ClockTime) Minute() int {
	return c.minutes % 60
}

func (c ClockTime) Minutes() int {
	return c.minutes
}

func (c ClockTime) AddMinutes(d int) ClockTime {
	return FromMinutes(c.minutes + d)
}

// HourBefore 往前一小時，分鐘不變。hour 0 wrap 到 23
func (c ClockTime) HourBefore() ClockTime {
	return ClockTimeOf((c.Hour()+23)%24, c.Minute())
}

func (c ClockTime) Before(other ClockTime) bool {
	return c.minutes < other.minutes
}

func (c ClockTime) After(other ClockTime) bool {
	return c.minutes > other.minutes
}

// String 以 12 小時制輸出，與前端交換的格式一致
func (c ClockTime) String() string {
	return time.Date(0, 1, 1, c.Hour(), c.Minute(), 0, 0, time.UTC).Format("03:04 PM")
}

// Format24 以 24 小時制輸出，存入資料庫的格式
func (c ClockTime) Format24() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", c.String())), nil
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid clock time %s", data)
	}
	parsed, err := ParseClockTime(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
