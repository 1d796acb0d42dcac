package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultEventEndTime 活動未指定結束時間時的預設值
var DefaultEventEndTime = ClockTimeOf(23, 59)

// Event 活動模型。由活動建立流程負責維護，這裡只讀取
type Event struct {
	ID      int       `json:"id" db:"id"`
	EventID uuid.UUID `json:"event_id" db:"event_id"`
	Name    string    `json:"name" db:"name"`
	// Date 活動日期(只取日期部分)。尚未排定日期的活動為 nil
	Date    *time.Time `json:"date,omitempty" db:"date"`
	EndTime ClockTime  `json:"end_time" db:"end_time"`
	// CapacityOverride 活動層級的容量上限，獨立於各票種容量總和
	CapacityOverride *int      `json:"capacity_override,omitempty" db:"capacity_override"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// DateOnly 截掉時間部分，只留日期
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
