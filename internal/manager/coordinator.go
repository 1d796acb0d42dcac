package manager

// DialogKind 同一時間最多開啟一個 modal dialog
type DialogKind string

const (
	DialogNone     DialogKind = ""
	DialogAdd      DialogKind = "add"
	DialogEdit     DialogKind = "edit"
	DialogDelete   DialogKind = "delete"
	DialogCapacity DialogKind = "capacity"
)

// CalendarKind 同一時間最多開啟一個日期選擇器
type CalendarKind string

const (
	CalendarNone     CalendarKind = ""
	CalendarStart    CalendarKind = "start"
	CalendarEnd      CalendarKind = "end"
	CalendarCapacity CalendarKind = "capacity"
)

// DialogCoordinator 雙軸互斥選擇狀態機。dialog 切換時 calendar 一律歸零，
// (None, None) 是初始狀態，也是每次操作完成後回到的狀態
type DialogCoordinator struct {
	dialog   DialogKind
	calendar CalendarKind
}

func (c *DialogCoordinator) Dialog() DialogKind {
	return c.dialog
}

func (c *DialogCoordinator) Calendar() CalendarKind {
	return c.calendar
}

func (c *DialogCoordinator) OpenDialog(kind DialogKind) {
	c.dialog = kind
	c.calendar = CalendarNone
}

// Close 冪等，關 dialog 同時重設 calendar
func (c *DialogCoordinator) Close() {
	c.dialog = DialogNone
	c.calendar = CalendarNone
}

// ToggleCalendar 點同一個日期選擇器第二次會把它關掉。
// 沒有 dialog 開啟時不動作
func (c *DialogCoordinator) ToggleCalendar(kind CalendarKind) {
	if c.dialog == DialogNone {
		return
	}
	if c.calendar == kind {
		c.calendar = CalendarNone
		return
	}
	c.calendar = kind
}
