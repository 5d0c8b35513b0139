package dates

import "time"

// начало производственных суток
const ShiftStartHour = 6

// ProductionDay относит отметку времени к производственным суткам 06:00–06:00:
// всё, что раньше 06:00, принадлежит предыдущему дню.
func ProductionDay(t time.Time) Day {
	if t.Hour() < ShiftStartHour {
		return FromTime(t).AddDays(-1)
	}
	return FromTime(t)
}

// ProductionWindow возвращает [начало, конец) производственных суток d в зоне loc.
func ProductionWindow(d Day, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(d.y, d.m, d.d, ShiftStartHour, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
