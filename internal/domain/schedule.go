package domain

// ShiftWindow - интервал смены в 24-часовом формате "HH:MM"
type ShiftWindow struct {
	Start string
	End   string
}

// ShiftSchedule - расписание смен. Строится один раз при старте процесса
// и передаётся в сервис по значению, без глобального состояния.
type ShiftSchedule map[Shift]ShiftWindow

// DefaultShiftSchedule возвращает стандартное расписание смен.
// Ночная смена пересекает полночь; пунктуальность по ней считается
// тем же сравнением строк, что и для остальных смен (см. IsPunctual).
func DefaultShiftSchedule() ShiftSchedule {
	return ShiftSchedule{
		ShiftMorning: {Start: "06:00", End: "14:00"},
		ShiftEvening: {Start: "14:00", End: "22:00"},
		ShiftNight:   {Start: "22:00", End: "06:00"},
		ShiftMixed:   {Start: "12:00", End: "00:00"},
	}
}

// IsPunctual проверяет, укладывается ли время входа "HH:MM" в начало смены.
// Сравнение лексикографическое в пределах одного дня, без коррекции
// для смен, начинающихся до полуночи.
func (s ShiftSchedule) IsPunctual(shift Shift, clockIn string) bool {
	window, ok := s[shift]
	if !ok {
		return false
	}
	return clockIn <= window.Start
}
