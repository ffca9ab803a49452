package settings

type UpdateSettingsDTO struct {
	WeekdayHoursPerDay *float64 `json:"weekdayHoursPerDay"`
	WeekendHoursPerDay *float64 `json:"weekendHoursPerDay"`
}
