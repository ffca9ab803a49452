package reflection

type ReflectionType string

const (
	TypeDaily   ReflectionType = "daily"
	TypeWeekly  ReflectionType = "weekly"
	TypeMonthly ReflectionType = "monthly"
)

var AllTypes = []ReflectionType{
	TypeDaily,
	TypeWeekly,
	TypeMonthly,
}

func (t ReflectionType) IsValid() bool {
	for _, v := range AllTypes {
		if t == v {
			return true
		}
	}
	return false
}

const (
	MinScore = 1
	MaxScore = 5
)
