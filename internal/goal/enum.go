package goal

import "github.com/saulo-duarte/coach-lambda/internal/extract"

type Priority string

const (
	PriorityHigh   Priority = extract.PriorityHigh
	PriorityMedium Priority = extract.PriorityMedium
	PriorityLow    Priority = extract.PriorityLow
)

var AllPriorities = []Priority{
	PriorityHigh,
	PriorityMedium,
	PriorityLow,
}

func (p Priority) IsValid() bool {
	for _, v := range AllPriorities {
		if p == v {
			return true
		}
	}
	return false
}
