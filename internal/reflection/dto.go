package reflection

type CreateReflectionDTO struct {
	Date          string         `json:"date"`
	Type          ReflectionType `json:"type"`
	MoodScore     *int           `json:"moodScore"`
	BusynessScore *int           `json:"busynessScore"`
	Comment       string         `json:"comment"`
	Achievements  string         `json:"achievements"`
	Challenges    string         `json:"challenges"`
	NextActions   string         `json:"nextActions"`
}

type UpdateReflectionDTO struct {
	MoodScore     *int    `json:"moodScore"`
	BusynessScore *int    `json:"busynessScore"`
	Comment       *string `json:"comment"`
	Achievements  *string `json:"achievements"`
	Challenges    *string `json:"challenges"`
	NextActions   *string `json:"nextActions"`
}
