package stats

type StatsContainer struct {
	Handler *Handler
}

func NewStatsContainer(tasks TaskSource, goals GoalSource) *StatsContainer {
	return &StatsContainer{Handler: NewHandler(NewService(tasks, goals))}
}
