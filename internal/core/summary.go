package core

// TeamTotal is one row of the global summary report: how often a team
// visited and how much it spent overall.
type TeamTotal struct {
	TeamName   string
	Visits     int
	SpentCents int64
}
