package engine

import "fmt"

// DaysPerYear is the length of a simulated year.
const DaysPerYear = 365

// Calendar renders a simulation day as "Year N, Day D". Day 0 is the first
// day of year one.
func Calendar(day int) string {
	day = max(0, day)
	return fmt.Sprintf("Year %d, Day %d", day/DaysPerYear+1, day%DaysPerYear+1)
}
