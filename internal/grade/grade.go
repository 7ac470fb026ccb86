package grade

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Entry struct {
	Name        string
	MinAccuracy float64 // Inclusive lower bound, in percent
	Color       uint32  // 0xRRGGBB
	Bonus       int     // Flat score bonus for finishing with this grade
	Description string
	Title       string
}

// Table is ordered from the highest threshold down; the last entry catches
// everything.
type Table []Entry

func DefaultTable() Table {
	return Table{
		{Name: "SSS+", MinAccuracy: 100, Color: 0xffe86b, Bonus: 1000, Description: "Perfect!", Title: "Absolute Perfection"},
		{Name: "SSS", MinAccuracy: 99.5, Color: 0xffd700, Bonus: 800, Description: "Phenomenal!", Title: "Masterful Performance"},
		{Name: "SS", MinAccuracy: 98, Color: 0xff9ef0, Bonus: 600, Description: "Incredible!", Title: "Elite Performance"},
		{Name: "S", MinAccuracy: 95, Color: 0x9ef0ff, Bonus: 500, Description: "Excellent!", Title: "Superior Performance"},
		{Name: "A", MinAccuracy: 90, Color: 0x6ee7b7, Bonus: 400, Description: "Great!", Title: "Advanced Performance"},
		{Name: "B", MinAccuracy: 80, Color: 0xa8d7ff, Bonus: 300, Description: "Good!", Title: "Skilled Performance"},
		{Name: "C", MinAccuracy: 70, Color: 0xff9ea8, Bonus: 200, Description: "Decent", Title: "Standard Performance"},
		{Name: "D", MinAccuracy: 60, Color: 0xff7b7b, Bonus: 100, Description: "Pass", Title: "Basic Performance"},
		{Name: "F", MinAccuracy: 0, Color: 0x888888, Bonus: 0, Description: "Failed", Title: "Practice More"},
	}
}

// Lookup returns the first entry whose threshold the accuracy meets.
func (t Table) Lookup(accuracy float64) Entry {
	for _, e := range t {
		if accuracy >= e.MinAccuracy {
			return e
		}
	}
	return t.fallback()
}

func (t Table) Get(name string) (Entry, bool) {
	for _, e := range t {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func (t Table) fallback() Entry {
	if len(t) == 0 {
		return Entry{Name: "F"}
	}
	return t[len(t)-1]
}

// FinalScore adds the grade bonus to the base score. Unknown grades get the
// catch-all entry's bonus.
func (t Table) FinalScore(base int, grade string) int {
	e, ok := t.Get(grade)
	if !ok {
		e = t.fallback()
	}
	return int(math.Round(float64(base) + float64(e.Bonus)))
}

var printer = message.NewPrinter(language.English)

// FormatNumber renders n with thousands separators.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}
