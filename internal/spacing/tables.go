package spacing

// Pair is a (row, within-row) distance in inches. Row may be zero.
type Pair struct {
	Row   float64 `yaml:"row"`
	Plant float64 `yaml:"plant"`
}

// Tables holds the per-method reference data keyed by crop name. A Registry
// never mutates its Tables.
type Tables struct {
	SquareFoot map[string]float64
	Row        map[string]Pair
	Intensive  map[string]float64
	MIGardener map[string]Pair
}

// DefaultTables returns a fresh copy of the built-in method tables.
func DefaultTables() Tables {
	return Tables{
		SquareFoot: map[string]float64{
			"carrot":     16,
			"radish":     16,
			"bean":       9,
			"beet":       9,
			"garlic":     9,
			"onion":      9,
			"spinach":    9,
			"peas":       8,
			"pea":        8,
			"lettuce":    4,
			"basil":      4,
			"chard":      4,
			"corn":       4,
			"leek":       4,
			"tomato":     1,
			"pepper":     1,
			"kale":       1,
			"cabbage":    1,
			"broccoli":   1,
			"cucumber":   1,
			"potato":     1,
			"watermelon": 0.5,
			"squash":     0.5,
			"melon":      0.5,
			"pumpkin":    0.5,
			"zucchini":   0.5,
		},
		Row: map[string]Pair{
			"carrot":  {Row: 12, Plant: 2},
			"radish":  {Row: 12, Plant: 2},
			"bean":    {Row: 24, Plant: 4},
			"corn":    {Row: 30, Plant: 12},
			"peas":    {Row: 24, Plant: 2},
			"beet":    {Row: 12, Plant: 3},
			"onion":   {Row: 12, Plant: 4},
			"garlic":  {Row: 12, Plant: 6},
			"lettuce": {Row: 12, Plant: 8},
			"spinach": {Row: 12, Plant: 4},
			"potato":  {Row: 30, Plant: 12},
		},
		Intensive: map[string]float64{
			"tomato":     18,
			"pepper":     12,
			"lettuce":    8,
			"carrot":     3,
			"radish":     2,
			"bean":       6,
			"beet":       4,
			"kale":       15,
			"spinach":    6,
			"onion":      4,
			"garlic":     6,
			"watermelon": 24,
			"squash":     24,
			"cucumber":   12,
			"basil":      8,
			"peas":       3,
			"corn":       15,
		},
		MIGardener: map[string]Pair{
			"lettuce": {Row: 0, Plant: 4},
			"spinach": {Row: 0, Plant: 3},
			"radish":  {Row: 0, Plant: 2},
			"carrot":  {Row: 0, Plant: 2},
			"basil":   {Row: 0, Plant: 4},
			"bean":    {Row: 6, Plant: 3},
			"peas":    {Row: 4, Plant: 2},
			"beet":    {Row: 4, Plant: 3},
			"onion":   {Row: 4, Plant: 2},
			"garlic":  {Row: 4, Plant: 4},
			"tomato":  {Row: 24, Plant: 12},
			"pepper":  {Row: 12, Plant: 8},
			"kale":    {Row: 12, Plant: 8},
			"corn":    {Row: 12, Plant: 6},
		},
	}
}
