package importer

const (
	colKeyPlansRatio    = "key plans ratio"
	colOtherLayouts     = "other layouts"
	colWPRHalfWeek      = "wpr half week"
	colManpowerRatio    = "manpower ratio"
	colDPRRatio         = "dpr ratio"
	colManpowerDayRatio = "manpower day ratio"
	colWPRRatio         = "wpr ratio"
)

type ratio struct {
	target, numerator, denominator string
}

var designRatios = []ratio{
	{colKeyPlansRatio, "no key plans spaces", "mapped spaces"},
}

var operationRatios = []ratio{
	{colWPRHalfWeek, "wpr download weeks", "weeks till date"},
	{colManpowerRatio, "actual manpower", "planned manpower"},
	{colDPRRatio, "dpr added days", "days till date"},
	{colManpowerDayRatio, "manpower added days", "days till date"},
	{colWPRRatio, "wpr share to client", "weeks till date"},
}

// Derive adds the computed columns of a sheet to a numeric row. A column is
// only derived when both of its inputs are present, and a zero divisor
// counts as one.
func Derive(kind SheetKind, row map[string]float64) {
	switch kind {
	case SheetDesign:
		applyRatios(designRatios, row)
		layouts, okL := row["layouts"]
		furniture, okF := row["furniture layouts"]
		if okL && okF {
			row[colOtherLayouts] = layouts - furniture
		}
	case SheetOperation:
		applyRatios(operationRatios, row)
	}
}

func applyRatios(ratios []ratio, row map[string]float64) {
	for _, r := range ratios {
		n, okN := row[r.numerator]
		d, okD := row[r.denominator]
		if !okN || !okD {
			continue
		}
		row[r.target] = SafeDivide(n, d)
	}
}

func SafeDivide(n, d float64) float64 {
	if d == 0 {
		d = 1
	}
	return n / d
}
