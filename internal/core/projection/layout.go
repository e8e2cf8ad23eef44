package projection

const (
	IdentityLabel = "label"
	IdentityField = "field"
)

// Layout holds the constants that pin every projected node.
type Layout struct {
	PerRow           int
	ColSpacing       float64
	RowSpacing       float64
	LocationOffsetY  float64
	LocationSpacing  float64
	FieldColSpacing  float64
	FieldRowSpacing  float64
	FieldIdentity    string
	RootFallbackName string
}

func DefaultLayout() Layout {
	return Layout{
		PerRow:           2,
		ColSpacing:       400,
		RowSpacing:       300,
		LocationOffsetY:  140,
		LocationSpacing:  160,
		FieldColSpacing:  350,
		FieldRowSpacing:  150,
		FieldIdentity:    IdentityLabel,
		RootFallbackName: "Event",
	}
}

func (l Layout) perRow() int {
	if l.PerRow < 1 {
		return 1
	}
	return l.PerRow
}

// cell returns the pinned coordinate of grid cell i.
func (l Layout) cell(i int, colSpacing, rowSpacing float64) (float64, float64) {
	w := l.perRow()
	col := i % w
	row := i / w
	x := (float64(col) - float64(w)/2) * colSpacing
	y := float64(row) * rowSpacing
	return x, y
}
