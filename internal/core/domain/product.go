package domain

type Product struct {
	ID       string
	Title    string
	Brand    string
	Color    string
	Material string
	Category string
	Gender   string
	Price    int
	Size     []string
	Rating   float64
	Delivery string
	Image    string
	Link     string
}

// FilterSet holds the constraints extracted from a free-text query.
// A zero string field or a nil price bound means the dimension is
// unconstrained. Price bounds are inclusive.
type FilterSet struct {
	Category string
	Color    string
	Brand    string
	Material string
	Gender   string
	MinPrice *int
	MaxPrice *int
}

func (f FilterSet) Empty() bool {
	return f.Category == "" &&
		f.Color == "" &&
		f.Brand == "" &&
		f.Material == "" &&
		f.Gender == "" &&
		f.MinPrice == nil &&
		f.MaxPrice == nil
}
