package repo

type ProductFilter struct {
	Name     string
	Category string
	LowStock bool
	MinPrice *float64
	MaxPrice *float64
	MinStock *int
	MaxStock *int
	Offset   *int
	Limit    *int
}
