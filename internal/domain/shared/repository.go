package shared

// Filter carries common list query options
type Filter struct {
	Limit   int
	Offset  int
	OrderBy string
	Desc    bool
}

// DefaultFilter returns a filter with sane defaults
func DefaultFilter() Filter {
	return Filter{
		Limit:   50,
		Offset:  0,
		OrderBy: "created_at",
		Desc:    true,
	}
}
