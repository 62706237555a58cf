package entity

// CategoryStatusCount is one row of the grouped complaint counts.
type CategoryStatusCount struct {
	Category string
	Status   ComplaintStatus
	Count    int64
}

type CategoryCount struct {
	Category string
	Count    int64
}

type Report struct {
	Total      int64
	Pending    int64
	Resolved   int64
	ByCategory []CategoryCount
}
