package domain

// ProductQuery describes one retrieval attempt against the product store.
// Zero values mean "no constraint"; an entirely empty query with PopularFirst
// set is the unconstrained popularity scan.
type ProductQuery struct {
	Categories   []string
	Filters      Filters
	Text         string
	PopularFirst bool
	Limit        int
	Offset       int
}
