package domain

// Table is a mongo collection name.
type Table string

const (
	TableAuctions        Table = "auctions"
	TablePriceFeeds      Table = "price_feeds"
	TableBalances        Table = "balances"
	TableActivities      Table = "activities"
	TableImplementations Table = "implementations"
)
