package mailstore

// Store is the mail source the pipeline drains. Ids are opaque to callers;
// listing is ascending, with the most recent message last.
type Store interface {
	ListRecentMessageIDs(limit int) ([]uint32, error)
	FetchRawMessage(id uint32) ([]byte, error)
	Close() error
}
