package repositories

// SentinelDbRepository implements access to the application database. All
// methods take an explicit Executor so that callers decide whether they run
// against the pool or inside a transaction.
type SentinelDbRepository struct{}

func NewSentinelDbRepository() *SentinelDbRepository {
	return &SentinelDbRepository{}
}
