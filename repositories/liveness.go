package repositories

import "context"

// Liveness checks that the database answers a trivial query.
func (repo SentinelDbRepository) Liveness(ctx context.Context, exec Executor) error {
	var one int
	return exec.QueryRow(ctx, "SELECT 1").Scan(&one)
}
