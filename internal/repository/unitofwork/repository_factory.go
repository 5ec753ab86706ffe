package unitofwork

import "context"

// RepositoryFactory hands out one UnitOfWork per workspace save, load or
// delete.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
