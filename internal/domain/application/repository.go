package application

import "context"

// Filter narrows List results. Zero-value fields are ignored.
type Filter struct {
	Status     Status
	LoanType   LoanType
	CustomerID string
	AssignedTo string
}

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id uint64) (*Application, error)
	// GetByNumber resolves an active (not soft-deleted) application.
	GetByNumber(ctx context.Context, number string) (*Application, error)
	// GetAnyByNumber also resolves soft-deleted rows; used by Restore.
	GetAnyByNumber(ctx context.Context, number string) (*Application, error)
	List(ctx context.Context, f Filter) ([]Application, error)
	// Save persists changes with a version check and returns
	// ErrConcurrencyConflict when the row changed under us.
	Save(ctx context.Context, a *Application) error
}
