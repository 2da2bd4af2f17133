package usecase

const (
	// DefaultPageSize is used when no limit is supplied.
	DefaultPageSize = 20

	// MaxPageSize caps list queries.
	MaxPageSize = 100
)
