package directory

const (
	DefaultPageSize        = 20
	DefaultRestaurantLimit = 1000
	MaxPageSize            = 1000
)

// normalizePage clamps a one-based page request to sane bounds and returns
// the row offset and limit.
func normalizePage(page, pageSize, fallback int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = fallback
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return (page - 1) * pageSize, pageSize
}
