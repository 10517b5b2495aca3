package domain

import "time"

// Category is the managed resource. Rows are never physically removed:
// SoftDeleteCategory only flips IsDeleted and stamps DeletedAt.
type Category struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsDeleted   bool       `json:"is_deleted"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// CategoryPatch carries the fields of a partial update. A nil field means
// "leave the stored value untouched" (merge, not replace).
type CategoryPatch struct {
	Name        *string
	Description *string
}

// SortOption is one (column, direction) pair of a list request. Options are
// applied in the order the caller supplied them.
type SortOption struct {
	OrderBy string `json:"orderBy"`
	Order   string `json:"order"` // "ASC" or "DESC"
}

// ListParams describes one page of the category listing.
type ListParams struct {
	Page  int
	Limit int
	Sort  []SortOption
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

// Normalize applies the listing defaults and clamps the page size to MaxLimit.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

type CategoryRepository interface {
	CreateCategory(category *Category) (*Category, error)
	GetCategoryByID(id int) (*Category, error)
	GetCategoryByName(name string) (*Category, error)
	UpdateCategory(id int, patch CategoryPatch) (*Category, error)
	SoftDeleteCategory(id int) error
	ListCategories(params ListParams) ([]Category, error)
}
