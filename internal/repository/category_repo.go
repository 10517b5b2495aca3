package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"category_service/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const uniqueViolation = "23505"

// sortColumns whitelists the columns a ListCategories request may order by.
var sortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type postgresCategoryRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCategoryRepository(db *sql.DB, logger *logrus.Logger) domain.CategoryRepository {
	return &postgresCategoryRepository{
		db:  db,
		log: logger,
	}
}

const categoryColumns = "id, name, COALESCE(description, ''), is_deleted, created_at, updated_at, deleted_at"

func scanCategory(row interface{ Scan(dest ...any) error }, c *domain.Category) error {
	return row.Scan(&c.ID, &c.Name, &c.Description, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
}

// CreateCategory persists a new active category. Name uniqueness among active
// rows is enforced by a partial unique index, so the existence check and the
// insert are one atomic statement; a concurrent duplicate loses with 23505.
func (r *postgresCategoryRepository) CreateCategory(category *domain.Category) (*domain.Category, error) {
	query := `INSERT INTO categories (name, description)
	          VALUES ($1, $2)
	          RETURNING ` + categoryColumns
	created := &domain.Category{}
	err := scanCategory(r.db.QueryRow(query, category.Name, category.Description), created)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			r.log.Warnf("Repo: Attempted to create category with duplicate name: %s", category.Name)
			return nil, fmt.Errorf("%w: name '%s' is taken", domain.ErrAlreadyExists, category.Name)
		}
		r.log.Errorf("Repo: Failed to create category '%s': %v", category.Name, err)
		return nil, fmt.Errorf("%w: could not create category: %v", domain.ErrInternal, err)
	}
	r.log.Infof("Repo: Category created with ID %d, Name '%s'", created.ID, created.Name)
	return created, nil
}

func (r *postgresCategoryRepository) GetCategoryByID(id int) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	category := &domain.Category{}
	err := scanCategory(r.db.QueryRow(query, id), category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repo: Category with ID %d not found", id)
			return nil, fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
		}
		r.log.Errorf("Repo: Failed to get category by ID %d: %v", id, err)
		return nil, fmt.Errorf("%w: could not get category by id: %v", domain.ErrInternal, err)
	}
	if category.IsDeleted {
		r.log.Warnf("Repo: Category with ID %d is soft-deleted", id)
		return nil, fmt.Errorf("%w: '%s'", domain.ErrAlreadyDeleted, category.Name)
	}
	return category, nil
}

// GetCategoryByName prefers the active row when a soft-deleted row holds the
// same name, so historical rows never shadow a live category.
func (r *postgresCategoryRepository) GetCategoryByName(name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1 ORDER BY is_deleted ASC, id DESC LIMIT 1`
	category := &domain.Category{}
	err := scanCategory(r.db.QueryRow(query, name), category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repo: Category with name '%s' not found", name)
			return nil, fmt.Errorf("%w: name '%s'", domain.ErrNotFound, name)
		}
		r.log.Errorf("Repo: Failed to get category by name '%s': %v", name, err)
		return nil, fmt.Errorf("%w: could not get category by name: %v", domain.ErrInternal, err)
	}
	if category.IsDeleted {
		r.log.Warnf("Repo: Category with name '%s' is soft-deleted", name)
		return nil, fmt.Errorf("%w: '%s'", domain.ErrAlreadyDeleted, category.Name)
	}
	return category, nil
}

// UpdateCategory merges the patch into the stored row: nil patch fields keep
// their current value. The store does not re-check the soft-delete flag;
// lookup policy lives in the use case layer.
func (r *postgresCategoryRepository) UpdateCategory(id int, patch domain.CategoryPatch) (*domain.Category, error) {
	query := `UPDATE categories
	          SET name = COALESCE($1, name),
	              description = COALESCE($2, description),
	              updated_at = now()
	          WHERE id = $3
	          RETURNING ` + categoryColumns
	updated := &domain.Category{}
	err := scanCategory(r.db.QueryRow(query, patch.Name, patch.Description, id), updated)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			r.log.Warnf("Repo: Attempted to update category ID %d to a duplicate name", id)
			return nil, fmt.Errorf("%w: name is taken", domain.ErrAlreadyExists)
		}
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repo: Category with ID %d not found for update", id)
			return nil, fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
		}
		r.log.Errorf("Repo: Failed to update category ID %d: %v", id, err)
		return nil, fmt.Errorf("%w: could not update category: %v", domain.ErrInternal, err)
	}
	r.log.Infof("Repo: Category updated with ID %d", updated.ID)
	return updated, nil
}

// SoftDeleteCategory marks the row deleted. Flag and timestamp are set by one
// statement so a reader never observes one without the other. Deleting an
// already-deleted category reports ErrAlreadyDeleted rather than succeeding
// silently.
func (r *postgresCategoryRepository) SoftDeleteCategory(id int) error {
	query := `UPDATE categories
	          SET is_deleted = TRUE, deleted_at = now(), updated_at = now()
	          WHERE id = $1 AND is_deleted = FALSE`
	result, err := r.db.Exec(query, id)
	if err != nil {
		r.log.Errorf("Repo: Failed to soft-delete category ID %d: %v", id, err)
		return fmt.Errorf("%w: could not delete category: %v", domain.ErrInternal, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repo: Failed to read rows affected for category ID %d: %v", id, err)
		return fmt.Errorf("%w: could not confirm category deletion: %v", domain.ErrInternal, err)
	}
	if rowsAffected > 0 {
		r.log.Infof("Repo: Category soft-deleted with ID %d", id)
		return nil
	}

	// Nothing matched: either the row never existed or it was deleted before.
	var isDeleted bool
	err = r.db.QueryRow(`SELECT is_deleted FROM categories WHERE id = $1`, id).Scan(&isDeleted)
	if errors.Is(err, sql.ErrNoRows) {
		r.log.Warnf("Repo: Category with ID %d not found for deletion", id)
		return fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
	}
	if err != nil {
		r.log.Errorf("Repo: Failed to check category ID %d after deletion attempt: %v", id, err)
		return fmt.Errorf("%w: could not confirm category deletion: %v", domain.ErrInternal, err)
	}
	r.log.Warnf("Repo: Category with ID %d was already soft-deleted", id)
	return fmt.Errorf("%w: id %d", domain.ErrAlreadyDeleted, id)
}

// ListCategories returns one page of the raw record set, soft-deleted rows
// included; the list is the audit view, only single-record lookups filter.
// Sort options are applied in the order supplied, with a trailing "id ASC"
// so pages stay stable when the requested columns tie.
func (r *postgresCategoryRepository) ListCategories(params domain.ListParams) ([]domain.Category, error) {
	orderBy, err := buildOrderBy(params.Sort)
	if err != nil {
		r.log.Warnf("Repo: Rejected list sort options: %v", err)
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM categories ORDER BY %s LIMIT $1 OFFSET $2`, categoryColumns, orderBy)
	offset := (params.Page - 1) * params.Limit

	rows, err := r.db.Query(query, params.Limit, offset)
	if err != nil {
		r.log.Errorf("Repo: Failed to list categories: %v", err)
		return nil, fmt.Errorf("%w: could not list categories: %v", domain.ErrInternal, err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		if err := scanCategory(rows, &category); err != nil {
			r.log.Errorf("Repo: Failed to scan category row: %v", err)
			return nil, fmt.Errorf("%w: could not scan category: %v", domain.ErrInternal, err)
		}
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Repo: Error during categories list iteration: %v", err)
		return nil, fmt.Errorf("%w: error iterating categories: %v", domain.ErrInternal, err)
	}

	r.log.Infof("Repo: Retrieved %d categories (page %d, limit %d)", len(categories), params.Page, params.Limit)
	return categories, nil
}

func buildOrderBy(sort []domain.SortOption) (string, error) {
	clauses := make([]string, 0, len(sort)+1)
	for _, opt := range sort {
		column, ok := sortColumns[strings.ToLower(strings.TrimSpace(opt.OrderBy))]
		if !ok {
			return "", fmt.Errorf("%w: cannot sort by '%s'", domain.ErrInvalidRequest, opt.OrderBy)
		}
		direction := strings.ToUpper(strings.TrimSpace(opt.Order))
		if direction == "" {
			direction = "ASC"
		}
		if direction != "ASC" && direction != "DESC" {
			return "", fmt.Errorf("%w: sort order must be ASC or DESC, got '%s'", domain.ErrInvalidRequest, opt.Order)
		}
		clauses = append(clauses, column+" "+direction)
	}
	clauses = append(clauses, "id ASC")
	return strings.Join(clauses, ", "), nil
}
