package usecase

import (
	"category_service/internal/clients"
	"category_service/internal/domain"

	"github.com/sirupsen/logrus"
)

// CategoryUseCase orchestrates every public category operation: validate the
// input shape, verify the caller (mutations only), check the policy, then
// delegate to the store. Every returned error carries exactly one of the
// domain outcome kinds.
type CategoryUseCase interface {
	CreateCategory(token string, in domain.CreateCategoryInput) (*domain.Category, error)
	UpdateCategory(token string, id int, in domain.UpdateCategoryInput) (*domain.Category, error)
	DeleteCategory(token string, id int) error
	GetCategoryByID(id int) (*domain.Category, error)
	GetCategoryByName(name string) (*domain.Category, error)
	ListCategories(params domain.ListParams) ([]domain.Category, error)
}

type categoryUseCase struct {
	categoryRepo domain.CategoryRepository
	authClient   clients.AuthClient
	log          *logrus.Logger
}

func NewCategoryUseCase(repo domain.CategoryRepository, auth clients.AuthClient, logger *logrus.Logger) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: repo,
		authClient:   auth,
		log:          logger,
	}
}

// verifyActor runs the verification and authorization steps shared by every
// mutation. An empty token is rejected here, before any network call.
func (uc *categoryUseCase) verifyActor(token string, action domain.Action) (*domain.Identity, error) {
	if token == "" {
		uc.log.Warnf("Use Case: %s rejected - no credential supplied", action)
		return nil, domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "token", Rule: "required", Msg: "credential must be provided"},
		}}
	}

	identity, err := uc.authClient.ValidateToken(token)
	if err != nil {
		return nil, uc.classify(err, "token validation")
	}

	if err := Authorize(identity, action); err != nil {
		uc.log.Warnf("Use Case: %s denied for user ID %d with role '%s'", action, identity.ID, identity.Role)
		return nil, err
	}
	return identity, nil
}

// classify wraps anything that is not already one of the outcome kinds into
// ErrInternal. Known kinds pass through untouched so wrapping happens exactly
// once, here, with the original detail preserved in the logs only.
func (uc *categoryUseCase) classify(err error, op string) error {
	if domain.IsClassified(err) {
		return err
	}
	uc.log.Errorf("Use Case: Unclassified failure during %s: %v", op, err)
	return domain.ErrInternal
}

func (uc *categoryUseCase) CreateCategory(token string, in domain.CreateCategoryInput) (*domain.Category, error) {
	if violations := in.Validate(); len(violations) > 0 {
		uc.log.Warnf("Use Case: Create rejected - %d validation violations", len(violations))
		return nil, domain.ValidationError{Violations: violations}
	}

	identity, err := uc.verifyActor(token, domain.ActionCreateCategory)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: User ID %d creating category '%s'", identity.ID, in.Name)
	created, err := uc.categoryRepo.CreateCategory(in.Category())
	if err != nil {
		return nil, uc.classify(err, "create category")
	}

	uc.log.Infof("Use Case: Category '%s' created with ID %d", created.Name, created.ID)
	return created, nil
}

func (uc *categoryUseCase) UpdateCategory(token string, id int, in domain.UpdateCategoryInput) (*domain.Category, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Update rejected - invalid ID %d", id)
		return nil, domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "id", Rule: "positive", Msg: "id must be a positive integer"},
		}}
	}
	if violations := in.Validate(); len(violations) > 0 {
		uc.log.Warnf("Use Case: Update rejected for ID %d - %d validation violations", id, len(violations))
		return nil, domain.ValidationError{Violations: violations}
	}

	identity, err := uc.verifyActor(token, domain.ActionUpdateCategory)
	if err != nil {
		return nil, err
	}

	// Soft-deleted categories are excluded from the update path; the lookup
	// distinguishes deleted from missing before any merge runs.
	if _, err := uc.categoryRepo.GetCategoryByID(id); err != nil {
		uc.log.Warnf("Use Case: Update refused for category ID %d: %v", id, err)
		return nil, uc.classify(err, "update category lookup")
	}

	uc.log.Infof("Use Case: User ID %d updating category ID %d", identity.ID, id)
	updated, err := uc.categoryRepo.UpdateCategory(id, in.Patch())
	if err != nil {
		return nil, uc.classify(err, "update category")
	}

	uc.log.Infof("Use Case: Category updated with ID %d", updated.ID)
	return updated, nil
}

func (uc *categoryUseCase) DeleteCategory(token string, id int) error {
	if id <= 0 {
		uc.log.Warnf("Use Case: Delete rejected - invalid ID %d", id)
		return domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "id", Rule: "positive", Msg: "id must be a positive integer"},
		}}
	}

	identity, err := uc.verifyActor(token, domain.ActionDeleteCategory)
	if err != nil {
		return err
	}

	uc.log.Infof("Use Case: User ID %d deleting category ID %d", identity.ID, id)
	if err := uc.categoryRepo.SoftDeleteCategory(id); err != nil {
		return uc.classify(err, "delete category")
	}

	uc.log.Infof("Use Case: Category soft-deleted with ID %d", id)
	return nil
}

func (uc *categoryUseCase) GetCategoryByID(id int) (*domain.Category, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Get rejected - invalid ID %d", id)
		return nil, domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "id", Rule: "positive", Msg: "id must be a positive integer"},
		}}
	}

	category, err := uc.categoryRepo.GetCategoryByID(id)
	if err != nil {
		return nil, uc.classify(err, "get category by id")
	}
	return category, nil
}

func (uc *categoryUseCase) GetCategoryByName(name string) (*domain.Category, error) {
	if name == "" {
		uc.log.Warn("Use Case: Get rejected - name was not provided")
		return nil, domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "name", Rule: "required", Msg: "name must be provided"},
		}}
	}

	category, err := uc.categoryRepo.GetCategoryByName(name)
	if err != nil {
		return nil, uc.classify(err, "get category by name")
	}
	return category, nil
}

func (uc *categoryUseCase) ListCategories(params domain.ListParams) ([]domain.Category, error) {
	normalized := params.Normalize()
	categories, err := uc.categoryRepo.ListCategories(normalized)
	if err != nil {
		return nil, uc.classify(err, "list categories")
	}

	uc.log.Infof("Use Case: Retrieved %d categories", len(categories))
	return categories, nil
}
