package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oknkahraman/appustabul/internal/constants"
	apperrors "github.com/oknkahraman/appustabul/internal/errors"
	model "github.com/oknkahraman/appustabul/internal/models"
	repository "github.com/oknkahraman/appustabul/internal/repositories"
)

type ProfileService struct {
	users  *repository.UserRepository
	skills *repository.SkillRepository
}

func NewProfileService(users *repository.UserRepository, skills *repository.SkillRepository) *ProfileService {
	return &ProfileService{users: users, skills: skills}
}

func (s *ProfileService) CreateWorkerProfile(ctx context.Context, userID, firstName, lastName, city, district string) (*model.WorkerProfile, error) {
	if err := s.requireRole(ctx, userID, constants.RoleWorker); err != nil {
		return nil, err
	}

	profile := &model.WorkerProfile{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		City:      city,
		District:  district,
	}

	if err := s.users.CreateWorkerProfile(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *ProfileService) GetWorkerProfile(ctx context.Context, userID string) (*model.WorkerProfile, error) {
	profile, err := s.users.FindWorkerProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) ListWorkerProfiles(ctx context.Context) ([]model.WorkerProfile, error) {
	return s.users.ListWorkerProfiles(ctx)
}

func (s *ProfileService) CreateEmployerProfile(ctx context.Context, userID, companyName, sector, city, district string) (*model.EmployerProfile, error) {
	if err := s.requireRole(ctx, userID, constants.RoleEmployer); err != nil {
		return nil, err
	}

	profile := &model.EmployerProfile{
		UserID:                  userID,
		CompanyName:             companyName,
		Sector:                  sector,
		City:                    city,
		District:                district,
		PaymentReliabilityScore: defaultReliabilityScore,
	}

	if err := s.users.CreateEmployerProfile(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *ProfileService) GetEmployerProfile(ctx context.Context, userID string) (*model.EmployerProfile, error) {
	profile, err := s.users.FindEmployerProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) ListEmployerProfiles(ctx context.Context) ([]model.EmployerProfile, error) {
	return s.users.ListEmployerProfiles(ctx)
}

// SkillCategoryNode is one node of the taxonomy tree response;
// children are ordered by display_order.
type SkillCategoryNode struct {
	model.SkillCategory
	Children []*SkillCategoryNode `json:"children"`
}

func (s *ProfileService) ListSkillCategories(ctx context.Context) ([]model.SkillCategory, error) {
	return s.skills.ListCategories(ctx)
}

// SkillCategoryTree assembles the flat taxonomy into its
// main > sub > detail hierarchy. Orphan nodes whose parent is missing
// are dropped rather than surfaced as roots.
func (s *ProfileService) SkillCategoryTree(ctx context.Context) ([]*SkillCategoryNode, error) {
	categories, err := s.skills.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*SkillCategoryNode, len(categories))
	for i := range categories {
		nodes[categories[i].ID] = &SkillCategoryNode{
			SkillCategory: categories[i],
			Children:      []*SkillCategoryNode{},
		}
	}

	var tree []*SkillCategoryNode
	for i := range categories {
		node := nodes[categories[i].ID]
		if categories[i].ParentID == nil {
			tree = append(tree, node)
			continue
		}
		if parent, ok := nodes[*categories[i].ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}

	return tree, nil
}

// AddWorkerSkill attaches a taxonomy node to the caller's own worker
// profile; each node at most once per worker.
func (s *ProfileService) AddWorkerSkill(ctx context.Context, actorID, workerID, categoryID string, years int, isPrimary bool) (*model.WorkerSkill, error) {
	if actorID != workerID {
		return nil, apperrors.ErrNotProfileOwner
	}

	if err := s.requireRole(ctx, workerID, constants.RoleWorker); err != nil {
		return nil, err
	}

	if _, err := s.skills.FindCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSkillCategoryNotFound
		}
		return nil, err
	}

	skill, err := s.skills.AddWorkerSkill(ctx, workerID, categoryID, years, isPrimary)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrSkillAlreadyAdded
		}
		return nil, err
	}

	return skill, nil
}

func (s *ProfileService) ListWorkerSkills(ctx context.Context, workerID string) ([]model.WorkerSkill, error) {
	return s.skills.ListWorkerSkills(ctx, workerID)
}

func (s *ProfileService) requireRole(ctx context.Context, userID string, role constants.UserRole) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}

	if user.Role != role {
		return apperrors.ErrRoleNotAllowed
	}

	return nil
}
