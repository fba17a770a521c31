package postgres

import (
	"context"

	"gorm.io/gorm"

	"userhub/internal/domain/entity"
	"userhub/internal/domain/repository"
	"userhub/internal/errors"
	"userhub/internal/infra/persistence/model"
)

// userRepository implements repository.UserRepository on GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, identifier string, activeOnly bool) (*entity.User, error) {
	var m model.UserModel

	query := r.db.WithContext(ctx).Where("username = ? OR email = ?", identifier, identifier)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username or email")
	}

	return toEntity(&m), nil
}

func (r *userRepository) Insert(ctx context.Context, user *repository.NewUser) (int64, error) {
	m := model.UserModel{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Age:          user.Age,
		Roles:        user.Roles.ToStrings(),
		IsActive:     user.IsActive,
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return 0, repository.ErrDuplicateUser
		}

		return 0, errors.Wrap(err, "failed to insert user")
	}

	return m.ID, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var m model.UserModel

	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toEntity(&m), nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	var models []model.UserModel

	if err := r.db.WithContext(ctx).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, len(models))
	for i := range models {
		users[i] = toEntity(&models[i])
	}

	return users, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check username existence")
	}

	return count > 0, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check email existence")
	}

	return count > 0, nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int64, isActive bool) (*entity.User, error) {
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("is_active", isActive)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to update user status")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrUserNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.UserModel{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func toEntity(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Age:          m.Age,
		Roles:        entity.RolesFromStrings(m.Roles),
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
