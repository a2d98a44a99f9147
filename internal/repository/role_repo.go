package repository

import (
	"context"
	"errors"

	"accounthub/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error)
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context) ([]entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
	ReplacePermissions(ctx context.Context, role *entity.Role, permissions []entity.Permission) error
	Delete(ctx context.Context, role *entity.Role) error
	WithTx(tx *gorm.DB) RoleRepository
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) WithTx(tx *gorm.DB) RoleRepository {
	if tx == nil {
		return r
	}
	return &roleRepository{db: tx}
}

func (r *roleRepository) Create(ctx context.Context, role *entity.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *roleRepository) List(ctx context.Context) ([]entity.Role, error) {
	var roles []entity.Role
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		Order("name ASC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) Update(ctx context.Context, role *entity.Role) error {
	return r.db.WithContext(ctx).Omit("Permissions").Save(role).Error
}

func (r *roleRepository) ReplacePermissions(ctx context.Context, role *entity.Role, permissions []entity.Permission) error {
	if err := r.db.WithContext(ctx).Model(role).Association("Permissions").Replace(permissions); err != nil {
		return err
	}
	role.Permissions = permissions
	return nil
}

func (r *roleRepository) Delete(ctx context.Context, role *entity.Role) error {
	return r.db.WithContext(ctx).Select("Permissions").Delete(role).Error
}

func (r *roleRepository) findOne(ctx context.Context, query string, arg any) (*entity.Role, error) {
	var role entity.Role
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		Where(query, arg).
		First(&role).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}
