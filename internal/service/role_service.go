package service

import (
	"context"

	"accounthub/internal/entity"
	"accounthub/internal/repository"

	"github.com/google/uuid"
)

type CreateRoleInput struct {
	Name          string
	PermissionIDs []uuid.UUID
}

type UpdateRoleInput struct {
	Name          string
	PermissionIDs []uuid.UUID
}

// RoleService owns the role catalogue. Every mutation is permission-gated
// through the caller's already-loaded role graph.
type RoleService struct {
	roles       repository.RoleRepository
	permissions repository.PermissionRepository
	accounts    repository.AccountRepository
}

func NewRoleService(
	roles repository.RoleRepository,
	permissions repository.PermissionRepository,
	accounts repository.AccountRepository,
) *RoleService {
	return &RoleService{
		roles:       roles,
		permissions: permissions,
		accounts:    accounts,
	}
}

func (s *RoleService) Add(ctx context.Context, input CreateRoleInput, current *entity.Account) (*entity.Role, error) {
	if err := RequirePermission(PermissionAddRoles, current); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, ErrInvalidRequest
	}
	if len(input.PermissionIDs) < 1 {
		return nil, ErrNoPermissions
	}

	existing, err := s.roles.FindByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRoleExists
	}

	permissions, err := s.resolvePermissions(ctx, input.PermissionIDs)
	if err != nil {
		return nil, err
	}

	role := &entity.Role{Name: input.Name, Permissions: permissions}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) Update(ctx context.Context, roleID uuid.UUID, input UpdateRoleInput, current *entity.Account) (*entity.Role, error) {
	if err := RequirePermission(PermissionModifyRoles, current); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, ErrInvalidRequest
	}
	if len(input.PermissionIDs) < 1 {
		return nil, ErrNoPermissions
	}

	role, err := s.FindByIDOrFail(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if input.Name != role.Name {
		conflicting, err := s.roles.FindByName(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if conflicting != nil {
			return nil, ErrRoleExists
		}
	}

	permissions, err := s.resolvePermissions(ctx, input.PermissionIDs)
	if err != nil {
		return nil, err
	}

	role.Name = input.Name
	if err := s.roles.Update(ctx, role); err != nil {
		return nil, err
	}
	if err := s.roles.ReplacePermissions(ctx, role, permissions); err != nil {
		return nil, err
	}
	return role, nil
}

// Remove deletes a role nobody holds. A role still referenced by any account
// stays put.
func (s *RoleService) Remove(ctx context.Context, roleID uuid.UUID, current *entity.Account) error {
	if err := RequirePermission(PermissionDeleteRoles, current); err != nil {
		return err
	}

	role, err := s.FindByIDOrFail(ctx, roleID)
	if err != nil {
		return err
	}

	holders, err := s.accounts.FindByRole(ctx, role.ID)
	if err != nil {
		return err
	}
	if len(holders) > 0 {
		return ErrRoleInUse
	}

	return s.roles.Delete(ctx, role)
}

func (s *RoleService) List(ctx context.Context, current *entity.Account) ([]entity.Role, error) {
	if err := RequirePermission(PermissionReadRoles, current); err != nil {
		return nil, err
	}
	return s.roles.List(ctx)
}

func (s *RoleService) ListPermissions(ctx context.Context, current *entity.Account) ([]entity.Permission, error) {
	if err := RequirePermission(PermissionReadRoles, current); err != nil {
		return nil, err
	}
	return s.permissions.List(ctx)
}

func (s *RoleService) FindByIDOrFail(ctx context.Context, roleID uuid.UUID) (*entity.Role, error) {
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	return role, nil
}

func (s *RoleService) resolvePermissions(ctx context.Context, ids []uuid.UUID) ([]entity.Permission, error) {
	permissions, err := s.permissions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(permissions) != len(ids) {
		return nil, ErrPermissionNotFound
	}
	return permissions, nil
}
