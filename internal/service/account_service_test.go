package service

import (
	"context"
	"testing"
	"time"

	"accounthub/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		FirstName:       "Jane",
		LastName:        "Doe",
		Gender:          "f",
		Email:           "Jane.Doe@Example.com",
		PhoneNumber:     "+14155552671",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func newAccountService(accounts *stubAccountRepository, roles *stubRoleRepository) *AccountService {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return NewAccountService(accounts, roles, fakeHasher{}, fixedClock{now: now})
}

func TestRegister(t *testing.T) {
	t.Run("success creates an enabled unverified account", func(t *testing.T) {
		var created *entity.Account
		accounts := &stubAccountRepository{
			findByEmailFn: func(_ string) (*entity.Account, error) { return nil, nil },
			createFn: func(account *entity.Account) error {
				created = account
				return nil
			},
		}
		svc := newAccountService(accounts, &stubRoleRepository{})

		account, err := svc.Register(context.Background(), validRegisterInput())
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.True(t, account.Enabled)
		assert.Nil(t, account.VerifiedAt)
		assert.Empty(t, account.Roles)
		require.NotNil(t, account.Email)
		assert.Equal(t, "jane.doe@example.com", *account.Email)
		require.NotNil(t, account.PasswordHash)
		assert.Equal(t, "hashed:secret1", *account.PasswordHash)
		assert.False(t, account.IsOauth())
	})

	t.Run("field validation stops at the first failure in order", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*RegisterInput)
			want   *Error
		}{
			{"missing field", func(in *RegisterInput) { in.PhoneNumber = "" }, ErrInvalidRequest},
			{"bad first name", func(in *RegisterInput) { in.FirstName = "jane" }, ErrInvalidFirstName},
			{"bad last name", func(in *RegisterInput) { in.LastName = "doe?" }, ErrInvalidLastName},
			{"bad gender", func(in *RegisterInput) { in.Gender = "x" }, ErrInvalidGender},
			{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, ErrInvalidEmail},
			{"bad phone", func(in *RegisterInput) { in.PhoneNumber = "12345" }, ErrInvalidPhoneNumber},
			{"short password", func(in *RegisterInput) { in.Password = "abc"; in.ConfirmPassword = "abc" }, ErrInvalidPassword},
			{"mismatch", func(in *RegisterInput) { in.ConfirmPassword = "different1" }, ErrPasswordMismatch},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc := newAccountService(&stubAccountRepository{}, &stubRoleRepository{})
				input := validRegisterInput()
				tc.mutate(&input)

				_, err := svc.Register(context.Background(), input)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})

	t.Run("first-name failure wins over later failures", func(t *testing.T) {
		svc := newAccountService(&stubAccountRepository{}, &stubRoleRepository{})
		input := validRegisterInput()
		input.FirstName = "jane"
		input.Email = "broken"
		input.ConfirmPassword = "other1"

		_, err := svc.Register(context.Background(), input)
		assert.ErrorIs(t, err, ErrInvalidFirstName)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		accounts := &stubAccountRepository{
			findByEmailFn: func(email string) (*entity.Account, error) {
				assert.Equal(t, "jane.doe@example.com", email)
				return testAccount(), nil
			},
		}
		svc := newAccountService(accounts, &stubRoleRepository{})

		_, err := svc.Register(context.Background(), validRegisterInput())
		assert.ErrorIs(t, err, ErrAccountExists)
	})
}

func TestLogin(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		svc := newAccountService(&stubAccountRepository{}, &stubRoleRepository{})
		_, err := svc.Login(context.Background(), "", "secret1")
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		missing := &stubAccountRepository{
			findByEmailFn: func(_ string) (*entity.Account, error) { return nil, nil },
		}
		svc := newAccountService(missing, &stubRoleRepository{})
		_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "secret1")

		existing := &stubAccountRepository{
			findByEmailFn: func(_ string) (*entity.Account, error) { return testAccount(), nil },
		}
		svc = newAccountService(existing, &stubRoleRepository{})
		_, errWrong := svc.Login(context.Background(), "jane.doe@example.com", "wrongpass")

		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
		assert.EqualError(t, errUnknown, errWrong.Error())
	})

	t.Run("disabled is reported before unverified", func(t *testing.T) {
		account := testAccount(func(a *entity.Account) {
			a.Enabled = false
			a.VerifiedAt = nil
		})
		accounts := &stubAccountRepository{
			findByEmailFn: func(_ string) (*entity.Account, error) { return account, nil },
		}
		svc := newAccountService(accounts, &stubRoleRepository{})

		_, err := svc.Login(context.Background(), "jane.doe@example.com", "secret1")
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})

	t.Run("unverified account cannot log in", func(t *testing.T) {
		account := testAccount(func(a *entity.Account) { a.VerifiedAt = nil })
		accounts := &stubAccountRepository{
			findByEmailFn: func(_ string) (*entity.Account, error) { return account, nil },
		}
		svc := newAccountService(accounts, &stubRoleRepository{})

		_, err := svc.Login(context.Background(), "jane.doe@example.com", "secret1")
		assert.ErrorIs(t, err, ErrAccountNotVerified)
	})

	t.Run("success updates last login", func(t *testing.T) {
		account := testAccount()
		var updated *entity.Account
		accounts := &stubAccountRepository{
			findByEmailFn: func(_ string) (*entity.Account, error) { return account, nil },
			updateFn: func(a *entity.Account) error {
				updated = a
				return nil
			},
		}
		svc := newAccountService(accounts, &stubRoleRepository{})

		got, err := svc.Login(context.Background(), "Jane.Doe@Example.com", "secret1")
		require.NoError(t, err)
		require.NotNil(t, updated)
		require.NotNil(t, got.LastLoginAt)
		assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), *got.LastLoginAt)
	})
}

func TestOauthLogin(t *testing.T) {
	validInput := func() OauthLoginInput {
		return OauthLoginInput{
			OauthID:       "oauth-123",
			OauthProvider: "google",
			FirstName:     "Jane",
			LastName:      "Doe",
		}
	}

	t.Run("missing fields", func(t *testing.T) {
		svc := newAccountService(&stubAccountRepository{}, &stubRoleRepository{})
		input := validInput()
		input.OauthProvider = ""
		_, err := svc.OauthLogin(context.Background(), input)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("unsupported provider", func(t *testing.T) {
		svc := newAccountService(&stubAccountRepository{}, &stubRoleRepository{})
		input := validInput()
		input.OauthProvider = "myspace"
		_, err := svc.OauthLogin(context.Background(), input)
		assert.ErrorIs(t, err, ErrInvalidProvider)
	})

	t.Run("new identity creates a verified account", func(t *testing.T) {
		var created *entity.Account
		accounts := &stubAccountRepository{
			findByOauthIDFn: func(_ string) (*entity.Account, error) { return nil, nil },
			createFn: func(account *entity.Account) error {
				created = account
				return nil
			},
		}
		svc := newAccountService(accounts, &stubRoleRepository{})

		account, err := svc.OauthLogin(context.Background(), validInput())
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.True(t, account.IsOauth())
		assert.NotNil(t, account.VerifiedAt)
		assert.NotNil(t, account.LastLoginAt)
		assert.Nil(t, account.PasswordHash)
		require.NotNil(t, account.OauthProvider)
		assert.Equal(t, entity.OauthProviderGoogle, *account.OauthProvider)
	})

	t.Run("existing disabled identity is rejected", func(t *testing.T) {
		account := testAccount(func(a *entity.Account) { a.Enabled = false })
		accounts := &stubAccountRepository{
			findByOauthIDFn: func(_ string) (*entity.Account, error) { return account, nil },
		}
		svc := newAccountService(accounts, &stubRoleRepository{})

		_, err := svc.OauthLogin(context.Background(), validInput())
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})

	t.Run("existing identity updates last login", func(t *testing.T) {
		account := testAccount()
		var updated bool
		accounts := &stubAccountRepository{
			findByOauthIDFn: func(oauthID string) (*entity.Account, error) {
				assert.Equal(t, "oauth-123", oauthID)
				return account, nil
			},
			updateFn: func(_ *entity.Account) error {
				updated = true
				return nil
			},
		}
		svc := newAccountService(accounts, &stubRoleRepository{})

		got, err := svc.OauthLogin(context.Background(), validInput())
		require.NoError(t, err)
		assert.True(t, updated)
		assert.NotNil(t, got.LastLoginAt)
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("own profile needs no permission", func(t *testing.T) {
		current := testAccount()
		accounts := &stubAccountRepository{
			findByIDFn: func(id uuid.UUID) (*entity.Account, error) {
				assert.Equal(t, current.ID, id)
				return current, nil
			},
		}
		svc := newAccountService(accounts, &stubRoleRepository{})

		got, err := svc.GetProfile(context.Background(), current.ID, current)
		require.NoError(t, err)
		assert.Equal(t, current.ID, got.ID)
	})

	t.Run("another profile requires READ_USERS", func(t *testing.T) {
		current := testAccount()
		svc := newAccountService(&stubAccountRepository{}, &stubRoleRepository{})

		_, err := svc.GetProfile(context.Background(), uuid.New(), current)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("another profile with READ_USERS succeeds", func(t *testing.T) {
		current := testAccount(func(a *entity.Account) {
			a.Roles = []entity.Role{roleWithPermissions("support", PermissionReadUsers)}
		})
		other := testAccount()
		accounts := &stubAccountRepository{
			findByIDFn: func(_ uuid.UUID) (*entity.Account, error) { return other, nil },
		}
		svc := newAccountService(accounts, &stubRoleRepository{})

		got, err := svc.GetProfile(context.Background(), other.ID, current)
		require.NoError(t, err)
		assert.Equal(t, other.ID, got.ID)
	})

	t.Run("missing account", func(t *testing.T) {
		current := testAccount(func(a *entity.Account) {
			a.Roles = []entity.Role{roleWithPermissions("support", PermissionReadUsers)}
		})
		accounts := &stubAccountRepository{
			findByIDFn: func(_ uuid.UUID) (*entity.Account, error) { return nil, nil },
		}
		svc := newAccountService(accounts, &stubRoleRepository{})

		_, err := svc.GetProfile(context.Background(), uuid.New(), current)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestAssignRole(t *testing.T) {
	role := roleWithPermissions("auditor", PermissionReadUsers)

	t.Run("requires permission", func(t *testing.T) {
		svc := newAccountService(&stubAccountRepository{}, &stubRoleRepository{})
		_, err := svc.AssignRole(context.Background(), uuid.New(), role.ID, testAccount())
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("assigns and persists", func(t *testing.T) {
		current := testAccount(func(a *entity.Account) {
			a.Roles = []entity.Role{roleWithPermissions("admin", PermissionAssignRoles)}
		})
		target := testAccount()
		var replaced []entity.Role
		accounts := &stubAccountRepository{
			findByIDFn: func(_ uuid.UUID) (*entity.Account, error) { return target, nil },
			replaceRolesFn: func(_ *entity.Account, roles []entity.Role) error {
				replaced = roles
				return nil
			},
		}
		roles := &stubRoleRepository{
			findByIDFn: func(_ uuid.UUID) (*entity.Role, error) { return &role, nil },
		}
		svc := newAccountService(accounts, roles)

		_, err := svc.AssignRole(context.Background(), target.ID, role.ID, current)
		require.NoError(t, err)
		require.Len(t, replaced, 1)
		assert.Equal(t, role.ID, replaced[0].ID)
	})

	t.Run("assigning a held role is a no-op", func(t *testing.T) {
		current := testAccount(func(a *entity.Account) {
			a.Roles = []entity.Role{roleWithPermissions("admin", PermissionAssignRoles)}
		})
		target := testAccount(func(a *entity.Account) { a.Roles = []entity.Role{role} })
		accounts := &stubAccountRepository{
			findByIDFn: func(_ uuid.UUID) (*entity.Account, error) { return target, nil },
		}
		roles := &stubRoleRepository{
			findByIDFn: func(_ uuid.UUID) (*entity.Role, error) { return &role, nil },
		}
		svc := newAccountService(accounts, roles)

		got, err := svc.AssignRole(context.Background(), target.ID, role.ID, current)
		require.NoError(t, err)
		assert.Len(t, got.Roles, 1)
	})
}

func TestUnassignRole(t *testing.T) {
	role := roleWithPermissions("auditor", PermissionReadUsers)

	t.Run("requires permission", func(t *testing.T) {
		svc := newAccountService(&stubAccountRepository{}, &stubRoleRepository{})
		_, err := svc.UnassignRole(context.Background(), uuid.New(), role.ID, testAccount())
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("removes the role", func(t *testing.T) {
		current := testAccount(func(a *entity.Account) {
			a.Roles = []entity.Role{roleWithPermissions("admin", PermissionUnassignRoles)}
		})
		target := testAccount(func(a *entity.Account) { a.Roles = []entity.Role{role} })
		var replaced []entity.Role
		accounts := &stubAccountRepository{
			findByIDFn: func(_ uuid.UUID) (*entity.Account, error) { return target, nil },
			replaceRolesFn: func(_ *entity.Account, roles []entity.Role) error {
				replaced = roles
				return nil
			},
		}
		roles := &stubRoleRepository{
			findByIDFn: func(_ uuid.UUID) (*entity.Role, error) { return &role, nil },
		}
		svc := newAccountService(accounts, roles)

		_, err := svc.UnassignRole(context.Background(), target.ID, role.ID, current)
		require.NoError(t, err)
		assert.Empty(t, replaced)
	})
}
