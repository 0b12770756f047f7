package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/regoline/nina-controle/internal/domain/entity"
	"github.com/regoline/nina-controle/pkg/apperror"
	"github.com/regoline/nina-controle/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	m := make(map[uuid.UUID]*entity.User)
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]entity.User, error) {
	var out []entity.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.IsAdmin {
			count++
		}
	}
	return count, nil
}

func adminUser(username string) *entity.User {
	hashed, _ := utils.HashPassword("correct-horse")
	return &entity.User{
		ID:       uuid.New(),
		Username: username,
		Password: hashed,
		IsAdmin:  true,
	}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an account with a hashed password", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo)

		user, err := svc.Create(ctx, &UserInput{
			Username: "helena",
			Password: "long-enough-password",
		})

		require.NoError(t, err)
		assert.NotEqual(t, "long-enough-password", user.Password)
		assert.True(t, utils.CheckPasswordHash("long-enough-password", user.Password))
	})

	t.Run("rejects duplicate usernames", func(t *testing.T) {
		repo := newFakeUserRepo(adminUser("helena"))
		svc := NewUserService(repo)

		_, err := svc.Create(ctx, &UserInput{
			Username: "helena",
			Password: "long-enough-password",
		})

		require.Error(t, err)
		assert.Equal(t, 409, apperror.GetAppError(err).Code)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo())

		_, err := svc.Create(ctx, &UserInput{Username: "helena", Password: "short"})

		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})
}

func TestUserService_ToggleAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses to demote the last admin", func(t *testing.T) {
		admin := adminUser("admin")
		svc := NewUserService(newFakeUserRepo(admin))

		_, err := svc.ToggleAdmin(ctx, admin.ID)

		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("demotes an admin when another remains", func(t *testing.T) {
		first := adminUser("admin")
		second := adminUser("backup")
		svc := NewUserService(newFakeUserRepo(first, second))

		user, err := svc.ToggleAdmin(ctx, second.ID)

		require.NoError(t, err)
		assert.False(t, user.IsAdmin)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses to delete the last admin", func(t *testing.T) {
		admin := adminUser("admin")
		svc := NewUserService(newFakeUserRepo(admin))

		err := svc.Delete(ctx, admin.ID)

		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("returns not found for missing user", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo())

		err := svc.Delete(ctx, uuid.New())

		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	t.Run("issues tokens for valid credentials", func(t *testing.T) {
		admin := adminUser("admin")
		svc := NewAuthService(newFakeUserRepo(admin), jwtManager)

		result, err := svc.Login(ctx, "admin", "correct-horse")

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)

		claims, err := jwtManager.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, claims.UserID)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(adminUser("admin")), jwtManager)

		_, err := svc.Login(ctx, "admin", "wrong")

		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})

	t.Run("rejects an unknown username the same way", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(adminUser("admin")), jwtManager)

		_, err := svc.Login(ctx, "nobody", "correct-horse")

		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	admin := adminUser("admin")
	svc := NewAuthService(newFakeUserRepo(admin), jwtManager)

	t.Run("exchanges a valid refresh token", func(t *testing.T) {
		result, err := svc.Login(ctx, "admin", "correct-horse")
		require.NoError(t, err)

		tokens, err := svc.Refresh(ctx, result.RefreshToken)

		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "not-a-token")

		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})
}
