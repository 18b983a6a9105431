package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Calidad-api/internal/application/auth"
	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	"github.com/jhoicas/Calidad-api/pkg/jwt"
)

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *u
	m.byID[u.ID] = &c
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *u
	m.byID[u.ID] = &c
	return nil
}

func (m *memUsers) List(context.Context, int, int) ([]*entity.User, error) { return nil, nil }
func (m *memUsers) Delete(context.Context, string) error                 { return nil }

var cfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 10, Issuer: "calidad-api"}

func TestRegisterYLogin(t *testing.T) {
	ctx := context.Background()
	uc := auth.NewAuthUseCase(newMemUsers(), cfg)

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Kim@Plant.kr ", Password: "password1", Name: "Kim", Role: entity.RoleInspector})
	require.NoError(t, err)
	assert.Equal(t, "kim@plant.kr", u.Email)
	assert.Equal(t, "active", u.Status)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "kim@plant.kr", Password: "password2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "KIM@plant.kr", Password: "password1"})
	require.NoError(t, err)
	claims, err := jwt.Parse(cfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "Kim", claims.Name)
	assert.Equal(t, entity.RoleInspector, claims.Role)
}

func TestRegister_RolPorDefectoViewer(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUsers(), cfg)
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.c", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, u.Role)
	assert.Equal(t, "a@b.c", u.Name)
}

func TestLogin_Errores(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	uc := auth.NewAuthUseCase(users, cfg)
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.c", Password: "password1"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "x@b.c", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.c", Password: "mala-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	stored, _ := users.GetByID(ctx, u.ID)
	stored.Status = "inactive"
	require.NoError(t, users.Update(ctx, stored))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.c", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
