package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templecycle/templecycle-api/internal/application/auth"
	"github.com/templecycle/templecycle-api/internal/application/dto"
	"github.com/templecycle/templecycle-api/internal/domain"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/infrastructure/memory"
	pkgjwt "github.com/templecycle/templecycle-api/pkg/jwt"
)

const (
	testSecret = "auth-test-secret"
	testIssuer = "templecycle-test"
)

func newAuthUseCase() *auth.UseCase {
	store := memory.NewStore()
	return auth.NewUseCase(memory.NewUserRepository(store), auth.TokenConfig{
		Secret:            testSecret,
		Issuer:            testIssuer,
		ExpirationMinutes: 60,
	})
}

func registerBuyer(t *testing.T, uc *auth.UseCase) *dto.AuthResponse {
	t.Helper()
	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name:         "Buyer Co",
		Email:        "buyer@test.in",
		Password:     "secret123",
		Role:         entity.RoleBuyer,
		Phone:        "9876543212",
		Organization: "Sri Ganesh Agarbatti",
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_IssuesUsableToken(t *testing.T) {
	uc := newAuthUseCase()
	out := registerBuyer(t, uc)

	assert.NotEmpty(t, out.Token)
	assert.True(t, out.User.IsActive, "new accounts start active")
	assert.Equal(t, entity.RoleBuyer, out.User.Role)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleBuyer, role)
}

func TestRegister_DuplicateEmailRefused(t *testing.T) {
	uc := newAuthUseCase()
	registerBuyer(t, uc)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name:         "Someone Else",
		Email:        "buyer@test.in",
		Password:     "another123",
		Role:         entity.RoleBuyer,
		Phone:        "9876543219",
		Organization: "Other Org",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_StampsLastLogin(t *testing.T) {
	uc := newAuthUseCase()
	registerBuyer(t, uc)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "buyer@test.in",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.NotNil(t, out.User.LastLogin)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc := newAuthUseCase()
	registerBuyer(t, uc)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "buyer@test.in",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc := newAuthUseCase()
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@test.in",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials,
		"unknown email and bad password are indistinguishable")
}

// ──────────────────────────────────────────────────────────────────────────────
// Profile
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProfile_OnlyWhitelistedFields(t *testing.T) {
	uc := newAuthUseCase()
	registered := registerBuyer(t, uc)
	ctx := context.Background()

	name := "Renamed Co"
	out, err := uc.UpdateProfile(ctx, registered.User.ID, dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Renamed Co", out.Name)
	assert.Equal(t, "buyer@test.in", out.Email, "email never changes via profile update")
	assert.Equal(t, "Sri Ganesh Agarbatti", out.Organization, "nil fields stay untouched")
}

func TestChangePassword_RequiresCurrentPassword(t *testing.T) {
	uc := newAuthUseCase()
	registered := registerBuyer(t, uc)
	ctx := context.Background()

	err := uc.ChangePassword(ctx, registered.User.ID, dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = uc.ChangePassword(ctx, registered.User.ID, dto.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret123",
	})
	require.NoError(t, err)

	// Old password is dead, the new one logs in.
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "buyer@test.in", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "buyer@test.in", Password: "newsecret123"})
	assert.NoError(t, err)
}

func TestMe_UnknownUser(t *testing.T) {
	uc := newAuthUseCase()
	_, err := uc.Me(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Request validation
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterRequest_Validate(t *testing.T) {
	r := dto.RegisterRequest{
		Name:         "Buyer Co",
		Email:        "buyer@test.in",
		Password:     "secret123",
		Phone:        "9876543212",
		Organization: "Org",
	}
	assert.Empty(t, r.Validate())
	assert.Equal(t, entity.RoleBuyer, r.Role, "role defaults to buyer")
	assert.Equal(t, "Tamil Nadu", r.Address.State, "state defaults to Tamil Nadu")

	bad := dto.RegisterRequest{Name: "x", Email: "not-an-email", Password: "123", Role: "wizard", Phone: "12345"}
	errs := bad.Validate()
	assert.NotEmpty(t, errs)
	assert.GreaterOrEqual(t, len(errs), 4)
}

func TestRegisterRequest_CSRNeedsNoPhoneOrOrg(t *testing.T) {
	r := dto.RegisterRequest{
		Name:     "CSR Rep",
		Email:    "csr@test.in",
		Password: "secret123",
		Role:     entity.RoleCSR,
	}
	assert.Empty(t, r.Validate())
}
