package user_test

import (
	"testing"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/user"
	"moving/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phone(t *testing.T) kernel.Phone {
	t.Helper()
	p, err := kernel.NewPhone("09121234567")
	require.NoError(t, err)
	return p
}

func newDriver(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser(phone(t), kernel.RoleDriver, "Ali", "Rezaei", &user.Vehicle{
		Model: "Nissan Junior", PlateNumber: "12B345-67", WorkerCount: 2,
	})
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	t.Run("should create customer without driver profile", func(t *testing.T) {
		u, err := user.NewUser(phone(t), kernel.RoleCustomer, " Sara ", "Ahmadi", nil)

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.Equal(t, "Sara Ahmadi", u.FullName())
		assert.Nil(t, u.Driver())
		assert.False(t, u.CanDeliver())
	})

	t.Run("should start drivers in PendingApproval", func(t *testing.T) {
		u := newDriver(t)

		require.NotNil(t, u.Driver())
		assert.Equal(t, user.DriverPendingApproval, u.Driver().Status())
		assert.Equal(t, "Nissan Junior", u.Driver().Vehicle().Model)
		assert.False(t, u.CanDeliver())
	})

	t.Run("should require vehicle for drivers", func(t *testing.T) {
		_, err := user.NewUser(phone(t), kernel.RoleDriver, "Ali", "Rezaei", nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should validate vehicle fields", func(t *testing.T) {
		_, err := user.NewUser(phone(t), kernel.RoleDriver, "Ali", "Rezaei", &user.Vehicle{WorkerCount: 99})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "vehicle_model")
		assert.Contains(t, err.Error(), "plate_number")
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject unconstructed phone and unknown role", func(t *testing.T) {
		_, err := user.NewUser(kernel.Phone{}, kernel.RoleUnknown, "", "", nil)

		require.ErrorIs(t, err, kernel.ErrPhoneIsNotConstructed)
		assert.Contains(t, err.Error(), "role")
	})
}

func TestUser_ChangeDriverStatus(t *testing.T) {
	admin, _ := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)

	t.Run("should activate and then suspend", func(t *testing.T) {
		u := newDriver(t)

		require.NoError(t, u.ChangeDriverStatus(admin, user.DriverActive))
		assert.True(t, u.CanDeliver())

		require.NoError(t, u.ChangeDriverStatus(admin, user.DriverSuspended))
		assert.False(t, u.CanDeliver())

		require.NoError(t, u.ChangeDriverStatus(admin, user.DriverActive))
		assert.True(t, u.CanDeliver())
	})

	t.Run("should reject moves outside the table", func(t *testing.T) {
		u := newDriver(t)

		err := u.ChangeDriverStatus(admin, user.DriverSuspended)

		require.ErrorIs(t, err, user.ErrInvalidDriverStatusTransition)
		assert.Equal(t, user.DriverPendingApproval, u.Driver().Status())
	})

	t.Run("should be admin only", func(t *testing.T) {
		u := newDriver(t)

		err := u.ChangeDriverStatus(u.Actor(), user.DriverActive)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("should reject non drivers", func(t *testing.T) {
		u, err := user.NewUser(phone(t), kernel.RoleCustomer, "", "", nil)
		require.NoError(t, err)

		require.ErrorIs(t, u.ChangeDriverStatus(admin, user.DriverActive), user.ErrNotADriver)
	})
}

func TestDriverStatus(t *testing.T) {
	t.Run("should follow the transition table", func(t *testing.T) {
		assert.True(t, user.DriverPendingApproval.CanBecome(user.DriverActive))
		assert.True(t, user.DriverActive.CanBecome(user.DriverInactive))
		assert.True(t, user.DriverInactive.CanBecome(user.DriverActive))
		assert.False(t, user.DriverInactive.CanBecome(user.DriverSuspended))
		assert.False(t, user.DriverActive.CanBecome(user.DriverPendingApproval))
	})

	t.Run("should parse names", func(t *testing.T) {
		s, err := user.ParseDriverStatus("Suspended")
		require.NoError(t, err)
		assert.Equal(t, user.DriverSuspended, s)

		_, err = user.ParseDriverStatus("Retired")
		require.Error(t, err)
	})
}
