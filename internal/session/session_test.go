package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/db"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
	"github.com/toeirei/panaderia/internal/testutil"
)

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()

	m := NewManager(store)
	tok := testutil.Token("admin", []string{"ROLE_ADMINISTRATOR"}, time.Hour)
	require.NoError(t, m.Save(ctx, model.User{ID: 1, Username: "admin", Roles: []string{"ROLE_ADMINISTRATOR"}, Token: tok}))

	restored := NewManager(store)
	require.NoError(t, restored.Load(ctx))
	require.True(t, restored.IsAuthenticated())
	assert.Equal(t, "admin", restored.Current().Username)
	assert.Equal(t, tok, restored.Token())
}

func TestLoad_CorruptedRecordIsCleared(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	require.NoError(t, store.Set(ctx, StorageKey, "{not json"))

	m := NewManager(store)
	require.NoError(t, m.Load(ctx))
	assert.False(t, m.IsAuthenticated())

	_, err := store.Get(ctx, StorageKey)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestLoad_ExpiredTokenIsCleared(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()

	m := NewManager(store)
	expired := testutil.Token("admin", nil, -time.Minute)
	require.NoError(t, m.Save(ctx, model.User{Username: "admin", Token: expired}))

	fresh := NewManager(store)
	require.NoError(t, fresh.Load(ctx))
	assert.False(t, fresh.IsAuthenticated())
	_, err := store.Get(ctx, StorageKey)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestLoad_OpaqueTokenIsKept(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	require.NoError(t, store.Set(ctx, StorageKey, `{"id":1,"username":"ana","roles":["CASHIER"],"token":"opaque"}`))

	m := NewManager(store)
	require.NoError(t, m.Load(ctx))
	assert.True(t, m.IsAuthenticated())
}

func TestHasRole_SubstringAndCase(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.Save(context.Background(), model.User{Username: "x", Roles: []string{"ROLE_Administrator"}, Token: "t"}))

	assert.True(t, m.HasRole("administrator"))
	assert.True(t, m.HasRole("ADMIN"))
	assert.False(t, m.HasRole("INVENTORY"))
	assert.True(t, m.HasAnyRole("DEVELOPER", "ADMINISTRATOR"))
	assert.False(t, m.HasAnyRole())
}

func TestHasExactRole_IgnoresPrefixAndCaseOnly(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.Save(context.Background(), model.User{Username: "x", Roles: []string{"INVENTORY_VIEWER", "role_cashier"}, Token: "t"}))

	assert.True(t, m.HasExactRole("CASHIER"))
	assert.True(t, m.HasExactRole("inventory_viewer"))
	assert.False(t, m.HasExactRole("INVENTORY"))
	assert.True(t, m.HasRole("INVENTORY"))
	assert.False(t, m.HasAnyExactRole("DEVELOPER", "SUPERADMIN", "ADMINISTRATOR", "INVENTORY"))
}

func TestSubscribeSeesLoginAndLogout(t *testing.T) {
	ctx := context.Background()
	m := NewManager(db.NewMemoryStore())
	var seen []string
	unsub := m.Subscribe(func(u *model.User) {
		if u == nil {
			seen = append(seen, "out")
			return
		}
		seen = append(seen, u.Username)
	})
	defer unsub()

	require.NoError(t, m.Save(ctx, model.User{Username: "rosa", Token: "t"}))
	require.NoError(t, m.Logout(ctx))
	assert.Equal(t, []string{"rosa", "out"}, seen)
}

func TestLogin_AgainstBackend(t *testing.T) {
	i18n.Init("es")
	ctx := context.Background()
	be := testutil.NewBackend(t)
	store := db.NewMemoryStore()
	m := NewManager(store)
	client, err := api.New(be.APIConfig(), api.WithTokenSource(m.Token))
	require.NoError(t, err)

	pw := []byte("secreto123")
	u, err := m.Login(ctx, client.Auth, "admin", pw)
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)
	assert.Equal(t, []string{"ROLE_ADMINISTRATOR"}, u.Roles)
	assert.NotZero(t, u.ID)
	assert.Equal(t, make([]byte, len(pw)), pw, "password should be wiped")

	raw, err := store.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"username":"admin"`)

	_, err = client.Customers.List(ctx)
	require.NoError(t, err, "the stored token should authorise resource calls")
}

func TestLogin_FailureClearsAndUsesBackendMessage(t *testing.T) {
	i18n.Init("es")
	ctx := context.Background()
	be := testutil.NewBackend(t)
	m := NewManager(db.NewMemoryStore())
	require.NoError(t, m.Save(ctx, model.User{Username: "old", Token: "t"}))
	client, err := api.New(be.APIConfig())
	require.NoError(t, err)

	_, err = m.Login(ctx, client.Auth, "admin", []byte("equivocada"))
	var lerr *LoginError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "Credenciales inválidas", lerr.Message)
	assert.False(t, m.IsAuthenticated())
}

func TestLogin_ValidationBeforeRequest(t *testing.T) {
	i18n.Init("es")
	be := testutil.NewBackend(t)
	client, err := api.New(be.APIConfig())
	require.NoError(t, err)
	m := NewManager(nil)

	_, err = m.Login(context.Background(), client.Auth, "ab", []byte("123"))
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Empty(t, be.RequestsTo("POST /auth/login"))
}

func TestLoginFailureMessage_Fallback(t *testing.T) {
	i18n.Init("es")
	assert.Equal(t, "Error de autenticación", loginFailureMessage(errors.New("boom")))
	assert.Equal(t, "Unauthorized", loginFailureMessage(&api.Error{Status: 401, Body: []byte(`{"error":"Unauthorized"}`)}))
}

func TestRegister_LeavesSessionAlone(t *testing.T) {
	i18n.Init("es")
	ctx := context.Background()
	be := testutil.NewBackend(t)
	client, err := api.New(be.APIConfig())
	require.NoError(t, err)
	m := NewManager(nil)

	resp, err := m.Register(ctx, client.Auth, model.RegisterRequest{Email: "nuevo@correo.pe", Username: "nuevo", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, "nuevo", resp.Username)
	assert.False(t, m.IsAuthenticated())
}
