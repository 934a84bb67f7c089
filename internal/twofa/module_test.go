package twofa_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	libotp "github.com/pquerna/otp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"

	"github.com/shandysiswandi/twofa/internal/migrations"
	"github.com/shandysiswandi/twofa/internal/pkg/clock"
	"github.com/shandysiswandi/twofa/internal/pkg/config"
	"github.com/shandysiswandi/twofa/internal/pkg/goroutine"
	"github.com/shandysiswandi/twofa/internal/pkg/hash"
	"github.com/shandysiswandi/twofa/internal/pkg/instrument"
	"github.com/shandysiswandi/twofa/internal/pkg/messaging"
	"github.com/shandysiswandi/twofa/internal/pkg/mfa"
	"github.com/shandysiswandi/twofa/internal/pkg/otp"
	"github.com/shandysiswandi/twofa/internal/pkg/router"
	"github.com/shandysiswandi/twofa/internal/pkg/uid"
	"github.com/shandysiswandi/twofa/internal/pkg/validator"
	"github.com/shandysiswandi/twofa/internal/twofa"
	"github.com/shandysiswandi/twofa/internal/twofa/entity"
	"github.com/shandysiswandi/twofa/internal/twofa/outbound/db"
)

const (
	aliceID       int64 = 1001
	aliceEmail          = "alice@example.com"
	alicePassword       = "Secret123!"
)

type userData struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Require2FA    bool   `json:"require_2fa"`
	Is2FAVerified *bool  `json:"is_2fa_verified"`
	LastLogin     *int64 `json:"last_login"`
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type server struct {
	t         *testing.T
	url       string
	repo      *db.DB
	encryptor mfa.Encryptor
	totp      *otp.TOTP
}

func startPostgres(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	ctr, err := postgres.Run(ctx, "postgres:17-alpine",
		postgres.WithDatabase("twofa"),
		postgres.WithUsername("twofa"),
		postgres.WithPassword("twofa"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.Up(ctx, pool))
	return pool
}

func startRedis(t *testing.T, ctx context.Context) *redis.Client {
	t.Helper()

	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)
	opt, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newServer(t *testing.T) *server {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pool := startPostgres(t, ctx)
	rdb := startRedis(t, ctx)

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  twofa:
    enabled: true
    service_name: "2FA - MinhNang"
    qrcode_size: 128
    session_cache_ttl_seconds: 60
    device_header: User-Agent
`))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)
	snow, err := uid.NewSnowflakeNode(1)
	require.NoError(t, err)

	ins := instrument.NewNoop()
	bc := hash.NewBcrypt(bcrypt.MinCost, "pepper")
	enc := mfa.NewAESGCMEncryptor(mfa.StaticKeyProvider{KeyBytes: []byte("0123456789abcdef0123456789abcdef")})
	totp := otp.NewTOTP(30, 1, libotp.DigitsSix)
	gm := goroutine.NewManager(8)
	t.Cleanup(func() { _ = gm.Wait() })

	repo := db.NewDB(pool, ins)
	pw, err := bc.Hash(alicePassword)
	require.NoError(t, err)
	require.NoError(t, repo.CreateUser(ctx, entity.User{ID: aliceID, Email: aliceEmail, Username: "alice", Password: string(pw)}))

	r := router.NewRouter(router.Config{Config: cfg, UUID: uid.NewUUID(), Instrument: ins, Welcome: "twofa"})
	require.NoError(t, twofa.New(twofa.Dependency{
		DBConn:       pool,
		CacheConn:    rdb,
		Goroutine:    gm,
		Router:       r,
		Messaging:    messaging.NewNoop(),
		Config:       cfg,
		Instrument:   ins,
		UID:          snow,
		HMAC:         hash.NewHMACSHA256("device-secret"),
		Bcrypt:       bc,
		MFAEncryptor: enc,
		Clock:        clock.New(),
		Totp:         totp,
		Validator:    v,
	}))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &server{t: t, url: srv.URL, repo: repo, encryptor: enc, totp: totp}
}

func (s *server) do(method, path, device string, payload any) (int, envelope) {
	s.t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(s.t, json.NewEncoder(&body).Encode(payload))
	}

	req, err := http.NewRequest(method, s.url+path, &body)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", device)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(s.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (s *server) user(method, path, device string, payload any) userData {
	s.t.Helper()

	status, env := s.do(method, path, device, payload)
	require.Equal(s.t, http.StatusOK, status, env.Message)

	var u userData
	require.NoError(s.t, json.Unmarshal(env.Data, &u))
	return u
}

func (s *server) code(offset time.Duration) string {
	s.t.Helper()

	sec, err := s.repo.GetSecretByUserID(context.Background(), aliceID)
	require.NoError(s.t, err)
	plain, err := s.encryptor.Decrypt(sec.Secret, mfa.Scope{UserID: aliceID, Purpose: mfa.PurposeOTPSeed})
	require.NoError(s.t, err)

	c, err := s.totp.GenerateCode(string(plain), time.Now().Add(offset))
	require.NoError(s.t, err)
	if offset != 0 && s.totp.Validate(c, string(plain), time.Now()) {
		s.t.Skip("random collision between time windows")
	}
	return c
}

func TestTwoFA_HTTPFlow(t *testing.T) {
	s := newServer(t)
	base := "/v1/users/" + strconv.FormatInt(aliceID, 10)
	login := map[string]string{"email": aliceEmail, "password": alicePassword}

	status, env := s.do(http.MethodPost, "/v1/users/login", "D1", map[string]string{"email": aliceEmail, "password": "nope"})
	assert.Equal(t, http.StatusNotAcceptable, status)
	assert.Equal(t, "Wrong password!", env.Message)

	u := s.user(http.MethodPost, "/v1/users/login", "D1", login)
	assert.Equal(t, strconv.FormatInt(aliceID, 10), u.ID)
	assert.False(t, u.Require2FA)
	require.NotNil(t, u.Is2FAVerified)
	assert.False(t, *u.Is2FAVerified)

	status, env = s.do(http.MethodGet, base+"/2fa/qrcode", "D1", nil)
	require.Equal(t, http.StatusOK, status)
	var qr struct {
		QRCode string `json:"qrcode"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &qr))
	assert.Contains(t, qr.QRCode, "data:image/png;base64,")

	status, env = s.do(http.MethodPost, base+"/2fa/setup", "D1", map[string]string{"otpToken": s.code(-time.Hour)})
	assert.Equal(t, http.StatusNotAcceptable, status)
	assert.Equal(t, "Invalid 2FA code!", env.Message)

	u = s.user(http.MethodPost, base+"/2fa/setup", "D1", map[string]string{"otpToken": s.code(0)})
	assert.True(t, u.Require2FA)
	assert.True(t, *u.Is2FAVerified)

	u = s.user(http.MethodPost, "/v1/users/login", "D2", login)
	assert.True(t, u.Require2FA)
	assert.False(t, *u.Is2FAVerified)

	u = s.user(http.MethodPost, base+"/2fa/verify", "D2", map[string]string{"otpToken": s.code(0)})
	assert.True(t, *u.Is2FAVerified)

	status, env = s.do(http.MethodDelete, base+"/logout", "D2", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Logged out", env.Message)

	u = s.user(http.MethodGet, base, "D2", nil)
	assert.Nil(t, u.Is2FAVerified)
	assert.Nil(t, u.LastLogin)

	u = s.user(http.MethodGet, base, "D1", nil)
	require.NotNil(t, u.Is2FAVerified)
	assert.True(t, *u.Is2FAVerified)

	status, _ = s.do(http.MethodPost, base+"/2fa/verify", "D2", map[string]string{"otpToken": s.code(0)})
	assert.Equal(t, http.StatusBadRequest, status)
}
