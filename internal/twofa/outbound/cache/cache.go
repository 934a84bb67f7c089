package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
	"github.com/shandysiswandi/twofa/internal/pkg/hash"
	"github.com/shandysiswandi/twofa/internal/pkg/instrument"
	"github.com/shandysiswandi/twofa/internal/twofa/entity"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	keyPrefix  = "twofa:session:"
	defaultTTL = 5 * time.Minute
)

// Cache keeps a short-lived copy of session rows in redis. The device id is
// hashed before it becomes part of a key so raw user agents never leak into
// the keyspace.
type Cache struct {
	client *redis.Client
	hasher hash.Hash
	ttl    time.Duration
	ins    instrument.Instrumentation
}

func NewCache(client *redis.Client, hasher hash.Hash, ttl time.Duration, ins instrument.Instrumentation) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &Cache{
		client: client,
		hasher: hasher,
		ttl:    ttl,
		ins:    ins,
	}
}

type sessionValue struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	DeviceID      string `json:"device_id"`
	Is2FAVerified bool   `json:"is_2fa_verified"`
	LastLogin     int64  `json:"last_login"`
}

func (c *Cache) GetSession(ctx context.Context, userID int64, deviceID string) (_ *entity.Session, err error) {
	ctx, span := c.startSpan(ctx, "GetSession")
	defer func() { c.endSpan(span, err) }()

	key, err := c.key(userID, deviceID)
	if err != nil {
		return nil, err
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var v sessionValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}

	return &entity.Session{
		ID:            v.ID,
		UserID:        v.UserID,
		DeviceID:      v.DeviceID,
		Is2FAVerified: v.Is2FAVerified,
		LastLogin:     v.LastLogin,
	}, nil
}

func (c *Cache) SetSession(ctx context.Context, sess entity.Session) (err error) {
	ctx, span := c.startSpan(ctx, "SetSession")
	defer func() { c.endSpan(span, err) }()

	key, err := c.key(sess.UserID, sess.DeviceID)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(sessionValue{
		ID:            sess.ID,
		UserID:        sess.UserID,
		DeviceID:      sess.DeviceID,
		Is2FAVerified: sess.Is2FAVerified,
		LastLogin:     sess.LastLogin,
	})
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func (c *Cache) DeleteSession(ctx context.Context, userID int64, deviceID string) (err error) {
	ctx, span := c.startSpan(ctx, "DeleteSession")
	defer func() { c.endSpan(span, err) }()

	key, err := c.key(userID, deviceID)
	if err != nil {
		return err
	}

	return c.client.Del(ctx, key).Err()
}

func (c *Cache) key(userID int64, deviceID string) (string, error) {
	sum, err := c.hasher.Hash(deviceID)
	if err != nil {
		return "", err
	}

	return keyPrefix + strconv.FormatInt(userID, 10) + ":" + string(sum), nil
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("twofa.outbound.cache").Start(ctx, name)
}

func (c *Cache) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
