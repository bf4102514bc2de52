package statestore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/US-AEON/Us-Backend/types"
)

// Redis document layout, per session id:
//
//	<prefix>:session:<id>        hash: schema_version, is_temporary, title,
//	                             created_at, updated_at, saved_at
//	<prefix>:session:<id>:pairs  list of JSON-encoded pairs (RPUSH append)
//	<prefix>:sessions:saved      zset of saved session ids scored by savedAt
//
// RPUSH makes concurrent pair appends additive: two turns landing on the
// same session at once both end up in the list, in arrival order.

const defaultKeyPrefix = "usbackend"

// Meta hash field names.
const (
	fieldSchemaVersion = "schema_version"
	fieldIsTemporary   = "is_temporary"
	fieldTitle         = "title"
	fieldCreatedAt     = "created_at"
	fieldUpdatedAt     = "updated_at"
	fieldSavedAt       = "saved_at"
)

// RedisStore provides a Redis-backed implementation of the Store interface.
// It is suitable for distributed deployments where concurrent turns on the
// same session may land on different instances.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithPrefix sets the key prefix for Redis keys. Default is "usbackend".
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a new Redis-backed session store.
//
// Example:
//
//	store := NewRedisStore(
//	    redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
//	    WithPrefix("myapp"),
//	)
func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	store := &RedisStore{
		client: client,
		prefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *RedisStore) metaKey(id string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, id)
}

func (s *RedisStore) pairsKey(id string) string {
	return fmt.Sprintf("%s:session:%s:pairs", s.prefix, id)
}

func (s *RedisStore) savedIndexKey() string {
	return fmt.Sprintf("%s:sessions:saved", s.prefix)
}

// AppendPair appends a pair, creating the session document as temporary on
// first append. The whole operation is one pipelined round-trip; the RPUSH
// is what makes concurrent appends conflict-free.
func (s *RedisStore) AppendPair(ctx context.Context, id string, pair types.ConversationPair) error {
	if id == "" {
		return ErrInvalidID
	}

	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("failed to marshal pair: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	metaKey := s.metaKey(id)

	pipe := s.client.Pipeline()
	pipe.HSetNX(ctx, metaKey, fieldSchemaVersion, strconv.Itoa(SchemaVersion))
	pipe.HSetNX(ctx, metaKey, fieldIsTemporary, "1")
	pipe.HSetNX(ctx, metaKey, fieldCreatedAt, now)
	pipe.HSet(ctx, metaKey, fieldUpdatedAt, now)
	pipe.RPush(ctx, s.pairsKey(id), data)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline failed: %w", err)
	}
	return nil
}

// Load retrieves a full session by id.
func (s *RedisStore) Load(ctx context.Context, id string) (*types.ConversationSession, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	pipe := s.client.Pipeline()
	metaCmd := pipe.HGetAll(ctx, s.metaKey(id))
	pairsCmd := pipe.LRange(ctx, s.pairsKey(id), 0, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis pipeline failed: %w", err)
	}

	meta := metaCmd.Val()
	if len(meta) == 0 {
		return nil, ErrNotFound
	}

	session, err := s.sessionFromMeta(id, meta)
	if err != nil {
		return nil, err
	}

	rawPairs := pairsCmd.Val()
	session.Pairs = make([]types.ConversationPair, 0, len(rawPairs))
	for _, raw := range rawPairs {
		var pair types.ConversationPair
		if err := json.Unmarshal([]byte(raw), &pair); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pair: %w", err)
		}
		session.Pairs = append(session.Pairs, pair)
	}

	return session, nil
}

// MarkSaved transitions the session out of its temporary state and indexes
// it in the saved-sessions zset.
func (s *RedisStore) MarkSaved(ctx context.Context, id, title string, savedAt time.Time) error {
	if id == "" {
		return ErrInvalidID
	}

	exists, err := s.client.Exists(ctx, s.metaKey(id)).Result()
	if err != nil {
		return fmt.Errorf("redis exists failed: %w", err)
	}
	if exists == 0 {
		return ErrNotFound
	}

	ts := savedAt.UTC().Format(time.RFC3339Nano)

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, s.metaKey(id),
		fieldIsTemporary, "0",
		fieldTitle, title,
		fieldSavedAt, ts,
		fieldUpdatedAt, ts,
	)
	pipe.ZAdd(ctx, s.savedIndexKey(), redis.Z{
		Score:  float64(savedAt.UnixMilli()),
		Member: id,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline failed: %w", err)
	}
	return nil
}

// ListSaved returns summaries of saved sessions, newest savedAt first.
func (s *RedisStore) ListSaved(ctx context.Context) ([]types.ConversationSummary, error) {
	ids, err := s.client.ZRevRange(ctx, s.savedIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis zrevrange failed: %w", err)
	}
	if len(ids) == 0 {
		return []types.ConversationSummary{}, nil
	}

	pipe := s.client.Pipeline()
	metaCmds := make([]*redis.MapStringStringCmd, len(ids))
	countCmds := make([]*redis.IntCmd, len(ids))
	for i, id := range ids {
		metaCmds[i] = pipe.HGetAll(ctx, s.metaKey(id))
		countCmds[i] = pipe.LLen(ctx, s.pairsKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis pipeline failed: %w", err)
	}

	summaries := make([]types.ConversationSummary, 0, len(ids))
	for i, id := range ids {
		meta := metaCmds[i].Val()
		if len(meta) == 0 {
			// Session document expired or deleted out from under the index.
			continue
		}
		session, err := s.sessionFromMeta(id, meta)
		if err != nil {
			return nil, err
		}
		if session.SavedAt == nil {
			continue
		}
		summaries = append(summaries, types.ConversationSummary{
			ID:        id,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
			SavedAt:   *session.SavedAt,
			PairCount: int(countCmds[i].Val()),
		})
	}

	return summaries, nil
}

// sessionFromMeta validates and decodes the meta hash into a session shell
// (without pairs).
func (s *RedisStore) sessionFromMeta(id string, meta map[string]string) (*types.ConversationSession, error) {
	version, err := strconv.Atoi(meta[fieldSchemaVersion])
	if err != nil || version != SchemaVersion {
		return nil, fmt.Errorf("%w: %q", ErrSchemaVersion, meta[fieldSchemaVersion])
	}

	session := &types.ConversationSession{
		ID:          id,
		Title:       meta[fieldTitle],
		IsTemporary: meta[fieldIsTemporary] != "0",
	}

	if session.CreatedAt, err = parseStoredTime(meta[fieldCreatedAt]); err != nil {
		return nil, err
	}
	if session.UpdatedAt, err = parseStoredTime(meta[fieldUpdatedAt]); err != nil {
		return nil, err
	}
	if raw := meta[fieldSavedAt]; raw != "" {
		savedAt, err := parseStoredTime(raw)
		if err != nil {
			return nil, err
		}
		session.SavedAt = &savedAt
	}

	return session, nil
}

func parseStoredTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored timestamp %q: %w", raw, err)
	}
	return t, nil
}
