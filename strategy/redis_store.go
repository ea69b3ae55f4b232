package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	UPDATE_RETRIES = 5
)

// RedisStore keeps listings as JSON documents with an index set of ids.
// Updates use optimistic WATCH transactions.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisStore) key(id string) string {
	return fmt.Sprintf("%s:listing:%s", s.prefix, id)
}

func (s *RedisStore) indexKey() string {
	return fmt.Sprintf("%s:listings", s.prefix)
}

func (s *RedisStore) Insert(ctx context.Context, listing Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(listing.ID), data, 0)
		pipe.SAdd(ctx, s.indexKey(), listing.ID)
		return nil
	})
	return err
}

func (s *RedisStore) Get(ctx context.Context, id string) (Listing, error) {
	return s.get(ctx, s.client, id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) get(ctx context.Context, c getter, id string) (Listing, error) {
	data, err := c.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Listing{}, ErrListingNotFound
	}
	if err != nil {
		return Listing{}, err
	}

	l := Listing{}
	if err := json.Unmarshal(data, &l); err != nil {
		return Listing{}, fmt.Errorf("corrupt listing %s: %w", id, err)
	}
	return l, nil
}

func (s *RedisStore) List(ctx context.Context) ([]Listing, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []Listing{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}

		l := Listing{}
		if err := json.Unmarshal([]byte(raw), &l); err != nil {
			log.Warn().Err(err).Str("id", ids[i]).Msg("Skipping corrupt listing")
			continue
		}
		listings = append(listings, l)
	}
	return listings, nil
}

func (s *RedisStore) Update(ctx context.Context, id string, fn func(l *Listing) error) (Listing, error) {
	var updated Listing
	txf := func(tx *redis.Tx) error {
		l, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(&l); err != nil {
			return err
		}

		data, err := json.Marshal(l)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key(id), data, 0)
			return nil
		})
		if err == nil {
			updated = l
		}
		return err
	}

	for i := 0; i < UPDATE_RETRIES; i++ {
		err := s.client.Watch(ctx, txf, s.key(id))
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return updated, err
	}
	return Listing{}, fmt.Errorf("listing %s: too much contention", id)
}
