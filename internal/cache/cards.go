package cache

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/kevinfinalboss/crmreports/internal/logger"
	"github.com/kevinfinalboss/crmreports/pkg/types"
)

const DefaultTTL = 30 * time.Minute

// Cards keeps parsed issue cards by issue uuid for the lifetime of the process.
type Cards struct {
	cache  *bigcache.BigCache
	logger *logger.Logger
}

func NewCards(ctx context.Context, ttl time.Duration, log *logger.Logger) (*Cards, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	config := bigcache.DefaultConfig(ttl)
	config.Verbose = false
	config.CleanWindow = ttl

	cache, err := bigcache.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create card cache: %w", err)
	}

	return &Cards{cache: cache, logger: log}, nil
}

func (c *Cards) Get(uuid string) (*types.Issue, bool) {
	data, err := c.cache.Get(uuid)
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			c.logger.Warn("card_cache_failed").
				Str("uuid", uuid).
				Err(err).
				Send()
		}
		return nil, false
	}

	var issue types.Issue
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&issue); err != nil {
		c.logger.Warn("card_cache_failed").
			Str("uuid", uuid).
			Err(err).
			Send()
		return nil, false
	}
	return &issue, true
}

func (c *Cards) Set(uuid string, issue *types.Issue) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(issue); err != nil {
		c.logger.Warn("card_cache_failed").
			Str("uuid", uuid).
			Err(err).
			Send()
		return
	}

	if err := c.cache.Set(uuid, buf.Bytes()); err != nil {
		c.logger.Warn("card_cache_failed").
			Str("uuid", uuid).
			Err(err).
			Send()
	}
}

func (c *Cards) Len() int {
	return c.cache.Len()
}

func (c *Cards) Close() error {
	return c.cache.Close()
}
