// Package leaderboard ranks identified users by their best WPM using Redis
// sorted sets.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"typingracer/internal/model"
)

// ErrNotRanked is returned for users with no saved, identified results.
var ErrNotRanked = errors.New("user not on leaderboard")

const DefaultPrefix = "leaderboard"

// Entry is one user's position on the leaderboard.
type Entry struct {
	UserID   string  `json:"user_id"`
	BestWPM  float64 `json:"best_wpm"`
	Sessions int64   `json:"sessions"`
	Rank     int64   `json:"rank"`
}

type Leaderboard struct {
	client      *redis.Client
	bestKey     string
	sessionsKey string
}

// Connect parses a redis:// URL, verifies the server answers and returns a
// leaderboard whose keys start with prefix.
func Connect(ctx context.Context, url, prefix string) (*Leaderboard, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	opts.DialTimeout = 10 * time.Second
	opts.ReadTimeout = 5 * time.Second
	opts.WriteTimeout = 5 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("[Leaderboard] Connected to %s (DB: %d)\n", opts.Addr, opts.DB)
	return New(rdb, prefix), nil
}

func New(client *redis.Client, prefix string) *Leaderboard {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Leaderboard{
		client:      client,
		bestKey:     prefix + ":wpm",
		sessionsKey: prefix + ":sessions",
	}
}

func (l *Leaderboard) Close() error {
	return l.client.Close()
}

// RecordResult raises the user's best WPM if this result beats it and counts
// the session. Anonymous results are ignored.
func (l *Leaderboard) RecordResult(ctx context.Context, r model.Result) error {
	user := r.Owner()
	if user == "" {
		return nil
	}

	pipe := l.client.TxPipeline()
	pipe.ZAddGT(ctx, l.bestKey, redis.Z{Score: r.WPM, Member: user})
	pipe.ZIncrBy(ctx, l.sessionsKey, 1, user)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	return nil
}

// Top returns the best limit users, highest WPM first.
func (l *Leaderboard) Top(ctx context.Context, limit int64) ([]Entry, error) {
	if limit <= 0 {
		return []Entry{}, nil
	}
	players, err := l.client.ZRevRangeWithScores(ctx, l.bestKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get top players: %w", err)
	}
	if len(players) == 0 {
		return []Entry{}, nil
	}

	members := make([]string, len(players))
	for i, p := range players {
		members[i] = p.Member.(string)
	}
	sessions, err := l.client.ZMScore(ctx, l.sessionsKey, members...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session counts: %w", err)
	}

	entries := make([]Entry, len(players))
	for i, p := range players {
		entries[i] = Entry{
			UserID:   members[i],
			BestWPM:  p.Score,
			Sessions: int64(sessions[i]),
			Rank:     int64(i) + 1,
		}
	}
	return entries, nil
}

// Rank returns a single user's entry.
func (l *Leaderboard) Rank(ctx context.Context, userID string) (*Entry, error) {
	pipe := l.client.Pipeline()
	scoreCmd := pipe.ZScore(ctx, l.bestKey, userID)
	rankCmd := pipe.ZRevRank(ctx, l.bestKey, userID)
	sessionsCmd := pipe.ZScore(ctx, l.sessionsKey, userID)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get rank: %w", err)
	}

	score, err := scoreCmd.Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotRanked
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get best wpm: %w", err)
	}
	rank, err := rankCmd.Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get rank: %w", err)
	}
	sessions, err := sessionsCmd.Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get session count: %w", err)
	}

	return &Entry{
		UserID:   userID,
		BestWPM:  score,
		Sessions: int64(sessions),
		Rank:     rank + 1,
	}, nil
}

func (l *Leaderboard) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}
