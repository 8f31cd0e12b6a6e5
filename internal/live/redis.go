package live

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "interview-room:comments:"

// RedisNotifier carries change signals over Redis pub/sub so every
// server instance sees appends made by the others.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func channelName(interviewID int64) string {
	return channelPrefix + strconv.FormatInt(interviewID, 10)
}

func (n *RedisNotifier) Publish(ctx context.Context, interviewID int64) error {
	if err := n.client.Publish(ctx, channelName(interviewID), "changed").Err(); err != nil {
		return fmt.Errorf("publish change: %w", err)
	}
	return nil
}

// Subscribe returns once Redis has confirmed the subscription, so a publish
// issued after Subscribe returns is never missed.
func (n *RedisNotifier) Subscribe(ctx context.Context, interviewID int64) (Subscription, error) {
	ps := n.client.Subscribe(ctx, channelName(interviewID))
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channelName(interviewID), err)
	}

	s := &redisSub{ps: ps, ch: make(chan struct{}, 1), done: make(chan struct{})}
	go s.forward()
	return s, nil
}

type redisSub struct {
	ps   *redis.PubSub
	ch   chan struct{}
	done chan struct{}
	once sync.Once
}

func (s *redisSub) forward() {
	msgs := s.ps.Channel()
	for {
		select {
		case _, ok := <-msgs:
			if !ok {
				return
			}
			signal(s.ch)
		case <-s.done:
			return
		}
	}
}

func (s *redisSub) C() <-chan struct{} { return s.ch }

func (s *redisSub) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.ps.Close()
	})
	return err
}
