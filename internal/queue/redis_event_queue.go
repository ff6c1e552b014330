package queue

import (
	"context"

	"github.com/redis/rueidis"
)

type RedisEventQueue struct {
	client rueidis.Client
	key    string
}

func NewRedisEventQueue(client rueidis.Client, queueKey string) *RedisEventQueue {
	return &RedisEventQueue{
		client: client,
		key:    queueKey,
	}
}

func (q *RedisEventQueue) Publish(ctx context.Context, payload string) error {
	cmd := q.client.B().Rpush().Key(q.key).Element(payload).Build()
	return q.client.Do(ctx, cmd).Error()
}

func (q *RedisEventQueue) Pop(ctx context.Context) (string, error) {
	cmd := q.client.B().Lpop().Key(q.key).Build()
	result := q.client.Do(ctx, cmd)

	payload, err := result.ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrQueueEmpty
		}
		return "", err
	}

	return payload, nil
}

func (q *RedisEventQueue) Requeue(ctx context.Context, payload string) error {
	cmd := q.client.B().Rpush().Key(q.key).Element(payload).Build()
	return q.client.Do(ctx, cmd).Error()
}
