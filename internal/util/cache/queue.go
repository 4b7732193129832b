package cache_utils

import (
	"context"
	"time"

	"chorey/internal/cache"

	"github.com/valkey-io/valkey-go"
)

// ValkeyQueueService is a shared list-backed work queue. Producers push with
// EnqueueBatch, workers block on DequeueBlocking, so deliveries survive the
// process that enqueued them.
type ValkeyQueueService struct {
	client  valkey.Client
	timeout time.Duration
}

func NewValkeyQueueService() *ValkeyQueueService {
	return &ValkeyQueueService{
		client:  cache.GetCache(),
		timeout: DefaultQueueTimeout,
	}
}

func (q *ValkeyQueueService) EnqueueBatch(queueKey string, items [][]byte) error {
	if len(items) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	cmds := make([]valkey.Completed, 0, len(items))
	for _, item := range items {
		cmds = append(cmds, q.client.B().Lpush().Key(queueKey).Element(string(item)).Build())
	}

	for _, result := range q.client.DoMulti(ctx, cmds...) {
		if result.Error() != nil {
			return result.Error()
		}
	}

	return nil
}

func (q *ValkeyQueueService) DequeueBlocking(queueKey string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	cmd := q.client.B().Brpop().Key(queueKey).Timeout(timeout.Seconds()).Build()
	result := q.client.Do(ctx, cmd)

	if result.Error() != nil {
		return nil, result.Error()
	}

	// BRPOP returns [key, value]
	arr, err := result.AsStrSlice()
	if err != nil {
		return nil, err
	}

	if len(arr) < 2 {
		return nil, valkey.Nil
	}

	return []byte(arr[1]), nil
}

func (q *ValkeyQueueService) QueueLength(queueKey string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	result := q.client.Do(ctx, q.client.B().Llen().Key(queueKey).Build())
	if result.Error() != nil {
		return 0, result.Error()
	}

	return result.AsInt64()
}
