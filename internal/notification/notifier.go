package notification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fitgate/internal/logger"
	"fitgate/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey  = "notifications"
	failedKey = "notifications:failed"

	maxTries = 3
)

// Job is the unit published by request handlers. The request path only
// guarantees "published"; the worker owns delivery and retries.
type Job struct {
	GymID    int                    `json:"gym_id"`
	UserID   int                    `json:"user_id"`
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Message  string                 `json:"message"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Tries    int                    `json:"tries"`
	Created  time.Time              `json:"created"`
}

type Notifier struct {
	redis *redis.Client
	repo  Repository
}

func NewNotifier(redisAddr string, repo Repository) *Notifier {
	return &Notifier{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		repo: repo,
	}
}

// NewNotifierWithClient exists for tests.
func NewNotifierWithClient(rdb *redis.Client, repo Repository) *Notifier {
	return &Notifier{redis: rdb, repo: repo}
}

func (n *Notifier) Publish(ctx context.Context, gymID, userID int, notifType, title, message string, metadata map[string]interface{}) error {
	job := Job{
		GymID:    gymID,
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Metadata: metadata,
		Tries:    0,
		Created:  time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal notification job: %v", err)
		return err
	}

	if err := n.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Errorf("Failed to queue notification for gym %d: %v", gymID, err)
		metrics.RecordNotification(notifType, "queue_failed")
		return err
	}

	metrics.RecordNotification(notifType, "queued")
	logger.Infof("Notification queued: %s for gym %d", notifType, gymID)
	return nil
}

func (n *Notifier) Start(ctx context.Context) {
	logger.Info("Notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification worker stopped")
			return
		default:
			n.processNext(ctx)
		}
	}
}

func (n *Notifier) processNext(ctx context.Context) {
	result, err := n.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		// redis.Nil is just an empty poll. Anything else means the
		// connection is down, so pace the loop instead of spinning.
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			time.Sleep(time.Second)
		}
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad notification data: %v", err)
		return
	}

	job.Tries++
	if _, err := n.repo.Create(ctx, job.GymID, job.UserID, job.Type, job.Title, job.Message, job.Metadata); err != nil {
		logger.Errorf("Failed to persist notification for gym %d: %v", job.GymID, err)

		if job.Tries < maxTries {
			time.Sleep(time.Second)
			data, _ := json.Marshal(job)
			n.redis.LPush(context.Background(), queueKey, string(data))
		} else {
			metrics.RecordNotification(job.Type, "failed")
			n.saveFailed(job, err)
		}
		return
	}

	metrics.RecordNotification(job.Type, "delivered")
}

func (n *Notifier) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	n.redis.LPush(context.Background(), failedKey, string(data))
	logger.Errorf("Notification moved to failed queue: gym %d type %s", job.GymID, job.Type)
}

func (n *Notifier) QueueLength(ctx context.Context) int64 {
	length, _ := n.redis.LLen(ctx, queueKey).Result()
	return length
}

func (n *Notifier) Close() error {
	return n.redis.Close()
}
