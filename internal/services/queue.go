package services

import (
	"log"

	"github.com/google/uuid"
)

// NotificationJob is one push/email notification to be delivered out of
// band by a worker reading the queue.
type NotificationJob struct {
	TenantID uuid.UUID         `json:"tenant_id"`
	UserID   uuid.UUID         `json:"user_id"`
	Kind     string            `json:"kind"`
	Params   map[string]string `json:"params,omitempty"`
}

// NotificationQueue abstracts the message broker (SQS in production).
type NotificationQueue interface {
	Enqueue(job NotificationJob) (string, error)
	EnqueueBulk(jobs []NotificationJob) ([]string, error)
}

// LogNotificationQueue logs instead of queueing; development stand-in.
type LogNotificationQueue struct{}

func NewLogNotificationQueue() *LogNotificationQueue {
	return &LogNotificationQueue{}
}

func (q *LogNotificationQueue) Enqueue(job NotificationJob) (string, error) {
	id := uuid.NewString()
	log.Printf("notification_enqueue id=%s kind=%s user=%s", id, job.Kind, job.UserID)
	return id, nil
}

func (q *LogNotificationQueue) EnqueueBulk(jobs []NotificationJob) ([]string, error) {
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		id, err := q.Enqueue(j)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// EnqueueIgnoreError dispatches a notification without letting a broker
// failure affect the surrounding request. Failures are only logged.
func EnqueueIgnoreError(q NotificationQueue, job NotificationJob) {
	if _, err := q.Enqueue(job); err != nil {
		log.Printf("notification_enqueue_failed kind=%s user=%s error=%v", job.Kind, job.UserID, err)
	}
}
