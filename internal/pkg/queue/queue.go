package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Queue struct {
	client    *redis.Client
	queueName string
}

// AgreementMessage asks the mailer worker to deliver a signer link.
type AgreementMessage struct {
	AgreementID int64  `json:"agreement_id"`
	UserID      int64  `json:"user_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	Title       string `json:"title"`
	SignerLink  string `json:"signer_link"`
}

func NewQueue(client *redis.Client, queueName string) *Queue {
	return &Queue{
		client:    client,
		queueName: queueName,
	}
}

// Push enqueues a message.
func (q *Queue) Push(ctx context.Context, msg *AgreementMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return q.client.LPush(ctx, q.queueName, data).Err()
}

// Pop blocks until a message arrives or the timeout passes. A nil message
// means timeout.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*AgreementMessage, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop from queue: %w", err)
	}

	if len(result) < 2 {
		return nil, nil
	}

	var msg AgreementMessage
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	return &msg, nil
}

// Length returns the number of queued messages.
func (q *Queue) Length(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.queueName).Result()
}
