package sqs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQS struct {
	mu          sync.Mutex
	urlLookups  int
	sent        []string
	inbox       []types.Message
	deleted     []string
	receiveErr  error
	getQueueErr error
}

func (f *fakeSQS) GetQueueUrl(_ context.Context, params *sqs.GetQueueUrlInput, _ ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urlLookups++
	if f.getQueueErr != nil {
		return nil, f.getQueueErr
	}
	return &sqs.GetQueueUrlOutput{QueueUrl: aws.String("https://sqs.local/" + *params.QueueName)}, nil
}

func (f *fakeSQS) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, *params.MessageBody)
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	if f.receiveErr != nil {
		err := f.receiveErr
		f.mu.Unlock()
		return nil, err
	}
	if len(f.inbox) > 0 {
		messages := f.inbox
		f.inbox = nil
		f.mu.Unlock()
		return &sqs.ReceiveMessageOutput{Messages: messages}, nil
	}
	f.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(10 * time.Millisecond):
		return &sqs.ReceiveMessageOutput{}, nil
	}
}

func (f *fakeSQS) DeleteMessage(_ context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, *params.ReceiptHandle)
	return &sqs.DeleteMessageOutput{}, nil
}

func (f *fakeSQS) deletedHandles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func TestSenderSerializesBodyAndCachesQueueURL(t *testing.T) {
	client := &fakeSQS{}
	sender := NewSender(client)

	require.NoError(t, sender.SendMessage(context.Background(), "registrations", map[string]string{"city": "Lisbon"}))
	require.NoError(t, sender.SendMessage(context.Background(), "registrations", map[string]string{"city": "Porto"}))

	assert.Equal(t, 1, client.urlLookups)
	assert.Equal(t, []string{`{"city":"Lisbon"}`, `{"city":"Porto"}`}, client.sent)
}

func TestSenderReportsQueueLookupFailure(t *testing.T) {
	sender := NewSender(&fakeSQS{getQueueErr: errors.New("no such queue")})

	err := sender.SendMessage(context.Background(), "missing", "x")
	assert.ErrorContains(t, err, "failed to get queue URL for missing")
}

func TestNewWorkerValidatesConfig(t *testing.T) {
	handler := HandlerFunc(func(*types.Message) error { return nil })

	_, err := NewWorker(context.Background(), &fakeSQS{}, "q", handler, &WorkerConfig{MaxNumberOfMessages: 11})
	assert.EqualError(t, err, "maxNumberOfMessages must be between 1 and 10")

	_, err = NewWorker(context.Background(), &fakeSQS{}, "q", nil, nil)
	assert.EqualError(t, err, "handler is required")
}

func TestWorkerDeletesOnlyHandledMessages(t *testing.T) {
	client := &fakeSQS{inbox: []types.Message{
		{MessageId: aws.String("1"), ReceiptHandle: aws.String("ok"), Body: aws.String("good")},
		{MessageId: aws.String("2"), ReceiptHandle: aws.String("bad"), Body: aws.String("poison")},
	}}

	handler := HandlerFunc(func(msg *types.Message) error {
		if aws.ToString(msg.Body) == "poison" {
			return errors.New("cannot handle")
		}
		return nil
	})

	worker, err := NewWorker(context.Background(), client, "registrations", handler, &WorkerConfig{WaitTimeSeconds: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(client.deletedHandles()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, StatusUp, worker.HealthCheck().Status)

	cancel()
	<-done

	assert.Equal(t, []string{"ok"}, client.deletedHandles())
	health := worker.HealthCheck()
	assert.Equal(t, StatusDown, health.Status)
	assert.Equal(t, "1", health.Details["processed"])
	assert.Equal(t, "1", health.Details["failed"])
	assert.Equal(t, "cannot handle", health.Details["last_error"])
}
