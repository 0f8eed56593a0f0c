package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueue_ReceiveBatches(t *testing.T) {
	q := NewMemoryQueue(4)
	ctx := context.Background()
	for _, body := range []string{"a", "b", "c"} {
		require.NoError(t, q.Send(ctx, body, 0))
	}

	msgs, err := q.Receive(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "a", msgs[0].Body)
	assert.NotEmpty(t, msgs[0].ReceiptHandle)

	msgs, err = q.Receive(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	msgs, err = q.Receive(ctx, 2, 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestMemoryQueue_ReceiveHonoursContext(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Receive(ctx, 1, 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryQueue_SendBlocksWhenFull(t *testing.T) {
	q := NewMemoryQueue(1)
	require.NoError(t, q.Send(context.Background(), "first", 0))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Send(ctx, "second", 0), context.DeadlineExceeded)
}

func TestMemoryQueue_DelayedSend(t *testing.T) {
	q := NewMemoryQueue(2)
	ctx := context.Background()

	require.NoError(t, q.Send(ctx, "later", 30*time.Millisecond))
	assert.Equal(t, 1, q.Len())

	msgs, err := q.Receive(ctx, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	msgs, err = q.Receive(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "later", msgs[0].Body)
	assert.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryQueue_CloseReleasesDelayedSends(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx := context.Background()

	require.NoError(t, q.Send(ctx, "buffered", 0))
	require.NoError(t, q.Send(ctx, "stuck", time.Millisecond))
	assert.Equal(t, 2, q.Len())

	// the delayed message cannot enter the full buffer until Close frees it
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, q.Len())

	q.Close()
	assert.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, 5*time.Millisecond)

	msgs, err := q.Receive(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "buffered", msgs[0].Body)

	assert.ErrorIs(t, q.Send(ctx, "late", 0), ErrQueueClosed)
	assert.ErrorIs(t, q.Send(ctx, "late", time.Second), ErrQueueClosed)
	q.Close()
}

func TestJobRoundTrip(t *testing.T) {
	job, body, err := encodeJob(Job{LeadID: "lead-1", Level: "high"})
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, 1, job.Attempt)

	decoded, err := decodeJob(body)
	require.NoError(t, err)
	assert.Equal(t, job, decoded)

	_, err = decodeJob(`{"id":"x"}`)
	assert.Error(t, err)
}

type fakeSQS struct {
	sent     []string
	delays   []int32
	batch    int32
	deleted  []string
	messages []types.Message
	err      error
}

func (f *fakeSQS) SendMessage(ctx context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, aws.ToString(in.MessageBody))
	f.delays = append(f.delays, in.DelaySeconds)
	return &sqs.SendMessageOutput{MessageId: aws.String("m1")}, nil
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, in *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batch = in.MaxNumberOfMessages
	return &sqs.ReceiveMessageOutput{Messages: f.messages}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, in *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func TestSQSQueue(t *testing.T) {
	fake := &fakeSQS{messages: []types.Message{{
		MessageId:     aws.String("m1"),
		Body:          aws.String(`{"lead_id":"l1"}`),
		ReceiptHandle: aws.String("rh-1"),
	}}}
	q := NewSQSQueue(fake, "https://sqs.us-east-1.amazonaws.com/123/lead-export")
	ctx := context.Background()

	require.NoError(t, q.Send(ctx, "body", 0))
	require.NoError(t, q.Send(ctx, "later", 2*time.Minute))
	require.NoError(t, q.Send(ctx, "capped", time.Hour))
	assert.Equal(t, []string{"body", "later", "capped"}, fake.sent)
	assert.Equal(t, []int32{0, 120, 900}, fake.delays)

	msgs, err := q.Receive(ctx, 50, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, int32(10), fake.batch)
	assert.Equal(t, "rh-1", msgs[0].ReceiptHandle)

	require.NoError(t, q.Delete(ctx, "rh-1"))
	require.NoError(t, q.Delete(ctx, ""))
	assert.Equal(t, []string{"rh-1"}, fake.deleted)

	fake.err = errors.New("throttled")
	assert.ErrorContains(t, q.Send(ctx, "body", 0), "throttled")
}

func TestNewSQSQueuePanicsWithoutURL(t *testing.T) {
	assert.Panics(t, func() { NewSQSQueue(&fakeSQS{}, "") })
}
