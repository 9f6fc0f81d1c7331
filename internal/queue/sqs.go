// internal/queue/sqs.go
package queue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	commonaws "dining-concierge/internal/common/aws"
)

// SQSQueue adapts Amazon SQS to the transport contract. SQS's visibility
// timeout supplies the redelivery behaviour the Redis driver builds by hand.
type SQSQueue struct {
	client   *commonaws.SQSClient
	queueURL string
}

func NewSQSQueue(client *commonaws.SQSClient, queueURL string) *SQSQueue {
	return &SQSQueue{client: client, queueURL: queueURL}
}

func (q *SQSQueue) Send(ctx context.Context, body string, attributes map[string]Attribute) (string, error) {
	attrs := make(map[string]types.MessageAttributeValue, len(attributes))
	for name, a := range attributes {
		attrs[name] = types.MessageAttributeValue{
			DataType:    aws.String(a.DataType),
			StringValue: aws.String(a.StringValue),
		}
	}

	out, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:          aws.String(q.queueURL),
		MessageBody:       aws.String(body),
		MessageAttributes: attrs,
	})
	if err != nil {
		return "", fmt.Errorf("sqs send: %w", err)
	}
	return aws.ToString(out.MessageId), nil
}

func (q *SQSQueue) Receive(ctx context.Context) (*Message, error) {
	out, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:              aws.String(q.queueURL),
		MaxNumberOfMessages:   1,
		WaitTimeSeconds:       10,
		MessageAttributeNames: []string{"All"},
	})
	if err != nil {
		return nil, fmt.Errorf("sqs receive: %w", err)
	}
	if len(out.Messages) == 0 {
		return nil, nil
	}

	m := out.Messages[0]
	attrs := make(map[string]Attribute, len(m.MessageAttributes))
	for name, a := range m.MessageAttributes {
		attrs[name] = Attribute{
			DataType:    aws.ToString(a.DataType),
			StringValue: aws.ToString(a.StringValue),
		}
	}

	return &Message{
		ID:            aws.ToString(m.MessageId),
		Body:          aws.ToString(m.Body),
		Attributes:    attrs,
		ReceiptHandle: aws.ToString(m.ReceiptHandle),
	}, nil
}

func (q *SQSQueue) Delete(ctx context.Context, receiptHandle string) error {
	_, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		return fmt.Errorf("sqs delete: %w", err)
	}
	return nil
}
