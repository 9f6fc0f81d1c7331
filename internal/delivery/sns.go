// internal/delivery/sns.go
package delivery

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	commonaws "dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/logger"
)

// SNSSender publishes the text rendering as an SMS. The recipient is a phone
// number in E.164 form; subject and HTML body are dropped, SMS has neither.
type SNSSender struct {
	client   *commonaws.SNSClient
	senderID string
	logger   logger.Logger
}

func NewSNSSender(client *commonaws.SNSClient, senderID string, log logger.Logger) *SNSSender {
	return &SNSSender{client: client, senderID: senderID, logger: log}
}

func (s *SNSSender) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(textBody),
	}
	if s.senderID != "" {
		input.MessageAttributes = map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(s.senderID),
			},
		}
	}

	out, err := s.client.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("sns publish to %s: %w", to, err)
	}

	s.logger.Info("sms delivered via SNS", map[string]interface{}{
		"to":        to,
		"messageId": aws.ToString(out.MessageId),
	})
	return nil
}
