// internal/delivery/ses.go
package delivery

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	commonaws "dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/logger"
)

const charsetUTF8 = "UTF-8"

// SESSender delivers email through Amazon SES.
type SESSender struct {
	client *commonaws.SESClient
	from   string
	logger logger.Logger
}

func NewSESSender(client *commonaws.SESClient, from string, log logger.Logger) *SESSender {
	return &SESSender{client: client, from: from, logger: log}
}

func (s *SESSender) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	input := &ses.SendEmailInput{
		Source:           aws.String(s.from),
		ReplyToAddresses: []string{s.from},
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String(charsetUTF8),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Charset: aws.String(charsetUTF8),
					Data:    aws.String(textBody),
				},
				Html: &types.Content{
					Charset: aws.String(charsetUTF8),
					Data:    aws.String(htmlBody),
				},
			},
		},
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", to, err)
	}

	s.logger.Info("email delivered via SES", map[string]interface{}{
		"to":        to,
		"messageId": aws.ToString(out.MessageId),
	})
	return nil
}
