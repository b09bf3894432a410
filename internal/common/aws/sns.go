// internal/common/aws/sns.go
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSClient delivers the push channel for dispatched notifications.
// Each user maps to a per-user topic under the configured ARN prefix.
type SNSClient struct {
	client         *sns.Client
	topicARNPrefix string
}

func NewSNSClient(ctx context.Context, region, topicARNPrefix string) (*SNSClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSClient{client: sns.NewFromConfig(cfg), topicARNPrefix: topicARNPrefix}, nil
}

// PublishNotification publishes a push message to the user's topic.
func (s *SNSClient) PublishNotification(ctx context.Context, userID, subject, message string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(fmt.Sprintf("%s-%s", s.topicARNPrefix, userID)),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	return err
}
