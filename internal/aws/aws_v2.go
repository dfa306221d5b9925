// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	ebv2 "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/awsctl/internal/log"
)

// options holds optional overrides for AWS config loading.
type options struct {
	appID       string
	credentials awsv2.CredentialsProvider
	endpoint    string
	profile     string
	region      string
	retryer     func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS). Options can override
// profile, region, endpoint, credentials and retryer without changing callers.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("opts applied: profile=%s, region=%s, endpoint=%s, static=%v",
		o.profile, o.region, o.endpoint, o.credentials != nil)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}
	if o.endpoint != "" {
		loadOpts = append(loadOpts, config.WithBaseEndpoint(o.endpoint))
	}
	if o.credentials != nil {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(o.credentials))
	}
	if o.appID != "" {
		loadOpts = append(loadOpts, config.WithAppID(o.appID))
	}
	log.Debugf("loadOpts built: len=%d", len(loadOpts))

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Debugf("config load err: err=%v", err)
		return awsv2.Config{}, err
	}
	log.Debugf("config loaded: region=%s", cfg.Region)
	return cfg, nil
}

// NewEC2 constructs a v2 EC2 client from the provided config.
func NewEC2(cfg awsv2.Config, optFns ...func(*ec2v2.Options)) *ec2v2.Client {
	client := ec2v2.NewFromConfig(cfg, optFns...)
	log.Debugf("ec2 client created: region=%s", cfg.Region)
	return client
}

// NewElasticBeanstalk constructs a v2 Elastic Beanstalk client from the
// provided config.
func NewElasticBeanstalk(cfg awsv2.Config, optFns ...func(*ebv2.Options)) *ebv2.Client {
	client := ebv2.NewFromConfig(cfg, optFns...)
	log.Debugf("elasticbeanstalk client created: region=%s", cfg.Region)
	return client
}

// NewS3 constructs a v2 S3 client from the provided config. Additional service
// options can be supplied via optFns.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	client := s3v2.NewFromConfig(cfg, optFns...)
	log.Debugf("s3 client created: region=%s", cfg.Region)
	return client
}

// WithAppID tags every request's user agent with the given application id.
func WithAppID(id string) Option {
	return func(o *options) { o.appID = id }
}

// WithEndpoint overrides the service endpoint for every client built from
// the config. Useful for LocalStack and VPC endpoints.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// WithStaticCredentials replaces the credential chain with fixed keys. An
// empty access key leaves the chain untouched.
func WithStaticCredentials(accessKey, secretKey, sessionToken string) Option {
	return func(o *options) {
		if accessKey == "" {
			return
		}
		o.credentials = credentials.NewStaticCredentialsProvider(accessKey, secretKey, sessionToken)
	}
}
