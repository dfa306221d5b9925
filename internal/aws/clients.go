// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	ebv2 "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/tfctl/awsctl/internal/log"
	"github.com/tfctl/awsctl/internal/version"
)

// Settings are the per-invocation connection overrides taken from the
// command line. Zero values defer to the SDK's default chain.
type Settings struct {
	AccessKey    string
	Endpoint     string
	Profile      string
	Region       string
	SecretKey    string
	SessionToken string
	// MaxAttempts caps SDK retries per call. Zero keeps the SDK default.
	MaxAttempts int
}

// Options converts the settings into LoadAWSConfig options.
func (s Settings) Options() []Option {
	opts := []Option{
		WithProfile(s.Profile),
		WithRegion(s.Region),
		WithEndpoint(s.Endpoint),
		WithStaticCredentials(s.AccessKey, s.SecretKey, s.SessionToken),
	}
	if s.MaxAttempts > 0 {
		attempts := s.MaxAttempts
		opts = append(opts, WithRetryer(func() awsv2.Retryer {
			return retry.NewStandard(func(o *retry.StandardOptions) {
				o.MaxAttempts = attempts
			})
		}))
	}
	return opts
}

// key identifies a settings combination in the cache. Secrets are hashed so
// they never sit in the cache key in clear text.
func (s Settings) key() string {
	secret := ""
	if s.SecretKey != "" || s.SessionToken != "" {
		sum := sha256.Sum256([]byte(s.SecretKey + "\x00" + s.SessionToken))
		secret = hex.EncodeToString(sum[:8])
	}
	return strings.Join([]string{s.Profile, s.Region, s.Endpoint, s.AccessKey, secret, strconv.Itoa(s.MaxAttempts)}, "|")
}

// ClientCache hands out AWS configs and service clients, building each one
// once per settings combination for the life of the process.
type ClientCache struct {
	items *cache.Cache
	group singleflight.Group
	load  func(context.Context, ...Option) (awsv2.Config, error)
}

// NewClientCache returns an empty cache that loads configs with
// LoadAWSConfig.
func NewClientCache() *ClientCache {
	return &ClientCache{
		items: cache.New(cache.NoExpiration, 0),
		load:  LoadAWSConfig,
	}
}

// Config returns the AWS config for the settings.
func (c *ClientCache) Config(ctx context.Context, s Settings) (awsv2.Config, error) {
	key := "config|" + s.key()
	if v, ok := c.items.Get(key); ok {
		return v.(awsv2.Config), nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		opts := append(s.Options(), WithAppID(version.AppID()))
		cfg, err := c.load(ctx, opts...)
		if err != nil {
			return nil, err
		}
		c.items.SetDefault(key, cfg)
		return cfg, nil
	})
	if err != nil {
		return awsv2.Config{}, err
	}
	return v.(awsv2.Config), nil
}

// Region reports the effective region for the settings, resolving the
// default chain when no override was given.
func (c *ClientCache) Region(ctx context.Context, s Settings) string {
	if s.Region != "" {
		return s.Region
	}
	cfg, err := c.Config(ctx, s)
	if err != nil {
		return ""
	}
	return cfg.Region
}

// EC2 returns the EC2 client for the settings.
func (c *ClientCache) EC2(ctx context.Context, s Settings) (*ec2v2.Client, error) {
	return cachedClient(ctx, c, s, "ec2", func(cfg awsv2.Config) *ec2v2.Client {
		return NewEC2(cfg)
	})
}

// ElasticBeanstalk returns the Elastic Beanstalk client for the settings.
func (c *ClientCache) ElasticBeanstalk(ctx context.Context, s Settings) (*ebv2.Client, error) {
	return cachedClient(ctx, c, s, "elasticbeanstalk", func(cfg awsv2.Config) *ebv2.Client {
		return NewElasticBeanstalk(cfg)
	})
}

// S3 returns the S3 client for the settings.
func (c *ClientCache) S3(ctx context.Context, s Settings) (*s3v2.Client, error) {
	return cachedClient(ctx, c, s, "s3", func(cfg awsv2.Config) *s3v2.Client {
		return NewS3(cfg)
	})
}

// cachedClient looks up or builds a service client of type T.
func cachedClient[T any](
	ctx context.Context,
	c *ClientCache,
	s Settings,
	service string,
	build func(awsv2.Config) T,
) (T, error) {
	var zero T

	key := service + "|" + s.key()
	if v, ok := c.items.Get(key); ok {
		log.Tracef("client cache hit: service=%s", service)
		return v.(T), nil
	}

	cfg, err := c.Config(ctx, s)
	if err != nil {
		return zero, err
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		client := build(cfg)
		c.items.SetDefault(key, client)
		return client, nil
	})
	return v.(T), nil
}
