package provision

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/sirupsen/logrus"
)

// DetectAWSCredentials reports whether the default credential chain (env,
// profile, shared file, IMDS) can produce credentials. Used to auto-select
// demo mode.
func DetectAWSCredentials(ctx context.Context) bool {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return false
	}
	_, err = cfg.Credentials.Retrieve(ctx)
	return err == nil
}

// CallerIdentity returns the AWS account behind the current credentials.
func CallerIdentity(ctx context.Context) (string, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}
	out, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("sts get-caller-identity: %w", err)
	}
	return aws.ToString(out.Account), nil
}

// InstanceWaiter polls EC2 until a freshly provisioned instance is running.
type InstanceWaiter struct {
	Region string
}

const (
	waitPollInterval = 5 * time.Second
	waitDeadline     = 5 * time.Minute
)

// WaitRunning blocks until the instance reaches the running state (or a
// terminal one) and returns its public IP when available.
func (w *InstanceWaiter) WaitRunning(ctx context.Context, instanceID string) (string, error) {
	var opts []func(*config.LoadOptions) error
	if w.Region != "" {
		opts = append(opts, config.WithRegion(w.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}
	client := ec2.NewFromConfig(cfg)

	deadline := time.Now().Add(waitDeadline)
	for {
		if time.Now().After(deadline) {
			return "", fmt.Errorf("timed out waiting for instance %s", instanceID)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		out, err := client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
			InstanceIds: []string{instanceID},
		})
		if err != nil {
			// Freshly created instances are briefly invisible; retry.
			logrus.WithError(err).Debug("describe-instances failed, retrying")
			time.Sleep(waitPollInterval)
			continue
		}

		inst := firstInstance(out)
		if inst == nil || inst.State == nil {
			time.Sleep(waitPollInterval)
			continue
		}
		switch inst.State.Name {
		case ec2types.InstanceStateNameRunning:
			return aws.ToString(inst.PublicIpAddress), nil
		case ec2types.InstanceStateNameTerminated, ec2types.InstanceStateNameShuttingDown, ec2types.InstanceStateNameStopped:
			return "", fmt.Errorf("instance %s entered state %s", instanceID, inst.State.Name)
		}

		logrus.WithFields(logrus.Fields{"instance": instanceID, "state": inst.State.Name}).Debug("waiting for instance")
		time.Sleep(waitPollInterval)
	}
}

func firstInstance(out *ec2.DescribeInstancesOutput) *ec2types.Instance {
	for _, r := range out.Reservations {
		for i := range r.Instances {
			return &r.Instances[i]
		}
	}
	return nil
}
