package imports

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/aws/aws-sdk-go/service/cloudformation/cloudformationiface"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/sirupsen/logrus"
)

// AWSLookup reads exports, parameters and availability zones from an
// AWS account.
type AWSLookup struct {
	CFN cloudformationiface.CloudFormationAPI
	SSM ssmiface.SSMAPI
	EC2 ec2iface.EC2API
	Log logrus.FieldLogger

	mu      sync.Mutex
	exports map[string]string
}

// NewAWSLookup returns a Lookup using clients built from sess.
func NewAWSLookup(sess *session.Session, log logrus.FieldLogger) *AWSLookup {
	return &AWSLookup{
		CFN: cloudformation.New(sess),
		SSM: ssm.New(sess),
		EC2: ec2.New(sess),
		Log: log,
	}
}

// Export implements Lookup. The account's exports are listed once and
// cached for the lifetime of the lookup.
func (l *AWSLookup) Export(ctx context.Context, name string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.exports == nil {
		exports := map[string]string{}
		err := l.CFN.ListExportsPagesWithContext(ctx, &cloudformation.ListExportsInput{},
			func(page *cloudformation.ListExportsOutput, _ bool) bool {
				for _, e := range page.Exports {
					exports[aws.StringValue(e.Name)] = aws.StringValue(e.Value)
				}
				return true
			})
		if err != nil {
			return "", fmt.Errorf("listing exports: %w", err)
		}
		l.logger().WithField("count", len(exports)).Debug("Loaded CloudFormation exports")
		l.exports = exports
	}

	v, ok := l.exports[name]
	if !ok {
		return "", fmt.Errorf("export %q: %w", name, ErrNotFound)
	}
	return v, nil
}

// Parameter implements Lookup.
func (l *AWSLookup) Parameter(ctx context.Context, path string) (string, error) {
	out, err := l.SSM.GetParameterWithContext(ctx, &ssm.GetParameterInput{
		Name:           aws.String(path),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == ssm.ErrCodeParameterNotFound {
			return "", fmt.Errorf("parameter %q: %w", path, ErrNotFound)
		}
		return "", fmt.Errorf("reading parameter %q: %w", path, err)
	}
	l.logger().WithField("parameter", path).Debug("Resolved SSM parameter")
	return aws.StringValue(out.Parameter.Value), nil
}

// AvailabilityZones implements Lookup.
func (l *AWSLookup) AvailabilityZones(ctx context.Context) ([]string, error) {
	out, err := l.EC2.DescribeAvailabilityZonesWithContext(ctx, &ec2.DescribeAvailabilityZonesInput{
		Filters: []*ec2.Filter{
			{
				Name:   aws.String("state"),
				Values: []*string{aws.String("available")},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("describing availability zones: %w", err)
	}

	zones := make([]string, 0, len(out.AvailabilityZones))
	for _, az := range out.AvailabilityZones {
		zones = append(zones, aws.StringValue(az.ZoneName))
	}
	sort.Strings(zones)
	l.logger().WithField("zones", zones).Debug("Discovered availability zones")
	return zones, nil
}

func (l *AWSLookup) logger() logrus.FieldLogger {
	if l.Log == nil {
		return logrus.StandardLogger()
	}
	return l.Log
}
