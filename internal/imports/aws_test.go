package imports

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/aws/aws-sdk-go/service/cloudformation/cloudformationiface"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCFN struct {
	cloudformationiface.CloudFormationAPI
	pages [][]*cloudformation.Export
	calls int
}

func (f *fakeCFN) ListExportsPagesWithContext(_ aws.Context, _ *cloudformation.ListExportsInput, fn func(*cloudformation.ListExportsOutput, bool) bool, _ ...request.Option) error {
	f.calls++
	for i, page := range f.pages {
		if !fn(&cloudformation.ListExportsOutput{Exports: page}, i == len(f.pages)-1) {
			break
		}
	}
	return nil
}

type fakeSSM struct {
	ssmiface.SSMAPI
	params map[string]string
}

func (f *fakeSSM) GetParameterWithContext(_ aws.Context, in *ssm.GetParameterInput, _ ...request.Option) (*ssm.GetParameterOutput, error) {
	v, ok := f.params[aws.StringValue(in.Name)]
	if !ok {
		return nil, awserr.New(ssm.ErrCodeParameterNotFound, "not found", nil)
	}
	return &ssm.GetParameterOutput{Parameter: &ssm.Parameter{Value: aws.String(v)}}, nil
}

type fakeEC2 struct {
	ec2iface.EC2API
	zones []string
	err   error
}

func (f *fakeEC2) DescribeAvailabilityZonesWithContext(_ aws.Context, _ *ec2.DescribeAvailabilityZonesInput, _ ...request.Option) (*ec2.DescribeAvailabilityZonesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := &ec2.DescribeAvailabilityZonesOutput{}
	for _, z := range f.zones {
		out.AvailabilityZones = append(out.AvailabilityZones, &ec2.AvailabilityZone{ZoneName: aws.String(z)})
	}
	return out, nil
}

func export(name, value string) *cloudformation.Export {
	return &cloudformation.Export{Name: aws.String(name), Value: aws.String(value)}
}

func TestAWSLookup_ExportIsCached(t *testing.T) {
	cfn := &fakeCFN{pages: [][]*cloudformation.Export{
		{export("core-vpc-id", "vpc-1")},
		{export("core-efs-id", "fs-1")},
	}}
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	l := &AWSLookup{CFN: cfn, Log: logger}

	v, err := l.Export(context.Background(), "core-efs-id")
	require.NoError(t, err)
	assert.Equal(t, "fs-1", v)

	v, err = l.Export(context.Background(), "core-vpc-id")
	require.NoError(t, err)
	assert.Equal(t, "vpc-1", v)
	assert.Equal(t, 1, cfn.calls)
	assert.Len(t, hook.AllEntries(), 1)

	_, err = l.Export(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAWSLookup_Parameter(t *testing.T) {
	l := &AWSLookup{SSM: &fakeSSM{params: map[string]string{"/blog/priority": "12"}}}

	v, err := l.Parameter(context.Background(), "/blog/priority")
	require.NoError(t, err)
	assert.Equal(t, "12", v)

	_, err = l.Parameter(context.Background(), "/blog/missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAWSLookup_AvailabilityZonesSorted(t *testing.T) {
	l := &AWSLookup{EC2: &fakeEC2{zones: []string{"eu-west-1c", "eu-west-1a", "eu-west-1b"}}}

	zones, err := l.AvailabilityZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"eu-west-1a", "eu-west-1b", "eu-west-1c"}, zones)
}

func TestAWSLookup_AvailabilityZonesError(t *testing.T) {
	l := &AWSLookup{EC2: &fakeEC2{err: errors.New("throttled")}}

	_, err := l.AvailabilityZones(context.Background())
	assert.ErrorContains(t, err, "throttled")
}
