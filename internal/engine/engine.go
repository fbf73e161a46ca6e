// Package engine applies composed templates to a convergence engine.
//
// The composer only describes desired state; ordering, parallelism and
// rollback on failure are the engine's business. Nothing here retries.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/aws/aws-sdk-go/service/cloudformation/cloudformationiface"
	"github.com/sirupsen/logrus"

	webstack "github.com/lex00/wetwire-webstack-go"
)

// Action is what Apply did to a stack.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionNone   Action = "none"
)

// Result describes a converged stack.
type Result struct {
	Stack   string            `json:"stack"`
	Action  Action            `json:"action"`
	Outputs map[string]string `json:"outputs,omitempty"`
}

// Engine converges a stack to the given template body.
type Engine interface {
	Apply(ctx context.Context, stackName string, body []byte) (*Result, error)
}

// CloudFormation is an Engine backed by AWS CloudFormation.
type CloudFormation struct {
	API cloudformationiface.CloudFormationAPI
	Log logrus.FieldLogger
}

var _ Engine = (*CloudFormation)(nil)

// NewCloudFormation returns an engine using a client built from sess.
func NewCloudFormation(sess *session.Session, log logrus.FieldLogger) *CloudFormation {
	return &CloudFormation{API: cloudformation.New(sess), Log: log}
}

const noUpdatesMessage = "No updates are to be performed"

// Apply creates the stack if it does not exist and updates it otherwise,
// then blocks until CloudFormation reports a terminal state.
func (c *CloudFormation) Apply(ctx context.Context, stackName string, body []byte) (*Result, error) {
	log := c.logger().WithField("stack", stackName)

	exists, err := c.exists(ctx, stackName)
	if err != nil {
		return nil, err
	}

	result := &Result{Stack: stackName}
	capabilities := aws.StringSlice([]string{cloudformation.CapabilityCapabilityIam})
	describe := &cloudformation.DescribeStacksInput{StackName: aws.String(stackName)}

	if !exists {
		result.Action = ActionCreate
		log.Info("Creating stack")
		_, err = c.API.CreateStackWithContext(ctx, &cloudformation.CreateStackInput{
			StackName:    aws.String(stackName),
			TemplateBody: aws.String(string(body)),
			Capabilities: capabilities,
		})
		if err != nil {
			return nil, &webstack.ConvergenceFailure{Stack: stackName, Err: err}
		}
		if err := c.API.WaitUntilStackCreateCompleteWithContext(ctx, describe); err != nil {
			return nil, c.failure(ctx, stackName, err)
		}
	} else {
		result.Action = ActionUpdate
		log.Info("Updating stack")
		_, err = c.API.UpdateStackWithContext(ctx, &cloudformation.UpdateStackInput{
			StackName:    aws.String(stackName),
			TemplateBody: aws.String(string(body)),
			Capabilities: capabilities,
		})
		switch {
		case isNoUpdates(err):
			result.Action = ActionNone
			log.Info("Stack is up to date")
		case err != nil:
			return nil, &webstack.ConvergenceFailure{Stack: stackName, Err: err}
		default:
			if err := c.API.WaitUntilStackUpdateCompleteWithContext(ctx, describe); err != nil {
				return nil, c.failure(ctx, stackName, err)
			}
		}
	}

	outputs, err := c.outputs(ctx, stackName)
	if err != nil {
		return nil, err
	}
	result.Outputs = outputs
	log.WithField("action", result.Action).Info("Stack converged")
	return result, nil
}

// Template returns the body of the deployed stack's template as
// submitted.
func (c *CloudFormation) Template(ctx context.Context, stackName string) ([]byte, error) {
	out, err := c.API.GetTemplateWithContext(ctx, &cloudformation.GetTemplateInput{
		StackName:     aws.String(stackName),
		TemplateStage: aws.String(cloudformation.TemplateStageOriginal),
	})
	if err != nil {
		return nil, fmt.Errorf("reading template of stack %s: %w", stackName, err)
	}
	return []byte(aws.StringValue(out.TemplateBody)), nil
}

func (c *CloudFormation) exists(ctx context.Context, stackName string) (bool, error) {
	_, err := c.API.DescribeStacksWithContext(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err == nil {
		return true, nil
	}
	var aerr awserr.Error
	if errors.As(err, &aerr) && aerr.Code() == "ValidationError" && strings.Contains(aerr.Message(), "does not exist") {
		return false, nil
	}
	return false, fmt.Errorf("describing stack %s: %w", stackName, err)
}

func (c *CloudFormation) outputs(ctx context.Context, stackName string) (map[string]string, error) {
	out, err := c.API.DescribeStacksWithContext(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return nil, fmt.Errorf("describing stack %s: %w", stackName, err)
	}
	outputs := map[string]string{}
	for _, s := range out.Stacks {
		for _, o := range s.Outputs {
			outputs[aws.StringValue(o.OutputKey)] = aws.StringValue(o.OutputValue)
		}
	}
	return outputs, nil
}

// failure builds a ConvergenceFailure from the earliest failed resource
// event of the current operation. Events are returned newest first; the
// scan stops at the stack-level event that started the operation so
// failures from earlier deployments are never reported.
func (c *CloudFormation) failure(ctx context.Context, stackName string, cause error) error {
	f := &webstack.ConvergenceFailure{Stack: stackName, Err: cause}

	out, err := c.API.DescribeStackEventsWithContext(ctx, &cloudformation.DescribeStackEventsInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		c.logger().WithError(err).WithField("stack", stackName).Warn("Could not read stack events")
		return f
	}

	for _, e := range out.StackEvents {
		status := aws.StringValue(e.ResourceStatus)
		if aws.StringValue(e.LogicalResourceId) == stackName {
			if isOperationStart(status) {
				break
			}
			continue
		}
		if !strings.HasSuffix(status, "_FAILED") {
			continue
		}
		f.LogicalID = aws.StringValue(e.LogicalResourceId)
		f.Type = aws.StringValue(e.ResourceType)
		f.Status = status
		f.Reason = aws.StringValue(e.ResourceStatusReason)
	}

	if f.LogicalID != "" {
		c.logger().WithFields(logrus.Fields{
			"stack":    stackName,
			"resource": f.LogicalID,
			"status":   f.Status,
		}).Error(f.Reason)
	}
	return f
}

func isOperationStart(status string) bool {
	return status == cloudformation.ResourceStatusCreateInProgress ||
		status == cloudformation.ResourceStatusUpdateInProgress
}

func isNoUpdates(err error) bool {
	var aerr awserr.Error
	return errors.As(err, &aerr) && strings.Contains(aerr.Message(), noUpdatesMessage)
}

func (c *CloudFormation) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}
