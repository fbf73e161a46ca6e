package config

import (
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/caarlos0/env/v9"
	"github.com/sirupsen/logrus"
)

// Settings holds process configuration read from the environment.
type Settings struct {
	Region     string `env:"WEBSTACK_REGION"`
	Profile    string `env:"WEBSTACK_PROFILE"`
	LogLevel   string `env:"WEBSTACK_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"WEBSTACK_LOG_FORMAT" envDefault:"text"`
	Deployment string `env:"WEBSTACK_DEPLOYMENT" envDefault:"webstack.yaml"`
}

// LoadSettings parses Settings from the environment.
func LoadSettings() (*Settings, error) {
	s := &Settings{}
	if err := env.Parse(s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if s.LogFormat != "text" && s.LogFormat != "json" {
		return nil, fmt.Errorf("WEBSTACK_LOG_FORMAT must be text or json, got %q", s.LogFormat)
	}
	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		return nil, fmt.Errorf("WEBSTACK_LOG_LEVEL: %w", err)
	}
	return s, nil
}

// Logger returns a logger writing to w at the configured level and format.
func (s *Settings) Logger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	if lvl, err := logrus.ParseLevel(s.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if s.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return log
}

// ResolveRegion returns the region from the environment if set,
// otherwise the deployment file's.
func (s *Settings) ResolveRegion(d *Deployment) string {
	if s.Region != "" {
		return s.Region
	}
	if d != nil {
		return d.Region
	}
	return ""
}

// Session returns an AWS session for region using the configured profile
// and the shared config files.
func (s *Settings) Session(region string) (*session.Session, error) {
	opts := session.Options{
		Profile:           s.Profile,
		SharedConfigState: session.SharedConfigEnable,
	}
	if region != "" {
		opts.Config = aws.Config{Region: aws.String(region)}
	}
	sess, err := session.NewSessionWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("creating AWS session: %w", err)
	}
	return sess, nil
}
