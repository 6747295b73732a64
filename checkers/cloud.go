package checkers

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/migcheck/migcheck/internal/contract"
	"github.com/migcheck/migcheck/schema"
)

// Cloud issue types. Probe types carry the failing service name.
const (
	CloudCLIMissing         = "CLI_MISSING"
	CloudCredentialsMissing = "CREDENTIALS_MISSING"
	CloudSSMAccess          = "SSM_ACCESS"
	CloudS3Access           = "S3_ACCESS"
	CloudBedrockAccess      = "BEDROCK_ACCESS"
)

// Probed service names, in probe order.
const (
	serviceSSM     = "ssm"
	serviceS3      = "s3"
	serviceBedrock = "bedrock"
)

// CloudIssue is the native record for one connectivity defect.
type CloudIssue struct {
	IssueType     string
	Description   string
	Details       string
	Severity      schema.Severity
	FixSuggestion string
}

// CloudResult is the native result of a connectivity check.
type CloudResult struct {
	CLIInstalled  bool
	CLIVersion    string
	CredentialsOK bool
	Region        string
	ServiceProbes map[string]bool // present only for probes actually run
	Issues        []CloudIssue
}

// CloudOptions tunes the connectivity checker.
type CloudOptions struct {
	Full         bool
	ToolTimeout  time.Duration
	ProbeTimeout time.Duration
}

// cloudProbes are the injectable probe functions. Production wiring uses
// the SDK-backed defaults; tests substitute fakes.
type cloudProbes struct {
	loadConfig   func(ctx context.Context) (aws.Config, error)
	ssmProbe     func(ctx context.Context, cfg aws.Config) error
	s3Probe      func(ctx context.Context, cfg aws.Config) error
	bedrockProbe func(ctx context.Context, cfg aws.Config) error
}

func defaultCloudProbes() cloudProbes {
	return cloudProbes{
		loadConfig: func(ctx context.Context) (aws.Config, error) {
			return awsconfig.LoadDefaultConfig(ctx)
		},
		ssmProbe: func(ctx context.Context, cfg aws.Config) error {
			client := ssm.NewFromConfig(cfg)
			_, err := client.DescribeParameters(ctx, &ssm.DescribeParametersInput{
				MaxResults: aws.Int32(1),
			})
			return err
		},
		s3Probe: func(ctx context.Context, cfg aws.Config) error {
			client := s3.NewFromConfig(cfg)
			_, err := client.ListBuckets(ctx, &s3.ListBucketsInput{})
			return err
		},
		bedrockProbe: func(ctx context.Context, cfg aws.Config) error {
			if cfg.Region == "" {
				return fmt.Errorf("no region configured for model invocation client")
			}
			_ = bedrockruntime.NewFromConfig(cfg)
			return nil
		},
	}
}

// connectivityChecker verifies cloud tooling and access. Quick mode stays
// off the network: CLI presence plus credential resolution. Full mode
// runs one lightweight read-only probe per required service.
type connectivityChecker struct {
	runner contract.ToolRunner
	opts   CloudOptions
	probes cloudProbes
}

// NewConnectivityChecker creates a connectivity checker with the
// SDK-backed probe set.
func NewConnectivityChecker(runner contract.ToolRunner, opts CloudOptions) contract.Checker {
	return newConnectivityChecker(runner, opts, defaultCloudProbes())
}

func newConnectivityChecker(runner contract.ToolRunner, opts CloudOptions, probes cloudProbes) contract.Checker {
	if opts.ToolTimeout <= 0 {
		opts.ToolTimeout = contract.DefaultToolTimeout
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = contract.DefaultProbeTimeout
	}
	return &connectivityChecker{runner: runner, opts: opts, probes: probes}
}

func (c *connectivityChecker) Name() string { return ConnectivityName }

func (c *connectivityChecker) run(ctx context.Context) CloudResult {
	var result CloudResult

	c.checkCLI(ctx, &result)
	c.checkCredentials(ctx, &result)

	if !c.opts.Full || !result.CredentialsOK {
		return result
	}

	result.ServiceProbes = map[string]bool{}
	type probe struct {
		service   string
		issueType string
		fn        func(ctx context.Context, cfg aws.Config) error
		hint      string
	}
	probeList := []probe{
		{serviceSSM, CloudSSMAccess, c.probes.ssmProbe, "Verify IAM permissions for parameter store access"},
		{serviceS3, CloudS3Access, c.probes.s3Probe, "Verify IAM permissions for object storage access"},
		{serviceBedrock, CloudBedrockAccess, c.probes.bedrockProbe, "Verify region configuration for model invocation"},
	}

	cfg, err := c.probes.loadConfig(ctx)
	if err != nil {
		// Credentials resolved moments ago, so a load failure here is a
		// genuine environment fault.
		result.Issues = append(result.Issues, CloudIssue{
			IssueType:     CloudCredentialsMissing,
			Description:   "cannot load cloud SDK configuration",
			Details:       err.Error(),
			Severity:      schema.SeverityCritical,
			FixSuggestion: "Check cloud config files and environment variables",
		})
		return result
	}

	for _, p := range probeList {
		probeCtx, cancel := context.WithTimeout(ctx, c.opts.ProbeTimeout)
		err := p.fn(probeCtx, cfg)
		cancel()
		result.ServiceProbes[p.service] = err == nil
		if err != nil {
			result.Issues = append(result.Issues, CloudIssue{
				IssueType:     p.issueType,
				Description:   p.service + " connectivity probe failed",
				Details:       err.Error(),
				Severity:      schema.SeverityCritical,
				FixSuggestion: p.hint,
			})
		}
	}
	return result
}

var awsCLIVersionRe = regexp.MustCompile(`aws-cli/(\S+)`)

// checkCLI records whether the aws CLI is on PATH and its version.
func (c *connectivityChecker) checkCLI(ctx context.Context, result *CloudResult) {
	if _, err := c.runner.LookPath("aws"); err != nil {
		result.Issues = append(result.Issues, CloudIssue{
			IssueType:     CloudCLIMissing,
			Description:   "aws CLI not found on PATH",
			Details:       err.Error(),
			Severity:      schema.SeverityWarning,
			FixSuggestion: "Install the AWS CLI: brew install awscli",
		})
		return
	}

	stdout, stderr, err := c.runner.Run(ctx, c.opts.ToolTimeout, "aws", "--version")
	if err != nil {
		result.Issues = append(result.Issues, CloudIssue{
			IssueType:     CloudCLIMissing,
			Description:   "aws CLI present but not runnable",
			Details:       firstNonEmpty(strings.TrimSpace(string(stderr)), err.Error()),
			Severity:      schema.SeverityWarning,
			FixSuggestion: "Reinstall the AWS CLI",
		})
		return
	}
	result.CLIInstalled = true

	// Older CLI releases print the version banner on stderr.
	if m := awsCLIVersionRe.FindStringSubmatch(string(stdout) + string(stderr)); m != nil {
		result.CLIVersion = m[1]
	}
}

// checkCredentials resolves credentials through the SDK default chain
// without touching the network. Absent credentials is a legitimate state
// for a developer without cloud access, hence only a warning.
func (c *connectivityChecker) checkCredentials(ctx context.Context, result *CloudResult) {
	cfg, err := c.probes.loadConfig(ctx)
	if err != nil {
		result.Issues = append(result.Issues, CloudIssue{
			IssueType:     CloudCredentialsMissing,
			Description:   "cannot load cloud SDK configuration",
			Details:       err.Error(),
			Severity:      schema.SeverityWarning,
			FixSuggestion: "Run aws configure or set the credential environment variables",
		})
		return
	}
	result.Region = cfg.Region

	credCtx, cancel := context.WithTimeout(ctx, c.opts.ToolTimeout)
	defer cancel()
	if _, err := cfg.Credentials.Retrieve(credCtx); err != nil {
		result.Issues = append(result.Issues, CloudIssue{
			IssueType:     CloudCredentialsMissing,
			Description:   "no resolvable cloud credentials",
			Details:       err.Error(),
			Severity:      schema.SeverityWarning,
			FixSuggestion: "Run aws configure or set AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY",
		})
		return
	}
	result.CredentialsOK = true
}
