package cmd

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"qmetrics.dev/pkg/qmetrics/internal/domain"
	domainmocks "qmetrics.dev/pkg/qmetrics/internal/domain/mocks"
	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

func newTestGenerateRoot(t *testing.T, mockWorkflow domain.Workflow) *cobra.Command {
	t.Helper()

	cmd := newRootCmd()
	cmd.AddCommand(newGenerateCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() {
		workflow = originalWorkflow
		// Rebind config keys to fresh, unset flags.
		newRootCmd().AddCommand(newGenerateCmd())
	})

	return cmd
}

func TestGenerateCmd_Defaults(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	cmd := newTestGenerateRoot(t, mockWorkflow)

	mockWorkflow.On("Generate", mock.Anything, mock.MatchedBy(func(args domain.GenerateArgs) bool {
		return args.Results == m.Path("test-results") &&
			args.BaseDir == m.Path(".") &&
			args.Thresholds == m.DefaultThresholds() &&
			assert.ObjectsAreEqual(m.DefaultArtifactPaths(), args.Artifacts)
	})).Return(m.GateResult{Overall: m.VerdictPass, Health: 98}, nil)

	cmd.SetArgs([]string{"generate", "--log-file", t.TempDir() + "/qmetrics.log"})
	require.NoError(t, cmd.Execute())
}

func TestGenerateCmd_FlagsOverrideConfig(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	cmd := newTestGenerateRoot(t, mockWorkflow)

	mockWorkflow.On("Generate", mock.Anything, mock.MatchedBy(func(args domain.GenerateArgs) bool {
		return args.Results == m.Path("out") &&
			args.BaseDir == m.Path("project") &&
			args.Thresholds == m.Thresholds{Coverage: 80, PassRate: 99.5, MaxDuration: 90 * time.Second} &&
			args.Artifacts[m.ArtifactUnit] == m.Path("unit.txt") &&
			args.Artifacts[m.ArtifactAPIJSON] == m.Path("newman.json") &&
			args.Artifacts[m.ArtifactBDD] == m.DefaultArtifactPaths()[m.ArtifactBDD]
	})).Return(m.GateResult{Overall: m.VerdictPass}, nil)

	cmd.SetArgs([]string{
		"generate",
		"-o", "out",
		"-C", "project",
		"--log-file", t.TempDir() + "/qmetrics.log",
		"--min-coverage", "80",
		"--min-pass-rate", "99.5",
		"--max-duration", "90s",
		"--unit", "unit.txt",
		"--api-json", "newman.json",
	})
	require.NoError(t, cmd.Execute())
}

func TestGenerateCmd_GateFailureIsAnError(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	cmd := newTestGenerateRoot(t, mockWorkflow)

	mockWorkflow.On("Generate", mock.Anything, mock.Anything).
		Return(m.GateResult{Overall: m.VerdictFail, Health: 40}, fmt.Errorf("%w: health 40/100", domain.ErrQualityGateFailed))

	cmd.SetArgs([]string{"generate", "--log-file", t.TempDir() + "/qmetrics.log"})
	err := cmd.Execute()

	require.ErrorIs(t, err, domain.ErrQualityGateFailed)
}

func TestGenerateCmd_InvalidThresholds(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	cmd := newTestGenerateRoot(t, mockWorkflow)

	cmd.SetArgs([]string{"generate", "--log-file", t.TempDir() + "/qmetrics.log", "--min-coverage", "150"})
	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid thresholds")
	mockWorkflow.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerateCmd_PositionalArgsAreRejected(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	cmd := newTestGenerateRoot(t, mockWorkflow)

	cmd.SetArgs([]string{"generate", "backend"})
	require.Error(t, cmd.Execute())
}
