package runner_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"digital.vasic.microtest/pkg/assertion"
	"digital.vasic.microtest/pkg/logging"
	"digital.vasic.microtest/pkg/registry"
	"digital.vasic.microtest/pkg/runner"
	"digital.vasic.microtest/pkg/suite"
)

type MathSuite struct {
	suite.Base
	ran *[]string
}

func newMathSuite(ran *[]string) func() *MathSuite {
	return func() *MathSuite {
		s := &MathSuite{ran: ran}
		s.Register("add_ok", func() {
			*s.ran = append(*s.ran, "math.add_ok")
			assertion.AreEqual(2, 1+1)
		})
		s.Register("add_bad", func() {
			*s.ran = append(*s.ran, "math.add_bad")
			assertion.AreEqual(3, 1+1)
		})
		s.Register("sub_bad", func() {
			*s.ran = append(*s.ran, "math.sub_bad")
			assertion.IsTrue(2-1 == 0)
		})
		return s
	}
}

type StringSuite struct {
	suite.Base
}

func newStringSuite(ran *[]string) func() *StringSuite {
	return func() *StringSuite {
		s := &StringSuite{}
		s.Register("concat", func() {
			*ran = append(*ran, "string.concat")
			assertion.AreEqual("ab", "a"+"b")
		})
		return s
	}
}

func setup(t *testing.T) (*registry.Registry, *[]string) {
	t.Helper()
	ran := &[]string{}
	reg := registry.NewRegistry()
	require.NoError(t, registry.Add(reg, newMathSuite(ran)))
	require.NoError(t, registry.Add(reg, newStringSuite(ran)))
	return reg, ran
}

// mockLogger records log calls for assertions on run logging.
type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Info(msg string, fields ...logging.Field) {
	m.Called(msg, fields)
}

func (m *mockLogger) Warn(msg string, fields ...logging.Field) {
	m.Called(msg, fields)
}

func (m *mockLogger) Error(msg string, fields ...logging.Field) {
	m.Called(msg, fields)
}

func (m *mockLogger) Debug(msg string, fields ...logging.Field) {
	m.Called(msg, fields)
}

func (m *mockLogger) WithFields(fields ...logging.Field) logging.Logger {
	args := m.Called(fields)
	return args.Get(0).(logging.Logger)
}

func (m *mockLogger) Close() error {
	return m.Called().Error(0)
}

func TestExecute_CollectWholeRegistry(t *testing.T) {
	reg, ran := setup(t)
	r := runner.NewRunner(reg)

	outcome, err := r.Execute(&runner.Plan{Name: "all", Mode: runner.ModeCollect})

	require.NoError(t, err)
	assert.Equal(t, "all", outcome.Plan)
	assert.Equal(t, runner.ModeCollect, outcome.Mode)
	assert.False(t, outcome.Passed())
	require.Len(t, outcome.Failures, 2)
	assert.Contains(t, outcome.Failures[0].Message(), "Expected: <3> as int")
	assert.Contains(t, outcome.Failures[1].Message(), "Expression: <2-1 == 0>")
	assert.Equal(t, []string{
		"math.add_bad", "math.add_ok", "math.sub_bad", "string.concat",
	}, *ran)

	_, parseErr := uuid.Parse(outcome.RunID)
	assert.NoError(t, parseErr)
}

func TestExecute_PropagateStopsAtFirstFailure(t *testing.T) {
	reg, ran := setup(t)
	r := runner.NewRunner(reg)

	outcome, err := r.Execute(&runner.Plan{Mode: runner.ModePropagate})

	require.Error(t, err)
	var f *assertion.Failure
	require.ErrorAs(t, err, &f)
	require.Len(t, outcome.Failures, 1)
	assert.Same(t, f, outcome.Failures[0])
	assert.Equal(t, []string{"math.add_bad"}, *ran)
}

func TestExecute_SelectedCases(t *testing.T) {
	reg, ran := setup(t)
	r := runner.NewRunner(reg)

	outcome, err := r.Execute(&runner.Plan{
		Mode: runner.ModeCollect,
		Suites: []runner.Selection{
			{Suite: "StringSuite"},
			{Suite: "MathSuite", Cases: []string{"sub_bad", "add_ok"}},
		},
	})

	require.NoError(t, err)
	require.Len(t, outcome.Failures, 1)
	assert.Equal(t, []string{
		"string.concat", "math.sub_bad", "math.add_ok",
	}, *ran)
}

func TestExecute_PropagateSelectedCases(t *testing.T) {
	reg, ran := setup(t)
	r := runner.NewRunner(reg)

	_, err := r.Execute(&runner.Plan{
		Mode: runner.ModePropagate,
		Suites: []runner.Selection{
			{Suite: "MathSuite", Cases: []string{"add_ok", "sub_bad", "add_bad"}},
			{Suite: "StringSuite"},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2-1 == 0")
	assert.Equal(t, []string{"math.add_ok", "math.sub_bad"}, *ran)
}

func TestExecute_AllPassing(t *testing.T) {
	reg, _ := setup(t)
	r := runner.NewRunner(reg)

	for _, mode := range []runner.Mode{runner.ModeCollect, runner.ModePropagate} {
		t.Run(string(mode), func(t *testing.T) {
			outcome, err := r.Execute(&runner.Plan{
				Mode:   mode,
				Suites: []runner.Selection{{Suite: "StringSuite"}},
			})
			require.NoError(t, err)
			assert.True(t, outcome.Passed())
		})
	}
}

func TestExecute_LenientUnknownNames(t *testing.T) {
	reg, ran := setup(t)
	r := runner.NewRunner(reg)

	outcome, err := r.Execute(&runner.Plan{
		Mode: runner.ModePropagate,
		Suites: []runner.Selection{
			{Suite: "NoSuchSuite"},
			{Suite: "MathSuite", Cases: []string{"missing", "add_ok"}},
		},
	})

	require.NoError(t, err)
	assert.True(t, outcome.Passed())
	assert.Equal(t, []string{"math.add_ok"}, *ran)
}

func TestExecute_StrictUnknownNames(t *testing.T) {
	tests := []struct {
		name    string
		opts    []runner.RunnerOption
		plan    runner.Plan
		wantErr error
	}{
		{
			name: "unknown suite in strict plan",
			plan: runner.Plan{
				Mode:   runner.ModeCollect,
				Strict: true,
				Suites: []runner.Selection{{Suite: "NoSuchSuite"}},
			},
			wantErr: runner.ErrSuiteNotFound,
		},
		{
			name: "unknown case with strict option",
			opts: []runner.RunnerOption{runner.WithStrictLookup()},
			plan: runner.Plan{
				Mode: runner.ModeCollect,
				Suites: []runner.Selection{
					{Suite: "StringSuite"},
					{Suite: "MathSuite", Cases: []string{"add_ok", "missing"}},
				},
			},
			wantErr: runner.ErrCaseNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, ran := setup(t)
			r := runner.NewRunner(reg, tt.opts...)

			_, err := r.Execute(&tt.plan)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, *ran)
		})
	}
}

func TestExecute_InvalidMode(t *testing.T) {
	reg, ran := setup(t)
	outcome, err := runner.NewRunner(reg).Execute(&runner.Plan{Mode: "parallel"})

	require.ErrorIs(t, err, runner.ErrInvalidMode)
	assert.Nil(t, outcome)
	assert.Empty(t, *ran)
}

func TestExecute_NilPlanRunsEverything(t *testing.T) {
	reg, ran := setup(t)
	outcome, err := runner.NewRunner(reg).Execute(nil)

	require.NoError(t, err)
	assert.Len(t, outcome.Failures, 2)
	assert.Len(t, *ran, 4)
}

func TestExecute_IDGenerator(t *testing.T) {
	reg, _ := setup(t)
	r := runner.NewRunner(reg, runner.WithIDGenerator(func() string {
		return "run-1"
	}))

	outcome, err := r.Execute(&runner.Plan{Mode: runner.ModeCollect})
	require.NoError(t, err)
	assert.Equal(t, "run-1", outcome.RunID)
}

func TestExecute_Hooks(t *testing.T) {
	reg, _ := setup(t)
	var events []string

	r := runner.NewRunner(reg,
		runner.WithPreHook(func(k registry.Kind) error {
			events = append(events, "pre:"+k.Name())
			return nil
		}),
		runner.WithPostHook(func(k registry.Kind) error {
			events = append(events, "post:"+k.Name())
			return errors.New("ignored")
		}),
	)

	_, err := r.Execute(&runner.Plan{Mode: runner.ModeCollect})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"pre:MathSuite", "post:MathSuite",
		"pre:StringSuite", "post:StringSuite",
	}, events)
}

func TestExecute_PreHookAborts(t *testing.T) {
	reg, ran := setup(t)
	hookErr := errors.New("not ready")

	r := runner.NewRunner(reg, runner.WithPreHook(func(registry.Kind) error {
		return hookErr
	}))

	_, err := r.Execute(&runner.Plan{Mode: runner.ModeCollect})
	require.ErrorIs(t, err, hookErr)
	assert.Contains(t, err.Error(), "pre-hook failed for MathSuite")
	assert.Empty(t, *ran)
}

func TestExecute_Logging(t *testing.T) {
	reg, _ := setup(t)
	logger := &mockLogger{}
	logger.On("WithFields", mock.Anything).Return(logger)
	logger.On("Info", mock.Anything, mock.Anything)
	logger.On("Warn", mock.Anything, mock.Anything)

	r := runner.NewRunner(reg,
		runner.WithLogger(logger),
		runner.WithIDGenerator(func() string { return "r-42" }),
	)
	_, err := r.Execute(&runner.Plan{
		Mode:   runner.ModeCollect,
		Suites: []runner.Selection{{Suite: "Ghost"}, {Suite: "MathSuite"}},
	})
	require.NoError(t, err)

	logger.AssertCalled(t, "WithFields", []logging.Field{
		logging.RunIDField("r-42"),
		logging.ModeField("collect"),
	})
	logger.AssertCalled(t, "Warn", "skipping unknown suite",
		[]logging.Field{logging.SuiteField("Ghost")})
	logger.AssertCalled(t, "Info", "run started", mock.Anything)
	logger.AssertCalled(t, "Info", "run finished", mock.Anything)
}
