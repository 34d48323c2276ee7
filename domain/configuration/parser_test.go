package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"rsmconfig/domain/core"
	"rsmconfig/domain/schema"
	"rsmconfig/internal/errors"
	"rsmconfig/internal/testkit"
)

func newTestParser(source *testkit.MemorySource) (*Parser, *observer.ObservedLogs) {
	logger, logs := testkit.ObservedLogger(zapcore.InfoLevel)
	if source == nil {
		return NewParser(nil, fakeCapabilities(), logger), logs
	}
	return NewParser(source, fakeCapabilities(), logger), logs
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	return path
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "experiment.JSON")

	source := testkit.NewMemorySource()
	source.Put(path, testkit.MinimalRawWith(schema.ContextTool, core.Item{Key: "subgroups", Value: "L1, L2"}))
	p, _ := newTestParser(source)

	cfg, err := p.FromFile(path, schema.ContextTool)
	require.NoError(t, err)

	absDir, _ := filepath.Abs(dir)
	assert.Equal(t, absDir, cfg.ConfigDir())
	assert.Equal(t, schema.ContextTool, cfg.Context())
	assert.Equal(t, []interface{}{"L1", "L2"}, cfg.GetOr("subgroups", nil))
}

func TestFromFileFailures(t *testing.T) {
	dir := t.TempDir()
	p, _ := newTestParser(testkit.NewMemorySource())

	_, err := p.FromFile(filepath.Join(dir, "missing.json"), schema.ContextTool)
	assert.ErrorIs(t, err, errors.ErrSourceNotFound)

	_, err = p.FromFile(dir, schema.ContextTool)
	assert.ErrorIs(t, err, errors.ErrSourceIsDirectory)

	_, err = p.FromFile(touch(t, dir, "experiment.cfg"), schema.ContextTool)
	assert.ErrorIs(t, err, errors.ErrUnsupportedExtension)
}

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Load(path string) (*core.Mapping, error) {
	args := m.Called(path)
	if doc := args.Get(0); doc != nil {
		return doc.(*core.Mapping), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestFromFileLoaderFailureIsMalformed(t *testing.T) {
	path := touch(t, t.TempDir(), "broken.json")

	source := new(mockSource)
	source.On("Load", path).Return(nil, fmt.Errorf("unexpected end of input"))
	p := NewParser(source, fakeCapabilities(), nil)

	_, err := p.FromFile(path, schema.ContextTool)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMalformedSource)
	assert.Contains(t, err.Error(), "unexpected end of input")
	source.AssertExpectations(t)
}

func TestFromMappingReferenceDirectory(t *testing.T) {
	p, logs := newTestParser(nil)

	cfg, err := p.FromMapping(testkit.MinimalRaw(schema.ContextTool), schema.ContextTool)
	require.NoError(t, err)
	wd, _ := os.Getwd()
	assert.Equal(t, wd, cfg.ConfigDir())
	assert.Equal(t, 1, logs.FilterMessageSnippet("working directory").Len())

	cfg, err = p.FromMapping(testkit.MinimalRaw(schema.ContextTool), schema.ContextTool, WithConfigDir("/data/experiments"))
	require.NoError(t, err)
	assert.Equal(t, "/data/experiments", cfg.ConfigDir())
}

func TestFromMapWithLegacyNames(t *testing.T) {
	p, _ := newTestParser(nil)

	cfg, err := p.FromMap(map[string]interface{}{
		"expID":      "my_experiment",
		"train_file": "path/to/train.tsv",
		"test_file":  "path/to/test.tsv",
		"model":      "LinearRegression",
	}, schema.ContextTool)
	require.NoError(t, err)

	assert.Equal(t, "my_experiment", cfg.GetOr("experiment_id", nil))
	assert.False(t, cfg.Contains("expID"))
	assert.Equal(t, "path/to/train.tsv", cfg.GetOr("train_file", nil))
}

func TestReuse(t *testing.T) {
	p, _ := newTestParser(nil)
	cfg, err := p.FromMapping(testkit.MinimalRaw(schema.ContextEval), schema.ContextEval)
	require.NoError(t, err)

	same, err := p.Reuse(cfg)
	require.NoError(t, err)
	assert.Same(t, cfg, same)

	cfg.SetConfigDir("")
	_, err = p.Reuse(cfg)
	assert.ErrorIs(t, err, errors.ErrMissingReferenceDirectory)
}

func TestConfigureDispatch(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "summary.json")
	source := testkit.NewMemorySource()
	source.Put(path, testkit.MinimalRaw(schema.ContextSummarize))
	p, _ := newTestParser(source)

	fromFile, err := p.Configure(schema.ContextSummarize, path)
	require.NoError(t, err)
	assert.Equal(t, "summary", fromFile.GetOr("summary_id", nil))

	fromMapping, err := p.Configure(schema.ContextSummarize, testkit.MinimalRaw(schema.ContextSummarize))
	require.NoError(t, err)
	assert.Equal(t, fromFile.String(), fromMapping.String())

	fromMap, err := p.Configure(schema.ContextSummarize, map[string]interface{}{
		"summary_id":      "summary",
		"experiment_dirs": []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "b"}, fromMap.GetOr("experiment_dirs", nil))

	reused, err := p.Configure(schema.ContextSummarize, fromFile)
	require.NoError(t, err)
	assert.Same(t, fromFile, reused)

	_, err = p.Configure(schema.ContextSummarize, 42)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestFromMapTypedGoValues(t *testing.T) {
	p, _ := newTestParser(nil)
	base := func() map[string]interface{} {
		return map[string]interface{}{
			"experiment_id": "typed",
			"model":         "LinearRegression",
			"train_file":    "train.csv",
			"test_file":     "test.csv",
			"subgroups":     []string{"L1", "L2"},
		}
	}

	t.Run("mismatched subgroup keys", func(t *testing.T) {
		raw := base()
		raw["min_n_per_group"] = map[string]int{"L1": 100, "L3": 200}
		_, err := p.FromMap(raw, schema.ContextTool)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrSubgroupKeyMismatch)
	})

	t.Run("matching subgroup keys", func(t *testing.T) {
		raw := base()
		raw["min_n_per_group"] = map[string]int{"L2": 200, "L1": 100}
		raw["skll_fixed_parameters"] = map[string]float64{"alpha": 0.5}
		cfg, err := p.FromMap(raw, schema.ContextTool)
		require.NoError(t, err)

		byGroup, ok := cfg.GetOr("min_n_per_group", nil).(*core.Mapping)
		require.True(t, ok)
		assert.Equal(t, []string{"L1", "L2"}, byGroup.Keys())
		assert.Equal(t, 100, byGroup.GetOr("L1", nil))

		params, ok := cfg.GetOr("skll_fixed_parameters", nil).(*core.Mapping)
		require.True(t, ok)
		assert.Equal(t, 0.5, params.GetOr("alpha", nil))
		assert.Equal(t, []interface{}{"L1", "L2"}, cfg.GetOr("subgroups", nil))
	})

	t.Run("typed slice of numbers", func(t *testing.T) {
		raw := base()
		raw["subgroups"] = []int32{1, 2}
		raw["min_n_per_group"] = int64(50)
		cfg, err := p.FromMap(raw, schema.ContextTool)
		require.NoError(t, err)
		assert.Equal(t, []interface{}{1, 2}, cfg.GetOr("subgroups", nil))
	})
}

func TestRevalidateAfterMutation(t *testing.T) {
	p, _ := newTestParser(nil)
	cfg, err := p.FromMapping(testkit.MinimalRaw(schema.ContextTool), schema.ContextTool)
	require.NoError(t, err)

	cfg.Set("experiment_id", "has space")
	_, err = p.Revalidate(cfg)
	assert.ErrorIs(t, err, errors.ErrIdentifierContainsWhitespace)

	cfg.Set("experiment_id", "fine")
	require.NoError(t, cfg.SetContext(schema.ContextEval))
	_, err = p.Revalidate(cfg)
	assert.ErrorIs(t, err, errors.ErrMissingRequiredField)
}

func TestConcurrentConstruction(t *testing.T) {
	p, _ := newTestParser(nil)
	shared := testkit.MinimalRawWith(schema.ContextTool, core.Item{Key: "subgroups", Value: "L1, L2"})

	var wg sync.WaitGroup
	results := make([]*Configuration, 16)
	errs := make([]error, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			raw := shared.Clone()
			raw.Set("experiment_id", fmt.Sprintf("experiment_%d", i))
			results[i], errs[i] = p.FromMapping(raw, schema.ContextTool, WithConfigDir("/tmp"))
		}(i)
	}
	wg.Wait()

	for i, cfg := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, fmt.Sprintf("experiment_%d", i), cfg.GetOr("experiment_id", nil))
	}
}
