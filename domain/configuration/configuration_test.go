package configuration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"rsmconfig/domain/core"
	"rsmconfig/domain/schema"
	"rsmconfig/internal/errors"
	"rsmconfig/internal/testkit"
)

func build(t *testing.T, ctx schema.Context, extra ...core.Item) *Configuration {
	t.Helper()
	p, _ := newTestParser(nil)
	cfg, err := p.FromMapping(testkit.MinimalRawWith(ctx, extra...), ctx, WithConfigDir("/data/exp"))
	require.NoError(t, err)
	return cfg
}

func TestContainerAccess(t *testing.T) {
	cfg := build(t, schema.ContextTool)

	assert.True(t, cfg.Contains("experiment_id"))
	assert.False(t, cfg.Contains("expID"))

	v, ok := cfg.Get("id_column")
	assert.True(t, ok)
	assert.Equal(t, "spkitemid", v)
	assert.Equal(t, "fallback", cfg.GetOr("nope", "fallback"))

	cfg.Set("trim_min", 1)
	assert.Equal(t, 1, cfg.GetOr("trim_min", nil))

	n := cfg.Len()
	assert.Equal(t, 1, cfg.Pop("trim_min", nil))
	assert.Equal(t, "gone", cfg.Pop("trim_min", "gone"))
	assert.Equal(t, n-1, cfg.Len())

	keys := cfg.Keys()
	assert.Equal(t, "experiment_id", keys[0])
	assert.Len(t, cfg.Values(), len(keys))
	assert.Equal(t, keys[1], cfg.Items()[1].Key)
}

func TestContainerCopy(t *testing.T) {
	cfg := build(t, schema.ContextTool, core.Item{Key: "subgroups", Value: []interface{}{"L1", "L2"}})
	original := cfg.GetOr("subgroups", nil).([]interface{})

	deep := cfg.Copy(true)
	deepGroups := deep.GetOr("subgroups", nil).([]interface{})
	assert.Equal(t, original, deepGroups)
	assert.NotSame(t, &original[0], &deepGroups[0])

	shallow := cfg.Copy(false)
	shallowGroups := shallow.GetOr("subgroups", nil).([]interface{})
	assert.Equal(t, original, shallowGroups)
	assert.Same(t, &original[0], &shallowGroups[0])

	shallow.Set("description", "changed")
	assert.Equal(t, "", cfg.GetOr("description", nil))
	assert.Equal(t, cfg.ConfigDir(), deep.ConfigDir())
	assert.Equal(t, cfg.Context(), deep.Context())
}

func TestContainerStringIsContextRestricted(t *testing.T) {
	cfg := build(t, schema.ContextTool)
	out := cfg.String()

	assert.True(t, strings.HasPrefix(out, "{\n    \"experiment_id\": \"experiment_1\",\n    \"model\": \"LinearRegression\","))
	assert.Contains(t, out, "\"subgroups\": [],")
	assert.Contains(t, out, "\"skll_fixed_parameters\": {},")
	assert.Contains(t, out, "\"trim_tolerance\": 0.4998,")

	require.NoError(t, cfg.SetContext(schema.ContextEval))
	out = cfg.String()
	assert.NotContains(t, out, "\"model\"")
	assert.Contains(t, out, "\"experiment_id\"")

	assert.Error(t, cfg.SetContext(schema.Context("rsmfoo")))
	assert.Equal(t, schema.ContextEval, cfg.Context())
}

func TestSave(t *testing.T) {
	cfg := build(t, schema.ContextTool)
	dir := t.TempDir()

	path, err := cfg.Save(dir)
	require.NoError(t, err)

	absDir, _ := filepath.Abs(dir)
	assert.Equal(t, filepath.Join(absDir, "output", "experiment_1_rsmtool.json"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.String(), string(written))
}

func TestSaveWritesTextUnescaped(t *testing.T) {
	cfg := build(t, schema.ContextTool,
		core.Item{Key: "description", Value: "scores < 2 & > 5"},
		core.Item{Key: "subgroups", Value: "L1, L2"})

	canonical, err := cfg.Canonical()
	require.NoError(t, err)
	text := string(canonical)
	assert.True(t, strings.HasPrefix(text, "{\n    \"experiment_id\": \"experiment_1\",\n"))
	assert.Contains(t, text, `"description": "scores < 2 & > 5"`)
	assert.Contains(t, text, "\"subgroups\": [\n        \"L1\",\n        \"L2\"\n    ]")
	assert.Contains(t, text, `"skll_fixed_parameters": {}`)
	assert.True(t, strings.HasSuffix(text, "\n}"))

	path, err := cfg.Save(t.TempDir())
	require.NoError(t, err)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, text, string(written))

	again, err := cfg.OutputPath(filepath.Dir(filepath.Dir(path)))
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

func TestSaveUsesIdentifierOfContext(t *testing.T) {
	cfg := build(t, schema.ContextCompare)
	path, err := cfg.Save(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "old_vs_new_rsmcompare.json", filepath.Base(path))
}

func TestExcludeListwise(t *testing.T) {
	assert.False(t, build(t, schema.ContextTool).ExcludeListwise())

	cfg := build(t, schema.ContextTool,
		core.Item{Key: "min_items_per_candidate", Value: 4},
		core.Item{Key: "candidate_column", Value: "candidate"})
	assert.True(t, cfg.ExcludeListwise())
}

func TestFlagFilters(t *testing.T) {
	advisories := core.NewMapping()
	advisories.Set("advisories", "0")
	advisories.Set("ADVISORY", []interface{}{1, 2})

	logger, logs := testkit.ObservedLogger(zapcore.InfoLevel)
	p := NewParser(nil, fakeCapabilities(), logger)
	cfg, err := p.FromMapping(testkit.MinimalRawWith(schema.ContextTool,
		core.Item{Key: "flag_column", Value: advisories},
		core.Item{Key: "flag_column_test", Value: "advisories"},
	), schema.ContextTool, WithConfigDir("/data/exp"))
	require.NoError(t, err)

	filters, err := cfg.FlagFilters("flag_column", PartitionTrain)
	require.NoError(t, err)
	assert.Equal(t, map[string][]interface{}{
		"advisories": {"0"},
		"ADVISORY":   {1, 2},
	}, filters)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).FilterMessageSnippet("converted to a list").Len())

	_, err = cfg.FlagFilters("flag_column", Partition("eval"))
	assert.ErrorIs(t, err, errors.ErrUnknownPartition)

	_, err = cfg.FlagFilters("flag_column_test", PartitionBoth)
	assert.ErrorIs(t, err, errors.ErrPartitionMismatch)
	_, err = cfg.FlagFilters("flag_column_test", PartitionTrain)
	assert.ErrorIs(t, err, errors.ErrPartitionMismatch)

	_, err = cfg.FlagFilters("flag_column_test", PartitionTest)
	assert.ErrorIs(t, err, errors.ErrInvalidFilterSpec)

	unset := build(t, schema.ContextTool)
	filters, err = unset.FlagFilters("flag_column", PartitionUnknown)
	require.NoError(t, err)
	assert.Empty(t, filters)
}

func TestTrimBounds(t *testing.T) {
	eval := build(t, schema.ContextEval)
	eval.Set("trim_max", "6")

	bounds, err := eval.TrimBounds()
	require.NoError(t, err)
	require.NotNil(t, bounds.Min)
	require.NotNil(t, bounds.Max)
	require.NotNil(t, bounds.Tolerance)
	assert.Equal(t, 1.0, *bounds.Min)
	assert.Equal(t, 6.0, *bounds.Max)
	assert.Equal(t, 0.4998, *bounds.Tolerance)

	tool := build(t, schema.ContextTool)
	bounds, err = tool.TrimBounds()
	require.NoError(t, err)
	assert.Nil(t, bounds.Min)
	assert.Nil(t, bounds.Max)

	tool.Set("trim_min", "low")
	_, err = tool.TrimBounds()
	assert.ErrorIs(t, err, errors.ErrInvalidNumericValue)
}

func TestRaterErrorVariance(t *testing.T) {
	cfg := build(t, schema.ContextEval, core.Item{Key: "rater_error_variance", Value: "0.5"})
	v, err := cfg.RaterErrorVariance()
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 0.5, *v)

	v, err = build(t, schema.ContextEval).RaterErrorVariance()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDefaultStringColumns(t *testing.T) {
	cfg := build(t, schema.ContextTool,
		core.Item{Key: "id_column", Value: "ID"},
		core.Item{Key: "candidate_column", Value: "candidate"},
		core.Item{Key: "subgroups", Value: "L1, ID, L2"})
	assert.Equal(t, []string{"ID", "candidate", "L1", "L2"}, cfg.DefaultStringColumns())

	assert.Equal(t, []string{"spkitemid"}, build(t, schema.ContextTool).DefaultStringColumns())
}

func TestNamesAndPaths(t *testing.T) {
	cfg := build(t, schema.ContextTool,
		core.Item{Key: "features", Value: []interface{}{"FEATURE1", "FEATURE2"}})

	names, paths, err := cfg.NamesAndPaths(
		[]string{"train_file", "test_file", "features"},
		[]string{"train", "test", "feature_specs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"train", "test"}, names)
	assert.Equal(t, []interface{}{"data/train.csv", "data/test.csv"}, paths)

	cfg.Set("features", "features.csv")
	names, _, err = cfg.NamesAndPaths(
		[]string{"train_file", "features", "length_column"},
		[]string{"train", "feature_specs", "length"})
	require.NoError(t, err)
	assert.Equal(t, []string{"train", "feature_specs"}, names)

	_, _, err = cfg.NamesAndPaths([]string{"train_file", "train_file"}, []string{"a", "b"})
	assert.ErrorIs(t, err, errors.ErrDuplicateKey)

	_, _, err = cfg.NamesAndPaths([]string{"train_file", "test_file"}, []string{"a", "a"})
	assert.ErrorIs(t, err, errors.ErrDuplicateName)

	_, _, err = cfg.NamesAndPaths([]string{"train_file"}, []string{"a", "b"})
	assert.ErrorIs(t, err, errors.ErrCountMismatch)
}

func TestSampleRange(t *testing.T) {
	cfg := build(t, schema.ContextExplain, core.Item{Key: "sample_range", Value: "0-9"})
	start, end, ok, err := cfg.SampleRange()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 9, end)

	_, _, ok, err = build(t, schema.ContextExplain).SampleRange()
	require.NoError(t, err)
	assert.False(t, ok)

	for _, bad := range []string{"5-2", "3-3", "a-b", "-1-4", "10"} {
		_, _, err := ParseRange(bad)
		assert.ErrorIs(t, err, errors.ErrInvalidRange, bad)
	}
}

func TestResolvePath(t *testing.T) {
	cfg := build(t, schema.ContextTool)

	path, ok := cfg.ResolvePath("train_file")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join("/data/exp", "data/train.csv"), path)

	cfg.Set("test_file", "/abs/test.csv")
	path, ok = cfg.ResolvePath("test_file")
	assert.True(t, ok)
	assert.Equal(t, "/abs/test.csv", path)

	_, ok = cfg.ResolvePath("features")
	assert.False(t, ok)
}

func TestFingerprint(t *testing.T) {
	cfg := build(t, schema.ContextTool)
	a, err := cfg.Fingerprint()
	require.NoError(t, err)
	b, err := cfg.Copy(true).Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a.String(), 64)

	cfg.Set("description", "changed")
	c, err := cfg.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
