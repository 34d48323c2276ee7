package testkit

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"rsmconfig/domain/core"
	"rsmconfig/domain/schema"
	"rsmconfig/internal/errors"
	"rsmconfig/ports"
)

// minimalFields holds the smallest valid input for each context
var minimalFields = map[schema.Context][]core.Item{
	schema.ContextTool: {
		{Key: schema.FieldExperimentID, Value: "experiment_1"},
		{Key: schema.FieldModel, Value: "LinearRegression"},
		{Key: schema.FieldTrainFile, Value: "data/train.csv"},
		{Key: schema.FieldTestFile, Value: "data/test.csv"},
	},
	schema.ContextEval: {
		{Key: schema.FieldExperimentID, Value: "eval_1"},
		{Key: schema.FieldPredictionsFile, Value: "data/predictions.csv"},
		{Key: schema.FieldSystemScoreColumn, Value: "system"},
		{Key: schema.FieldTrimMin, Value: 1},
		{Key: schema.FieldTrimMax, Value: 6},
	},
	schema.ContextPredict: {
		{Key: schema.FieldExperimentID, Value: "experiment_1"},
		{Key: schema.FieldExperimentDir, Value: "existing_experiment"},
		{Key: schema.FieldInputFeaturesFile, Value: "data/new_features.csv"},
	},
	schema.ContextCompare: {
		{Key: schema.FieldComparisonID, Value: "old_vs_new"},
		{Key: schema.FieldExperimentIDOld, Value: "old"},
		{Key: schema.FieldExperimentDirOld, Value: "experiments/old"},
		{Key: schema.FieldExperimentIDNew, Value: "new"},
		{Key: schema.FieldExperimentDirNew, Value: "experiments/new"},
		{Key: schema.FieldDescriptionOld, Value: "baseline"},
		{Key: schema.FieldDescriptionNew, Value: "candidate"},
	},
	schema.ContextSummarize: {
		{Key: schema.FieldSummaryID, Value: "summary"},
		{Key: schema.FieldExperimentDirs, Value: []interface{}{"home/dir1", "home/dir2", "home/dir3"}},
	},
	schema.ContextXval: {
		{Key: schema.FieldExperimentID, Value: "xval_1"},
		{Key: schema.FieldModel, Value: "LinearRegression"},
		{Key: schema.FieldTrainFile, Value: "data/train.csv"},
	},
	schema.ContextExplain: {
		{Key: schema.FieldExperimentID, Value: "explain_1"},
		{Key: schema.FieldExperimentDir, Value: "existing_experiment"},
		{Key: schema.FieldBackgroundData, Value: "data/background.csv"},
		{Key: schema.FieldExplainableData, Value: "data/explain.csv"},
	},
}

// MinimalRaw returns a fresh mapping holding only the required fields of ctx
func MinimalRaw(ctx schema.Context) *core.Mapping {
	m := core.NewMapping()
	for _, item := range minimalFields[ctx] {
		m.Set(item.Key, core.CopyValue(item.Value))
	}
	return m
}

// MinimalRawWith returns MinimalRaw with extra fields appended in order
func MinimalRawWith(ctx schema.Context, extra ...core.Item) *core.Mapping {
	m := MinimalRaw(ctx)
	for _, item := range extra {
		m.Set(item.Key, item.Value)
	}
	return m
}

// ObservedLogger returns a logger whose entries at level and above are recorded
func ObservedLogger(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	obs, logs := observer.New(level)
	return zap.New(obs), logs
}

// FakeCapabilities is a hand-configured capability catalog
type FakeCapabilities struct {
	Objective     map[string]bool
	FixedParams   map[string]bool
	Probabilistic map[string]bool
	Metrics       map[string]bool
}

var _ ports.ModelCapabilityPort = (*FakeCapabilities)(nil)

func (f *FakeCapabilities) SupportsObjective(model string) bool       { return f.Objective[model] }
func (f *FakeCapabilities) SupportsFixedParameters(model string) bool { return f.FixedParams[model] }
func (f *FakeCapabilities) SupportsProbabilities(model string) bool   { return f.Probabilistic[model] }
func (f *FakeCapabilities) IsValidObjective(name string) bool         { return f.Metrics[name] }

func (f *FakeCapabilities) Objectives() []string {
	var out []string
	for name := range f.Metrics {
		out = append(out, name)
	}
	return out
}

// MemorySource serves configuration documents from memory
type MemorySource struct {
	mu   sync.Mutex
	docs map[string]*core.Mapping
}

var _ ports.ConfigSourcePort = (*MemorySource)(nil)

func NewMemorySource() *MemorySource {
	return &MemorySource{docs: make(map[string]*core.Mapping)}
}

// Put registers a document under path
func (s *MemorySource) Put(path string, doc *core.Mapping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[path] = doc.Clone()
}

func (s *MemorySource) Load(path string) (*core.Mapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[path]
	if !ok {
		return nil, errors.Newf(errors.CodeSourceNotFound, "configuration file %s not found", path)
	}
	return doc.Clone(), nil
}
