package schema

import (
	"strings"

	apperrors "rsmconfig/internal/errors"
)

// RewriteFunc converts a legacy value into its current form
type RewriteFunc func(value interface{}) (interface{}, error)

// Alias maps a retired field name onto its current name
type Alias struct {
	From    string
	To      string
	Rewrite RewriteFunc
}

// Apply runs the value rewrite, if any
func (a Alias) Apply(value interface{}) (interface{}, error) {
	if a.Rewrite == nil {
		return value, nil
	}
	return a.Rewrite(value)
}

// legacyModelNames maps the historical model codes onto built-in model names.
// An empty target marks a model that no longer exists.
var legacyModelNames = map[string]string{
	"empWt":             "LinearRegression",
	"eqWt":              "EqualWeightsLR",
	"empWtBalanced":     "RebalancedLR",
	"empWtDropNeg":      "",
	"empWtNNLS":         "NNLR",
	"empWtDropNegLasso": "LassoFixedLambdaThenNNLR",
	"empWtLasso":        "LassoFixedLambdaThenLR",
	"empWtLassoBest":    "PositiveLassoCVThenLR",
	"lassoWtLasso":      "LassoFixedLambda",
	"lassoWtLassoBest":  "PositiveLassoCV",
}

const (
	legacyModelField = "LRmodel"
	legacyScaleField = "scale"
)

func rewriteLegacyModel(value interface{}) (interface{}, error) {
	name, ok := value.(string)
	if !ok {
		return value, nil
	}
	current, known := legacyModelNames[name]
	if !known {
		return value, nil
	}
	if current == "" {
		return nil, apperrors.InvalidLegacyValue(legacyModelField, value)
	}
	return current, nil
}

// rewriteScaleMarker accepts only the "scale" and "raw" tokens.
func rewriteScaleMarker(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "scale":
			return true, nil
		case "raw":
			return false, nil
		}
	}
	return nil, apperrors.InvalidLegacyValue(legacyScaleField, value)
}

var aliasTable = []Alias{
	{From: "expID", To: FieldExperimentID},
	{From: legacyModelField, To: FieldModel, Rewrite: rewriteLegacyModel},
	{From: "train", To: FieldTrainFile},
	{From: "test", To: FieldTestFile},
	{From: "predictions", To: FieldPredictionsFile},
	{From: "feature", To: FieldFeatures},
	{From: "train.lab", To: FieldTrainLabelColumn},
	{From: "test.lab", To: FieldTestLabelColumn},
	{From: "trim.min", To: FieldTrimMin},
	{From: "trim.max", To: FieldTrimMax},
	{From: legacyScaleField, To: FieldUseScaledPredictions, Rewrite: rewriteScaleMarker},
	{From: "feature.subset", To: FieldFeatureSubset},
}
