package schema

import (
	"rsmconfig/domain/core"
)

// defaultValues holds the default of every optional field across all
// contexts. Lists and mappings are copied on every read.
var defaultValues = map[string]interface{}{
	FieldIDColumn:                "spkitemid",
	FieldDescription:             "",
	FieldDescriptionOld:          "",
	FieldDescriptionNew:          "",
	FieldTrainLabelColumn:        "sc1",
	FieldTestLabelColumn:         "sc1",
	FieldHumanScoreColumn:        "sc1",
	FieldExcludeZeroScores:       true,
	FieldUseScaledPredictions:    false,
	FieldUseScaledPredictionsOld: false,
	FieldUseScaledPredictionsNew: false,
	FieldSelectTransformations:   false,
	FieldStandardizeFeatures:     true,
	FieldTruncateOutliers:        true,
	FieldUseThumbnails:           false,
	FieldUseTruncationThresholds: false,
	FieldScaleWith:               nil,
	FieldPredictExpectedScores:   false,
	FieldSign:                    nil,
	FieldFeatures:                nil,
	FieldLengthColumn:            nil,
	FieldSecondHumanScoreColumn:  nil,
	FieldFileFormat:              "csv",
	FieldCandidateColumn:         nil,
	FieldGeneralSections:         []interface{}{"all"},
	FieldSpecialSections:         nil,
	FieldCustomSections:          nil,
	FieldFeatureSubsetFile:       nil,
	FieldFeatureSubset:           nil,
	FieldTrimMin:                 nil,
	FieldTrimMax:                 nil,
	FieldTrimTolerance:           0.4998,
	FieldSubgroups:               []interface{}{},
	FieldMinNPerGroup:            nil,
	FieldSkllFixedParameters:     core.NewMapping(),
	FieldSkllObjective:           nil,
	FieldSkllGridSearchJobs:      1,
	FieldSectionOrder:            nil,
	FieldFlagColumn:              nil,
	FieldFlagColumnTest:          nil,
	FieldMinItemsPerCandidate:    nil,
	FieldExperimentNames:         nil,
	FieldRaterErrorVariance:      nil,
	FieldFolds:                   5,
	FieldFoldsFile:               nil,
	FieldBackgroundKmeansSize:    500,
	FieldNumFeaturesToDisplay:    15,
	FieldSampleRange:             nil,
	FieldSampleSize:              nil,
	FieldSampleIDs:               nil,
	FieldShowAutoCohorts:         false,
	FieldUseWandb:                false,
	FieldWandbProject:            nil,
	FieldWandbEntity:             nil,
}

var listFields = []string{
	FieldGeneralSections,
	FieldSpecialSections,
	FieldCustomSections,
	FieldSubgroups,
	FieldSectionOrder,
	FieldExperimentDirs,
	FieldExperimentNames,
	FieldSampleIDs,
}

var booleanFields = []string{
	FieldExcludeZeroScores,
	FieldPredictExpectedScores,
	FieldUseScaledPredictions,
	FieldUseScaledPredictionsOld,
	FieldUseScaledPredictionsNew,
	FieldUseThumbnails,
	FieldUseTruncationThresholds,
	FieldSelectTransformations,
	FieldStandardizeFeatures,
	FieldTruncateOutliers,
	FieldUseWandb,
	FieldShowAutoCohorts,
}

var wandbFields = []string{FieldUseWandb, FieldWandbProject, FieldWandbEntity}

type table struct {
	id       string
	required []string
	optional []string
}

var tables = map[Context]table{
	ContextTool: {
		id: FieldExperimentID,
		required: []string{
			FieldExperimentID, FieldModel, FieldTrainFile, FieldTestFile,
		},
		optional: append([]string{
			FieldDescription,
			FieldFeatures,
			FieldFeatureSubsetFile,
			FieldFeatureSubset,
			FieldFileFormat,
			FieldSign,
			FieldIDColumn,
			FieldUseThumbnails,
			FieldTrainLabelColumn,
			FieldTestLabelColumn,
			FieldLengthColumn,
			FieldSecondHumanScoreColumn,
			FieldFlagColumn,
			FieldFlagColumnTest,
			FieldExcludeZeroScores,
			FieldTrimMin,
			FieldTrimMax,
			FieldTrimTolerance,
			FieldPredictExpectedScores,
			FieldSelectTransformations,
			FieldUseScaledPredictions,
			FieldUseTruncationThresholds,
			FieldSubgroups,
			FieldMinNPerGroup,
			FieldGeneralSections,
			FieldCustomSections,
			FieldSpecialSections,
			FieldSkllFixedParameters,
			FieldSkllObjective,
			FieldSkllGridSearchJobs,
			FieldSectionOrder,
			FieldCandidateColumn,
			FieldStandardizeFeatures,
			FieldTruncateOutliers,
			FieldMinItemsPerCandidate,
			FieldRaterErrorVariance,
		}, wandbFields...),
	},
	ContextEval: {
		id: FieldExperimentID,
		required: []string{
			FieldExperimentID, FieldPredictionsFile, FieldSystemScoreColumn,
			FieldTrimMin, FieldTrimMax,
		},
		optional: append([]string{
			FieldDescription,
			FieldIDColumn,
			FieldHumanScoreColumn,
			FieldSecondHumanScoreColumn,
			FieldFileFormat,
			FieldFlagColumn,
			FieldExcludeZeroScores,
			FieldUseThumbnails,
			FieldScaleWith,
			FieldTrimTolerance,
			FieldSubgroups,
			FieldMinNPerGroup,
			FieldGeneralSections,
			FieldCustomSections,
			FieldSpecialSections,
			FieldSectionOrder,
			FieldCandidateColumn,
			FieldMinItemsPerCandidate,
			FieldRaterErrorVariance,
		}, wandbFields...),
	},
	ContextPredict: {
		id: FieldExperimentID,
		required: []string{
			FieldExperimentID, FieldExperimentDir, FieldInputFeaturesFile,
		},
		optional: append([]string{
			FieldIDColumn,
			FieldCandidateColumn,
			FieldFileFormat,
			FieldPredictExpectedScores,
			FieldHumanScoreColumn,
			FieldSecondHumanScoreColumn,
			FieldStandardizeFeatures,
			FieldSubgroups,
			FieldFlagColumn,
		}, wandbFields...),
	},
	ContextCompare: {
		id: FieldComparisonID,
		required: []string{
			FieldComparisonID,
			FieldExperimentIDOld, FieldExperimentDirOld,
			FieldExperimentIDNew, FieldExperimentDirNew,
			FieldDescriptionOld, FieldDescriptionNew,
		},
		optional: append([]string{
			FieldUseScaledPredictionsOld,
			FieldUseScaledPredictionsNew,
			FieldSubgroups,
			FieldUseThumbnails,
			FieldGeneralSections,
			FieldCustomSections,
			FieldSpecialSections,
			FieldSectionOrder,
		}, wandbFields...),
	},
	ContextSummarize: {
		id:       FieldSummaryID,
		required: []string{FieldSummaryID, FieldExperimentDirs},
		optional: append([]string{
			FieldDescription,
			FieldExperimentNames,
			FieldFileFormat,
			FieldGeneralSections,
			FieldCustomSections,
			FieldUseThumbnails,
			FieldSpecialSections,
			FieldSubgroups,
			FieldSectionOrder,
		}, wandbFields...),
	},
	ContextXval: {
		id:       FieldExperimentID,
		required: []string{FieldExperimentID, FieldModel, FieldTrainFile},
		optional: append([]string{
			FieldDescription,
			FieldFeatures,
			FieldFeatureSubsetFile,
			FieldFeatureSubset,
			FieldFileFormat,
			FieldFolds,
			FieldFoldsFile,
			FieldSign,
			FieldIDColumn,
			FieldUseThumbnails,
			FieldTrainLabelColumn,
			FieldLengthColumn,
			FieldSecondHumanScoreColumn,
			FieldFlagColumn,
			FieldExcludeZeroScores,
			FieldTrimMin,
			FieldTrimMax,
			FieldTrimTolerance,
			FieldPredictExpectedScores,
			FieldSelectTransformations,
			FieldUseScaledPredictions,
			FieldUseTruncationThresholds,
			FieldSubgroups,
			FieldMinNPerGroup,
			FieldSkllFixedParameters,
			FieldSkllObjective,
			FieldSkllGridSearchJobs,
			FieldCandidateColumn,
			FieldStandardizeFeatures,
			FieldTruncateOutliers,
			FieldMinItemsPerCandidate,
		}, wandbFields...),
	},
	ContextExplain: {
		id: FieldExperimentID,
		required: []string{
			FieldExperimentID, FieldExperimentDir,
			FieldBackgroundData, FieldExplainableData,
		},
		optional: append([]string{
			FieldDescription,
			FieldIDColumn,
			FieldBackgroundKmeansSize,
			FieldNumFeaturesToDisplay,
			FieldSampleRange,
			FieldSampleSize,
			FieldSampleIDs,
			FieldShowAutoCohorts,
			FieldGeneralSections,
			FieldCustomSections,
			FieldSpecialSections,
			FieldSectionOrder,
			FieldStandardizeFeatures,
			FieldTruncateOutliers,
		}, wandbFields...),
	},
}
