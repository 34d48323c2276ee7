package schema

// Field names shared by the schema tables and the validation rules.
const (
	FieldExperimentID            = "experiment_id"
	FieldComparisonID            = "comparison_id"
	FieldSummaryID               = "summary_id"
	FieldModel                   = "model"
	FieldTrainFile               = "train_file"
	FieldTestFile                = "test_file"
	FieldPredictionsFile         = "predictions_file"
	FieldSystemScoreColumn       = "system_score_column"
	FieldExperimentDir           = "experiment_dir"
	FieldExperimentDirs          = "experiment_dirs"
	FieldExperimentNames         = "experiment_names"
	FieldInputFeaturesFile       = "input_features_file"
	FieldExperimentIDOld         = "experiment_id_old"
	FieldExperimentDirOld        = "experiment_dir_old"
	FieldExperimentIDNew         = "experiment_id_new"
	FieldExperimentDirNew        = "experiment_dir_new"
	FieldDescription             = "description"
	FieldDescriptionOld          = "description_old"
	FieldDescriptionNew          = "description_new"
	FieldFeatures                = "features"
	FieldFeatureSubsetFile       = "feature_subset_file"
	FieldFeatureSubset           = "feature_subset"
	FieldSign                    = "sign"
	FieldFileFormat              = "file_format"
	FieldIDColumn                = "id_column"
	FieldCandidateColumn         = "candidate_column"
	FieldTrainLabelColumn        = "train_label_column"
	FieldTestLabelColumn         = "test_label_column"
	FieldHumanScoreColumn        = "human_score_column"
	FieldSecondHumanScoreColumn  = "second_human_score_column"
	FieldLengthColumn            = "length_column"
	FieldFlagColumn              = "flag_column"
	FieldFlagColumnTest          = "flag_column_test"
	FieldExcludeZeroScores       = "exclude_zero_scores"
	FieldTrimMin                 = "trim_min"
	FieldTrimMax                 = "trim_max"
	FieldTrimTolerance           = "trim_tolerance"
	FieldScaleWith               = "scale_with"
	FieldPredictExpectedScores   = "predict_expected_scores"
	FieldSelectTransformations   = "select_transformations"
	FieldStandardizeFeatures     = "standardize_features"
	FieldTruncateOutliers        = "truncate_outliers"
	FieldUseScaledPredictions    = "use_scaled_predictions"
	FieldUseScaledPredictionsOld = "use_scaled_predictions_old"
	FieldUseScaledPredictionsNew = "use_scaled_predictions_new"
	FieldUseThumbnails           = "use_thumbnails"
	FieldUseTruncationThresholds = "use_truncation_thresholds"
	FieldSubgroups               = "subgroups"
	FieldMinNPerGroup            = "min_n_per_group"
	FieldMinItemsPerCandidate    = "min_items_per_candidate"
	FieldGeneralSections         = "general_sections"
	FieldSpecialSections         = "special_sections"
	FieldCustomSections          = "custom_sections"
	FieldSectionOrder            = "section_order"
	FieldSkllFixedParameters     = "skll_fixed_parameters"
	FieldSkllObjective           = "skll_objective"
	FieldSkllGridSearchJobs      = "skll_grid_search_jobs"
	FieldRaterErrorVariance      = "rater_error_variance"
	FieldFolds                   = "folds"
	FieldFoldsFile               = "folds_file"
	FieldBackgroundData          = "background_data"
	FieldExplainableData         = "explainable_data"
	FieldBackgroundKmeansSize    = "background_kmeans_size"
	FieldNumFeaturesToDisplay    = "num_features_to_display"
	FieldSampleRange             = "sample_range"
	FieldSampleSize              = "sample_size"
	FieldSampleIDs               = "sample_ids"
	FieldShowAutoCohorts         = "show_auto_cohorts"
	FieldUseWandb                = "use_wandb"
	FieldWandbProject            = "wandb_project"
	FieldWandbEntity             = "wandb_entity"
)
