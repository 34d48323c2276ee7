package configuration

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"rsmconfig/domain/core"
	"rsmconfig/domain/schema"
	"rsmconfig/internal/errors"
	"rsmconfig/ports"
)

// Validator applies presence, default and cross-field rules to a
// normalized mapping.
type Validator struct {
	caps   ports.ModelCapabilityPort
	logger *zap.Logger
}

// NewValidator creates a validator backed by the given capability catalog
func NewValidator(caps ports.ModelCapabilityPort, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{caps: caps, logger: logger}
}

// fieldView reads fields through the schema; fields outside it read as unset.
type fieldView struct {
	m *core.Mapping
	d *schema.Descriptor
}

func (v fieldView) get(field string) interface{} {
	if !v.d.Allows(field) {
		return nil
	}
	return v.m.GetOr(field, nil)
}

func (v fieldView) set(field string) bool { return core.IsSet(v.get(field)) }

func (v fieldView) text(field string) string {
	value := v.get(field)
	if value == nil {
		return ""
	}
	return core.ToText(value)
}

// Validate returns a new mapping that satisfies every invariant of a
// Configuration for ctx. The first failing rule aborts validation.
func (val *Validator) Validate(normalized *core.Mapping, ctx schema.Context) (*core.Mapping, error) {
	d, err := schema.Lookup(ctx)
	if err != nil {
		return nil, err
	}

	m := normalized.Clone()
	if m == nil {
		m = core.NewMapping()
	}

	for _, field := range d.Required() {
		if !m.Has(field) {
			return nil, errors.MissingRequiredField(field)
		}
	}

	for _, field := range d.Optional() {
		if !m.Has(field) {
			def, _ := d.Default(field)
			m.Set(field, def)
		}
	}

	for _, field := range m.Keys() {
		if !d.Allows(field) {
			return nil, errors.UnrecognizedField(field)
		}
	}

	view := fieldView{m: m, d: d}
	checks := []func(fieldView) error{
		checkIdentifier,
		checkFeatureExclusion,
		checkSubsetDependencies,
		checkCandidateDependency,
		val.checkObjective,
		val.checkFixedParameters,
		val.checkExpectedScores,
		val.checkTransformations,
		checkExperimentNames,
		checkSubgroupThresholds,
		checkCredentials,
	}
	for _, check := range checks {
		if err := check(view); err != nil {
			return nil, err
		}
	}

	out := core.NewMapping()
	for _, item := range m.Items() {
		if d.Allows(item.Key) {
			out.Set(item.Key, item.Value)
		}
	}
	return out, nil
}

func checkIdentifier(v fieldView) error {
	field := v.d.IDField()
	value := v.get(field)
	if value == nil {
		return errors.MissingRequiredField(field)
	}
	id := core.ToText(value)
	if utf8.RuneCountInString(id) > schema.MaxIdentifierLength {
		return errors.Newf(errors.CodeIdentifierTooLong,
			"%s is too long (must be <=%d characters)", field, schema.MaxIdentifierLength)
	}
	for _, r := range id {
		if unicode.IsSpace(r) {
			return errors.Newf(errors.CodeIdentifierContainsWhitespace,
				"%s cannot contain any spaces", field)
		}
	}
	return nil
}

func checkFeatureExclusion(v fieldView) error {
	if !v.set(schema.FieldFeatures) {
		return nil
	}
	for _, other := range []string{schema.FieldFeatureSubsetFile, schema.FieldFeatureSubset} {
		if v.set(other) {
			return errors.MutuallyExclusiveFields(schema.FieldFeatures, other)
		}
	}
	return nil
}

func checkSubsetDependencies(v fieldView) error {
	if v.set(schema.FieldFeatureSubsetFile) {
		return nil
	}
	if v.set(schema.FieldFeatureSubset) {
		return errors.MissingDependentField(
			"if you want to use feature subsets, you must specify a feature subset file")
	}
	if v.set(schema.FieldSign) {
		return errors.MissingDependentField(
			"if you want to specify the expected sign of correlation for each feature, " +
				"you must specify a feature subset file")
	}
	return nil
}

func checkCandidateDependency(v fieldView) error {
	if v.set(schema.FieldMinItemsPerCandidate) && !v.set(schema.FieldCandidateColumn) {
		return errors.MissingDependentField(
			"if you want to filter out candidates with responses to less than X items, " +
				"you need to specify the name of the column which contains candidate IDs")
	}
	return nil
}

func (val *Validator) checkObjective(v fieldView) error {
	if !v.set(schema.FieldSkllObjective) {
		return nil
	}
	model := v.text(schema.FieldModel)
	objective := v.text(schema.FieldSkllObjective)
	if !val.caps.SupportsObjective(model) {
		val.logger.Warn("custom objective specified for a model that does not support one; it will be ignored",
			zap.String("model", model),
			zap.String("objective", objective))
		return nil
	}
	if !val.caps.IsValidObjective(objective) {
		return errors.Newf(errors.CodeInvalidObjective,
			"invalid objective '%s'; choose a valid tuning objective", objective)
	}
	return nil
}

func (val *Validator) checkFixedParameters(v fieldView) error {
	if !v.set(schema.FieldSkllFixedParameters) {
		return nil
	}
	model := v.text(schema.FieldModel)
	if !val.caps.SupportsFixedParameters(model) {
		val.logger.Warn("fixed parameters specified for a model that does not accept them; they will be ignored",
			zap.String("model", model))
	}
	return nil
}

func (val *Validator) checkExpectedScores(v fieldView) error {
	if !v.d.Allows(schema.FieldModel) || !v.set(schema.FieldPredictExpectedScores) {
		return nil
	}
	model := v.text(schema.FieldModel)
	if !val.caps.SupportsProbabilities(model) {
		return errors.Newf(errors.CodeIncompatibleModelCapability,
			"%s does not support expected scores since it is not a probabilistic classifier", model)
	}
	return nil
}

func (val *Validator) checkTransformations(v fieldView) error {
	if !v.set(schema.FieldFeatures) || !v.set(schema.FieldSelectTransformations) {
		return nil
	}
	if _, isList := core.AsList(v.get(schema.FieldFeatures)); isList {
		return nil
	}
	val.logger.Warn("transformations and signs from the feature file will be overwritten by automatic selection",
		zap.String("features", v.text(schema.FieldFeatures)))
	return nil
}

func checkExperimentNames(v fieldView) error {
	if v.d.Context() != schema.ContextSummarize || !v.set(schema.FieldExperimentNames) {
		return nil
	}
	names := listLen(v.get(schema.FieldExperimentNames))
	dirs := listLen(v.get(schema.FieldExperimentDirs))
	if names != dirs {
		return errors.Newf(errors.CodeCountMismatch,
			"the number of experiment names (%d) must match the number of experiment directories (%d)",
			names, dirs)
	}
	return nil
}

func checkSubgroupThresholds(v fieldView) error {
	threshold := v.get(schema.FieldMinNPerGroup)
	if !core.IsSet(threshold) {
		return nil
	}

	subgroups, _ := core.AsList(v.get(schema.FieldSubgroups))
	if len(subgroups) == 0 {
		return errors.MissingDependentField(
			"you must specify a list of subgroups in the subgroups field if you want to use min_n_per_group")
	}
	groups := make([]string, len(subgroups))
	for i, g := range subgroups {
		groups[i] = core.ToText(g)
	}

	if byGroup, ok := core.AsMapping(threshold); ok {
		keys := byGroup.Keys()
		if !sameStrings(keys, groups) {
			return errors.Newf(errors.CodeSubgroupKeyMismatch,
				"the keys in min_n_per_group %v must match the subgroups %v", keys, groups)
		}
		v.m.Set(schema.FieldMinNPerGroup, byGroup)
		return nil
	}

	broadcast := core.NewMapping()
	for _, g := range groups {
		broadcast.Set(g, threshold)
	}
	v.m.Set(schema.FieldMinNPerGroup, broadcast)
	return nil
}

func checkCredentials(v fieldView) error {
	if !v.set(schema.FieldUseWandb) {
		return nil
	}
	if !v.set(schema.FieldWandbProject) || !v.set(schema.FieldWandbEntity) {
		return errors.Newf(errors.CodeIncompleteCredentials,
			"you must specify both %s and %s if you want to enable logging to W&B",
			schema.FieldWandbProject, schema.FieldWandbEntity)
	}
	return nil
}

func listLen(value interface{}) int {
	if list, ok := core.AsList(value); ok {
		return len(list)
	}
	if value == nil {
		return 0
	}
	return 1
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
