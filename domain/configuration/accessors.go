package configuration

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"rsmconfig/domain/core"
	"rsmconfig/domain/schema"
	"rsmconfig/internal/errors"
)

// Partition names the data a flag filter is applied to
type Partition string

const (
	PartitionTrain   Partition = "train"
	PartitionTest    Partition = "test"
	PartitionBoth    Partition = "both"
	PartitionUnknown Partition = "unknown"
)

var partitionUsage = map[Partition]string{
	PartitionTrain:   "training",
	PartitionTest:    "evaluating",
	PartitionBoth:    "training and evaluating",
	PartitionUnknown: "training and/or evaluating",
}

// ExcludeListwise reports whether candidates are filtered by item count
func (c *Configuration) ExcludeListwise() bool {
	return core.IsSet(c.GetOr(schema.FieldMinItemsPerCandidate, nil))
}

// FlagFilters resolves a flag filter field into column -> accepted values.
// Scalar values are wrapped in a one-element list.
func (c *Configuration) FlagFilters(field string, partition Partition) (map[string][]interface{}, error) {
	usage, ok := partitionUsage[partition]
	if !ok {
		return nil, errors.Newf(errors.CodeUnknownPartition,
			"unknown value for partition: %s; must be one of train, test, both, unknown", partition)
	}
	if field == schema.FieldFlagColumnTest && (partition == PartitionTrain || partition == PartitionBoth) {
		return nil, errors.Newf(errors.CodePartitionMismatch,
			"conditions specified in '%s' can only be applied to the evaluation partition", field)
	}

	out := make(map[string][]interface{})
	raw := c.GetOr(field, nil)
	if !core.IsSet(raw) {
		return out, nil
	}
	spec, ok := core.AsMapping(raw)
	if !ok {
		return nil, errors.Newf(errors.CodeInvalidFilterSpec,
			"'%s' must be a mapping of column names to accepted values", field)
	}

	for _, item := range spec.Items() {
		if values, isList := core.AsList(item.Value); isList {
			out[item.Key] = values
			c.logger.Info("flag filter applied",
				zap.String("column", item.Key),
				zap.Any("values", values),
				zap.String("usage", usage))
			continue
		}
		out[item.Key] = []interface{}{item.Value}
		c.logger.Warn("flag filter value converted to a list",
			zap.String("column", item.Key),
			zap.Any("value", item.Value),
			zap.String("usage", usage))
	}
	return out, nil
}

// TrimBounds holds the optional trimming range and tolerance
type TrimBounds struct {
	Min       *float64
	Max       *float64
	Tolerance *float64
}

// TrimBounds coerces trim_min, trim_max and trim_tolerance to numbers
func (c *Configuration) TrimBounds() (TrimBounds, error) {
	var bounds TrimBounds
	targets := []struct {
		field string
		dst   **float64
	}{
		{schema.FieldTrimMin, &bounds.Min},
		{schema.FieldTrimMax, &bounds.Max},
		{schema.FieldTrimTolerance, &bounds.Tolerance},
	}
	for _, t := range targets {
		f, err := c.optionalFloat(t.field)
		if err != nil {
			return TrimBounds{}, err
		}
		*t.dst = f
	}
	return bounds, nil
}

// RaterErrorVariance returns rater_error_variance as a number, if set
func (c *Configuration) RaterErrorVariance() (*float64, error) {
	return c.optionalFloat(schema.FieldRaterErrorVariance)
}

func (c *Configuration) optionalFloat(field string) (*float64, error) {
	v := c.GetOr(field, nil)
	if v == nil {
		return nil, nil
	}
	f, err := core.ToFloat(v)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidNumericValue,
			errors.Wrapf(err, "invalid value for %s", field))
	}
	return &f, nil
}

// DefaultStringColumns lists the columns a tabular reader must keep as text
func (c *Configuration) DefaultStringColumns() []string {
	var candidates []interface{}
	candidates = append(candidates, c.GetOr(schema.FieldIDColumn, nil))
	candidates = append(candidates, c.GetOr(schema.FieldCandidateColumn, nil))
	if groups, ok := core.AsList(c.GetOr(schema.FieldSubgroups, nil)); ok {
		candidates = append(candidates, groups...)
	}

	seen := make(map[string]bool)
	var out []string
	for _, v := range candidates {
		if !core.IsSet(v) {
			continue
		}
		name := core.ToText(v)
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// NamesAndPaths pairs display names with the values of the given keys,
// skipping unset keys and a list-valued features field.
func (c *Configuration) NamesAndPaths(keys, names []string) ([]string, []interface{}, error) {
	if len(keys) != len(names) {
		return nil, nil, errors.Newf(errors.CodeCountMismatch,
			"got %d keys but %d names", len(keys), len(names))
	}
	if dups := duplicates(keys); len(dups) > 0 {
		return nil, nil, errors.Newf(errors.CodeDuplicateKey,
			"keys must be unique; found duplicates: %s", strings.Join(dups, ", "))
	}
	if dups := duplicates(names); len(dups) > 0 {
		return nil, nil, errors.Newf(errors.CodeDuplicateName,
			"names must be unique; found duplicates: %s", strings.Join(dups, ", "))
	}

	var outNames []string
	var outPaths []interface{}
	for i, key := range keys {
		value := c.GetOr(key, nil)
		if key == schema.FieldFeatures {
			if _, isList := core.AsList(value); isList {
				continue
			}
		}
		if value == nil {
			continue
		}
		outNames = append(outNames, names[i])
		outPaths = append(outPaths, value)
	}
	return outNames, outPaths, nil
}

func duplicates(values []string) []string {
	counts := make(map[string]int, len(values))
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	var out []string
	for _, v := range order {
		if counts[v] > 1 {
			out = append(out, v)
		}
	}
	return out
}

var rangePattern = regexp.MustCompile(`^\s*([0-9]+)\s*-\s*([0-9]+)\s*$`)

// SampleRange parses sample_range ("start-end") for explanations
func (c *Configuration) SampleRange() (start, end int, ok bool, err error) {
	raw := c.GetOr(schema.FieldSampleRange, nil)
	if raw == nil {
		return 0, 0, false, nil
	}
	start, end, err = ParseRange(core.ToText(raw))
	if err != nil {
		return 0, 0, false, err
	}
	return start, end, true, nil
}

// ParseRange parses "start-end" where 0 <= start < end
func ParseRange(s string) (int, int, error) {
	match := rangePattern.FindStringSubmatch(s)
	if match == nil {
		return 0, 0, errors.Newf(errors.CodeInvalidRange, "invalid value '%s' specified for range", s)
	}
	start, err1 := strconv.Atoi(match[1])
	end, err2 := strconv.Atoi(match[2])
	if err1 != nil || err2 != nil || start >= end {
		return 0, 0, errors.Newf(errors.CodeInvalidRange, "invalid value '%s' specified for range", s)
	}
	return start, end, nil
}

// ResolvePath returns the value of key as a path, joined onto the
// reference directory when it is relative.
func (c *Configuration) ResolvePath(key string) (string, bool) {
	v := c.GetOr(key, nil)
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	if filepath.IsAbs(s) || c.configDir == "" {
		return s, true
	}
	return filepath.Join(c.configDir, s), true
}

// Fingerprint hashes the canonical form of the configuration
func (c *Configuration) Fingerprint() (core.ConfigHash, error) {
	canonical, err := c.Canonical()
	if err != nil {
		return "", err
	}
	return core.NewConfigHash(canonical), nil
}
