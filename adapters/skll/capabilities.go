package skll

import (
	"sort"

	"rsmconfig/ports"
)

// Catalog is a static description of the built-in linear models and the
// SKLL learners the pipeline can fit.
type Catalog struct {
	builtin       map[string]bool
	learners      map[string]bool
	probabilistic map[string]bool
	objectives    map[string]bool
}

var _ ports.ModelCapabilityPort = (*Catalog)(nil)

// builtinModels are fitted by the pipeline itself and take no tuning options.
var builtinModels = []string{
	"LinearRegression",
	"EqualWeightsLR",
	"ScoreWeightedLR",
	"RebalancedLR",
	"NNLR",
	"NNLRIterative",
	"LassoFixedLambdaThenNNLR",
	"LassoFixedLambdaThenLR",
	"PositiveLassoCVThenLR",
	"LassoFixedLambda",
	"PositiveLassoCV",
}

var learnerModels = []string{
	"AdaBoostClassifier", "AdaBoostRegressor",
	"BayesianRidge",
	"DecisionTreeClassifier", "DecisionTreeRegressor",
	"DummyClassifier", "DummyRegressor",
	"ElasticNet",
	"GradientBoostingClassifier", "GradientBoostingRegressor",
	"HuberRegressor",
	"KNeighborsClassifier", "KNeighborsRegressor",
	"Lars",
	"Lasso",
	"LinearSVC", "LinearSVR",
	"LogisticRegression",
	"MLPClassifier", "MLPRegressor",
	"MultinomialNB",
	"RANSACRegressor",
	"RandomForestClassifier", "RandomForestRegressor",
	"Ridge", "RidgeClassifier",
	"SGDClassifier", "SGDRegressor",
	"SVC", "SVR",
	"TheilSenRegressor",
}

// probabilisticModels expose class probabilities.
var probabilisticModels = []string{
	"AdaBoostClassifier",
	"DecisionTreeClassifier",
	"DummyClassifier",
	"GradientBoostingClassifier",
	"KNeighborsClassifier",
	"LogisticRegression",
	"MLPClassifier",
	"MultinomialNB",
	"RandomForestClassifier",
	"SVC",
}

var scorerNames = []string{
	"accuracy", "adjusted_mutual_info_score", "adjusted_rand_score",
	"average_precision", "balanced_accuracy", "completeness_score",
	"explained_variance", "f1", "f1_macro", "f1_micro", "f1_samples",
	"f1_weighted", "fowlkes_mallows_score", "homogeneity_score", "jaccard",
	"jaccard_macro", "jaccard_micro", "jaccard_samples", "jaccard_weighted",
	"matthews_corrcoef", "max_error", "mutual_info_score", "neg_brier_score",
	"neg_log_loss", "neg_mean_absolute_error",
	"neg_mean_absolute_percentage_error", "neg_mean_gamma_deviance",
	"neg_mean_poisson_deviance", "neg_mean_squared_error",
	"neg_mean_squared_log_error", "neg_median_absolute_error",
	"neg_negative_likelihood_ratio", "neg_root_mean_squared_error",
	"normalized_mutual_info_score", "positive_likelihood_ratio", "precision",
	"precision_macro", "precision_micro", "precision_samples",
	"precision_weighted", "r2", "rand_score", "recall", "recall_macro",
	"recall_micro", "recall_samples", "recall_weighted", "roc_auc",
	"roc_auc_ovo", "roc_auc_ovo_weighted", "roc_auc_ovr",
	"roc_auc_ovr_weighted", "top_k_accuracy", "v_measure_score",
}

// customMetrics are the extra objectives SKLL registers on top of the scorers.
var customMetrics = []string{
	"f05", "f05_score_macro", "f05_score_micro", "f05_score_weighted",
	"f1_score_least_frequent", "f1_score_macro", "f1_score_micro",
	"f1_score_weighted", "kendall_tau", "linear_weighted_kappa", "lwk",
	"lwk_off_by_one", "pearson", "quadratic_weighted_kappa", "qwk",
	"qwk_off_by_one", "spearman", "unweighted_kappa", "uwk", "uwk_off_by_one",
}

// NewCatalog builds the default catalog
func NewCatalog() *Catalog {
	return &Catalog{
		builtin:       toSet(builtinModels),
		learners:      toSet(learnerModels),
		probabilistic: toSet(probabilisticModels),
		objectives:    toSet(append(append([]string(nil), scorerNames...), customMetrics...)),
	}
}

// IsBuiltin reports whether model is one of the pipeline's own linear models
func (c *Catalog) IsBuiltin(model string) bool { return c.builtin[model] }

// IsLearner reports whether model names a SKLL learner
func (c *Catalog) IsLearner(model string) bool { return c.learners[model] }

func (c *Catalog) SupportsObjective(model string) bool       { return c.learners[model] }
func (c *Catalog) SupportsFixedParameters(model string) bool { return c.learners[model] }

// SupportsProbabilities treats anything that is not a SKLL learner as a
// plain linear regression, which has no probabilities.
func (c *Catalog) SupportsProbabilities(model string) bool {
	if !c.learners[model] {
		return false
	}
	return c.probabilistic[model]
}

func (c *Catalog) IsValidObjective(name string) bool { return c.objectives[name] }

func (c *Catalog) Objectives() []string {
	out := make([]string, 0, len(c.objectives))
	for name := range c.objectives {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func toSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}
