/*
Package model loads a pre-trained scaler and classifier from JSON and runs them.

The artifacts are plain JSON dumps of fitted scikit-learn estimators, produced by
scripts/export_sklearn.py from the pickled StandardScaler and RandomForestClassifier
(or LogisticRegression).  The scaler file holds:

	{
	  "feature_names": ["Pregnancies", "Glucose", ...],
	  "mean":  [...],   // StandardScaler.mean_
	  "scale": [...]    // StandardScaler.scale_
	}

A random forest holds one entry per estimator, copied from its tree_ arrays.  Leaves
have children_left == -1; value is the per-node class counts (or fractions):

	{
	  "kind": "random_forest",
	  "feature_names": [...],
	  "classes": [0, 1],
	  "trees": [{"children_left": [...], "children_right": [...],
	             "feature": [...], "threshold": [...], "value": [[...], ...]}]
	}

A logistic regression has "kind": "logistic_regression", "coef" (coef_[0]) and
"intercept" (intercept_[0]).

Either file may carry "sample": true.  The artifacts shipped in artifacts/ are
hand-written placeholders marked that way; the server logs a warning when it loads
one.  Predictions from them are not clinically meaningful.
*/
package model
