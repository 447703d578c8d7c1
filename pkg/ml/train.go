package ml

import (
	"errors"
	"math/rand"

	"github.com/nvetrov/extrema/pkg/dataset"
)

// Split shuffles and partitions a dataset into train and test subsets.
// The shuffle is deterministic for a given seed. Row alignment between
// features and targets is preserved.
func Split(d *dataset.Dataset, testSize float64, seed int64) (train, test *dataset.Dataset) {
	n := d.Len()
	idx := rand.New(rand.NewSource(seed)).Perm(n)

	nTest := int(float64(n) * testSize)
	testIdx, trainIdx := idx[:nTest], idx[nTest:]

	return subset(d, trainIdx), subset(d, testIdx)
}

func subset(d *dataset.Dataset, idx []int) *dataset.Dataset {
	s := &dataset.Dataset{
		FeatureNames: d.FeatureNames,
		TargetNames:  d.TargetNames,
		Features:     make([][]float64, len(idx)),
		Targets:      make([][]float64, len(idx)),
	}
	for i, j := range idx {
		s.Features[i] = d.Features[j]
		s.Targets[i] = d.Targets[j]
	}
	return s
}

// Train fits the regressor on a shuffled train split and reports metrics
// on the held-out test split. testSize is the test fraction (0.2 in the
// usual run); seed controls the shuffle.
func Train(d *dataset.Dataset, testSize float64, seed int64) (*LinearRegressor, Report, error) {
	if d.Len() == 0 {
		return nil, Report{}, errors.New("empty dataset")
	}

	trainSet, testSet := Split(d, testSize, seed)

	model := NewLinearRegressor()
	if err := model.Fit(trainSet.Features, trainSet.Targets); err != nil {
		return nil, Report{}, err
	}

	testF, testT := dropNonFinite(testSet.Features, testSet.Targets)
	if len(testF) == 0 {
		return model, Report{}, nil
	}

	pred, err := model.Predict(testF)
	if err != nil {
		return nil, Report{}, err
	}

	return model, Evaluate(testT, pred), nil
}
