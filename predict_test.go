package mnistknn

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/mnistknn/dataset"
	"github.com/hupe1980/mnistknn/distance"
	"github.com/hupe1980/mnistknn/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func votes(classes ...int) []Neighbor {
	ns := make([]Neighbor, len(classes))
	for i, c := range classes {
		ns[i] = Neighbor{Index: i, Sample: &dataset.Sample{ClassIndex: c}}
	}
	return ns
}

func TestVote(t *testing.T) {
	tests := []struct {
		name      string
		neighbors []Neighbor
		classes   int
		want      int
		wantErr   error
	}{
		{name: "majority", neighbors: votes(2, 0, 2), classes: 3, want: 2},
		{name: "single neighbor", neighbors: votes(1), classes: 2, want: 1},
		{name: "class zero wins", neighbors: votes(0, 0, 1), classes: 2, want: 0},
		{name: "tie goes to lowest index", neighbors: votes(3, 1, 3, 1), classes: 4, want: 1},
		{name: "max after a dip", neighbors: votes(0, 0, 0, 2, 2), classes: 3, want: 0},
		{name: "later strict max", neighbors: votes(0, 2, 2, 2), classes: 3, want: 2},
		{name: "out of range ignored", neighbors: votes(5, -1, 1), classes: 2, want: 1},
		{name: "no votes", neighbors: nil, classes: 2, wantErr: ErrPredictionUndetermined},
		{name: "all out of range", neighbors: votes(7, 8), classes: 2, wantErr: ErrPredictionUndetermined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Vote(tt.neighbors, tt.classes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.Less(t, got, tt.classes)
		})
	}

	_, err := Vote(votes(0), 0)
	var ic *ErrInvalidConfiguration
	assert.True(t, errors.As(err, &ic))
}

func splitClustered(t *testing.T, perLabel int) (*dataset.Dataset, *dataset.Partitions) {
	t.Helper()

	rng := testutil.NewRNG(4711)
	ds, err := dataset.New(rng.ClusteredSamples(perLabel, []uint8{5, 0, 4, 1, 9}, 49, 12))
	require.NoError(t, err)

	opts := dataset.DefaultSplitOptions()
	opts.Seed = 42
	parts, err := ds.Split(opts)
	require.NoError(t, err)
	return ds, parts
}

func TestFitPredict(t *testing.T) {
	ds, parts := splitClustered(t, 40)

	cfg := Config{K: 3, NumClasses: ds.NumClasses(), Metric: distance.MetricEuclidean}
	metrics := &BasicMetricsCollector{}

	clf, err := cfg.Bind(parts.Training, parts.Testing, parts.Validation,
		WithConcurrency(4),
		WithMetricsCollector(metrics),
	)
	require.NoError(t, err)

	predictions, err := clf.FitPredict(context.Background())
	require.NoError(t, err)
	require.Len(t, predictions, parts.Testing.Len())

	// Parallel results equal one-by-one prediction in testing order.
	for i, p := range predictions {
		want, err := clf.Predict(context.Background(), parts.Testing.At(i).Features)
		require.NoError(t, err)
		assert.Equal(t, want, p, "position %d", i)
	}

	acc, err := clf.Accuracy(predictions)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc, "well separated clusters classify perfectly")

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BatchCount)
	assert.Equal(t, int64(parts.Testing.Len()), stats.BatchQueries)
	assert.Zero(t, stats.BatchFailed)
	assert.Equal(t, int64(2*parts.Testing.Len()), stats.QueryCount)
	assert.Equal(t, 1.0, stats.LastAccuracies["testing"])
}

func TestFitPredict_DoesNotMutateTraining(t *testing.T) {
	ds, parts := splitClustered(t, 20)

	before := make([]dataset.Sample, parts.Training.Len())
	for i := range before {
		s := *parts.Training.At(i)
		s.Features = append([]uint8(nil), s.Features...)
		before[i] = s
	}

	clf, err := New(Config{K: 5, NumClasses: ds.NumClasses(), Metric: distance.MetricManhattan},
		Data{Training: parts.Training, Testing: parts.Testing})
	require.NoError(t, err)

	_, err = clf.FitPredict(context.Background())
	require.NoError(t, err)

	for i := range before {
		assert.Equal(t, before[i], *parts.Training.At(i))
	}
}

func TestRunOn_PartialFailure(t *testing.T) {
	training := gridDataset(t, []uint8{0, 10, 20}, []uint8{0, 1, 1})
	clf, err := New(Config{K: 2, NumClasses: 2, Metric: distance.MetricEuclidean}, Data{Training: training})
	require.NoError(t, err)

	// Query 0 at 1 draws one vote per class and resolves to class 0.
	// Query 1 is served with the wrong dimension.
	queries, err := dataset.New([]dataset.Sample{
		{Features: []uint8{1}},
		{Features: []uint8{19}},
	})
	require.NoError(t, err)
	bad := badView{View: queries, badAt: 1}

	predictions, err := clf.RunOn(context.Background(), bad)
	require.Error(t, err)
	require.Len(t, predictions, 2)
	assert.Equal(t, 0, predictions[0])
	assert.Equal(t, Unpredicted, predictions[1])

	var qe *ErrQuery
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, 1, qe.Position)

	var dm *distance.ErrDimensionMismatch
	assert.True(t, errors.As(err, &dm))
}

func TestRunOn_Canceled(t *testing.T) {
	_, parts := splitClustered(t, 10)
	clf, err := New(Config{K: 1, NumClasses: 5, Metric: distance.MetricEuclidean},
		Data{Training: parts.Training, Testing: parts.Testing})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	predictions, err := clf.FitPredict(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, predictions)
}

func TestFitPredict_EmptyTesting(t *testing.T) {
	training := gridDataset(t, []uint8{0, 1}, []uint8{0, 1})
	clf, err := New(Config{K: 1, NumClasses: 2, Metric: distance.MetricEuclidean}, Data{Training: training})
	require.NoError(t, err)

	predictions, err := clf.FitPredict(context.Background())
	require.NoError(t, err)
	assert.Empty(t, predictions)

	_, err = clf.Accuracy(predictions)
	assert.ErrorIs(t, err, ErrEmptyTestSet)
}

// badView replaces the features of one sample with a vector of the wrong length.
type badView struct {
	dataset.View
	badAt int
}

func (v badView) At(i int) *dataset.Sample {
	if i == v.badAt {
		return &dataset.Sample{Features: []uint8{1, 2}}
	}
	return v.View.At(i)
}
