package model_selection

// Splitter produces train/test folds over n sample indices.
type Splitter interface {
	Split(n int) []Fold
	GetNSplits(n int) int
}

// Fold represents a single train/test split
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// LeaveOneOut holds out each sample exactly once.
type LeaveOneOut struct{}

// GetNSplits returns the number of folds for n samples.
func (LeaveOneOut) GetNSplits(n int) int {
	if n < 2 {
		return 0
	}
	return n
}

// Split returns n folds; fold i tests sample i and trains on the other n-1
// samples in their original order. Fewer than two samples yield no folds.
func (l LeaveOneOut) Split(n int) []Fold {
	folds := make([]Fold, l.GetNSplits(n))
	for i := range folds {
		train := make([]int, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				train = append(train, j)
			}
		}
		folds[i] = Fold{TrainIndices: train, TestIndices: []int{i}}
	}
	return folds
}
