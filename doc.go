// Package colorbayes classifies images into two classes by the colour
// distribution of their pixels.
//
// A BayesModel learns one colour histogram per class from training images,
// applies Bayes' rule to every pixel of a new image and reports the mean
// posterior probability that the image belongs to the positive class.
// Typical uses are skin detection and other colour-driven filters.
//
// # Installation
//
//	go get github.com/YuminosukeSato/colorbayes
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/colorbayes/dataset"
//	    "github.com/YuminosukeSato/colorbayes/sklearn/naive_bayes"
//	)
//
//	func main() {
//	    model, err := naive_bayes.NewBayesModel(16)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := model.TrainFromLists(dataset.NewLoader(), "train_pos.txt", "train_neg.txt"); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    img, err := dataset.NewLoader().Open("sample.bmp")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    p, err := model.Predict(img)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("Posterior probability of sample: %.2f %%\n", p*100)
//	}
//
// # Packages
//
//   - core/histogram: NDHistogram, the dense 1D/3D frequency table
//   - core/model: one-way training state and gob persistence
//   - core/parallel: ordered fan-out over CPU cores
//   - dataset: image abstraction, list files and decoding
//   - sklearn/naive_bayes: BayesModel
//   - sklearn/model_selection: Evaluator and leave-one-out calibration
//   - metrics: confusion counts, threshold sweep, AUC and ROC plots
//   - pkg/errors, pkg/log: structured errors and zerolog-backed logging
//
// # Threshold selection
//
// The decision threshold is chosen from the table printed by
// `colorbayes --analyze`, which lists the false and true positive rates of
// leave-one-out scores on the training set for thresholds 0.00 to 1.00.
//
// # License
//
// colorbayes is released under the MIT License.
package colorbayes
