// Package gaussnb provides a Gaussian Naive Bayes classifier for Go, together
// with the data loading, splitting and evaluation pieces needed to use it on
// delimited numeric data such as the UCI iris data set.
//
// Every class is modelled as a product of independent normal distributions,
// one per attribute. Training estimates the mean and the unbiased variance of
// each attribute per class together with the class prior; prediction returns
// the normalized posterior of every class.
//
// # Installation
//
//	go get github.com/YuminosukeSato/gaussnb
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
//	)
//
//	func main() {
//	    X := [][]float64{{1.0, 2.1}, {1.2, 1.9}, {5.0, 6.2}, {5.3, 5.8}}
//	    y := []string{"small", "small", "large", "large"}
//
//	    model, err := naive_bayes.Train(X, y)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    proba, err := model.Predict([]float64{1.1, 2.0})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(proba) // map[large:... small:...]
//	}
//
// # Packages
//
//   - sklearn/naive_bayes: GaussianModel and the GaussianNB estimator
//   - sklearn/model_selection: seeded train/test split
//   - datasets: delimited file loading
//   - metrics: accuracy and the confusion matrix
//   - core/model: estimator interfaces, weights and persistence
//   - core/parallel: parallel processing utilities
//   - pkg/errors, pkg/log: error types and structured logging
//
// The gaussnb command (cmd/gaussnb) wraps these packages: evaluate prints the
// confusion matrix of a seeded split, train and predict persist and reuse a
// model, plot draws the fitted per-class densities of one attribute.
//
// # Performance
//
// Batch prediction is parallelized automatically once the number of rows
// reaches the parallel threshold (1000 by default, see WithParallelThreshold).
// A trained GaussianModel is immutable and safe for concurrent use.
//
// # License
//
// gaussnb is released under the MIT License.
package gaussnb
