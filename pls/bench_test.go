// SPDX-License-Identifier: MIT

package pls_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/chemometrics/folds"
	"github.com/katalvlaran/chemometrics/pls"
)

// BenchmarkFit measures a three-component fit on 200×20 data.
func BenchmarkFit(b *testing.B) {
	X, Y := calibration(b, 200, 20, 1)
	m, err := pls.New(3)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err = m.Fit(X, Y); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPredict measures prediction with a fitted model.
func BenchmarkPredict(b *testing.B) {
	X, Y := calibration(b, 200, 20, 2)
	m, err := pls.New(3)
	if err != nil {
		b.Fatal(err)
	}
	if err = m.Fit(X, Y); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = m.Predict(X); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCrossValidate compares sequential and parallel 7-fold cross-validation.
func BenchmarkCrossValidate(b *testing.B) {
	X, Y := calibration(b, 200, 20, 3)
	m, err := pls.New(3)
	if err != nil {
		b.Fatal(err)
	}
	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := m.CrossValidate(context.Background(), X, Y, folds.NewKFold(7), pls.WithWorkers(workers)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
