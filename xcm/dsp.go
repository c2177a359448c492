// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package xcm

import (
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Band edges of the diagnostic ECG band, in Hz.
const (
	lowCutHz  = 0.5
	highCutHz = 40.0
)

// Savitzky-Golay smoothing parameters used ahead of peak detection.
const (
	savgolWindow = 21
	savgolOrder  = 3
)

var savgolWeights = savgolCoeffs(savgolWindow, savgolOrder)

// Preprocess applies a zero-phase band-pass over the diagnostic ECG band
// and removes the residual mean. The filter runs in the frequency domain,
// which keeps the phase response flat without a forward/backward IIR pass.
func Preprocess(signal []float64, fs float64) []float64 {
	filtered := bandpass(signal, fs, lowCutHz, highCutHz)
	if len(filtered) == 0 {
		return filtered
	}
	mean := stat.Mean(filtered, nil)
	floats.AddConst(-mean, filtered)
	return filtered
}

// bandpass zeroes every Fourier coefficient outside [low, high] Hz and
// reconstructs the sequence.
func bandpass(signal []float64, fs, low, high float64) []float64 {
	n := len(signal)
	if n == 0 {
		return nil
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, signal)
	for i := range coeffs {
		f := fft.Freq(i) * fs
		if f < low || f > high {
			coeffs[i] = 0
		}
	}

	out := fft.Sequence(nil, coeffs)
	// Coefficients followed by Sequence scales by n.
	floats.Scale(1/float64(n), out)
	return out
}

// DetectRPeaks finds R-wave candidates in a preprocessed signal. The
// smoothed signal is thresholded at mean + 0.5 stddev, local maxima closer
// than 0.6 s to a taller candidate are suppressed, and beats implying an
// RR interval outside 400-1200 ms (or inside a 0.3 s refractory window)
// are rejected. The first candidate is always kept.
func DetectRPeaks(signal []float64, fs float64) []int {
	if len(signal) < 3 {
		return nil
	}

	sm := smooth(signal, savgolWeights)
	threshold := stat.Mean(sm, nil) + 0.5*stat.StdDev(sm, nil)
	minDistance := int(0.6 * fs)
	refractory := int(0.3 * fs)

	var candidates []int
	for i := 1; i < len(sm)-1; i++ {
		if sm[i] < threshold || sm[i] <= sm[i-1] || sm[i] <= sm[i+1] {
			continue
		}
		if n := len(candidates); n > 0 && i-candidates[n-1] < minDistance {
			if sm[i] > sm[candidates[n-1]] {
				candidates[n-1] = i
			}
			continue
		}
		candidates = append(candidates, i)
	}

	var peaks []int
	for i, p := range candidates {
		if i > 0 {
			rrMillis := float64(p-candidates[i-1]) / fs * 1000
			if rrMillis <= 400 || rrMillis >= 1200 {
				continue
			}
			if p-candidates[i-1] < refractory {
				continue
			}
		}
		peaks = append(peaks, p)
	}
	return peaks
}

// smooth convolves the signal with the Savitzky-Golay window, clamping
// indices at the edges.
func smooth(signal, weights []float64) []float64 {
	half := len(weights) / 2
	out := make([]float64, len(signal))
	for i := range signal {
		var s float64
		for k, w := range weights {
			idx := i + k - half
			if idx < 0 {
				idx = 0
			}
			if idx >= len(signal) {
				idx = len(signal) - 1
			}
			s += w * signal[idx]
		}
		out[i] = s
	}
	return out
}

// savgolCoeffs returns the central Savitzky-Golay smoothing weights for an
// odd window and polynomial order, obtained from the least-squares
// projection onto the polynomial basis: the weights are A·x where x solves
// (AᵀA)x = e₀.
func savgolCoeffs(window, order int) []float64 {
	half := window / 2

	a := mat.NewDense(window, order+1, nil)
	for i := 0; i < window; i++ {
		x := float64(i - half)
		p := 1.0
		for j := 0; j <= order; j++ {
			a.Set(i, j, p)
			p *= x
		}
	}

	var ata mat.Dense
	ata.Mul(a.T(), a)

	e0 := mat.NewVecDense(order+1, nil)
	e0.SetVec(0, 1)

	var x mat.VecDense
	if err := x.SolveVec(&ata, e0); err != nil {
		// Degenerate basis; fall back to a plain moving average.
		weights := make([]float64, window)
		for i := range weights {
			weights[i] = 1 / float64(window)
		}
		return weights
	}

	weights := make([]float64, window)
	for i := 0; i < window; i++ {
		var s float64
		for j := 0; j <= order; j++ {
			s += a.At(i, j) * x.AtVec(j)
		}
		weights[i] = s
	}
	return weights
}
