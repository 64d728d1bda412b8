package main

import (
	"math"
	"math/rand"
)

// noiseField is 2D simplex noise over a seed-shuffled permutation table.
type noiseField struct {
	perm [512]uint8
}

func newNoiseField(seed int64) *noiseField {
	var tbl [256]uint8
	for i := range tbl {
		tbl[i] = uint8(i)
	}
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(tbl), func(i, j int) { tbl[i], tbl[j] = tbl[j], tbl[i] })

	nf := &noiseField{}
	for i := range nf.perm {
		nf.perm[i] = tbl[i&255]
	}
	return nf
}

// 2D simplex skew factors.
const (
	skew2   = 0.3660254037844386  // (sqrt(3)-1)/2
	unskew2 = 0.21132486540518713 // (3-sqrt(3))/6
)

// gradDot picks one of 8 gradient directions from the hash low bits and dots
// it with (x, y).
func gradDot(hash uint8, x, y float64) float64 {
	u, v := x, y
	if hash&4 != 0 {
		u, v = y, x
	}
	if hash&1 != 0 {
		u = -u
	}
	if hash&2 != 0 {
		v = -v
	}
	return u + v
}

// at returns raw simplex noise at (x, y), in [-1, 1].
func (nf *noiseField) at(x, y float64) float64 {
	// Skew into the triangular lattice and find the cell origin.
	s := (x + y) * skew2
	i, j := math.Floor(x+s), math.Floor(y+s)
	t := (i + j) * unskew2

	x0, y0 := x-(i-t), y-(j-t)
	di, dj := 0, 1 // upper triangle
	if x0 > y0 {
		di, dj = 1, 0 // lower triangle
	}
	x1, y1 := x0-float64(di)+unskew2, y0-float64(dj)+unskew2
	x2, y2 := x0-1+2*unskew2, y0-1+2*unskew2

	ii, jj := int(i)&255, int(j)&255

	contrib := func(px, py float64, hash uint8) float64 {
		f := 0.5 - px*px - py*py
		if f <= 0 {
			return 0
		}
		f *= f
		return f * f * gradDot(hash, px, py)
	}

	n := contrib(x0, y0, nf.perm[ii+int(nf.perm[jj])])
	n += contrib(x1, y1, nf.perm[ii+di+int(nf.perm[jj+dj])])
	n += contrib(x2, y2, nf.perm[ii+1+int(nf.perm[jj+1])])
	return 70 * n
}

// fractalField layers octaves of one noise field and normalizes to [0, 1].
type fractalField struct {
	noise       *noiseField
	freq        float64
	octaves     int
	lacunarity  float64
	persistence float64
}

func (f fractalField) at(x, y float64) float64 {
	total, amp, norm := 0.0, 1.0, 0.0
	freq := f.freq
	for o := 0; o < f.octaves; o++ {
		total += f.noise.at(x*freq, y*freq) * amp
		norm += amp
		freq *= f.lacunarity
		amp *= f.persistence
	}
	return (total/norm + 1) / 2
}
