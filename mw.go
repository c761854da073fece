package algosht

import m "github.com/cwbudde/algo-sht/internal/math"

// mwScratch is the per-worker buffer set of one MW order.
type mwScratch struct {
	ext  []complex128 // column extended to 2L-1 colatitudes on [0, 2π)
	spec []complex128
	pad  []complex128 // zero-padded colatitude spectrum
	fine []complex128 // 4L-3 upsampled colatitudes
}

func (p *Plan) newMWScratch() *mwScratch {
	return &mwScratch{
		ext:  make([]complex128, p.nphi),
		spec: make([]complex128, p.nphi),
		pad:  make([]complex128, mwFineLen(p.bandLimit)),
		fine: make([]complex128, mwFineLen(p.bandLimit)),
	}
}

// mwColumn returns order mm of the ring spectra resampled onto the 2L-1
// fine colatitudes of (0, π].
//
// The L-1 rings and the pole form a column on half of an equiangular grid
// of 2L-1 points on [0, 2π). The other half follows from
// G_m(2π-θ) = (-1)^{m+s} G_m(θ). The extended column is band-limited to
// |m'| ≤ L-1 in colatitude, so zero-padding its spectrum to 4L-3 points
// interpolates it exactly.
func (p *Plan) mwColumn(spec *ringSpectra, mm, spin int, pole complex128, sc *mwScratch) ([]complex128, error) {
	L := p.bandLimit
	n := p.nphi
	nf := len(sc.fine)

	for t := range L - 1 {
		sc.ext[t] = spec.at(t, mm)
	}

	sc.ext[L-1] = 0
	if mm == spin {
		sc.ext[L-1] = pole
	}

	parity := complex(m.MinusOnePow(mm+spin), 0)
	for t := L; t < n; t++ {
		sc.ext[t] = parity * sc.ext[2*L-2-t]
	}

	if err := p.ringFFT.Forward(sc.spec, sc.ext); err != nil {
		return nil, wrapBackend("mwColumn", p.backend, n, err)
	}

	clear(sc.pad)

	for mp := -(L - 1); mp <= L-1; mp++ {
		sc.pad[modIndex(mp, nf)] = sc.spec[modIndex(mp, n)] * p.finePhase[mp+L-1]
	}

	if err := p.fineFFT.Inverse(sc.fine, sc.pad); err != nil {
		return nil, wrapBackend("mwColumn", p.backend, nf, err)
	}

	return sc.fine[:2*L-1], nil
}
