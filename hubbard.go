package main

import (
	"github.com/pkg/errors"
)

// HubbardParams describes a Fermi-Hubbard model on an XDim × YDim grid.
// Sites are numbered row-major. In the spinful model the spin-up and
// spin-down orbitals of site i are modes 2i and 2i+1.
type HubbardParams struct {
	XDim              int     `yaml:"x"`
	YDim              int     `yaml:"y"`
	Tunneling         float64 `yaml:"tunneling"`
	Coulomb           float64 `yaml:"coulomb"`
	ChemicalPotential float64 `yaml:"chemicalPotential"`
	Spinless          bool    `yaml:"spinless"`
	Periodic          bool    `yaml:"periodic"`
}

// Validate checks the lattice dimensions.
func (p HubbardParams) Validate() error {
	if p.XDim < 1 || p.YDim < 1 {
		return errors.Errorf("hubbard: lattice must be at least 1x1, got %dx%d", p.XDim, p.YDim)
	}
	return nil
}

func (p HubbardParams) numSites() int { return p.XDim * p.YDim }

// NumModes returns the number of fermionic modes, which is also the number of
// qubits of the encoded Hamiltonian.
func (p HubbardParams) NumModes() int {
	if p.Spinless {
		return p.numSites()
	}
	return 2 * p.numSites()
}

func (p HubbardParams) rightNeighbor(site int) (int, bool) {
	if p.XDim == 1 {
		return 0, false
	}
	if (site+1)%p.XDim == 0 {
		if !p.Periodic {
			return 0, false
		}
		return site + 1 - p.XDim, true
	}
	return site + 1, true
}

func (p HubbardParams) bottomNeighbor(site int) (int, bool) {
	if p.YDim == 1 {
		return 0, false
	}
	if site+p.XDim+1 > p.numSites() {
		if !p.Periodic {
			return 0, false
		}
		return site + p.XDim - p.numSites(), true
	}
	return site + p.XDim, true
}

// edges lists each nearest-neighbour bond once. On a periodic lattice of
// width or height 2 the wrap-around bond coincides with the direct one and is
// skipped.
func (p HubbardParams) edges() [][2]int {
	var out [][2]int
	for site := 0; site < p.numSites(); site++ {
		if right, ok := p.rightNeighbor(site); ok && !(p.XDim == 2 && p.Periodic && site%2 == 1) {
			out = append(out, [2]int{site, right})
		}
		if bottom, ok := p.bottomNeighbor(site); ok && !(p.YDim == 2 && p.Periodic && site >= p.XDim) {
			out = append(out, [2]int{site, bottom})
		}
	}
	return out
}

// jordanWigner returns the Pauli form of the fermionic ladder operator on
// mode: a†_j = ½(X_j - iY_j)·Z_{j-1}…Z_0 when raise is true, otherwise a_j.
func jordanWigner(mode int, raise bool) PauliSum {
	sign := complex(0, 0.5)
	if raise {
		sign = -sign
	}
	zs := make([]PauliOp, 0, mode+1)
	for q := 0; q < mode; q++ {
		zs = append(zs, PauliOp{Qubit: q, Axis: 'Z'})
	}
	x := NewPauliTerm(0.5, append(zs, PauliOp{Qubit: mode, Axis: 'X'})...)
	y := NewPauliTerm(sign, append(zs, PauliOp{Qubit: mode, Axis: 'Y'})...)
	return NewPauliSum(x, y)
}

func numberOperator(mode int) PauliSum {
	return jordanWigner(mode, true).Mul(jordanWigner(mode, false))
}

func hoppingTerm(i, j int, coefficient float64) PauliSum {
	forward := jordanWigner(i, true).Mul(jordanWigner(j, false))
	backward := jordanWigner(j, true).Mul(jordanWigner(i, false))
	return forward.Add(backward).Scale(complex(coefficient, 0))
}

// FermiHubbard builds the Jordan-Wigner encoded Hamiltonian
//
//	H = -t Σ_<ij>,σ (a†_iσ a_jσ + h.c.) + U Σ_i n_i↑ n_i↓ - μ Σ_iσ n_iσ
//
// For the spinless model the interaction acts between neighbouring sites,
// U Σ_<ij> n_i n_j.
func FermiHubbard(p HubbardParams) (PauliSum, error) {
	if err := p.Validate(); err != nil {
		return PauliSum{}, err
	}

	var h PauliSum
	spins := []int{0, 1}
	mode := func(site, spin int) int { return 2*site + spin }
	if p.Spinless {
		spins = []int{0}
		mode = func(site, _ int) int { return site }
	}

	for _, e := range p.edges() {
		for _, spin := range spins {
			h = h.Add(hoppingTerm(mode(e[0], spin), mode(e[1], spin), -p.Tunneling))
		}
		if p.Spinless {
			h = h.Add(numberOperator(e[0]).Mul(numberOperator(e[1])).Scale(complex(p.Coulomb, 0)))
		}
	}

	for site := 0; site < p.numSites(); site++ {
		if !p.Spinless {
			interaction := numberOperator(mode(site, 0)).Mul(numberOperator(mode(site, 1)))
			h = h.Add(interaction.Scale(complex(p.Coulomb, 0)))
		}
		for _, spin := range spins {
			h = h.Add(numberOperator(mode(site, spin)).Scale(complex(-p.ChemicalPotential, 0)))
		}
	}

	return h.Compress(defaultCompressTolerance), nil
}
