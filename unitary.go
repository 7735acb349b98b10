package main

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
)

// Matrix2 is a single-qubit operator in the computational basis.
type Matrix2 [2][2]Complex

// Identity2 is the 2x2 identity.
var Identity2 = Matrix2{{1, 0}, {0, 1}}

// Mul returns a·b.
func (a Matrix2) Mul(b Matrix2) Matrix2 {
	var out Matrix2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j]
		}
	}
	return out
}

// Dagger returns the conjugate transpose.
func (a Matrix2) Dagger() Matrix2 {
	return Matrix2{
		{cmplx.Conj(a[0][0]), cmplx.Conj(a[1][0])},
		{cmplx.Conj(a[0][1]), cmplx.Conj(a[1][1])},
	}
}

// Trace returns a[0][0]+a[1][1].
func (a Matrix2) Trace() Complex {
	return a[0][0] + a[1][1]
}

func phaseMatrix(theta float64) Matrix2 {
	return Matrix2{{1, 0}, {0, cmplx.Exp(complex(0, theta))}}
}

// RotationZ returns RZ(theta) = diag(e^{-iθ/2}, e^{iθ/2}).
func RotationZ(theta float64) Matrix2 {
	phase := cmplx.Exp(complex(0, theta/2))
	return Matrix2{{cmplx.Conj(phase), 0}, {0, phase}}
}

// RotationX returns RX(theta).
func RotationX(theta float64) Matrix2 {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return Matrix2{{c, js}, {js, c}}
}

// RotationY returns RY(theta).
func RotationY(theta float64) Matrix2 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Matrix2{{c, -s}, {s, c}}
}

// GateUnitary returns the matrix of a single-qubit gate.
func GateUnitary(g Gate) (Matrix2, error) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	switch g.Name {
	case GateI:
		return Identity2, nil
	case GateX:
		return Matrix2{{0, 1}, {1, 0}}, nil
	case GateY:
		return Matrix2{{0, -1i}, {1i, 0}}, nil
	case GateZ:
		return Matrix2{{1, 0}, {0, -1}}, nil
	case GateH:
		return Matrix2{{hFactor, hFactor}, {hFactor, -hFactor}}, nil
	case GateS:
		return phaseMatrix(math.Pi / 2), nil
	case GateSdg:
		return phaseMatrix(-math.Pi / 2), nil
	case GateT:
		return phaseMatrix(math.Pi / 4), nil
	case GateTdg:
		return phaseMatrix(-math.Pi / 4), nil
	case GateU1:
		return phaseMatrix(g.Angle()), nil
	case GateRZ:
		return RotationZ(g.Angle()), nil
	case GateRX:
		return RotationX(g.Angle()), nil
	case GateRY:
		return RotationY(g.Angle()), nil
	}
	return Matrix2{}, errors.Errorf("gate %s is not a single-qubit gate", g.Name)
}

// SequenceUnitary multiplies the operations in circuit order, so the first
// operation ends up rightmost in the product.
func SequenceUnitary(ops []Operation) (Matrix2, error) {
	u := Identity2
	for _, op := range ops {
		m, err := GateUnitary(op.Gate)
		if err != nil {
			return Matrix2{}, err
		}
		u = m.Mul(u)
	}
	return u, nil
}

// PhaseDistance measures how far apart two unitaries are when global phase is
// ignored: sqrt(1 - |tr(U†V)|/2). It is 0 for equal-up-to-phase operators.
func PhaseDistance(u, v Matrix2) float64 {
	overlap := cmplx.Abs(u.Dagger().Mul(v).Trace()) / 2
	return math.Sqrt(max(0, 1-overlap))
}
