package types

import "gonum.org/v1/gonum/mat"

// Box is a bounded continuous observation space
type Box struct {
	Low  *mat.VecDense
	High *mat.VecDense
}

func NewBox(low, high []float64) Box {
	return Box{
		Low:  mat.NewVecDense(len(low), low),
		High: mat.NewVecDense(len(high), high),
	}
}

func (b Box) Dim() int {
	if b.Low == nil {
		return 0
	}
	return b.Low.Len()
}

// Contains checks the vector against the bounds element wise
func (b Box) Contains(x []float64) bool {
	if len(x) != b.Dim() {
		return false
	}
	for i, v := range x {
		if v < b.Low.AtVec(i) || v > b.High.AtVec(i) {
			return false
		}
	}
	return true
}

func (b Box) Eq(other Box) bool {
	if b.Dim() != other.Dim() {
		return false
	}
	for i := 0; i < b.Dim(); i++ {
		if b.Low.AtVec(i) != other.Low.AtVec(i) || b.High.AtVec(i) != other.High.AtVec(i) {
			return false
		}
	}
	return true
}

// Discrete is a finite action space of size N
type Discrete struct {
	N int
}

func (d Discrete) Eq(other Discrete) bool {
	return d.N == other.N
}

// Spaces describes what one sub-environment observes and accepts
type Spaces struct {
	Observation Box
	Action      Discrete
}

func (s Spaces) Eq(other Spaces) bool {
	return s.Observation.Eq(other.Observation) && s.Action.Eq(other.Action)
}
