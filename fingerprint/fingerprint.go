// Package fingerprint maps structural strings (SMILES) to fixed-length
// binary key vectors.
//
// The Encoder interface is the narrow contract the pipeline depends on:
// output length is always Size, every component is exactly 0 or 1, and the
// same input string always produces the same vector. StructuralKeys is the
// built-in implementation: a catalogue of 166 substructural keys computed
// from a lightweight structural scan, in the spirit of the MACCS key set.
//
// Benign parse oddities (stereo marks, isotopes, disconnected fragments) are
// reported through the pkg/errors warning system and never fail an encode.
// A string that does not scan into a valid molecule is a data-quality
// problem and returns an error; no fallback vector is substituted.
package fingerprint

import (
	"hash/fnv"

	"gonum.org/v1/gonum/mat"

	"github.com/molbench/molbench/pkg/errors"
	"github.com/molbench/molbench/pkg/parallel"
)

// Size is the fixed fingerprint length.
const Size = 166

// Encoder converts one structural string into a Size-length binary vector.
type Encoder interface {
	Encode(structure string) ([]float64, error)
	Size() int
}

// keyedElements fixes the element-presence section of the catalogue. The
// order is part of the fingerprint layout and must not change.
var keyedElements = []string{
	"C", "N", "O", "S", "P", "F", "Cl", "Br", "I", "B",
	"Si", "Se", "As", "Li", "Na", "K", "Mg", "Ca", "Al", "Zn",
	"Fe", "Cu", "Mn", "Co", "Ni", "Cr", "Sn", "Hg", "Pt", "Au",
	"Ba", "Bi", "Gd", "Ag", "Sr", "Ti", "Zr", "Cd", "Pb", "Tl",
	"Sb", "Be", "V", "*",
}

var halogens = map[string]bool{"F": true, "Cl": true, "Br": true, "I": true}

// StructuralKeys is the built-in 166-key structural fingerprint encoder.
// It is stateless and safe for concurrent use.
type StructuralKeys struct{}

// NewStructuralKeys creates the built-in encoder.
func NewStructuralKeys() *StructuralKeys {
	return &StructuralKeys{}
}

// Size returns the fingerprint length.
func (e *StructuralKeys) Size() int {
	return Size
}

// Encode parses the structural string and sets the catalogue keys. The
// result always has length Size with components in {0, 1}.
func (e *StructuralKeys) Encode(structure string) ([]float64, error) {
	m, err := parseStructure(structure)
	if err != nil {
		return nil, err
	}
	for _, detail := range m.warnings {
		errors.Warn(errors.NewStructureParseWarning(structure, detail))
	}

	bits := make([]float64, Size)
	idx := 0

	set := func(on bool) {
		if on {
			bits[idx] = 1
		}
		idx++
	}
	setThresholds := func(value int, thresholds ...int) {
		for _, th := range thresholds {
			set(value >= th)
		}
	}

	// Element presence and composition counts.
	elemCount := make(map[string]int, len(m.atoms))
	aromaticAtoms := 0
	halogenCount := 0
	heteroCount := 0
	posCharges, negCharges := 0, 0
	for _, a := range m.atoms {
		elemCount[a.symbol]++
		if a.aromatic {
			aromaticAtoms++
		}
		if halogens[a.symbol] {
			halogenCount++
		}
		if a.symbol != "C" && a.symbol != "H" && a.symbol != "*" {
			heteroCount++
		}
		if a.charge > 0 {
			posCharges += a.charge
		} else if a.charge < 0 {
			negCharges -= a.charge
		}
	}

	for _, symbol := range keyedElements {
		set(elemCount[symbol] > 0)
	}

	setThresholds(elemCount["C"], 2, 4, 8, 12, 16, 20, 24, 32)
	setThresholds(elemCount["N"], 2, 3, 4)
	setThresholds(elemCount["O"], 2, 3, 4, 6)
	setThresholds(elemCount["S"], 2, 3)
	setThresholds(halogenCount, 1, 2, 4)
	setThresholds(heteroCount, 1, 2, 4, 8)
	setThresholds(len(m.atoms), 10, 20, 30, 40, 50)

	// Aromaticity and rings.
	setThresholds(aromaticAtoms, 1, 5, 6, 10, 12)
	setThresholds(m.ringBonds, 1, 2, 3, 4)

	// Bond orders.
	setThresholds(m.doubleBonds, 1, 2, 3)
	set(m.tripleBonds >= 1)
	set(m.aromaticRefs >= 1)

	// Charges and fragments.
	set(posCharges > 0)
	set(negCharges > 0)
	set(posCharges > negCharges)
	set(negCharges > posCharges)
	set(m.fragments >= 2)

	// Branching.
	setThresholds(m.branches, 1, 2, 4, 8)
	setThresholds(m.maxDepth, 1, 2, 3)

	// Remaining keys are hashed token bigrams: local atom/bond environments
	// folded into the tail of the catalogue.
	hashedBits := Size - idx
	for k := 0; k+1 < len(m.tokens); k++ {
		h := fnv.New32a()
		h.Write([]byte(m.tokens[k]))
		h.Write([]byte{0})
		h.Write([]byte(m.tokens[k+1]))
		bits[idx+int(h.Sum32()%uint32(hashedBits))] = 1
	}

	return bits, nil
}

// EncodeBatch encodes structures in parallel, preserving row order. The
// returned matrix has one fingerprint per row. The first encode failure
// aborts the batch.
func EncodeBatch(enc Encoder, structures []string) (*mat.Dense, error) {
	if len(structures) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}

	features := mat.NewDense(len(structures), enc.Size(), nil)
	encodeErrs := make([]error, len(structures))

	parallel.ParallelizeWithThreshold(len(structures), 64, func(start, end int) {
		for i := start; i < end; i++ {
			row, err := enc.Encode(structures[i])
			if err != nil {
				encodeErrs[i] = err
				continue
			}
			features.SetRow(i, row)
		}
	})

	for i, err := range encodeErrs {
		if err != nil {
			return nil, errors.Wrapf(err, "encoding row %d", i)
		}
	}
	return features, nil
}
