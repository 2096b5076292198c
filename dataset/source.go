package dataset

import (
	"io"
	"math"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/molbench/molbench/pkg/errors"
)

// Source yields the raw molecule records of one benchmark.
type Source interface {
	Name() string
	Samples() ([]RawSample, error)
}

// csvSource reads RawSamples from a benchmark CSV file.
type csvSource struct {
	name   string
	path   string
	decode func(r io.Reader) ([]RawSample, error)
}

func (s *csvSource) Name() string { return s.name }

func (s *csvSource) Samples() ([]RawSample, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s dataset", s.name)
	}
	defer f.Close()

	samples, err := s.decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s dataset", s.name)
	}
	if len(samples) == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "%s dataset", s.name)
	}
	return samples, nil
}

// optional converts a gocsv pointer cell to a float: empty cells decode to
// nil and become NaN, the in-band missing marker the extractors understand.
func optional(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

type esolRecord struct {
	SMILES        string  `csv:"smiles"`
	LogSolubility float64 `csv:"measured log solubility in mols per litre"`
}

func decodeESOL(r io.Reader) ([]RawSample, error) {
	var records []esolRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, err
	}
	samples := make([]RawSample, len(records))
	for i, rec := range records {
		samples[i] = RawSample{Structure: rec.SMILES, Labels: []float64{rec.LogSolubility}}
	}
	return samples, nil
}

type freesolvRecord struct {
	SMILES string  `csv:"smiles"`
	Expt   float64 `csv:"expt"`
}

func decodeFreeSolv(r io.Reader) ([]RawSample, error) {
	var records []freesolvRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, err
	}
	samples := make([]RawSample, len(records))
	for i, rec := range records {
		samples[i] = RawSample{Structure: rec.SMILES, Labels: []float64{rec.Expt}}
	}
	return samples, nil
}

type lipophilicityRecord struct {
	SMILES string  `csv:"smiles"`
	LogD   float64 `csv:"exp"`
}

func decodeLipophilicity(r io.Reader) ([]RawSample, error) {
	var records []lipophilicityRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, err
	}
	samples := make([]RawSample, len(records))
	for i, rec := range records {
		samples[i] = RawSample{Structure: rec.SMILES, Labels: []float64{rec.LogD}}
	}
	return samples, nil
}

type baceRecord struct {
	SMILES string   `csv:"mol"`
	Class  *float64 `csv:"Class"`
}

func decodeBACE(r io.Reader) ([]RawSample, error) {
	var records []baceRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, err
	}
	samples := make([]RawSample, len(records))
	for i, rec := range records {
		samples[i] = RawSample{Structure: rec.SMILES, Labels: []float64{optional(rec.Class)}}
	}
	return samples, nil
}

// tox21Record carries the full 12-assay panel; the benchmark's extractor
// selects a single task column by index.
type tox21Record struct {
	NRAR         *float64 `csv:"NR-AR"`
	NRARLBD      *float64 `csv:"NR-AR-LBD"`
	NRAhR        *float64 `csv:"NR-AhR"`
	NRAromatase  *float64 `csv:"NR-Aromatase"`
	NRER         *float64 `csv:"NR-ER"`
	NRERLBD      *float64 `csv:"NR-ER-LBD"`
	NRPPARGamma  *float64 `csv:"NR-PPAR-gamma"`
	SRARE        *float64 `csv:"SR-ARE"`
	SRATAD5      *float64 `csv:"SR-ATAD5"`
	SRHSE        *float64 `csv:"SR-HSE"`
	SRMMP        *float64 `csv:"SR-MMP"`
	SRP53        *float64 `csv:"SR-p53"`
	SMILES       string   `csv:"smiles"`
}

func decodeTox21(r io.Reader) ([]RawSample, error) {
	var records []tox21Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, err
	}
	samples := make([]RawSample, len(records))
	for i, rec := range records {
		samples[i] = RawSample{
			Structure: rec.SMILES,
			Labels: []float64{
				optional(rec.NRAR), optional(rec.NRARLBD), optional(rec.NRAhR),
				optional(rec.NRAromatase), optional(rec.NRER), optional(rec.NRERLBD),
				optional(rec.NRPPARGamma), optional(rec.SRARE), optional(rec.SRATAD5),
				optional(rec.SRHSE), optional(rec.SRMMP), optional(rec.SRP53),
			},
		}
	}
	return samples, nil
}
