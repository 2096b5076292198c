package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func vec(values []float64) *mat.VecDense {
	if len(values) == 0 {
		return nil
	}
	return mat.NewVecDense(len(values), values)
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "Perfect predictions",
			yTrue: []float64{1, 0, 1, 0, 1, 0, 1, 0, 1, 0},
			yPred: []float64{1, 0, 1, 0, 1, 0, 1, 0, 1, 0},
			want:  1.0,
		},
		{
			name:  "Fully inverted with balanced classes",
			yTrue: []float64{1, 0, 1, 0},
			yPred: []float64{0, 1, 0, 1},
			want:  0.0,
		},
		{
			name:  "Half correct",
			yTrue: []float64{1, 1, 0, 0},
			yPred: []float64{1, 0, 0, 1},
			want:  0.5,
		},
		{
			name:    "Non-binary labels",
			yTrue:   []float64{0, 0.5, 1},
			yPred:   []float64{0, 1, 1},
			wantErr: true,
		},
		{
			name:    "Dimension mismatch",
			yTrue:   []float64{0, 1},
			yPred:   []float64{1},
			wantErr: true,
		},
		{
			name:    "Empty vectors",
			yTrue:   []float64{},
			yPred:   []float64{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yTrue := vec(tt.yTrue)
			yPred := vec(tt.yPred)
			if yTrue == nil {
				yTrue = mat.NewVecDense(1, nil)
				yTrue.Reset()
			}
			if yPred == nil {
				yPred = mat.NewVecDense(1, nil)
				yPred.Reset()
			}

			got, err := Accuracy(yTrue, yPred)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Accuracy() expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Accuracy() unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrecisionRecallF1(t *testing.T) {
	yTrue := vec([]float64{1, 1, 1, 0, 0, 0})
	yPred := vec([]float64{1, 1, 0, 1, 0, 0})

	// tp=2 fp=1 fn=1
	precision, err := Precision(yTrue, yPred)
	if err != nil {
		t.Fatalf("Precision() error: %v", err)
	}
	if math.Abs(precision-2.0/3.0) > 1e-12 {
		t.Errorf("Precision() = %v, want %v", precision, 2.0/3.0)
	}

	recall, err := Recall(yTrue, yPred)
	if err != nil {
		t.Fatalf("Recall() error: %v", err)
	}
	if math.Abs(recall-2.0/3.0) > 1e-12 {
		t.Errorf("Recall() = %v, want %v", recall, 2.0/3.0)
	}

	f1, err := F1(yTrue, yPred)
	if err != nil {
		t.Fatalf("F1() error: %v", err)
	}
	if math.Abs(f1-2.0/3.0) > 1e-12 {
		t.Errorf("F1() = %v, want %v", f1, 2.0/3.0)
	}
}

func TestPrecisionUndefinedConvention(t *testing.T) {
	// No predicted positives: precision falls back to 0 with a warning.
	yTrue := vec([]float64{1, 0, 1})
	yPred := vec([]float64{0, 0, 0})

	precision, err := Precision(yTrue, yPred)
	if err != nil {
		t.Fatalf("Precision() error: %v", err)
	}
	if precision != 0 {
		t.Errorf("Precision() = %v, want 0 under zero-division convention", precision)
	}
}

func TestRecallUndefinedConvention(t *testing.T) {
	// No positive examples: recall falls back to 0 with a warning.
	yTrue := vec([]float64{0, 0, 0})
	yPred := vec([]float64{1, 0, 0})

	recall, err := Recall(yTrue, yPred)
	if err != nil {
		t.Fatalf("Recall() error: %v", err)
	}
	if recall != 0 {
		t.Errorf("Recall() = %v, want 0 under zero-division convention", recall)
	}
}

func TestF1UndefinedConvention(t *testing.T) {
	yTrue := vec([]float64{0, 0, 1})
	yPred := vec([]float64{1, 1, 0})

	f1, err := F1(yTrue, yPred)
	if err != nil {
		t.Fatalf("F1() error: %v", err)
	}
	if f1 != 0 {
		t.Errorf("F1() = %v, want 0 under zero-division convention", f1)
	}
}
