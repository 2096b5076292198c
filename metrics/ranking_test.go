package metrics

import (
	"math"
	"testing"
)

func TestROCAUC(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yScore  []float64
		want    float64
		wantErr bool
	}{
		{
			name:   "Perfect separation",
			yTrue:  []float64{0, 0, 0, 1, 1, 1},
			yScore: []float64{0.1, 0.2, 0.3, 0.7, 0.8, 0.9},
			want:   1.0,
		},
		{
			name:   "Worst separation",
			yTrue:  []float64{0, 0, 0, 1, 1, 1},
			yScore: []float64{0.9, 0.8, 0.7, 0.3, 0.2, 0.1},
			want:   0.0,
		},
		{
			name:   "Typical case",
			yTrue:  []float64{0, 0, 1, 1},
			yScore: []float64{0.1, 0.4, 0.35, 0.8},
			want:   0.75,
		},
		{
			name:   "All positive labels",
			yTrue:  []float64{1, 1, 1},
			yScore: []float64{0.2, 0.5, 0.9},
			want:   0.5, // Undefined case, returns 0.5
		},
		{
			name:   "All negative labels",
			yTrue:  []float64{0, 0, 0},
			yScore: []float64{0.2, 0.5, 0.9},
			want:   0.5, // Undefined case, returns 0.5
		},
		{
			name:    "Non-binary labels",
			yTrue:   []float64{0, 0.5, 1},
			yScore:  []float64{0.1, 0.5, 0.9},
			wantErr: true,
		},
		{
			name:    "Dimension mismatch",
			yTrue:   []float64{0, 1},
			yScore:  []float64{0.5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ROCAUC(vec(tt.yTrue), vec(tt.yScore))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ROCAUC() expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ROCAUC() unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ROCAUC() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPRAUC(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yScore  []float64
		want    float64
		wantErr bool
	}{
		{
			name:   "Perfect separation",
			yTrue:  []float64{1, 0, 1, 0, 1, 0, 1, 0, 1, 0},
			yScore: []float64{0.9, 0.1, 0.8, 0.2, 0.7, 0.3, 0.6, 0.4, 0.55, 0.45},
			want:   1.0,
		},
		{
			name:   "All positives",
			yTrue:  []float64{1, 1, 1},
			yScore: []float64{0.1, 0.5, 0.9},
			want:   1.0,
		},
		{
			name:   "No positives",
			yTrue:  []float64{0, 0, 0},
			yScore: []float64{0.1, 0.5, 0.9},
			want:   0.0, // Undefined case, returns 0
		},
		{
			name:    "Non-binary labels",
			yTrue:   []float64{0, 2, 1},
			yScore:  []float64{0.1, 0.5, 0.9},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PRAUC(vec(tt.yTrue), vec(tt.yScore))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("PRAUC() expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("PRAUC() unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PRAUC() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPRAUCWorstRankingIsLow(t *testing.T) {
	yTrue := vec([]float64{1, 1, 0, 0})
	yScore := vec([]float64{0.1, 0.2, 0.8, 0.9})

	got, err := PRAUC(yTrue, yScore)
	if err != nil {
		t.Fatalf("PRAUC() unexpected error: %v", err)
	}
	if got >= 0.5 {
		t.Errorf("PRAUC() = %v, want < 0.5 for inverted ranking", got)
	}
}
