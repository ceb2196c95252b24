package overlay

import (
	"math"
	"testing"
)

// project applies the column major matrix to a pixel coordinate.
func project(m [16]float32, x, y float32) (float32, float32) {
	cx := m[0]*x + m[4]*y + m[12]
	cy := m[1]*x + m[5]*y + m[13]
	return cx, cy
}

func TestOrthoMatrixCorners(t *testing.T) {
	m := orthoMatrix(0, 640, 480, 0, -1, 1)

	tests := []struct {
		name   string
		px, py float32
		wantX  float32
		wantY  float32
	}{
		{"top left", 0, 0, -1, 1},
		{"bottom right", 640, 480, 1, -1},
		{"center", 320, 240, 0, 0},
	}

	const eps = 1e-5
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := project(m, tt.px, tt.py)
			if math.Abs(float64(gx-tt.wantX)) > eps || math.Abs(float64(gy-tt.wantY)) > eps {
				t.Errorf("pixel (%v, %v) projected to (%v, %v), want (%v, %v)",
					tt.px, tt.py, gx, gy, tt.wantX, tt.wantY)
			}
		})
	}
}
