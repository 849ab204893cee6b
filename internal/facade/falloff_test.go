package facade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFalloff_BoundaryAndMonotonic(t *testing.T) {
	t.Parallel()

	sqrt, err := Power(0.5)
	require.NoError(t, err)
	cubic, err := Power(3)
	require.NoError(t, err)

	for _, f := range []Falloff{Linear, Smoothstep, sqrt, cubic} {
		f := f
		t.Run(f.Name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, 0.0, f.Weight(0))
			assert.InDelta(t, 1.0, f.Weight(1), eps)

			prev := f.Weight(0)
			for c := 0.01; c <= 1; c += 0.01 {
				w := f.Weight(c)
				assert.GreaterOrEqual(t, w, prev, "c=%v", c)
				assert.LessOrEqual(t, w, 1.0)
				prev = w
			}

			// Out-of-range closeness is clamped.
			assert.Equal(t, 0.0, f.Weight(-0.5))
			assert.InDelta(t, 1.0, f.Weight(1.5), eps)
		})
	}
}

func TestFalloff_ZeroValueUsesSmoothstep(t *testing.T) {
	t.Parallel()
	var f Falloff
	assert.Equal(t, Smoothstep.Weight(0.3), f.Weight(0.3))
}

func TestSmoothstep_Midpoint(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 0.5, Smoothstep.Weight(0.5), eps)
	assert.InDelta(t, 0.104, Smoothstep.Weight(0.2), 1e-9)
}

func TestPower_InvalidExponent(t *testing.T) {
	t.Parallel()
	for _, e := range []float64{0, -1} {
		_, err := Power(e)
		assert.Error(t, err, "exponent %v", e)
	}
}

func TestFalloffByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		exponent float64
		want     string
		wantErr  bool
	}{
		{"", 0, "smoothstep", false},
		{"smoothstep", 0, "smoothstep", false},
		{"linear", 0, "linear", false},
		{"power", 2, "power(2)", false},
		{"power", 0, "", true},
		{"cosine", 1, "", true},
	}
	for _, tt := range tests {
		got, err := FalloffByName(tt.name, tt.exponent)
		if tt.wantErr {
			assert.Error(t, err, "FalloffByName(%q, %v)", tt.name, tt.exponent)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Name)
	}
}
