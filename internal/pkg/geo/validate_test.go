package geo

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name        string
		lon         float64
		lat         float64
		ok          bool
		errContains string
		description string
	}{
		{
			name:        "valid caribbean point",
			lon:         -77.3,
			lat:         18.4,
			ok:          true,
			description: "Ordinary in-range coordinates must pass",
		},
		{
			name:        "axis extremes are inclusive",
			lon:         180,
			lat:         -90,
			ok:          true,
			description: "Range boundaries themselves are valid",
		},
		{
			name:        "longitude out of range",
			lon:         192.5,
			lat:         10,
			ok:          false,
			errContains: "longitude",
			description: "Failure message must name the offending axis",
		},
		{
			name:        "latitude out of range",
			lon:         -60,
			lat:         -91,
			ok:          false,
			errContains: "latitude",
			description: "Failure message must name the offending axis",
		},
		{
			name:        "NaN longitude",
			lon:         math.NaN(),
			lat:         12,
			ok:          false,
			errContains: "longitude is not a finite number",
			description: "NaN gets its own message, not a range error",
		},
		{
			name:        "positive infinity latitude",
			lon:         -70,
			lat:         math.Inf(1),
			ok:          false,
			errContains: "latitude is not a finite number",
			description: "Infinity gets its own message, not a range error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCoordinate(tt.lon, tt.lat)
			assert.Equal(t, tt.ok, result.OK, tt.description)
			if tt.errContains != "" {
				assert.NotEmpty(t, result.Errors)
				found := false
				for _, e := range result.Errors {
					if strings.Contains(e, tt.errContains) {
						found = true
					}
				}
				assert.True(t, found, "expected an error mentioning %q, got %v", tt.errContains, result.Errors)
			}
		})
	}
}

func TestValidateCoordinate_AllFailuresReported(t *testing.T) {
	result := ValidateCoordinate(math.NaN(), 95)
	assert.False(t, result.OK)
	assert.Len(t, result.Errors, 2, "both the NaN longitude and out-of-range latitude must be reported")
}

func TestValidateCoordinateWith_Region(t *testing.T) {
	rules := CoordinateRules{Region: &domain.RegionCaribbean}

	inside := ValidateCoordinateWith(-77.3, 18.4, rules)
	assert.True(t, inside.OK)

	outside := ValidateCoordinateWith(2.35, 48.85, rules)
	assert.False(t, outside.OK)
	assert.Contains(t, outside.Errors[0], "region caribbean")
}

func TestValidateCoordinateWith_StrictPrecision(t *testing.T) {
	rules := CoordinateRules{StrictPrecision: true}

	ok := ValidateCoordinateWith(-77.123456, 18.1, rules)
	assert.True(t, ok.OK, "6 decimals are allowed")

	tooFine := ValidateCoordinateWith(-77.1234567, 18.1, rules)
	assert.False(t, tooFine.OK)
	assert.Contains(t, tooFine.Errors[0], "decimal places")
}

func TestTruncatePrecision(t *testing.T) {
	tests := []struct {
		name        string
		in          float64
		expected    float64
		description string
	}{
		{
			name:        "truncates not rounds",
			in:          12.3456789,
			expected:    12.345678,
			description: "12.3456789 must become 12.345678, never 12.345679",
		},
		{
			name:        "negative truncates toward zero",
			in:          -12.3456789,
			expected:    -12.345678,
			description: "-12.3456789 must become -12.345678, never -12.345679",
		},
		{
			name:        "short values unchanged",
			in:          4.2,
			expected:    4.2,
			description: "Values within precision pass through",
		},
		{
			name:        "integers unchanged",
			in:          -180,
			expected:    -180,
			description: "No decimal point means nothing to cut",
		},
		{
			name:        "exactly six decimals unchanged",
			in:          0.123456,
			expected:    0.123456,
			description: "Six decimals are the allowed maximum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncatePrecision(tt.in), tt.description)
		})
	}
}

func TestTruncatePrecision_Idempotent(t *testing.T) {
	values := []float64{12.3456789, -0.0000019, 179.99999999, 0.1, -89.123456789, 0.000001}
	for _, v := range values {
		once := TruncatePrecision(v)
		twice := TruncatePrecision(once)
		assert.Equal(t, once, twice, "truncating %v twice must equal truncating once", v)
	}
}

func TestTruncateCoordinate(t *testing.T) {
	c := TruncateCoordinate(domain.Coordinate{Lon: -77.12345678, Lat: 18.98765432})
	assert.Equal(t, -77.123456, c.Lon)
	assert.Equal(t, 18.987654, c.Lat)
}

func TestDecimalPlaces(t *testing.T) {
	assert.Equal(t, 0, DecimalPlaces(42))
	assert.Equal(t, 1, DecimalPlaces(4.2))
	assert.Equal(t, 6, DecimalPlaces(0.123456))
	assert.Equal(t, 7, DecimalPlaces(0.1234567))
}

