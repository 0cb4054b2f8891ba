package nutrition

import (
	"errors"
	"math"
	"strconv"
)

var ErrInvalidMeasurement = errors.New("nutrition: height and weight must be positive")

// BMI bands
const (
	BandLow    = "low"
	BandNormal = "normal"
	BandHigh   = "high"
)

// BMI expects height in centimeters and weight in kilograms and returns the
// index rounded to one decimal.
func BMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, ErrInvalidMeasurement
	}
	h := heightCm / 100.0
	return math.Round(weightKg/(h*h)*10) / 10, nil
}

// FormatBMI renders a BMI with exactly one decimal.
func FormatBMI(bmi float64) string {
	return strconv.FormatFloat(bmi, 'f', 1, 64)
}

// BMIBand classifies a rounded BMI. Boundary values belong to the upper
// band: 18.5 is normal, 25.0 is high.
func BMIBand(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BandLow
	case bmi < 25.0:
		return BandNormal
	default:
		return BandHigh
	}
}
