package fitness

const (
	// MaxWeightKg is the highest accepted body weight.
	MaxWeightKg = 700.0
	// MaxHeightCm is the highest accepted body height.
	MaxHeightCm = 300.0
)

// BMI categories
const (
	Underweight  = "underweight"
	NormalWeight = "normal weight"
	Overweight   = "overweight"
	Obese        = "obese"
)

// BMI is the result of BodyMassIndex.
type BMI struct {
	// Value is rounded to one decimal place
	Value    float64
	Category string
}

// BodyMassIndex returns weight / height^2 with the height in meters.
// The category is derived from the unrounded value.
func BodyMassIndex(weightKg, heightCm float64) (BMI, error) {
	switch {
	case !isFinite(weightKg) || weightKg <= 0:
		return BMI{}, invalidf("weight must be greater than zero, got %v", weightKg)
	case weightKg > MaxWeightKg:
		return BMI{}, invalidf("weight exceeds the maximum of %v kg", MaxWeightKg)
	case !isFinite(heightCm) || heightCm <= 0:
		return BMI{}, invalidf("height must be greater than zero, got %v", heightCm)
	case heightCm > MaxHeightCm:
		return BMI{}, invalidf("height exceeds the maximum of %v cm", MaxHeightCm)
	}

	m := heightCm / 100
	bmi := weightKg / (m * m)

	var category string
	switch {
	case bmi < 18.5:
		category = Underweight
	case bmi < 25:
		category = NormalWeight
	case bmi < 30:
		category = Overweight
	default:
		category = Obese
	}
	return BMI{Value: round(bmi, 1), Category: category}, nil
}
