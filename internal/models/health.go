package models

// Gender of the profile owner
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ActivityLevel describes how active the user is day to day
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
)

// HealthProfile is the singleton description of the user. Height is in
// centimeters, weight in kilograms.
type HealthProfile struct {
	Name               string        `json:"name"`
	Age                int           `json:"age" validate:"gt=0"`
	Height             float64       `json:"height" validate:"gt=0"`
	Weight             float64       `json:"weight" validate:"gt=0"`
	Gender             Gender        `json:"gender" validate:"oneof=male female other"`
	ActivityLevel      ActivityLevel `json:"activityLevel" validate:"oneof=sedentary light moderate active"`
	CalorieGoal        int           `json:"calorieGoal" validate:"gt=0"`
	Allergies          string        `json:"allergies"`
	DietaryPreferences string        `json:"dietaryPreferences"`
}

// DefaultProfile is used until the user saves their own profile.
func DefaultProfile() HealthProfile {
	return HealthProfile{
		Age:           30,
		Height:        170,
		Weight:        70,
		Gender:        GenderFemale,
		ActivityLevel: ActivityModerate,
		CalorieGoal:   2000,
	}
}

// DailyLog holds the accumulated nutrition totals for one calendar date.
// Date is the natural key.
type DailyLog struct {
	Date     string  `json:"date" validate:"required,calendardate"`
	Calories float64 `json:"calories" validate:"min=0"`
	Protein  float64 `json:"protein" validate:"min=0"`
	Carbs    float64 `json:"carbs" validate:"min=0"`
	Fats     float64 `json:"fats" validate:"min=0"`
}
