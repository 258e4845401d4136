package model

import (
	"fmt"
	"strings"
)

// ActivityLevel is an ordinal measure of daily physical activity.
type ActivityLevel int

const (
	Sedentary ActivityLevel = iota
	Light
	Moderate
	Active
	Extreme
)

// ActivityLevels lists every level from least to most active.
var ActivityLevels = []ActivityLevel{Sedentary, Light, Moderate, Active, Extreme}

func (a ActivityLevel) String() string {
	switch a {
	case Sedentary:
		return "sedentary"
	case Light:
		return "light"
	case Moderate:
		return "moderate"
	case Active:
		return "active"
	case Extreme:
		return "extreme"
	}
	return fmt.Sprintf("activity(%d)", int(a))
}

// Label is the human-readable name.
func (a ActivityLevel) Label() string {
	switch a {
	case Sedentary:
		return "Sedentary"
	case Light:
		return "Light Activity"
	case Moderate:
		return "Moderate Activity"
	case Active:
		return "Very Active"
	case Extreme:
		return "Extremely Active"
	}
	return a.String()
}

// ParseActivityLevel accepts the short name or the label.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	s = strings.TrimSpace(s)
	for _, a := range ActivityLevels {
		if strings.EqualFold(s, a.String()) || strings.EqualFold(s, a.Label()) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("invalid activity level %q (valid: sedentary, light, moderate, active, extreme)", s)
}

func (a ActivityLevel) MarshalText() ([]byte, error) {
	if a < Sedentary || a > Extreme {
		return nil, fmt.Errorf("invalid activity level %d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *ActivityLevel) UnmarshalText(b []byte) error {
	v, err := ParseActivityLevel(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Gender is recorded on the profile for display only.
type Gender int

const (
	GenderUnspecified Gender = iota
	Male
	Female
)

var Genders = []Gender{Male, Female, GenderUnspecified}

func (g Gender) String() string {
	switch g {
	case GenderUnspecified:
		return "unspecified"
	case Male:
		return "male"
	case Female:
		return "female"
	}
	return fmt.Sprintf("gender(%d)", int(g))
}

func (g Gender) Label() string {
	switch g {
	case GenderUnspecified:
		return "Not Specified"
	case Male:
		return "Male"
	case Female:
		return "Female"
	}
	return g.String()
}

func ParseGender(s string) (Gender, error) {
	s = strings.TrimSpace(s)
	for _, g := range Genders {
		if strings.EqualFold(s, g.String()) || strings.EqualFold(s, g.Label()) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("invalid gender %q (valid: male, female, unspecified)", s)
}

func (g Gender) MarshalText() ([]byte, error) {
	if g < GenderUnspecified || g > Female {
		return nil, fmt.Errorf("invalid gender %d", int(g))
	}
	return []byte(g.String()), nil
}

func (g *Gender) UnmarshalText(b []byte) error {
	v, err := ParseGender(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// UserProfile holds the body measurements used to recommend a goal.
type UserProfile struct {
	Weight        float64       `json:"weight"` // kg
	Height        float64       `json:"height"` // cm
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
}

// DefaultProfile returns the profile shown before the user edits anything.
func DefaultProfile() UserProfile {
	return UserProfile{
		Weight:        70,
		Height:        170,
		Age:           30,
		Gender:        GenderUnspecified,
		ActivityLevel: Moderate,
	}
}
