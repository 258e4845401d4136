// Package profile computes a recommended daily intake from a user profile and
// persists the profile.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/rcliao/water-tracker/internal/kv"
	"github.com/rcliao/water-tracker/internal/model"
)

// mlPerKg is the baseline daily intake per kilogram of body weight.
const mlPerKg = 30.0

// ActivityFactor scales the baseline for an activity level.
func ActivityFactor(a model.ActivityLevel) float64 {
	switch a {
	case model.Sedentary:
		return 0.8
	case model.Light:
		return 0.9
	case model.Moderate:
		return 1.0
	case model.Active:
		return 1.1
	case model.Extreme:
		return 1.2
	}
	panic(fmt.Sprintf("profile: unknown activity level %d", int(a)))
}

// RecommendedIntake returns weight * 30 ml scaled by activity, rounded to the
// nearest 100 ml. Age, height and gender do not take part.
func RecommendedIntake(p model.UserProfile) float64 {
	base := p.Weight * mlPerKg * ActivityFactor(p.ActivityLevel)
	return math.Round(base/100) * 100
}

// Validate reports the first field that cannot feed RecommendedIntake or be shown.
func Validate(p model.UserProfile) error {
	switch {
	case !(p.Weight > 0) || math.IsInf(p.Weight, 0):
		return fmt.Errorf("weight must be a positive number of kg, got %v", p.Weight)
	case !(p.Height > 0) || math.IsInf(p.Height, 0):
		return fmt.Errorf("height must be a positive number of cm, got %v", p.Height)
	case p.Age <= 0:
		return fmt.Errorf("age must be positive, got %d", p.Age)
	case p.ActivityLevel < model.Sedentary || p.ActivityLevel > model.Extreme:
		return fmt.Errorf("invalid activity level %d", int(p.ActivityLevel))
	case p.Gender < model.GenderUnspecified || p.Gender > model.Female:
		return fmt.Errorf("invalid gender %d", int(p.Gender))
	}
	return nil
}

// Load reads the stored profile. A missing or undecodable profile yields the
// default profile; only the corrupt case returns an error alongside it.
func Load(ctx context.Context, store kv.Store) (model.UserProfile, error) {
	data, err := store.Get(ctx, kv.KeyUserProfile)
	if errors.Is(err, kv.ErrNotFound) {
		return model.DefaultProfile(), nil
	}
	if err != nil {
		return model.DefaultProfile(), fmt.Errorf("load profile: %w", err)
	}

	p := model.DefaultProfile()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.DefaultProfile(), fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// Save validates and stores p.
func Save(ctx context.Context, store kv.Store, p model.UserProfile) error {
	if err := Validate(p); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := store.Put(ctx, kv.KeyUserProfile, data); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// GoalSetter is the part of the tracker ApplyRecommended needs.
type GoalSetter interface {
	SetGoal(ctx context.Context, target float64) error
}

// ApplyRecommended sets the daily goal to the profile's recommended intake and
// returns the value applied.
func ApplyRecommended(ctx context.Context, g GoalSetter, p model.UserProfile) (float64, error) {
	target := RecommendedIntake(p)
	if err := g.SetGoal(ctx, target); err != nil {
		return 0, err
	}
	return target, nil
}
