package profile

import (
	"context"
	"strings"
	"testing"

	"github.com/rcliao/water-tracker/internal/kv"
	"github.com/rcliao/water-tracker/internal/model"
	"github.com/rcliao/water-tracker/internal/tracker"
)

func TestRecommendedIntake(t *testing.T) {
	cases := []struct {
		weight float64
		level  model.ActivityLevel
		want   float64
	}{
		{70, model.Moderate, 2100},
		{70, model.Sedentary, 1700},
		{70, model.Light, 1900},
		{70, model.Active, 2300},
		{70, model.Extreme, 2500},
		{55, model.Moderate, 1700},
		{82.5, model.Active, 2700},
	}
	for _, c := range cases {
		p := model.DefaultProfile()
		p.Weight = c.weight
		p.ActivityLevel = c.level
		if got := RecommendedIntake(p); got != c.want {
			t.Errorf("weight %v %s: expected %v, got %v", c.weight, c.level, c.want, got)
		}
	}
}

func TestRecommendedIntakeIgnoresAgeHeightGender(t *testing.T) {
	a := model.DefaultProfile()
	b := a
	b.Age = 80
	b.Height = 150
	b.Gender = model.Female

	if RecommendedIntake(a) != RecommendedIntake(b) {
		t.Error("only weight and activity should affect the recommendation")
	}
}

func TestActivityFactorCoversEveryLevel(t *testing.T) {
	prev := 0.0
	for _, a := range model.ActivityLevels {
		f := ActivityFactor(a)
		if f <= prev {
			t.Errorf("%s: factor %v not above %v", a, f, prev)
		}
		prev = f
	}
}

func TestLoadDefault(t *testing.T) {
	p, err := Load(context.Background(), kv.NewMemStore())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p != model.DefaultProfile() {
		t.Errorf("expected default profile, got %+v", p)
	}
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()

	in := model.UserProfile{Weight: 64.5, Height: 172, Age: 41, Gender: model.Male, ActivityLevel: model.Active}
	if err := Save(ctx, store, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, _ := store.Get(ctx, kv.KeyUserProfile)
	if !strings.Contains(string(raw), `"activityLevel":"active"`) {
		t.Errorf("unexpected stored form %s", raw)
	}

	out, err := Load(ctx, store)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out != in {
		t.Errorf("expected %+v, got %+v", in, out)
	}
}

func TestLoadCorrupt(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	store.Put(ctx, kv.KeyUserProfile, []byte(`{"weight":70,"activityLevel":"couch"}`))

	p, err := Load(ctx, store)
	if err == nil {
		t.Error("expected decode error")
	}
	if p != model.DefaultProfile() {
		t.Errorf("expected default profile on error, got %+v", p)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	p := model.DefaultProfile()
	p.Weight = 0
	if err := Save(context.Background(), kv.NewMemStore(), p); err == nil {
		t.Error("expected error for zero weight")
	}
}

func TestApplyRecommended(t *testing.T) {
	ctx := context.Background()
	tr := tracker.New(ctx, kv.NewMemStore())

	p := model.DefaultProfile()
	p.ActivityLevel = model.Sedentary

	got, err := ApplyRecommended(ctx, tr, p)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got != 1700 || tr.Goal().Target != 1700 {
		t.Errorf("expected goal 1700, got %v / %v", got, tr.Goal().Target)
	}
}
