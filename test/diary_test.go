//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/trainingdiary/internal/diary"
	"github.com/2beens/trainingdiary/internal/history"
	"github.com/2beens/trainingdiary/internal/nutrition"
	"github.com/2beens/trainingdiary/internal/view"
)

func (s *IntegrationTestSuite) TestProfileAndWorkouts() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	token := s.signUp(ctx, "workouts@example.com").Token

	resp := s.doRequest(ctx, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	userProfile := decodeBody[diary.UserProfile](s, resp)
	assert.Equal(t, diary.CanonicalPlanDays, userProfile.WorkoutPlan.Len())

	userProfile.NutritionGoals.ProteinGrams = 180
	userProfile.WorkoutPlan = diary.NewWorkoutPlan(diary.PlanDay{
		Label: "Full Body",
		Exercises: []diary.Exercise{
			{Name: "Deadlift", TargetSets: 3, TargetReps: "5"},
			{Name: "Dips", TargetSets: 2, TargetReps: "8-12"},
		},
	})
	resp = s.doRequest(ctx, http.MethodPut, "/profile", token, userProfile)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.doRequest(ctx, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saved := decodeBody[diary.UserProfile](s, resp)
	assert.Equal(t, []string{"Full Body"}, saved.WorkoutPlan.Labels())
	assert.Equal(t, 180.0, saved.NutritionGoals.ProteinGrams)

	resp = s.doRequest(ctx, http.MethodPost, "/workouts", token, map[string]any{
		"workoutDayLabel": "Full Body",
		"date":            "2024-03-01",
		"sets": [][]map[string]float64{
			{{"weight": 140, "reps": 5}, {"weight": 140, "reps": 5}, {"weight": 0, "reps": 0}},
			{{"weight": 10, "reps": 10}},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, decodeBody[[]diary.WorkoutLogEntry](s, resp), 3)

	resp = s.doRequest(ctx, http.MethodPost, "/workouts", token, map[string]any{
		"workoutDayLabel": "Leg Day",
		"sets":            [][]map[string]float64{{{"weight": 100, "reps": 5}}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.doRequest(ctx, http.MethodGet, "/workouts?grouped=true", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	days := decodeBody[[]history.WorkoutDay](s, resp)
	require.Len(t, days, 1)
	assert.Equal(t, "2024-03-01", days[0].Date)
	assert.Equal(t, []string{"Deadlift", "Dips"}, days[0].ExerciseOrder)
	assert.Equal(t, 3, days[0].SetCount())
}

func (s *IntegrationTestSuite) TestNutrition() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	token := s.signUp(ctx, "nutrition@example.com").Token
	otherToken := s.signUp(ctx, "nutrition-other@example.com").Token

	resp := s.doRequest(ctx, http.MethodPost, "/nutrition", token, nutrition.Input{
		FoodName:     "Chicken & Rice",
		ProteinGrams: 45,
		CarbGrams:    80,
		FatGrams:     10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	entry := decodeBody[diary.NutritionLogEntry](s, resp)
	assert.Equal(t, 590.0, entry.Calories)

	resp = s.doRequest(ctx, http.MethodPost, "/nutrition", token, nutrition.Input{FoodName: "Water"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.doRequest(ctx, http.MethodGet, "/nutrition/today", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	today := decodeBody[nutrition.TodaySummary](s, resp)
	require.Len(t, today.Items, 1)
	assert.Equal(t, 590.0, today.Progress.Totals.Calories)

	// another user can not see or delete it
	resp = s.doRequest(ctx, http.MethodDelete, "/nutrition/"+entry.ID, otherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = s.doRequest(ctx, http.MethodGet, "/nutrition", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]diary.NutritionLogEntry](s, resp), 1)

	resp = s.doRequest(ctx, http.MethodDelete, "/nutrition/"+entry.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = s.doRequest(ctx, http.MethodGet, "/nutrition", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]diary.NutritionLogEntry](s, resp))
}

func (s *IntegrationTestSuite) TestAppScreens() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	token := s.signUp(ctx, "screens@example.com").Token

	resp := s.doRequest(ctx, http.MethodGet, "/app", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, view.ScreenWorkoutEntry, decodeBody[view.Model](s, resp).Screen)

	resp = s.doRequest(ctx, http.MethodPut, "/app/screen/settings", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	draft := diary.DefaultProfile()
	draft.NutritionGoals.Calories = 2500
	resp = s.doRequest(ctx, http.MethodPut, "/app/settings/draft", token, draft)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.doRequest(ctx, http.MethodPost, "/app/settings/save", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	model := decodeBody[view.Model](s, resp)
	require.NotEmpty(t, model.Notifications)
	assert.Equal(t, "Settings saved", model.Notifications[len(model.Notifications)-1].Message)

	resp = s.doRequest(ctx, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2500.0, decodeBody[diary.UserProfile](s, resp).NutritionGoals.Calories)
}
