package voice

import (
	"strings"
	"testing"

	"github.com/elefit/tracker-backend/internal/model"
)

func TestRenderControl(t *testing.T) {
	t.Run("welcome keeps session open with reprompt", func(t *testing.T) {
		env := RenderControl(OutcomeWelcome)
		if env.Response.ShouldEndSession {
			t.Error("welcome must keep the session open")
		}
		if env.Response.Reprompt == nil {
			t.Fatal("welcome must carry a reprompt")
		}
		if !strings.Contains(env.Response.OutputSpeech.Text, "Welcome to EleFit Tracker") {
			t.Errorf("speech = %q", env.Response.OutputSpeech.Text)
		}
	})

	t.Run("goodbye ends session", func(t *testing.T) {
		env := RenderControl(OutcomeGoodbye)
		if !env.Response.ShouldEndSession {
			t.Error("goodbye must end the session")
		}
		if env.Response.OutputSpeech.Text != "Goodbye!" {
			t.Errorf("speech = %q", env.Response.OutputSpeech.Text)
		}
	})

	t.Run("help keeps session open", func(t *testing.T) {
		env := RenderControl(OutcomeHelp)
		if env.Response.ShouldEndSession {
			t.Error("help must keep the session open")
		}
	})
}

func TestRenderLoggedWorkout(t *testing.T) {
	env := RenderLogged(&model.LogEvent{
		Kind:        model.KindWorkout,
		WorkoutType: "running",
		DurationMin: 45,
	})
	want := "Your running workout has been logged successfully for 45 minutes."
	if env.Response.OutputSpeech.Text != want {
		t.Errorf("speech = %q, want %q", env.Response.OutputSpeech.Text, want)
	}
	if !env.Response.ShouldEndSession {
		t.Error("confirmation must end the session")
	}
	card := env.Response.Card
	if card == nil || card.Type != "Simple" || card.Title != "EleFit Tracker" {
		t.Fatalf("card = %+v", card)
	}
}

func TestRenderLoggedMeal(t *testing.T) {
	t.Run("with food items", func(t *testing.T) {
		env := RenderLogged(&model.LogEvent{
			Kind:      model.KindMeal,
			MealType:  "breakfast",
			FoodItems: []string{"oatmeal", "coffee"},
		})
		want := "Your breakfast with oatmeal and coffee has been logged successfully."
		if env.Response.OutputSpeech.Text != want {
			t.Errorf("speech = %q, want %q", env.Response.OutputSpeech.Text, want)
		}
	})

	t.Run("without food items", func(t *testing.T) {
		env := RenderLogged(&model.LogEvent{Kind: model.KindMeal, MealType: "snack"})
		want := "Your snack has been logged successfully."
		if env.Response.OutputSpeech.Text != want {
			t.Errorf("speech = %q, want %q", env.Response.OutputSpeech.Text, want)
		}
	})
}

func TestRenderLogError(t *testing.T) {
	if got := RenderLogError(model.KindWorkout).Response.OutputSpeech.Text; got != "Sorry, there was an error logging your workout." {
		t.Errorf("workout error speech = %q", got)
	}
	if got := RenderLogError(model.KindMeal).Response.OutputSpeech.Text; got != "Sorry, there was an error logging your meal." {
		t.Errorf("meal error speech = %q", got)
	}
}

func TestRenderLinkPrompt(t *testing.T) {
	env := RenderLinkPrompt()
	if env.Response.Card == nil || env.Response.Card.Type != "LinkAccount" {
		t.Fatalf("card = %+v", env.Response.Card)
	}
	if !env.Response.ShouldEndSession {
		t.Error("link prompt must end the session")
	}
}
