package voice

import (
	"fmt"
	"strings"

	"github.com/elefit/tracker-backend/internal/model"
)

const cardTitle = "EleFit Tracker"

// ResponseEnvelope is the outbound voice-platform response. Every path
// through the webhook produces one; the platform never sees an HTTP error.
type ResponseEnvelope struct {
	Version  string   `json:"version"`
	Response Response `json:"response"`
}

type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

func speak(text string, endSession bool) ResponseEnvelope {
	return ResponseEnvelope{
		Version: "1.0",
		Response: Response{
			OutputSpeech:     &OutputSpeech{Type: "PlainText", Text: text},
			ShouldEndSession: endSession,
		},
	}
}

// RenderControl maps a control outcome to its spoken response. OutcomeLog is
// not a control outcome; callers render it with RenderLogged or
// RenderLogError after persistence.
func RenderControl(kind OutcomeKind) ResponseEnvelope {
	switch kind {
	case OutcomeWelcome:
		env := speak("Welcome to EleFit Tracker. You can log a workout or a meal.", false)
		env.Response.Reprompt = &Reprompt{OutputSpeech: OutputSpeech{
			Type: "PlainText",
			Text: "Try saying: log a running workout for 30 minutes, or log breakfast with oatmeal.",
		}}
		return env
	case OutcomeGoodbye:
		return speak("Goodbye!", true)
	case OutcomeHelp:
		return speak("You can say 'log a workout' to record exercise, or 'log a meal' to record what you ate. How can I help you?", false)
	case OutcomeUnrecognized:
		return speak("I'm not sure what you want to log. You can log a workout or a meal.", false)
	default:
		return speak("I'm not sure how to handle that request. You can log a workout or a meal.", false)
	}
}

// RenderLogged confirms a persisted event, with a Simple card summarizing it.
func RenderLogged(e *model.LogEvent) ResponseEnvelope {
	var text, content string
	switch e.Kind {
	case model.KindWorkout:
		text = fmt.Sprintf("Your %s workout has been logged successfully for %d minutes.", e.WorkoutType, e.DurationMin)
		content = fmt.Sprintf("Logged %s workout for %d minutes.", e.WorkoutType, e.DurationMin)
	case model.KindMeal:
		foodText := ""
		if len(e.FoodItems) > 0 {
			foodText = " with " + strings.Join(e.FoodItems, " and ")
		}
		text = fmt.Sprintf("Your %s%s has been logged successfully.", e.MealType, foodText)
		content = fmt.Sprintf("Logged %s%s.", e.MealType, foodText)
	}

	env := speak(text, true)
	env.Response.Card = &Card{Type: "Simple", Title: cardTitle, Content: content}
	return env
}

// RenderLogError apologizes for a persistence failure. The envelope stays
// syntactically valid; the voice channel never sees the internal error.
func RenderLogError(kind model.LogKind) ResponseEnvelope {
	switch kind {
	case model.KindWorkout:
		return speak("Sorry, there was an error logging your workout.", true)
	case model.KindMeal:
		return speak("Sorry, there was an error logging your meal.", true)
	default:
		return RenderError()
	}
}

// RenderError is the generic apology used when a request cannot be processed
// at all.
func RenderError() ResponseEnvelope {
	return speak("Sorry, there was an error processing your request.", true)
}

// RenderLinkPrompt asks the user to link their account; the LinkAccount card
// makes the Alexa app show the linking flow.
func RenderLinkPrompt() ResponseEnvelope {
	env := speak("Please link your account in the Alexa app first.", true)
	env.Response.Card = &Card{Type: "LinkAccount"}
	return env
}
