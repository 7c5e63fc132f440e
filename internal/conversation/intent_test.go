package conversation

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		kind IntentKind
		text string
	}{
		{"/start", IntentStart, "/start"},
		{"/help", IntentStart, "/help"},
		{"/thanks", IntentBeginCapture, "/thanks"},
		{"/thanks@GratitudeBot", IntentBeginCapture, "/thanks@GratitudeBot"},
		{"/EXPORT", IntentBeginExport, "/EXPORT"},
		{" /cancel ", IntentCancel, "/cancel"},
		{"/clean", IntentClearAll, "/clean"},
		{"/clear now", IntentClearAll, "/clear now"},
		{"/weather", IntentUnknownCommand, "/weather"},
		{LabelThanks, IntentBeginCapture, LabelThanks},
		{LabelExport, IntentBeginExport, LabelExport},
		{"  " + LabelCancel, IntentCancel, LabelCancel},
		{LabelWeek, IntentText, LabelWeek},
		{"Anna", IntentText, "Anna"},
		{"", IntentText, ""},
	}
	for _, c := range cases {
		got := Classify(c.in)
		if got.Kind != c.kind || got.Text != c.text {
			t.Errorf("Classify(%q) = {%s %q}, want {%s %q}", c.in, got.Kind, got.Text, c.kind, c.text)
		}
	}
}

func TestWindowDays(t *testing.T) {
	cases := map[string]int{
		LabelWeek:     7,
		LabelTwoWeeks: 14,
		"7":           7,
		"17 днів":     7,
		"month":       14,
		"":            14,
	}
	for in, want := range cases {
		if got := WindowDays(in); got != want {
			t.Errorf("WindowDays(%q) = %d, want %d", in, got, want)
		}
	}
}
