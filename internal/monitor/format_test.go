package monitor

import "testing"

func TestFormat_ConcreteScenario(t *testing.T) {
	t.Parallel()

	inc := &Incident{
		ID:            "local_test",
		Name:          "Chat Completions API - Elevated Error Rates",
		Status:        "investigating",
		UpdatedAt:     "2025-11-03T14:32:00Z",
		Components:    []string{"Chat Completions"},
		LatestMessage: "Degraded performance due to upstream issue",
		Provider:      "OpenAI API",
	}

	want := "[2025-11-03 14:32:00] Product: OpenAI API - Chat Completions\nStatus: Degraded performance due to upstream issue"
	if got := Format(inc); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"full RFC3339", "2025-11-03T14:32:00Z", "2025-11-03 14:32:00"},
		{"with offset", "2025-11-03T14:32:00+02:00", "2025-11-03 14:32:00"},
		{"fractional seconds", "2025-11-03T14:32:00.123456Z", "2025-11-03 14:32:00"},
		{"no separator", "2025-11-03 14:32:00", "2025-11-03 14:32:00"},
		{"short string", "2025-11-03", "2025-11-03"},
		{"empty", "", ""},
		{"garbage", "not a timestamp at all really", "not a timestamp at "},
		{"exactly eleven", "2025-11-03TX", "2025-11-03 X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatTimestamp(tt.in); got != tt.want {
				t.Errorf("formatTimestamp(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestServiceName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		inc  Incident
		want string
	}{
		{
			"components joined",
			Incident{Components: []string{"API", "Dashboard"}, Name: "ignored"},
			"API, Dashboard",
		},
		{
			"single component",
			Incident{Components: []string{"Chat Completions"}},
			"Chat Completions",
		},
		{
			"name split on dash",
			Incident{Name: "Chat Completions API - Elevated Error Rates"},
			"Chat Completions API",
		},
		{
			"only first dash counts",
			Incident{Name: "A - B - C"},
			"A",
		},
		{
			"name verbatim",
			Incident{Name: "Full Outage"},
			"Full Outage",
		},
		{
			"hyphen without spaces is not a separator",
			Incident{Name: "Text-to-Speech degraded"},
			"Text-to-Speech degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := serviceName(&tt.inc); got != tt.want {
				t.Errorf("serviceName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	inc := &Incident{ID: "abc", UpdatedAt: "2025-11-03T14:32:00Z"}
	if got, want := inc.Identity(), "abc_2025-11-03T14:32:00Z"; got != want {
		t.Errorf("Identity() = %q, want %q", got, want)
	}
}
