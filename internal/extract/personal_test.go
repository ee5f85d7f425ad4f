package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPersonalInfo_NameWithIntroducer(t *testing.T) {
	info := ExtractPersonalInfo("The candidate name is John Smith and he has experience in backend work.", "")
	assert.Equal(t, "John Smith", info.Name)
}

func TestExtractPersonalInfo_NameRequiresIntroducer(t *testing.T) {
	// A bare capitalized-word run is not a name.
	info := ExtractPersonalInfo("Amazing Products are discussed in Great Detail here.", "")
	assert.Equal(t, DefaultName, info.Name)
}

func TestExtractPersonalInfo_FallbackToFullTranscript(t *testing.T) {
	agent := "Thank you for your time today."
	full := "Agent: Hello\nYou: My name is Jane Doe and my email is jane.doe@example.com"

	info := ExtractPersonalInfo(agent, full)
	assert.Equal(t, "Jane Doe", info.Name)
	assert.Equal(t, "jane.doe@example.com", info.Email)
}

func TestExtractPersonalInfo_ThreeTokenName(t *testing.T) {
	info := ExtractPersonalInfo("My name is Mary Jane Watson and I work in design.", "")
	assert.Equal(t, "Mary Jane Watson", info.Name)
}

func TestExtractPersonalInfo_Phone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"international with parens", "You can reach me at +1 (555) 123-4567 anytime.", "+1 (555) 123-4567"},
		{"dotted", "Call 555.123.4567 please.", "555.123.4567"},
		{"seven digits", "My number is 123-4567.", "123-4567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ExtractPersonalInfo(tt.text, "")
			assert.Equal(t, tt.want, info.Phone)
		})
	}
}

func TestExtractPersonalInfo_Location(t *testing.T) {
	info := ExtractPersonalInfo("I am based in San Francisco and open to hybrid roles.", "")
	assert.Equal(t, "San Francisco", info.Location)
}

func TestExtractPersonalInfo_Defaults(t *testing.T) {
	info := ExtractPersonalInfo("nothing useful here", "")
	assert.Equal(t, DefaultName, info.Name)
	assert.Equal(t, DefaultEmail, info.Email)
	assert.Equal(t, DefaultPhone, info.Phone)
	assert.Empty(t, info.Location)
}

func TestExtractPersonalInfo_EmptyInput(t *testing.T) {
	info := ExtractPersonalInfo("", "")
	assert.Equal(t, DefaultName, info.Name)
	assert.Equal(t, DefaultEmail, info.Email)
	assert.Equal(t, DefaultPhone, info.Phone)
}
