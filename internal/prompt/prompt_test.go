package prompt

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "user", []string{"user"}},
		{"double space and trailing", "user  billing ", []string{"user", "billing"}},
		{"tabs and newlines", "\tuser\nbilling\t\tauth", []string{"user", "billing", "auth"}},
		{"leading whitespace", "   user", []string{"user"}},
		{"empty", "", []string{}},
		{"only whitespace", "  \t ", []string{}},
		{"order preserved", "c b a", []string{"c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.input))
		})
	}
}

func TestScripted_AskText(t *testing.T) {
	p := NewScripted("billing", "", "  spaced  ")

	got, err := p.AskText("Module name:", "")
	require.NoError(t, err)
	assert.Equal(t, "billing", got)

	// An empty answer accepts the default.
	got, err = p.AskText("Project name:", "my-app")
	require.NoError(t, err)
	assert.Equal(t, "my-app", got)

	got, err = p.AskText("Path:", ".")
	require.NoError(t, err)
	assert.Equal(t, "spaced", got)

	assert.Equal(t, []string{"Module name:", "Project name:", "Path:"}, p.Asked)
	assert.Equal(t, 0, p.Remaining())
}

func TestScripted_AskChoice(t *testing.T) {
	choices := []string{"typeorm", "prisma"}

	t.Run("explicit choice", func(t *testing.T) {
		got, err := NewScripted("prisma").AskChoice("ORM:", choices, "typeorm")
		require.NoError(t, err)
		assert.Equal(t, "prisma", got)
	})

	t.Run("default", func(t *testing.T) {
		got, err := NewScripted("").AskChoice("ORM:", choices, "typeorm")
		require.NoError(t, err)
		assert.Equal(t, "typeorm", got)
	})

	t.Run("not a choice", func(t *testing.T) {
		_, err := NewScripted("sequelize").AskChoice("ORM:", choices, "typeorm")
		assert.Error(t, err)
	})
}

func TestScripted_AskConfirm(t *testing.T) {
	tests := []struct {
		answer   string
		def      bool
		want     bool
		hasError bool
	}{
		{"", true, true, false},
		{"", false, false, false},
		{"y", false, true, false},
		{"YES", false, true, false},
		{"n", true, false, false},
		{"No", true, false, false},
		{"maybe", true, false, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q/%v", tt.answer, tt.def), func(t *testing.T) {
			got, err := NewScripted(tt.answer).AskConfirm("Add Swagger?", tt.def)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScripted_AskList(t *testing.T) {
	got, err := NewScripted("user  billing ").AskList("Modules:", "user")
	require.NoError(t, err)
	assert.Equal(t, []string{"user", "billing"}, got)

	got, err = NewScripted("").AskList("Modules:", "user")
	require.NoError(t, err)
	assert.Equal(t, []string{"user"}, got)

	got, err = NewScripted("   ").AskList("Modules:", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScripted_Exhausted(t *testing.T) {
	p := NewScripted()

	_, err := p.AskText("Module name:", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMoreAnswers))
	assert.Contains(t, err.Error(), "Module name:")
}

// TestScripted_ImplementsPrompter is a compile-time style check kept as a
// test so both implementations stay in sync with the interface.
func TestScripted_ImplementsPrompter(t *testing.T) {
	var _ Prompter = NewScripted()
	var _ Prompter = NewSurvey()
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, ErrCancelled, translate(terminal.InterruptErr))
	assert.Equal(t, ErrCancelled, translate(fmt.Errorf("wrapped: %w", terminal.InterruptErr)))

	other := errors.New("EOF")
	assert.Equal(t, other, translate(other))
}
