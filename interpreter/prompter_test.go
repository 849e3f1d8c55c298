package interpreter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/effect_ive_gen/effects"
)

var (
	textPrompt    = effects.Prompt{Name: "name", Type: effects.PromptText, Message: "Name?", Default: "demo"}
	confirmPrompt = effects.Prompt{Name: "git", Type: effects.PromptConfirm, Message: "Init git?", Default: true}
	selectPrompt  = effects.Prompt{Name: "db", Type: effects.PromptSelect, Message: "Database?", Options: []string{"pg", "sqlite"}}
	multiPrompt   = effects.Prompt{Name: "features", Type: effects.PromptMultiselect, Message: "Features?", Options: []string{"auth", "api"}}
)

func TestDefaultAnswer(t *testing.T) {
	assert.Equal(t, "demo", defaultAnswer(textPrompt))
	assert.Equal(t, true, defaultAnswer(confirmPrompt))
	assert.Equal(t, "pg", defaultAnswer(selectPrompt))
	assert.Equal(t, []string{}, defaultAnswer(multiPrompt))
}

func TestStaticPrompter_CoercesAnswers(t *testing.T) {
	p := StaticPrompter{
		"git":      "no",
		"db":       "sqlite",
		"features": []any{"api"},
	}
	ctx := context.Background()

	got, err := p.Prompt(ctx, confirmPrompt)
	require.NoError(t, err)
	assert.Equal(t, false, got)

	got, err = p.Prompt(ctx, selectPrompt)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", got)

	got, err = p.Prompt(ctx, multiPrompt)
	require.NoError(t, err)
	assert.Equal(t, []string{"api"}, got)

	got, err = p.Prompt(ctx, textPrompt)
	require.NoError(t, err)
	assert.Equal(t, "demo", got)
}

func TestStaticPrompter_RejectsInvalidAnswers(t *testing.T) {
	ctx := context.Background()
	cases := map[string]struct {
		answers StaticPrompter
		prompt  effects.Prompt
	}{
		"select outside options":      {StaticPrompter{"db": "mongo"}, selectPrompt},
		"multiselect outside options": {StaticPrompter{"features": []string{"ui"}}, multiPrompt},
		"confirm gibberish":           {StaticPrompter{"git": "perhaps"}, confirmPrompt},
		"confirm wrong type":          {StaticPrompter{"git": 3}, confirmPrompt},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tc.answers.Prompt(ctx, tc.prompt)
			assert.Error(t, err)
		})
	}
}

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	p := &LinePrompter{In: strings.NewReader("my-app\n\nauth, api\n"), Out: &out}
	ctx := context.Background()

	got, err := p.Prompt(ctx, textPrompt)
	require.NoError(t, err)
	assert.Equal(t, "my-app", got)

	got, err = p.Prompt(ctx, confirmPrompt)
	require.NoError(t, err)
	assert.Equal(t, true, got, "blank line takes the default")

	got, err = p.Prompt(ctx, multiPrompt)
	require.NoError(t, err)
	assert.Equal(t, []string{"auth", "api"}, got)

	got, err = p.Prompt(ctx, selectPrompt)
	require.NoError(t, err)
	assert.Equal(t, "pg", got, "end of input takes the default")

	assert.Contains(t, out.String(), "Name? (demo): ")
	assert.Contains(t, out.String(), "Database? [pg, sqlite] (pg): ")
}
