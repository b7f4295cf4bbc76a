package scriptsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/Soybean501/clipvox-ai/internal/ai"
	scriptdto "github.com/Soybean501/clipvox-ai/internal/api/script/dto"
	models "github.com/Soybean501/clipvox-ai/internal/api/script/models"
	"github.com/Soybean501/clipvox-ai/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyScript(t *testing.T, f *fixture) *models.Script {
	t.Helper()
	script, err := f.service.Create(context.Background(), f.ownerID, createInput(f.projectID))
	require.NoError(t, err)
	return script
}

func TestSynthesizeVoice_CreatedThenReplaced(t *testing.T) {
	f := newFixture(t)
	script := readyScript(t, f)

	first, created, err := f.service.SynthesizeVoice(context.Background(), f.ownerID, script.ID, "aurora")
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, first.Voice)
	assert.Equal(t, "aurora", first.Voice.VoiceID)
	assert.Equal(t, VoiceProvider, first.Voice.Provider)
	assert.Equal(t, ai.AudioFormatMP3, first.Voice.AudioFormat)
	assert.Positive(t, first.Voice.AudioBytes)
	assert.Equal(t, 1, f.audio.len())

	second, created, err := f.service.SynthesizeVoice(context.Background(), f.ownerID, script.ID, "atlas")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "atlas", second.Voice.VoiceID)
	assert.Equal(t, first.Voice.CreatedAt, second.Voice.CreatedAt)
	assert.NotEqual(t, first.Voice.AudioKey, second.Voice.AudioKey)
	assert.Equal(t, 1, f.audio.len(), "audio cũ phải bị xóa")

	audio, err := f.service.VoiceAudio(context.Background(), f.ownerID, script.ID)
	require.NoError(t, err)
	assert.Equal(t, ai.AudioFormatMP3, audio.ContentType)
	assert.Contains(t, string(audio.Data), "ash:")
}

func TestSynthesizeVoice_Validation(t *testing.T) {
	f := newFixture(t)
	script := readyScript(t, f)

	_, _, err := f.service.SynthesizeVoice(context.Background(), f.ownerID, script.ID, "unknown")
	assert.ErrorIs(t, err, common.ErrVoiceUnsupported)

	_, err = f.service.Update(context.Background(), f.ownerID, script.ID, &scriptdto.ScriptUpdateInput{Content: strPtr("   ")})
	require.NoError(t, err)
	_, _, err = f.service.SynthesizeVoice(context.Background(), f.ownerID, script.ID, "aurora")
	assert.ErrorIs(t, err, common.ErrScriptEmpty)
	assert.Equal(t, 0, f.audio.len())
}

func TestSynthesizeVoice_ProviderFailure(t *testing.T) {
	f := newFixture(t, func(d *Dependencies) { d.Synthesizer = failingSynthesizer{} })
	script := readyScript(t, f)

	_, _, err := f.service.SynthesizeVoice(context.Background(), f.ownerID, script.ID, "ember")
	var appErr *common.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, common.StatusBadGateway, appErr.StatusCode)
	assert.Nil(t, f.scripts.stored(script.ID).Voice)
}

func TestGetVoice_NotFoundWithoutVoice(t *testing.T) {
	f := newFixture(t)
	script := readyScript(t, f)

	_, err := f.service.GetVoice(context.Background(), f.ownerID, script.ID)
	assert.ErrorIs(t, err, common.ErrVoiceNotFound)

	_, err = f.service.VoiceAudio(context.Background(), f.ownerID, script.ID)
	assert.ErrorIs(t, err, common.ErrVoiceNotFound)
}

func TestDelete_RemovesAudio(t *testing.T) {
	f := newFixture(t)
	script := readyScript(t, f)
	_, _, err := f.service.SynthesizeVoice(context.Background(), f.ownerID, script.ID, "aurora")
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(context.Background(), f.ownerID, script.ID))
	assert.Equal(t, 0, f.scripts.count())
	assert.Equal(t, 0, f.audio.len())

	err = f.service.Delete(context.Background(), f.ownerID, script.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteByProject_RemovesScriptsAndAudio(t *testing.T) {
	f := newFixture(t)
	script := readyScript(t, f)
	_, _, err := f.service.SynthesizeVoice(context.Background(), f.ownerID, script.ID, "ember")
	require.NoError(t, err)

	removed, err := f.service.DeleteByProject(context.Background(), f.ownerID, f.projectID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, 0, f.scripts.count())
	assert.Equal(t, 0, f.audio.len())
}

func TestListVoices(t *testing.T) {
	f := newFixture(t)
	voices := f.service.ListVoices()
	require.Len(t, voices, 3)
	assert.Equal(t, "aurora", voices[0].ID)
}
