package scriptsvc

import (
	"context"
	"errors"

	"github.com/Soybean501/clipvox-ai/internal/ai"
	models "github.com/Soybean501/clipvox-ai/internal/api/script/models"
	"github.com/Soybean501/clipvox-ai/internal/common"
	"github.com/Soybean501/clipvox-ai/internal/logger"
	"github.com/Soybean501/clipvox-ai/internal/storage"
	"github.com/Soybean501/clipvox-ai/internal/utility"
	"github.com/Soybean501/clipvox-ai/internal/voice"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoiceProvider là nhà cung cấp TTS ghi vào ScriptVoice
const VoiceProvider = "openai"

// ListVoices trả về danh mục giọng đọc
func (s *ScriptService) ListVoices() []voice.Voice {
	if s.voices == nil {
		return []voice.Voice{}
	}
	return s.voices.List()
}

// GetVoice trả về kịch bản có giọng đọc; ErrVoiceNotFound khi chưa tạo
func (s *ScriptService) GetVoice(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Script, error) {
	script, err := s.scripts.FindOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if script.Voice == nil {
		return nil, common.ErrVoiceNotFound
	}
	return script, nil
}

// SynthesizeVoice tạo (hoặc thay) giọng đọc cho nội dung hiện tại.
// created = true khi kịch bản chưa có giọng đọc trước đó.
func (s *ScriptService) SynthesizeVoice(ctx context.Context, ownerID, id primitive.ObjectID, voiceID string) (*models.Script, bool, error) {
	script, err := s.scripts.FindOwned(ctx, ownerID, id)
	if err != nil {
		return nil, false, err
	}
	if !script.HasContent() {
		return nil, false, common.ErrScriptEmpty
	}

	var selected voice.Voice
	ok := false
	if s.voices != nil {
		selected, ok = s.voices.Get(voiceID)
	}
	if !ok {
		return nil, false, common.ErrVoiceUnsupported
	}

	speech, err := s.synthesizer.Synthesize(ctx, script.Content, selected)
	if err != nil {
		scriptLog(ctx).WithError(err).WithField("script_id", id.Hex()).Error("Tổng hợp giọng đọc thất bại")
		return nil, false, common.NewSpeechError(err)
	}
	contentType := speech.ContentType
	if contentType == "" {
		contentType = ai.AudioFormatMP3
	}

	key := storage.NewAudioKey(script.ID.Hex())
	if err := s.audio.Put(ctx, key, storage.Audio{Data: speech.Audio, ContentType: contentType}); err != nil {
		return nil, false, common.NewStorageError(err)
	}

	previous := script.Voice
	now := s.now().UnixMilli()
	createdAt := now
	if previous != nil && previous.CreatedAt > 0 {
		createdAt = previous.CreatedAt
	}
	script.Voice = &models.ScriptVoice{
		Provider:    VoiceProvider,
		VoiceID:     selected.ID,
		VoiceName:   selected.Title,
		AudioFormat: contentType,
		AudioKey:    key,
		AudioBytes:  int64(len(speech.Audio)),
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	}

	saved, err := s.scripts.Save(ctx, script)
	if err != nil {
		// Không để lại audio mồ côi
		if delErr := s.audio.Delete(ctx, key); delErr != nil {
			scriptLog(ctx).WithError(delErr).WithField("audio_key", key).Warn("Không xóa được audio vừa tạo")
		}
		return nil, false, err
	}

	if previous != nil && previous.AudioKey != "" && previous.AudioKey != key {
		if err := s.audio.Delete(ctx, previous.AudioKey); err != nil {
			scriptLog(ctx).WithError(err).WithField("audio_key", previous.AudioKey).Warn("Không xóa được audio cũ")
		}
	}

	logger.GetAuditLogger().WithFields(logrus.Fields{
		"user_id":    ownerID.Hex(),
		"script_id":  id.Hex(),
		"voice_id":   selected.ID,
		"audio_size": utility.FormatBytes(uint64(len(speech.Audio))),
		"action":     "script.voice",
	}).Info("Tạo giọng đọc")
	return saved, previous == nil, nil
}

// VoiceAudio đọc file âm thanh của giọng đọc hiện tại
func (s *ScriptService) VoiceAudio(ctx context.Context, ownerID, id primitive.ObjectID) (*storage.Audio, error) {
	script, err := s.GetVoice(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	audio, err := s.audio.Get(ctx, script.Voice.AudioKey)
	if err != nil {
		if errors.Is(err, storage.ErrAudioNotFound) {
			return nil, common.ErrVoiceNotFound
		}
		return nil, common.NewStorageError(err)
	}
	if audio.ContentType == "" {
		audio.ContentType = script.Voice.AudioFormat
	}
	return audio, nil
}
