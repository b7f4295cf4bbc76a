// Package scriptsvc - quy trình sinh kịch bản: tạo, sinh bằng mô hình ngôn ngữ,
// chỉnh sửa, ước lượng thời lượng, export và giọng đọc.
package scriptsvc

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/Soybean501/clipvox-ai/internal/ai"
	projectmodels "github.com/Soybean501/clipvox-ai/internal/api/project/models"
	scriptdto "github.com/Soybean501/clipvox-ai/internal/api/script/dto"
	models "github.com/Soybean501/clipvox-ai/internal/api/script/models"
	"github.com/Soybean501/clipvox-ai/internal/common"
	"github.com/Soybean501/clipvox-ai/internal/logger"
	"github.com/Soybean501/clipvox-ai/internal/pacing"
	"github.com/Soybean501/clipvox-ai/internal/ratelimit"
	"github.com/Soybean501/clipvox-ai/internal/storage"
	"github.com/Soybean501/clipvox-ai/internal/voice"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// persistTimeout giới hạn lần ghi trạng thái cuối của một lần sinh
	persistTimeout = 10 * time.Second
	// unboundedStaleAfter dùng khi không cấu hình GenerationTimeout
	unboundedStaleAfter = 30 * time.Minute
)

// ProjectLookup tìm dự án thuộc về owner
type ProjectLookup interface {
	FindOwned(ctx context.Context, ownerID, id primitive.ObjectID) (*projectmodels.Project, error)
}

// Dependencies là các collaborator của ScriptService
type Dependencies struct {
	Scripts     ScriptRepository
	Projects    ProjectLookup
	Generator   ai.ScriptGenerator
	Synthesizer ai.SpeechSynthesizer
	Audio       storage.AudioStore
	Limiter     ratelimit.Limiter
	Voices      *voice.Catalog

	RateMax           int           // số lần tạo/sinh lại tối đa trong RateWindow (<= 0 = không giới hạn)
	RateWindow        time.Duration // cửa sổ đếm của RateMax
	GenerationTimeout time.Duration // <= 0 = chỉ theo context của request
	Now               func() time.Time
}

// ScriptService xử lý nghiệp vụ kịch bản
type ScriptService struct {
	scripts     ScriptRepository
	projects    ProjectLookup
	generator   ai.ScriptGenerator
	synthesizer ai.SpeechSynthesizer
	audio       storage.AudioStore
	limiter     ratelimit.Limiter
	voices      *voice.Catalog

	rateMax           int
	rateWindow        time.Duration
	generationTimeout time.Duration
	now               func() time.Time
}

// NewScriptService tạo mới ScriptService
func NewScriptService(deps Dependencies) *ScriptService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ScriptService{
		scripts:           deps.Scripts,
		projects:          deps.Projects,
		generator:         deps.Generator,
		synthesizer:       deps.Synthesizer,
		audio:             deps.Audio,
		limiter:           deps.Limiter,
		voices:            deps.Voices,
		rateMax:           deps.RateMax,
		rateWindow:        deps.RateWindow,
		generationTimeout: deps.GenerationTimeout,
		now:               now,
	}
}

func scriptLog(ctx context.Context) *logrus.Entry {
	return logger.WithContext(ctx).WithField("module", "script")
}

// checkRateLimit áp dụng giới hạn tạo/sinh lại theo user.
// Lỗi của bộ đếm không chặn request, chỉ ghi cảnh báo.
func (s *ScriptService) checkRateLimit(ctx context.Context, ownerID primitive.ObjectID) error {
	if s.limiter == nil || s.rateMax <= 0 {
		return nil
	}
	key := "scripts:" + ownerID.Hex()
	result, err := s.limiter.Check(ctx, key, s.rateMax, s.rateWindow)
	if err != nil {
		scriptLog(ctx).WithError(err).WithField("key", key).Warn("Không kiểm tra được rate limit, cho phép request")
		return nil
	}
	if !result.Allowed {
		retryAfter := int64(math.Ceil(result.RetryAfter.Seconds()))
		scriptLog(ctx).WithFields(logrus.Fields{"key": key, "retry_after": retryAfter}).Info("Vượt giới hạn tạo kịch bản")
		return common.NewError(
			common.ErrCodeBusinessRateLimit,
			common.MsgTooManyRequests,
			common.StatusTooManyRequests,
			map[string]int64{"retryAfterSeconds": retryAfter},
		)
	}
	return nil
}

// Create tạo kịch bản cho dự án rồi chạy một lần sinh nội dung
func (s *ScriptService) Create(ctx context.Context, ownerID primitive.ObjectID, input *scriptdto.ScriptCreateInput) (*models.Script, error) {
	if err := s.checkRateLimit(ctx, ownerID); err != nil {
		return nil, err
	}

	projectID, err := primitive.ObjectIDFromHex(input.ProjectID)
	if err != nil {
		return nil, common.ErrNotFound
	}
	if _, err := s.projects.FindOwned(ctx, ownerID, projectID); err != nil {
		return nil, err
	}

	exists, err := s.scripts.ExistsForProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrScriptExists
	}

	tone := strings.TrimSpace(input.Tone)
	if tone == "" {
		tone = pacing.ToneEducational
	}
	style := strings.TrimSpace(input.Style)

	status, err := models.StatusDraft.Transition(models.StatusGenerating)
	if err != nil {
		return nil, err
	}

	script, err := s.scripts.Create(ctx, models.Script{
		OwnerID:         ownerID,
		ProjectID:       projectID,
		Topic:           strings.TrimSpace(input.Topic),
		Tone:            tone,
		Style:           style,
		LengthMinutes:   input.LengthMinutes,
		Chapters:        input.Chapters,
		Outline:         []string{},
		TargetWordCount: pacing.TargetWordCount(float64(input.LengthMinutes), tone, style),
		Status:          status,
	})
	if err != nil {
		return nil, err
	}

	logger.GetAuditLogger().WithFields(logrus.Fields{
		"user_id":    ownerID.Hex(),
		"project_id": projectID.Hex(),
		"script_id":  script.ID.Hex(),
		"action":     "script.create",
	}).Info("Tạo kịch bản")

	return s.generate(ctx, script)
}

// Regenerate sinh lại nội dung cho kịch bản đang ready hoặc error, hoặc generating đã quá hạn
func (s *ScriptService) Regenerate(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Script, error) {
	if err := s.checkRateLimit(ctx, ownerID); err != nil {
		return nil, err
	}

	script, err := s.scripts.FindOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if script.Status == models.StatusGenerating && s.isStale(script) {
		// Lần sinh trước không ghi được kết quả; coi như đã thất bại
		scriptLog(ctx).WithFields(logrus.Fields{
			"script_id":  script.ID.Hex(),
			"updated_at": script.UpdatedAt,
		}).Warn("Kịch bản kẹt ở generating, cho phép sinh lại")
		script.Status = models.StatusError
	}
	status, err := script.Status.Transition(models.StatusGenerating)
	if err != nil {
		return nil, err
	}
	script.Status = status
	script.Error = ""

	script, err = s.scripts.Save(ctx, script)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, script)
}

// generate chạy một lần sinh cho kịch bản đang ở trạng thái generating.
// Kết quả (ready hoặc error) luôn được ghi bằng context tách khỏi request
// để kịch bản không bị kẹt ở generating khi client hủy request.
func (s *ScriptService) generate(ctx context.Context, script *models.Script) (*models.Script, error) {
	genCtx := ctx
	if s.generationTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.generationTimeout)
		defer cancel()
	}

	entry := scriptLog(ctx).WithField("script_id", script.ID.Hex())
	entry.WithField("status", script.Status).Info("Bắt đầu sinh kịch bản")

	started := time.Now()
	result, genErr := s.generator.Generate(genCtx, ai.GenerateRequest{
		Topic:           script.Topic,
		Tone:            script.Tone,
		Style:           script.Style,
		Chapters:        script.Chapters,
		TargetWordCount: script.TargetWordCount,
	})
	if genErr == nil && (result == nil || strings.TrimSpace(result.Content) == "") {
		genErr = errors.New(common.MsgGenerationFailed)
	}

	if genErr != nil {
		message, err := s.markError(entry, script, genErr)
		if err != nil {
			return nil, err
		}
		entry.WithError(genErr).WithField("status", models.StatusError).Warn("Sinh kịch bản thất bại")
		return nil, common.NewGenerationError(message, genErr)
	}

	previous := *script
	status, err := script.Status.Transition(models.StatusReady)
	if err != nil {
		return nil, err
	}
	script.Status = status
	script.Error = ""
	script.Content = result.Content
	script.Outline = result.Outline
	if script.Outline == nil {
		script.Outline = pacing.ExtractOutline(result.Content)
	}
	script.ActualWordCount = result.ActualWordCount
	if script.ActualWordCount == 0 {
		script.ActualWordCount = pacing.CountWords(result.Content)
	}

	saved, err := s.persist(script)
	if err != nil {
		// Bản ghi trong DB vẫn là generating; ghi error với nội dung cũ để có thể sinh lại
		entry.WithError(err).Error("Không ghi được kết quả sinh kịch bản")
		if _, markErr := s.markError(entry, &previous, err); markErr != nil {
			return nil, markErr
		}
		return nil, err
	}

	logger.GetPerformanceLogger().WithFields(logrus.Fields{
		"script_id":   script.ID.Hex(),
		"duration_ms": time.Since(started).Milliseconds(),
		"words":       script.ActualWordCount,
		"target":      script.TargetWordCount,
	}).Info("Sinh kịch bản xong")
	entry.WithField("status", saved.Status).Info("Kịch bản sẵn sàng")
	return saved, nil
}

// markError chuyển kịch bản đang generating sang error với message của cause.
// Lỗi khi ghi chỉ được log; message trả về là message đã lưu.
func (s *ScriptService) markError(entry *logrus.Entry, script *models.Script, cause error) (string, error) {
	status, err := script.Status.Transition(models.StatusError)
	if err != nil {
		return "", err
	}
	message := strings.TrimSpace(cause.Error())
	if message == "" {
		message = common.MsgGenerationFailed
	}
	script.Status = status
	script.Error = message

	if _, err := s.persist(script); err != nil {
		entry.WithError(err).Error("Không ghi được trạng thái lỗi của kịch bản")
	}
	return message, nil
}

// isStale trả về true khi kịch bản generating không được cập nhật lâu hơn
// thời gian tối đa của một lần sinh cộng lần ghi kết quả
func (s *ScriptService) isStale(script *models.Script) bool {
	limit := unboundedStaleAfter
	if s.generationTimeout > 0 {
		limit = s.generationTimeout + persistTimeout
	}
	return s.now().Sub(time.UnixMilli(script.UpdatedAt)) > limit
}

func (s *ScriptService) persist(script *models.Script) (*models.Script, error) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	return s.scripts.Save(ctx, script)
}

// Get lấy kịch bản của owner
func (s *ScriptService) Get(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Script, error) {
	return s.scripts.FindOwned(ctx, ownerID, id)
}

// ListByProject liệt kê kịch bản của một dự án thuộc owner
func (s *ScriptService) ListByProject(ctx context.Context, ownerID, projectID primitive.ObjectID) ([]models.Script, error) {
	return s.scripts.ListByProject(ctx, ownerID, projectID)
}

// Update cập nhật một phần brief hoặc nội dung; không đổi trạng thái
func (s *ScriptService) Update(ctx context.Context, ownerID, id primitive.ObjectID, input *scriptdto.ScriptUpdateInput) (*models.Script, error) {
	if input.IsEmpty() {
		return nil, common.ErrNoChanges
	}

	script, err := s.scripts.FindOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Topic != nil {
		script.Topic = strings.TrimSpace(*input.Topic)
	}
	if input.Chapters != nil {
		script.Chapters = *input.Chapters
	}

	// Số từ mục tiêu phụ thuộc tone, style và thời lượng
	if input.Tone != nil || input.Style != nil || input.LengthMinutes != nil {
		if input.Tone != nil {
			script.Tone = strings.TrimSpace(*input.Tone)
		}
		if input.Style != nil {
			script.Style = strings.TrimSpace(*input.Style)
		}
		if input.LengthMinutes != nil {
			script.LengthMinutes = *input.LengthMinutes
		}
		script.TargetWordCount = pacing.TargetWordCount(float64(script.LengthMinutes), script.Tone, script.Style)
	}

	if input.Content != nil {
		script.Content = *input.Content
		script.ActualWordCount = pacing.CountWords(script.Content)
		script.Outline = pacing.ExtractOutline(script.Content)
	}

	return s.scripts.Save(ctx, script)
}

// Estimate tính lại số từ mục tiêu và thực tế từ brief/nội dung đang lưu.
// Chỉ ghi khi số liệu thay đổi nên gọi nhiều lần cho cùng kết quả.
func (s *ScriptService) Estimate(ctx context.Context, ownerID, id primitive.ObjectID) (*pacing.Estimate, error) {
	script, err := s.scripts.FindOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	target := pacing.TargetWordCount(float64(script.LengthMinutes), script.Tone, script.Style)
	actual := pacing.CountWords(script.Content)
	if target != script.TargetWordCount || actual != script.ActualWordCount {
		script.TargetWordCount = target
		script.ActualWordCount = actual
		if _, err := s.scripts.Save(ctx, script); err != nil {
			return nil, err
		}
	}

	estimate := pacing.NewEstimate(target, actual)
	return &estimate, nil
}

// Delete xóa kịch bản và audio của nó
func (s *ScriptService) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	script, err := s.scripts.FindOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.scripts.DeleteOwned(ctx, ownerID, id); err != nil {
		return err
	}
	s.removeAudio(ctx, script)

	logger.GetAuditLogger().WithFields(logrus.Fields{
		"user_id":   ownerID.Hex(),
		"script_id": id.Hex(),
		"action":    "script.delete",
	}).Info("Xóa kịch bản")
	return nil
}

// DeleteByProject xóa mọi kịch bản của dự án cùng audio của chúng
func (s *ScriptService) DeleteByProject(ctx context.Context, ownerID, projectID primitive.ObjectID) (int64, error) {
	scripts, err := s.scripts.ListByProject(ctx, ownerID, projectID)
	if err != nil {
		return 0, err
	}
	removed, err := s.scripts.DeleteByProject(ctx, ownerID, projectID)
	if err != nil {
		return 0, err
	}
	for i := range scripts {
		s.removeAudio(ctx, &scripts[i])
	}
	return removed, nil
}

// removeAudio xóa audio của kịch bản; lỗi chỉ được ghi log
func (s *ScriptService) removeAudio(ctx context.Context, script *models.Script) {
	if s.audio == nil || script.Voice == nil || script.Voice.AudioKey == "" {
		return
	}
	if err := s.audio.Delete(ctx, script.Voice.AudioKey); err != nil {
		scriptLog(ctx).WithError(err).WithFields(logrus.Fields{
			"script_id": script.ID.Hex(),
			"audio_key": script.Voice.AudioKey,
		}).Warn("Không xóa được audio của kịch bản")
	}
}
