// Package projectsvc - nghiệp vụ dự án: CRUD theo owner, xóa dự án kéo theo kịch bản.
package projectsvc

import (
	"context"
	"strings"

	basemodels "github.com/Soybean501/clipvox-ai/internal/api/base/models"
	projectdto "github.com/Soybean501/clipvox-ai/internal/api/project/dto"
	models "github.com/Soybean501/clipvox-ai/internal/api/project/models"
	"github.com/Soybean501/clipvox-ai/internal/common"
	"github.com/Soybean501/clipvox-ai/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScriptCleaner xóa kịch bản (và audio) của một dự án
type ScriptCleaner interface {
	DeleteByProject(ctx context.Context, ownerID, projectID primitive.ObjectID) (int64, error)
}

// ProjectService xử lý nghiệp vụ dự án
type ProjectService struct {
	repo    ProjectRepository
	scripts ScriptCleaner
}

// NewProjectService tạo mới ProjectService
func NewProjectService(repo ProjectRepository, scripts ScriptCleaner) *ProjectService {
	return &ProjectService{repo: repo, scripts: scripts}
}

// List liệt kê dự án của owner theo trang
func (s *ProjectService) List(ctx context.Context, ownerID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[models.Project], error) {
	return s.repo.ListOwned(ctx, ownerID, page, limit)
}

// Create tạo dự án mới
func (s *ProjectService) Create(ctx context.Context, ownerID primitive.ObjectID, input *projectdto.ProjectCreateInput) (*models.Project, error) {
	tags := normalizeTags(input.Tags)
	project, err := s.repo.Create(ctx, models.Project{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Tags:        tags,
	})
	if err != nil {
		return nil, err
	}

	logger.GetAuditLogger().WithFields(logrus.Fields{
		"user_id":    ownerID.Hex(),
		"project_id": project.ID.Hex(),
		"action":     "project.create",
	}).Info("Tạo dự án")
	return project, nil
}

// Get lấy dự án của owner
func (s *ProjectService) Get(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Project, error) {
	return s.repo.FindOwned(ctx, ownerID, id)
}

// Update cập nhật một phần dự án; cần ít nhất một field
func (s *ProjectService) Update(ctx context.Context, ownerID, id primitive.ObjectID, input *projectdto.ProjectUpdateInput) (*models.Project, error) {
	if input.IsEmpty() {
		return nil, common.ErrNoChanges
	}

	set := map[string]interface{}{}
	if input.Title != nil {
		set["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		set["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Tags != nil {
		set["tags"] = normalizeTags(input.Tags)
	}
	return s.repo.UpdateOwned(ctx, ownerID, id, set)
}

// Delete xóa dự án cùng các kịch bản của nó
func (s *ProjectService) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	if _, err := s.repo.FindOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteOwned(ctx, ownerID, id); err != nil {
		return err
	}

	removed, err := s.scripts.DeleteByProject(ctx, ownerID, id)
	if err != nil {
		logger.WithContext(ctx).WithError(err).WithField("project_id", id.Hex()).Error("Không xóa được kịch bản của dự án")
		return err
	}

	logger.GetAuditLogger().WithFields(logrus.Fields{
		"user_id":         ownerID.Hex(),
		"project_id":      id.Hex(),
		"scripts_removed": removed,
		"action":          "project.delete",
	}).Info("Xóa dự án")
	return nil
}

// normalizeTags bỏ khoảng trắng thừa; luôn trả về slice khác nil
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}
