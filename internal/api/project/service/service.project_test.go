package projectsvc

import (
	"context"
	"errors"
	"os"
	"testing"

	basemodels "github.com/Soybean501/clipvox-ai/internal/api/base/models"
	projectdto "github.com/Soybean501/clipvox-ai/internal/api/project/dto"
	models "github.com/Soybean501/clipvox-ai/internal/api/project/models"
	"github.com/Soybean501/clipvox-ai/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	os.Setenv("LOG_OUTPUT", "stdout")
	os.Exit(m.Run())
}

type memoryProjects struct {
	items map[primitive.ObjectID]models.Project
}

func (m *memoryProjects) Create(_ context.Context, p models.Project) (*models.Project, error) {
	p.ID = primitive.NewObjectID()
	m.items[p.ID] = p
	return &p, nil
}

func (m *memoryProjects) FindOwned(_ context.Context, ownerID, id primitive.ObjectID) (*models.Project, error) {
	p, ok := m.items[id]
	if !ok || p.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	return &p, nil
}

func (m *memoryProjects) ListOwned(_ context.Context, ownerID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[models.Project], error) {
	items := []models.Project{}
	for _, p := range m.items {
		if p.OwnerID == ownerID {
			items = append(items, p)
		}
	}
	return &basemodels.PaginateResult[models.Project]{Page: page, Limit: limit, Items: items, ItemCount: int64(len(items)), Total: int64(len(items))}, nil
}

func (m *memoryProjects) UpdateOwned(ctx context.Context, ownerID, id primitive.ObjectID, set map[string]interface{}) (*models.Project, error) {
	p, err := m.FindOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if v, ok := set["title"].(string); ok {
		p.Title = v
	}
	if v, ok := set["description"].(string); ok {
		p.Description = v
	}
	if v, ok := set["tags"].([]string); ok {
		p.Tags = v
	}
	m.items[id] = *p
	return p, nil
}

func (m *memoryProjects) DeleteOwned(_ context.Context, ownerID, id primitive.ObjectID) error {
	p, ok := m.items[id]
	if !ok || p.OwnerID != ownerID {
		return common.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type recordingCleaner struct {
	calls []primitive.ObjectID
	err   error
}

func (r *recordingCleaner) DeleteByProject(_ context.Context, _, projectID primitive.ObjectID) (int64, error) {
	r.calls = append(r.calls, projectID)
	return 2, r.err
}

func newService() (*ProjectService, *memoryProjects, *recordingCleaner) {
	repo := &memoryProjects{items: map[primitive.ObjectID]models.Project{}}
	cleaner := &recordingCleaner{}
	return NewProjectService(repo, cleaner), repo, cleaner
}

func TestCreate_NormalizesFields(t *testing.T) {
	svc, _, _ := newService()
	owner := primitive.NewObjectID()

	p, err := svc.Create(context.Background(), owner, &projectdto.ProjectCreateInput{
		Title: "  My channel ",
		Tags:  []string{" history ", "", "tea"},
	})
	require.NoError(t, err)
	assert.Equal(t, "My channel", p.Title)
	assert.Equal(t, []string{"history", "tea"}, p.Tags)
	assert.Equal(t, owner, p.OwnerID)
}

func TestUpdate_RequiresAField(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.Update(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), &projectdto.ProjectUpdateInput{})
	assert.ErrorIs(t, err, common.ErrNoChanges)
}

func TestUpdate_ForeignOwnerIsNotFound(t *testing.T) {
	svc, _, _ := newService()
	p, err := svc.Create(context.Background(), primitive.NewObjectID(), &projectdto.ProjectCreateInput{Title: "Owned"})
	require.NoError(t, err)

	title := "Hijacked"
	_, err = svc.Update(context.Background(), primitive.NewObjectID(), p.ID, &projectdto.ProjectUpdateInput{Title: &title})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete_CascadesToScripts(t *testing.T) {
	svc, repo, cleaner := newService()
	owner := primitive.NewObjectID()
	p, err := svc.Create(context.Background(), owner, &projectdto.ProjectCreateInput{Title: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), owner, p.ID))
	assert.Empty(t, repo.items)
	assert.Equal(t, []primitive.ObjectID{p.ID}, cleaner.calls)

	err = svc.Delete(context.Background(), owner, p.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Len(t, cleaner.calls, 1)
}

func TestDelete_ReportsCleanupFailure(t *testing.T) {
	svc, _, cleaner := newService()
	cleaner.err = errors.New("mongo down")
	owner := primitive.NewObjectID()
	p, err := svc.Create(context.Background(), owner, &projectdto.ProjectCreateInput{Title: "Doomed"})
	require.NoError(t, err)

	assert.Error(t, svc.Delete(context.Background(), owner, p.ID))
}

func TestList_OnlyOwnerProjects(t *testing.T) {
	svc, _, _ := newService()
	owner := primitive.NewObjectID()
	_, err := svc.Create(context.Background(), owner, &projectdto.ProjectCreateInput{Title: "Mine"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), primitive.NewObjectID(), &projectdto.ProjectCreateInput{Title: "Theirs"})
	require.NoError(t, err)

	result, err := svc.List(context.Background(), owner, 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Mine", result.Items[0].Title)
}
