package basesvc

import (
	"testing"

	"github.com/Soybean501/clipvox-ai/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToUpdateData_WrapsPlainMapInSet(t *testing.T) {
	update, err := ToUpdateData(map[string]interface{}{"title": "Ocean"})
	require.NoError(t, err)
	assert.Equal(t, "Ocean", update.Set["title"])
	assert.Nil(t, update.Unset)
}

func TestToUpdateData_KeepsOperators(t *testing.T) {
	update, err := ToUpdateData(bson.M{
		"$set":   bson.M{"status": "ready"},
		"$unset": bson.M{"voice": ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "ready", update.Set["status"])
	assert.Contains(t, update.Unset, "voice")
}

func TestToUpdateData_PassesThroughPointer(t *testing.T) {
	in := &UpdateData{Set: map[string]interface{}{"a": 1}}
	out, err := ToUpdateData(in)
	require.NoError(t, err)
	assert.Same(t, in, out)
}

func TestNormalizePage(t *testing.T) {
	page, limit, skip := NormalizePage(0, 0)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(10), limit)
	assert.Equal(t, int64(0), skip)

	page, limit, skip = NormalizePage(3, 20)
	assert.Equal(t, int64(3), page)
	assert.Equal(t, int64(20), limit)
	assert.Equal(t, int64(40), skip)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(2), TotalPages(11, 10))
}

func TestInsertDocument_DropsEmptyStringsAndStamps(t *testing.T) {
	type user struct {
		ID     primitive.ObjectID `bson:"_id,omitempty"`
		Email  string             `bson:"email"`
		Phone  string             `bson:"phone"`
		Active bool               `bson:"active"`
	}

	doc, err := insertDocument(user{Email: "a@b.co", Active: false}, 1700000000000)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", doc["email"])
	assert.NotContains(t, doc, "phone")
	assert.NotContains(t, doc, "_id")
	assert.Equal(t, false, doc["active"])
	assert.Equal(t, int64(1700000000000), doc["createdAt"])
	assert.Equal(t, int64(1700000000000), doc["updatedAt"])
}

func TestInsertDocument_RejectsNonDocument(t *testing.T) {
	_, err := insertDocument(42, 1)
	assert.ErrorIs(t, err, common.ErrInvalidFormat)
}
