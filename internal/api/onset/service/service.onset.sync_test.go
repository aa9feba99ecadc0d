package onsetsvc

import (
	"testing"

	onsetmodels "onset_studio/internal/api/onset/models"
	"onset_studio/internal/draft"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkShotComplete(t *testing.T) {
	// Draft shot-scene-book đúng hình dạng thật: shots nằm trong head["shots"]
	v := draft.Decode(`{"shots":[{"id":"s1","scene":"12A","shot":"3","status":"PLANNED"},{"id":"s2","status":"PLANNED"}]}`)

	shot, err := markShotComplete(v, "s1", "dit@set.film")
	require.NoError(t, err)

	assert.Equal(t, onsetmodels.ShotStatusComplete, shot["status"])
	assert.Equal(t, "dit@set.film", shot["completedBy"])
	assert.NotNil(t, shot["completedAt"])
	assert.Equal(t, "12A", shot["scene"])

	// Sửa in-place trên head — shot còn lại giữ nguyên
	shots := v.Head["shots"].([]interface{})
	assert.Equal(t, onsetmodels.ShotStatusComplete, shots[0].(map[string]interface{})["status"])
	assert.Equal(t, "PLANNED", shots[1].(map[string]interface{})["status"])
}

func TestMarkShotCompleteShotNotFound(t *testing.T) {
	v := draft.Decode(`{"shots":[{"id":"s1","status":"PLANNED"}]}`)

	_, err := markShotComplete(v, "khong-ton-tai", "dit@set.film")
	assert.Error(t, err)

	// Head không có shots cũng trả lỗi thay vì panic
	empty := draft.Decode(`{"title":"Ngày 3"}`)
	_, err = markShotComplete(empty, "s1", "dit@set.film")
	assert.Error(t, err)
}
