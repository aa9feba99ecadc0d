package projectsvc

import (
	"encoding/json"
	"errors"
	"testing"

	projectmodels "onset_studio/internal/api/project/models"
	"onset_studio/internal/draft"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prependMutation(key string, withHistory bool, item map[string]interface{}) DraftMutation {
	return DraftMutation{
		DraftKey:    key,
		WithHistory: withHistory,
		Mutate: func(v *draft.Versioned) error {
			v.PrependItem(item)
			return nil
		},
	}
}

func decodeRaw(t *testing.T, phases map[string]projectmodels.Phase, phaseKey, draftKey string) (string, *draft.Versioned) {
	t.Helper()
	phase, ok := phases[phaseKey]
	require.True(t, ok)
	raw, ok := phase.Drafts[draftKey]
	require.True(t, ok)
	return raw, draft.Decode(raw)
}

func TestApplyDraftMutationsSynthesizesMissingPhaseAndDraft(t *testing.T) {
	phases, err := applyDraftMutations(nil, projectmodels.PhaseOnSet, []DraftMutation{
		prependMutation("dit-log", true, map[string]interface{}{"id": "e1", "roll": "A001"}),
	})
	require.NoError(t, err)

	raw, v := decodeRaw(t, phases, projectmodels.PhaseOnSet, "dit-log")
	assert.Equal(t, byte('['), raw[0])
	assert.Empty(t, v.History)
	require.Len(t, v.Items(), 1)
	assert.Equal(t, "On Set", phases[projectmodels.PhaseOnSet].Name)
}

func TestApplyDraftMutationsAppendOnBareObjectKeepsHistoryEmpty(t *testing.T) {
	phases := map[string]projectmodels.Phase{
		projectmodels.PhaseOnSet: {
			Name:   "On Set",
			Drafts: map[string]string{"dit-log": `{"items":[{"id":"old"}]}`},
		},
	}

	phases, err := applyDraftMutations(phases, projectmodels.PhaseOnSet, []DraftMutation{
		prependMutation("dit-log", true, map[string]interface{}{"id": "new"}),
	})
	require.NoError(t, err)

	_, v := decodeRaw(t, phases, projectmodels.PhaseOnSet, "dit-log")
	assert.Empty(t, v.History)
	items := v.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].(map[string]interface{})["id"])
	assert.Equal(t, "old", items[1].(map[string]interface{})["id"])
}

func TestApplyDraftMutationsPreservesHistoryTailUnchanged(t *testing.T) {
	tail := `{"items":[{"id":"archived"}],"snapshotAt":123}`
	phases := map[string]projectmodels.Phase{
		projectmodels.PhaseOnSet: {
			Name:   "On Set",
			Drafts: map[string]string{"on-set-notes": `[{"items":[{"id":"n1"}]},` + tail + `]`},
		},
	}

	phases, err := applyDraftMutations(phases, projectmodels.PhaseOnSet, []DraftMutation{
		prependMutation("on-set-notes", true, map[string]interface{}{"id": "n2"}),
	})
	require.NoError(t, err)

	_, v := decodeRaw(t, phases, projectmodels.PhaseOnSet, "on-set-notes")
	require.Len(t, v.History, 1)
	assert.JSONEq(t, tail, string(v.History[0]))
	assert.Len(t, v.Items(), 2)
}

func TestApplyDraftMutationsMigratesLegacyEntries(t *testing.T) {
	phases := map[string]projectmodels.Phase{
		projectmodels.PhaseOnSet: {
			Name:   "On Set",
			Drafts: map[string]string{"camera-report": `{"entries":[{"id":"legacy"}]}`},
		},
	}

	m := prependMutation("camera-report", false, map[string]interface{}{"id": "fresh"})
	m.Migrate = true
	phases, err := applyDraftMutations(phases, projectmodels.PhaseOnSet, []DraftMutation{m})
	require.NoError(t, err)

	raw, v := decodeRaw(t, phases, projectmodels.PhaseOnSet, "camera-report")
	assert.Equal(t, byte('{'), raw[0])
	var head map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &head))
	_, hasEntries := head["entries"]
	assert.False(t, hasEntries)

	items := v.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "fresh", items[0].(map[string]interface{})["id"])
	assert.Equal(t, "legacy", items[1].(map[string]interface{})["id"])
}

func TestApplyDraftMutationsCorruptDraftResetsToEmptyShape(t *testing.T) {
	phases := map[string]projectmodels.Phase{
		projectmodels.PhaseOnSet: {
			Name:   "On Set",
			Drafts: map[string]string{"dit-log": `{not valid json`},
		},
	}

	phases, err := applyDraftMutations(phases, projectmodels.PhaseOnSet, []DraftMutation{
		prependMutation("dit-log", true, map[string]interface{}{"id": "e1"}),
	})
	require.NoError(t, err)

	_, v := decodeRaw(t, phases, projectmodels.PhaseOnSet, "dit-log")
	require.Len(t, v.Items(), 1)
	assert.Empty(t, v.History)
}

func TestApplyDraftMutationsCombinedWriteTouchesBothDrafts(t *testing.T) {
	phases := map[string]projectmodels.Phase{
		projectmodels.PhaseOnSet: {
			Name: "On Set",
			Drafts: map[string]string{
				"shot-scene-book": `{"shots":[{"id":"s1","status":"PLANNED"}]}`,
			},
		},
	}

	muts := []DraftMutation{
		{
			DraftKey: "shot-scene-book",
			Mutate: func(v *draft.Versioned) error {
				shots, _ := v.Head["shots"].([]interface{})
				for _, it := range shots {
					shot, ok := it.(map[string]interface{})
					if ok && shot["id"] == "s1" {
						shot["status"] = "COMPLETE"
					}
				}
				return nil
			},
		},
		{
			DraftKey: "camera-report",
			Migrate:  true,
			Mutate: func(v *draft.Versioned) error {
				v.PrependItem(map[string]interface{}{"id": "cr1", "shotId": "s1"})
				return nil
			},
		},
	}

	phases, err := applyDraftMutations(phases, projectmodels.PhaseOnSet, muts)
	require.NoError(t, err)

	_, shots := decodeRaw(t, phases, projectmodels.PhaseOnSet, "shot-scene-book")
	updated := shots.Head["shots"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "COMPLETE", updated["status"])

	_, report := decodeRaw(t, phases, projectmodels.PhaseOnSet, "camera-report")
	require.Len(t, report.Items(), 1)
}

func TestApplyDraftMutationsMutateErrorAbortsWrite(t *testing.T) {
	original := `{"items":[{"id":"keep"}]}`
	phases := map[string]projectmodels.Phase{
		projectmodels.PhaseOnSet: {
			Name:   "On Set",
			Drafts: map[string]string{"dit-log": original},
		},
	}

	_, err := applyDraftMutations(phases, projectmodels.PhaseOnSet, []DraftMutation{
		{
			DraftKey: "dit-log",
			Mutate: func(v *draft.Versioned) error {
				return errors.New("shot not found")
			},
		},
	})
	assert.Error(t, err)
}

func TestApplyDraftMutationsDoesNotTouchOtherPhases(t *testing.T) {
	phases := map[string]projectmodels.Phase{
		projectmodels.PhasePreProduction: {
			Name:   "Pre-Production",
			Drafts: map[string]string{"call-sheet": `{"items":[{"id":"cs"}]}`},
		},
	}

	phases, err := applyDraftMutations(phases, projectmodels.PhaseOnSet, []DraftMutation{
		prependMutation("dit-log", true, map[string]interface{}{"id": "e1"}),
	})
	require.NoError(t, err)

	assert.Equal(t, `{"items":[{"id":"cs"}]}`, phases[projectmodels.PhasePreProduction].Drafts["call-sheet"])
	_, ok := phases[projectmodels.PhaseOnSet]
	assert.True(t, ok)
}
