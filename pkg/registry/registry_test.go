package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistry_ShippedFile(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	assert.Len(t, reg.Activities, 7)
	assert.Empty(t, reg.Unregistered([]string{
		"score-application",
		"score-job-applications",
		"top-candidates",
		"candidates-above-threshold",
		"score-statistics",
		"explain-match",
		"rescore-pending",
	}))

	a, ok := reg.Find("top-candidates")
	require.True(t, ok)
	assert.Equal(t, "ranking", a.Category)
	assert.Contains(t, a.ErrorCodes, "JOB_NOT_FOUND")
}

func TestValidate(t *testing.T) {
	valid := Activity{ID: "a", DisplayName: "A", TaskType: "a", Category: "ranking", Timeout: "15s"}

	tests := []struct {
		name       string
		activities []Activity
		wantErr    string
	}{
		{name: "valid", activities: []Activity{valid}},
		{name: "empty", wantErr: "no activities"},
		{
			name:       "missing task type",
			activities: []Activity{{ID: "a", DisplayName: "A", Category: "ranking"}},
			wantErr:    "taskType",
		},
		{
			name:       "duplicate id",
			activities: []Activity{valid, {ID: "a", DisplayName: "B", TaskType: "b", Category: "ranking"}},
			wantErr:    "duplicate activity id",
		},
		{
			name:       "duplicate task type",
			activities: []Activity{valid, {ID: "b", DisplayName: "B", TaskType: "a", Category: "ranking"}},
			wantErr:    "duplicate task type",
		},
		{
			name:       "bad timeout",
			activities: []Activity{{ID: "a", DisplayName: "A", TaskType: "a", Category: "ranking", Timeout: "soon"}},
			wantErr:    "invalid timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&ActivityRegistry{Activities: tt.activities}).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUnregisteredSorted(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{{TaskType: "b"}}}
	assert.Equal(t, []string{"a", "c"}, reg.Unregistered([]string{"c", "b", "a"}))
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")
	reg := &ActivityRegistry{
		Version:    "1.0.0",
		Activities: []Activity{{ID: "a", DisplayName: "A", TaskType: "a", Category: "ranking", Retries: 3}},
	}

	require.NoError(t, reg.Save(path))
	assert.NotEmpty(t, reg.LastUpdated)

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, reg.Activities, loaded.Activities)
}
