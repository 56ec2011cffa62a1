package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord_DefaultsTimestamp(t *testing.T) {
	rec := NewRecord(ToolPip, 1, 5)

	assert.Equal(t, ToolPip, rec.Tool)
	assert.Equal(t, 1, rec.RunNumber)
	assert.Equal(t, 5, rec.PackageCount)
	assert.False(t, rec.Timestamp.IsZero())
	require.NoError(t, rec.Validate())
}

func TestRunRecord_Validate(t *testing.T) {
	tests := []struct {
		name      string
		record    RunRecord
		wantErr   bool
		errSubstr string
	}{
		{
			name:   "valid",
			record: RunRecord{Tool: ToolUV, RunNumber: 3},
		},
		{
			name:      "missing tool",
			record:    RunRecord{RunNumber: 1},
			wantErr:   true,
			errSubstr: "tool identifier",
		},
		{
			name:      "zero run number",
			record:    RunRecord{Tool: ToolPip},
			wantErr:   true,
			errSubstr: "1-based",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
