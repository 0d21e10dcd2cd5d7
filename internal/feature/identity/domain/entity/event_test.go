package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEventData_FullName は名・姓の欠落に関わらず表示名が整形されることを検証します。
func TestEventData_FullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     EventData
		expected string
	}{
		{"both", EventData{FirstName: "A", LastName: "B"}, "A B"},
		{"first only", EventData{FirstName: "A"}, "A"},
		{"last only", EventData{LastName: "B"}, "B"},
		{"neither", EventData{}, ""},
		{"padded", EventData{FirstName: " A ", LastName: " B "}, "A B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.data.FullName())
		})
	}
}

// TestEventData_PrimaryEmail は最初のメールアドレスが選ばれることを検証します。
func TestEventData_PrimaryEmail(t *testing.T) {
	t.Parallel()

	assert.Empty(t, EventData{}.PrimaryEmail())
	assert.Equal(t, "a@b.com", EventData{EmailAddresses: []EmailAddress{
		{EmailAddress: "a@b.com"}, {EmailAddress: "c@d.com"},
	}}.PrimaryEmail())
}
