package sri

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest_KnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "console log",
			input:    "console.log(\"hello\");\n",
			expected: "sha512-LyYYwdNF8cBjCT12Taujev18TMbqWXIvdPRTAcJbUrE2jA3xIDtOpxFcP7H0IVXQn12RUeur1LgOKAAWs1bWYA==",
		},
		{
			name:     "alert",
			input:    "alert(1);\n",
			expected: "sha512-Cy5VwhyPkWNk/wkbL8Luyl2TsfLkqqMVHEUz2kIJ8Ua+qYLXuaCUjTTj+zm+WbQbFux2eIk7EGMDxOqC9F4aFw==",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Digest([]byte(tt.input)))
		})
	}
}

func TestDigest_Deterministic(t *testing.T) {
	data := []byte("var x = 42;")
	assert.Equal(t, Digest(data), Digest(data))
	assert.NotEqual(t, Digest(data), Digest([]byte("var x = 43;")))
}
