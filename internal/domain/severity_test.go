package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_RoundTrip(t *testing.T) {
	for _, s := range []Severity{SeverityLow, SeverityMedium, SeverityHigh} {
		t.Run(s.String(), func(t *testing.T) {
			data, err := json.Marshal(s)
			require.NoError(t, err)

			var got Severity
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, s, got)

			parsed, err := ParseSeverity(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		})
	}
}

func TestSeverity_Invalid(t *testing.T) {
	_, err := json.Marshal(Severity(42))
	assert.Error(t, err, "marshalling an out-of-range severity must fail")

	var s Severity
	assert.Error(t, json.Unmarshal([]byte(`"Critical"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`3`), &s))

	_, err = ParseSeverity("low")
	assert.Error(t, err, "severity names are case sensitive")

	assert.False(t, Severity(-1).Valid())
	assert.Equal(t, "Severity(-1)", Severity(-1).String())
}
