package visualization

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSchemaValidator_DefaultsName(t *testing.T) {
	v := NewSchemaValidator()
	in, err := v.Validate(Payload{Description: strPtr("short")})
	require.NoError(t, err)
	require.Equal(t, DefaultName, in.Name)
	require.Equal(t, "short", in.Description)
}

func TestSchemaValidator_TrimsName(t *testing.T) {
	v := NewSchemaValidator()
	in, err := v.Validate(Payload{Name: strPtr("  Revenue by quarter "), Description: strPtr("d")})
	require.NoError(t, err)
	require.Equal(t, "Revenue by quarter", in.Name)
}

func TestSchemaValidator_EmptyDescriptionAllowed(t *testing.T) {
	v := NewSchemaValidator()
	in, err := v.Validate(Payload{Description: strPtr("")})
	require.NoError(t, err)
	require.Equal(t, "", in.Description)
}

func TestSchemaValidator_DescriptionLength(t *testing.T) {
	v := NewSchemaValidator()
	tests := []struct {
		name    string
		desc    string
		wantErr bool
	}{
		{"at limit", strings.Repeat("x", MaxDescriptionLength), false},
		{"over limit", strings.Repeat("x", MaxDescriptionLength+1), true},
		{"far over limit", strings.Repeat("x", 200), true},
		{"multibyte at limit", strings.Repeat("é", MaxDescriptionLength), false},
		// length counts characters, not UTF-16 units: each emoji counts once
		{"astral under limit", strings.Repeat("😀", 100), false},
		{"astral at limit", strings.Repeat("😀", MaxDescriptionLength), false},
		{"astral over limit", strings.Repeat("😀", MaxDescriptionLength+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(Payload{Description: strPtr(tt.desc)})
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidInput))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, "description: Maximum length is 180", verr.Message)
			require.Equal(t, "Maximum length is 180", verr.Fields["description"])
		})
	}
}

func TestSchemaValidator_MissingDescription(t *testing.T) {
	v := NewSchemaValidator()
	_, err := v.Validate(Payload{Name: strPtr("n")})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Equal(t, "description: This field is required", err.Error())
}

func TestVisualizationSummary(t *testing.T) {
	v := &Visualization{ID: "abc", Name: "n", Description: "d", Firm: "acme"}
	require.Equal(t, Summary{ID: "abc", Name: "n", Description: "d"}, v.Summary())
}

func TestPayloadUnmarshalName(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantName *string
		wantNull bool
	}{
		{"absent", `{"description":"d"}`, nil, false},
		{"null", `{"name":null,"description":"d"}`, nil, true},
		{"empty", `{"name":"","description":"d"}`, strPtr(""), false},
		{"value", `{"name":"Revenue","description":"d"}`, strPtr("Revenue"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			require.Equal(t, tt.wantName, p.Name)
			require.Equal(t, tt.wantNull, p.nameNull)
			require.Equal(t, "d", *p.Description)
		})
	}

	var p Payload
	require.Error(t, json.Unmarshal([]byte(`{"name":5,"description":"d"}`), &p))
}

func TestSchemaValidator_NullNameRejected(t *testing.T) {
	v := NewSchemaValidator()

	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"description":"x"}`), &p))
	_, err := v.Validate(p)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Equal(t, "name: Expected string, received null", err.Error())

	// reported together with other field errors
	p = Payload{}
	require.NoError(t, json.Unmarshal([]byte(`{"name":null}`), &p))
	_, err = v.Validate(p)
	require.Equal(t, "description: This field is required; name: Expected string, received null", err.Error())

	// absent name still gets the default
	p = Payload{}
	require.NoError(t, json.Unmarshal([]byte(`{"description":"x"}`), &p))
	in, err := v.Validate(p)
	require.NoError(t, err)
	require.Equal(t, DefaultName, in.Name)
}
