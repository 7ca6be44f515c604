package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() map[string]any {
	return map[string]any{
		FieldCognitiveBiasAwareness:  30,
		FieldPersuasionReceptivity:   90,
		FieldDeceptionSusceptibility: 20,
		FieldEmotionalResponseBias:   85,
	}
}

func TestValidateAndBuild(t *testing.T) {
	p, err := ValidateAndBuild(validFields())
	require.NoError(t, err)
	assert.Equal(t, ScoreProfile{
		CognitiveBiasAwareness:  30,
		PersuasionReceptivity:   90,
		DeceptionSusceptibility: 20,
		EmotionalResponseBias:   85,
	}, p)
}

func TestValidateAndBuild_MissingFieldOrder(t *testing.T) {
	fields := map[string]any{
		FieldPersuasionReceptivity:   50,
		FieldDeceptionSusceptibility: 50,
		FieldEmotionalResponseBias:   50,
	}

	_, err := ValidateAndBuild(fields)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, FieldCognitiveBiasAwareness, verr.Field)
	assert.Equal(t, ReasonMissing, verr.Reason)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Equal(t, "Missing field: cognitive_bias_awareness", err.Error())
}

func TestValidateAndBuild_FirstFailureWins(t *testing.T) {
	// the second field is invalid, the fourth is missing
	fields := map[string]any{
		FieldCognitiveBiasAwareness:  10,
		FieldPersuasionReceptivity:   101,
		FieldDeceptionSusceptibility: 10,
	}

	_, err := ValidateAndBuild(fields)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, FieldPersuasionReceptivity, verr.Field)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.NotErrorIs(t, err, ErrMissingField)
}

func TestValidateAndBuild_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"above range", 150},
		{"below range", -1},
		{"fractional float", 50.5},
		{"string", "50"},
		{"bool", true},
		{"nil", nil},
		{"json float", json.Number("50.0")},
		{"json exponent", json.Number("1e2")},
		{"slice", []int{50}},
		{"large uint", uint64(1 << 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			fields[FieldCognitiveBiasAwareness] = tt.value

			_, err := ValidateAndBuild(fields)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidValue)
			assert.Equal(t,
				"Invalid value for cognitive_bias_awareness. Must be an integer between 0 and 100.",
				err.Error())
		})
	}
}

func TestValidateAndBuild_AcceptedRepresentations(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 0, 0},
		{"int64", int64(100), 100},
		{"uint8", uint8(41), 41},
		{"json number", json.Number("70"), 70},
		{"integral float", float64(71), 71},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			fields[FieldEmotionalResponseBias] = tt.value

			p, err := ValidateAndBuild(fields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.EmotionalResponseBias)
		})
	}
}

func TestNewScoreProfile(t *testing.T) {
	p, err := NewScoreProfile(1, 2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		FieldCognitiveBiasAwareness:  1,
		FieldPersuasionReceptivity:   2,
		FieldDeceptionSusceptibility: 3,
		FieldEmotionalResponseBias:   4,
	}, p.Fields())

	_, err = NewScoreProfile(1, 2, 3, 400)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, FieldEmotionalResponseBias, verr.Field)
}

func TestParseScoreProfile(t *testing.T) {
	p, err := ParseScoreProfile(strings.NewReader(`{
		"cognitive_bias_awareness": 50,
		"persuasion_receptivity": 50,
		"deception_susceptibility": 50,
		"emotional_response_bias": 50,
		"ignored": "extra"
	}`))
	require.NoError(t, err)
	assert.Equal(t, 50, p.DeceptionSusceptibility)
}

func TestParseScoreProfile_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		validation bool
	}{
		{"malformed", `{"cognitive_bias_awareness":`, false},
		{"array", `[1,2,3,4]`, false},
		{"null", `null`, false},
		{"float", `{"cognitive_bias_awareness": 50.0, "persuasion_receptivity": 1, "deception_susceptibility": 1, "emotional_response_bias": 1}`, true},
		{"out of range", `{"cognitive_bias_awareness": 150}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScoreProfile(strings.NewReader(tt.body))
			require.Error(t, err)

			var verr *ValidationError
			assert.Equal(t, tt.validation, errors.As(err, &verr))
			if tt.validation {
				assert.Equal(t, FieldCognitiveBiasAwareness, verr.Field)
			}
		})
	}
}
