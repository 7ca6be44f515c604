package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
)

// Score field names, in validation order.
const (
	FieldCognitiveBiasAwareness  = "cognitive_bias_awareness"
	FieldPersuasionReceptivity   = "persuasion_receptivity"
	FieldDeceptionSusceptibility = "deception_susceptibility"
	FieldEmotionalResponseBias   = "emotional_response_bias"
)

const (
	MinScore = 0
	MaxScore = 100
)

// FieldNames lists the required score fields in the order they are validated.
var FieldNames = []string{
	FieldCognitiveBiasAwareness,
	FieldPersuasionReceptivity,
	FieldDeceptionSusceptibility,
	FieldEmotionalResponseBias,
}

// ScoreProfile is a user's assessed traits. Every field is in [MinScore, MaxScore].
type ScoreProfile struct {
	CognitiveBiasAwareness  int `json:"cognitive_bias_awareness" jsonschema:"required,minimum=0,maximum=100" jsonschema_description:"Awareness of own cognitive biases; drives the response format."`
	PersuasionReceptivity   int `json:"persuasion_receptivity" jsonschema:"required,minimum=0,maximum=100" jsonschema_description:"Receptivity to persuasion; drives the persuasion strategy."`
	DeceptionSusceptibility int `json:"deception_susceptibility" jsonschema:"required,minimum=0,maximum=100" jsonschema_description:"Susceptibility to deception; drives the disclosure policy."`
	EmotionalResponseBias   int `json:"emotional_response_bias" jsonschema:"required,minimum=0,maximum=100" jsonschema_description:"Bias toward emotional responses; drives the tone."`
}

// NewScoreProfile builds a profile from typed scores, checking them in field order.
func NewScoreProfile(cognitiveBiasAwareness, persuasionReceptivity, deceptionSusceptibility, emotionalResponseBias int) (ScoreProfile, error) {
	return ValidateAndBuild(map[string]any{
		FieldCognitiveBiasAwareness:  cognitiveBiasAwareness,
		FieldPersuasionReceptivity:   persuasionReceptivity,
		FieldDeceptionSusceptibility: deceptionSusceptibility,
		FieldEmotionalResponseBias:   emotionalResponseBias,
	})
}

// ValidateAndBuild checks each required field in FieldNames order and stops at
// the first one that is missing or not an integer in range.
func ValidateAndBuild(fields map[string]any) (ScoreProfile, error) {
	var values [4]int
	for i, name := range FieldNames {
		raw, ok := fields[name]
		if !ok {
			return ScoreProfile{}, &ValidationError{Field: name, Reason: ReasonMissing}
		}
		v, ok := scoreValue(raw)
		if !ok {
			return ScoreProfile{}, &ValidationError{Field: name, Reason: ReasonInvalid}
		}
		values[i] = v
	}

	return ScoreProfile{
		CognitiveBiasAwareness:  values[0],
		PersuasionReceptivity:   values[1],
		DeceptionSusceptibility: values[2],
		EmotionalResponseBias:   values[3],
	}, nil
}

// ParseScoreProfile decodes a JSON object and validates it.
func ParseScoreProfile(r io.Reader) (ScoreProfile, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return ScoreProfile{}, fmt.Errorf("failed to decode score profile: %w", err)
	}
	if fields == nil {
		return ScoreProfile{}, errors.New("score profile must be a JSON object")
	}
	return ValidateAndBuild(fields)
}

// Fields returns the profile keyed by field name.
func (p ScoreProfile) Fields() map[string]int {
	return map[string]int{
		FieldCognitiveBiasAwareness:  p.CognitiveBiasAwareness,
		FieldPersuasionReceptivity:   p.PersuasionReceptivity,
		FieldDeceptionSusceptibility: p.DeceptionSusceptibility,
		FieldEmotionalResponseBias:   p.EmotionalResponseBias,
	}
}

// scoreValue accepts Go integer kinds, integral json.Number values and
// integral float64 values. Booleans, strings and nil are rejected.
func scoreValue(raw any) (int, bool) {
	var n int64
	switch v := raw.(type) {
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, false
		}
		n = i
	case float64:
		if v != math.Trunc(v) || v < MinScore || v > MaxScore {
			return 0, false
		}
		n = int64(v)
	case bool, nil:
		return 0, false
	default:
		rv := reflect.ValueOf(raw)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n = rv.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u := rv.Uint()
			if u > MaxScore {
				return 0, false
			}
			n = int64(u)
		default:
			return 0, false
		}
	}

	if n < MinScore || n > MaxScore {
		return 0, false
	}
	return int(n), true
}
