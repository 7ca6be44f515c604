package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BerylCAtieno/style-advisor-agent/internal/config"
	"github.com/BerylCAtieno/style-advisor-agent/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(&config.Config{Port: "8080", BatchLimit: 3}, nil)
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProcess_GroupA(t *testing.T) {
	w := do(newTestRouter(), http.MethodPost, "/process",
		`{"cognitive_bias_awareness":30,"persuasion_receptivity":90,"deception_susceptibility":20,"emotional_response_bias":85}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Assessment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Group A", got.UserGroup.Name)
	assert.Equal(t, "Highly structured, use authority and social proof with bullet points.", got.AdjustedResponse.Format)
	assert.Equal(t, "Motivational and emotionally charged, appealing to emotions like hope or urgency.", got.AdjustedResponse.Tone)
}

func TestProcess_WireShape(t *testing.T) {
	w := do(newTestRouter(), http.MethodPost, "/process",
		`{"cognitive_bias_awareness":50,"persuasion_receptivity":50,"deception_susceptibility":50,"emotional_response_bias":50}`)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, "Group B", raw["user_group"]["name"])
	assert.Equal(t, "Use logical appeals with subtle emotional cues like reciprocity.", raw["adjusted_response"]["persuasion_strategy"])
	assert.Equal(t, "Provide balanced information but emphasize positives.", raw["adjusted_response"]["deception_usage"])
	assert.Len(t, raw["adjusted_response"], 4)
}

func TestProcess_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"missing first field",
			`{"persuasion_receptivity":50,"deception_susceptibility":50,"emotional_response_bias":50}`,
			"Missing field: cognitive_bias_awareness",
		},
		{
			"out of range",
			`{"cognitive_bias_awareness":150,"persuasion_receptivity":50,"deception_susceptibility":50,"emotional_response_bias":50}`,
			"Invalid value for cognitive_bias_awareness. Must be an integer between 0 and 100.",
		},
		{
			"string value",
			`{"cognitive_bias_awareness":10,"persuasion_receptivity":"50","deception_susceptibility":50,"emotional_response_bias":50}`,
			"Invalid value for persuasion_receptivity. Must be an integer between 0 and 100.",
		},
		{"malformed", `{"cognitive_bias_awareness":`, invalidPayloadMessage},
		{"not an object", `[50, 50, 50, 50]`, invalidPayloadMessage},
	}

	r := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/process", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body["error"])
		})
	}
}

func TestProcessBatch(t *testing.T) {
	w := do(newTestRouter(), http.MethodPost, "/process/batch", `{"profiles":[
		{"cognitive_bias_awareness":30,"persuasion_receptivity":90,"deception_susceptibility":20,"emotional_response_bias":85},
		{"cognitive_bias_awareness":50,"persuasion_receptivity":50,"deception_susceptibility":50,"emotional_response_bias":50},
		{"cognitive_bias_awareness":90,"persuasion_receptivity":10,"deception_susceptibility":80,"emotional_response_bias":20}
	]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got batchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Results, 3)
	assert.Equal(t, "Group A", got.Results[0].UserGroup.Name)
	assert.Equal(t, "Group B", got.Results[1].UserGroup.Name)
	assert.Equal(t, "Group C", got.Results[2].UserGroup.Name)
}

func TestProcessBatch_Errors(t *testing.T) {
	valid := `{"cognitive_bias_awareness":1,"persuasion_receptivity":1,"deception_susceptibility":1,"emotional_response_bias":1}`

	tests := []struct {
		name   string
		body   string
		status int
		index  any
	}{
		{"malformed", `{"profiles":`, http.StatusBadRequest, nil},
		{"empty", `{"profiles":[]}`, http.StatusBadRequest, nil},
		{"too many", `{"profiles":[` + strings.Repeat(valid+",", 3) + valid + `]}`, http.StatusRequestEntityTooLarge, nil},
		{"invalid entry", `{"profiles":[` + valid + `,{"cognitive_bias_awareness":1}]}`, http.StatusBadRequest, float64(1)},
	}

	r := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/process/batch", tt.body)
			require.Equal(t, tt.status, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			assert.Equal(t, tt.index, body["index"])
		})
	}
}

func TestSchema(t *testing.T) {
	w := do(newTestRouter(), http.MethodGet, "/schema", "")
	require.Equal(t, http.StatusOK, w.Code)

	var schema struct {
		Type       string                    `json:"type"`
		Required   []string                  `json:"required"`
		Properties map[string]map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &schema))
	assert.Equal(t, "object", schema.Type)
	assert.ElementsMatch(t, models.FieldNames, schema.Required)
	for _, name := range models.FieldNames {
		prop, ok := schema.Properties[name]
		require.True(t, ok, name)
		assert.Equal(t, "integer", prop["type"])
		assert.Equal(t, float64(0), prop["minimum"])
		assert.Equal(t, float64(100), prop["maximum"])
	}
}

func TestIndexAndStatic(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="assessment-form"`)

	w = do(r, http.MethodGet, "/static/script.js", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/process")
}

func TestHealth(t *testing.T) {
	w := do(newTestRouter(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
