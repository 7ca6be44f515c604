package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/BerylCAtieno/style-advisor-agent/internal/models"
	"github.com/BerylCAtieno/style-advisor-agent/internal/profiler"
	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"
)

const invalidPayloadMessage = "Invalid JSON payload."

type Handler struct {
	batchLimit int
	schema     []byte
	log        *slog.Logger
}

func NewHandler(batchLimit int) *Handler {
	return &Handler{
		batchLimit: batchLimit,
		schema:     ScoreProfileSchema(),
		log:        slog.Default().WithGroup("api"),
	}
}

// Process assesses one score profile.
func (h *Handler) Process(c *gin.Context) {
	profile, err := models.ParseScoreProfile(c.Request.Body)
	if err != nil {
		h.log.Warn("rejected profile", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": clientMessage(err)})
		return
	}

	c.JSON(http.StatusOK, profiler.Assess(profile))
}

type batchRequest struct {
	Profiles []map[string]any `json:"profiles"`
}

type batchResponse struct {
	Results []models.Assessment `json:"results"`
}

// ProcessBatch assesses several profiles. The first invalid one rejects the batch.
func (h *Handler) ProcessBatch(c *gin.Context) {
	var req batchRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		h.log.Warn("rejected batch", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidPayloadMessage})
		return
	}

	if len(req.Profiles) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one profile is required."})
		return
	}
	if len(req.Profiles) > h.batchLimit {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("Too many profiles: %d. The limit is %d.", len(req.Profiles), h.batchLimit),
		})
		return
	}

	profiles := make([]models.ScoreProfile, len(req.Profiles))
	for i, fields := range req.Profiles {
		p, err := models.ValidateAndBuild(fields)
		if err != nil {
			h.log.Warn("rejected batch profile", "index", i, "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "index": i})
			return
		}
		profiles[i] = p
	}

	results, err := profiler.AssessBatch(c.Request.Context(), profiles, 0)
	if err != nil {
		h.log.Error("batch assessment failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assessment was cancelled."})
		return
	}

	h.log.Debug("batch assessed", "size", len(results))
	c.JSON(http.StatusOK, batchResponse{Results: results})
}

// Schema serves the JSON Schema of the score profile input.
func (h *Handler) Schema(c *gin.Context) {
	c.Data(http.StatusOK, "application/schema+json", h.schema)
}

// ScoreProfileSchema returns the JSON Schema document for models.ScoreProfile.
func ScoreProfileSchema() []byte {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(&models.ScoreProfile{})
	schema.Title = "ScoreProfile"

	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		// the schema is built from a static type
		panic(err)
	}
	return b
}

// clientMessage keeps validation messages and hides decode details.
func clientMessage(err error) string {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return invalidPayloadMessage
}
