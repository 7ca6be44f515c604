package a2a

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/style-advisor-agent/internal/agent"
	"github.com/BerylCAtieno/style-advisor-agent/internal/models"
	"github.com/BerylCAtieno/style-advisor-agent/internal/profiler"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const missingScoresMessage = "Please provide the four assessment scores (0-100): " +
	"cognitive_bias_awareness, persuasion_receptivity, deception_susceptibility, emotional_response_bias."

type A2AHandler struct {
	renderer profiler.Renderer
	log      *slog.Logger
}

// NewA2AHandler creates the handler. renderer may be nil, in which case no
// styled reply is produced.
func NewA2AHandler(renderer profiler.Renderer) *A2AHandler {
	return &A2AHandler{
		renderer: renderer,
		log:      slog.Default().WithGroup("a2a"),
	}
}

// HandleAdvisor processes A2A messages
func (h *A2AHandler) HandleAdvisor(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.Error("failed to read request body", "error", err)
		h.sendErrorResponse(c, nil, "Failed to read request body", CodeParseError)
		return
	}
	h.log.Debug("request received", "body", string(bodyBytes))

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil {
		h.log.Error("failed to decode request", "error", err)
		h.sendErrorResponse(c, nil, "Invalid request format", CodeParseError)
		return
	}

	// no JSON-RPC envelope, treat the body as message params
	if rpcReq.JSONRPC == "" && rpcReq.Method == "" {
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.log.Warn("invalid JSON-RPC version", "version", rpcReq.JSONRPC)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "agent/task", "message/send":
		h.handleTask(c, rpcReq)
	default:
		h.log.Error("unknown method", "method", rpcReq.Method)
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

func (h *A2AHandler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil || len(msgParams.Message.Parts) == 0 {
		h.log.Error("failed to parse direct message", "error", err)
		h.sendErrorResponse(c, nil, "Invalid request format", CodeParseError)
		return
	}

	result := h.processMessage(c.Request.Context(), msgParams.Message)
	h.sendSuccessResponse(c, result.ID, result)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var msgParams MessageParams
	if len(rpcReq.Params) == 0 {
		h.sendErrorResponse(c, rpcReq.ID, "Missing parameters", CodeInvalidParams)
		return
	}
	if err := json.Unmarshal(rpcReq.Params, &msgParams); err != nil {
		h.log.Error("failed to unmarshal params", "error", err)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	result := h.processMessage(c.Request.Context(), msgParams.Message)
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

// processMessage assesses the scores carried by msg and builds the task result.
func (h *A2AHandler) processMessage(ctx context.Context, msg A2AMessage) TaskResult {
	taskID := msg.TaskID
	if taskID == "" {
		taskID = uuid.New().String()
	}

	fields, prompt := extractScores(msg)
	if len(fields) == 0 {
		h.log.Warn("no scores found in message", "task", taskID)
		return h.createErrorTaskResult(taskID, msg, StateInputRequired, missingScoresMessage)
	}

	profile, err := models.ValidateAndBuild(fields)
	if err != nil {
		h.log.Warn("invalid scores", "task", taskID, "error", err)
		return h.createErrorTaskResult(taskID, msg, StateFailed, err.Error())
	}

	assessment := profiler.Assess(profile)
	h.log.Info("scores assessed", "task", taskID, "group", assessment.UserGroup.Name)

	summary := formatAssessment(profile, assessment)
	dataPart, err := DataPart(assessment)
	if err != nil {
		h.log.Error("failed to encode assessment", "task", taskID, "error", err)
		return h.createErrorTaskResult(taskID, msg, StateFailed, "Failed to encode assessment")
	}

	result := h.createSuccessTaskResult(taskID, msg, summary, dataPart)

	if h.renderer != nil && prompt != "" {
		reply, err := h.renderer.Render(ctx, assessment.AdjustedResponse, prompt)
		if err != nil {
			h.log.Error("failed to render reply", "task", taskID, "error", err)
			return result
		}
		result.Artifacts = append(result.Artifacts, Artifact{
			ArtifactID: uuid.New().String(),
			Name:       "Styled Reply",
			Parts:      []MessagePart{TextPart(reply)},
		})
		result.Status.Message.Parts = []MessagePart{TextPart(reply)}
	}

	return result
}

// ServeAgentCard serves the agent card with its url pointing at this host.
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	card, err := agent.WithURL(fmt.Sprintf("%s://%s/a2a/advisor", scheme, c.Request.Host))
	if err != nil {
		h.log.Error("error loading agent card", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}

	c.Data(http.StatusOK, "application/json", card)
}

func (h *A2AHandler) createSuccessTaskResult(taskID string, msg A2AMessage, summary string, data MessagePart) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: msg.ContextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(summary)},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       "Style Assessment",
				Parts:      []MessagePart{TextPart(summary), data},
			},
		},
		History: []A2AMessage{msg},
	}
}

func (h *A2AHandler) createErrorTaskResult(taskID string, msg A2AMessage, state, errorMsg string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: msg.ContextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(errorMsg)},
			},
		},
		History: []A2AMessage{msg},
	}
}

func formatAssessment(p models.ScoreProfile, a models.Assessment) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "# %s\n\n%s\n\n", a.UserGroup.Name, a.UserGroup.Description)

	builder.WriteString("**Scores:**\n")
	fields := p.Fields()
	for _, name := range models.FieldNames {
		fmt.Fprintf(&builder, "- %s: %d\n", name, fields[name])
	}

	builder.WriteString("\n**Response Style:**\n")
	fmt.Fprintf(&builder, "- Format: %s\n", a.AdjustedResponse.Format)
	fmt.Fprintf(&builder, "- Tone: %s\n", a.AdjustedResponse.Tone)
	fmt.Fprintf(&builder, "- Persuasion strategy: %s\n", a.AdjustedResponse.PersuasionStrategy)
	fmt.Fprintf(&builder, "- Disclosure: %s\n", a.AdjustedResponse.DisclosurePolicy)

	return builder.String()
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id any, result TaskResult) {
	h.log.Debug("sending response", "task", result.ID, "state", result.Status.State)
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// JSON-RPC errors are sent with 200 OK
func (h *A2AHandler) sendErrorResponse(c *gin.Context, id any, message string, code int) {
	h.log.Debug("sending error response", "code", code, "message", message)
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
		},
	})
}
