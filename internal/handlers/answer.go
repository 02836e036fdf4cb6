package handlers

import (
	"fmt"
	"net/http"

	"stackit/internal/middleware"
	"stackit/internal/services"
	"stackit/internal/utils"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	answers AnswerService
}

func NewAnswerHandler(answers AnswerService) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

type answerRequest struct {
	Description string `json:"description" form:"description"`
}

type voteRequest struct {
	VoteType string `json:"vote_type" form:"vote_type"`
}

// Create POST /api/questions/:id/answers (JSON) and /question/:id/answer (form).
func (h *AnswerHandler) Create(c *gin.Context) {
	questionID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		if wantsJSON(c) {
			respondError(c, services.ErrNotFound)
		} else {
			renderError(c, services.ErrNotFound)
		}
		return
	}

	var req answerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	answer, err := h.answers.Create(c.Request.Context(), middleware.CurrentUser(c), questionID, req.Description)
	if err != nil {
		if wantsJSON(c) {
			respondError(c, err)
		} else {
			renderError(c, err)
		}
		return
	}

	if !wantsJSON(c) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/question/%d", questionID))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Answer posted successfully",
		"answer_id": answer.ID,
	})
}

// VoteForm POST /answer/:id/vote from the question page.
func (h *AnswerHandler) VoteForm(c *gin.Context) {
	answerID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		renderError(c, services.ErrNotFound)
		return
	}

	if _, err := h.answers.Vote(c.Request.Context(), middleware.CurrentUser(c), answerID, c.PostForm("vote_type")); err != nil {
		renderError(c, err)
		return
	}
	redirectBack(c)
}

// Vote POST /api/answers/:id/vote
func (h *AnswerHandler) Vote(c *gin.Context) {
	answerID, ok := pathID(c)
	if !ok {
		return
	}

	var req voteRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	tally, err := h.answers.Vote(c.Request.Context(), middleware.CurrentUser(c), answerID, req.VoteType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded", "votes": tally})
}

// Accept POST /api/answers/:id/accept
func (h *AnswerHandler) Accept(c *gin.Context) {
	answerID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.answers.Accept(c.Request.Context(), middleware.CurrentUser(c), answerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Answer accepted successfully"})
}
