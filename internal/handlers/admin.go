package handlers

import (
	"fmt"
	"log"
	"net/http"

	"stackit/internal/middleware"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理员操作，路由层已经限制为 admin
type AdminHandler struct {
	questions QuestionService
	answers   AnswerService
	users     UserService
}

func NewAdminHandler(questions QuestionService, answers AnswerService, users UserService) *AdminHandler {
	return &AdminHandler{questions: questions, answers: answers, users: users}
}

type roleRequest struct {
	Role string `json:"role"`
}

// DeleteQuestion 删除问题（连同回答、投票、标签关联）
func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.questions.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	log.Printf("[ADMIN] user %d deleted question %d", middleware.CurrentUser(c).ID, id)
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

// DeleteAnswer 删除回答
func (h *AdminHandler) DeleteAnswer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.answers.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	log.Printf("[ADMIN] user %d deleted answer %d", middleware.CurrentUser(c).ID, id)
	c.JSON(http.StatusOK, gin.H{"message": "Answer deleted successfully"})
}

// UpdateRole 修改用户角色
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.users.SetRole(c.Request.Context(), id, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User role updated to %s", user.Role)})
}
