package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"stackit/internal/middleware"
	"stackit/internal/models"
	"stackit/internal/services"
	"stackit/internal/utils"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questions QuestionService
}

func NewQuestionHandler(questions QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// questionRequest keeps tags raw so an absent field, a null and a non-list
// value can be told apart.
type questionRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Tags        json.RawMessage `json:"tags"`
}

// tagList converts the raw tags field. An absent field is an empty list;
// null or anything other than a list yields nil.
func tagList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var tags []interface{}
	if err := json.Unmarshal(raw, &tags); err != nil || tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if s, ok := t.(string); ok {
			out = append(out, s)
		} else {
			out = append(out, fmt.Sprint(t))
		}
	}
	return out
}

// Index 首页 - 问题列表
func (h *QuestionHandler) Index(c *gin.Context) {
	tag := c.Query("tag")
	questions, err := h.questions.List(c.Request.Context(), tag)
	if err != nil {
		renderError(c, err)
		return
	}

	Render(c, http.StatusOK, "question/list.html", gin.H{
		"Title":     "Questions",
		"Questions": questions,
		"Tag":       tag,
	})
}

// answerPage pairs an answer with its rendered body.
type answerPage struct {
	services.AnswerView
	HTML template.HTML
}

// Detail 问题详情页
func (h *QuestionHandler) Detail(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		renderError(c, services.ErrNotFound)
		return
	}

	detail, err := h.questions.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	answers := make([]answerPage, len(detail.Answers))
	for i, a := range detail.Answers {
		answers[i] = answerPage{AnswerView: a, HTML: utils.RenderMarkdown(a.Description)}
	}

	user := middleware.CurrentUser(c)
	Render(c, http.StatusOK, "question/detail.html", gin.H{
		"Title":     detail.Title,
		"Question":  detail,
		"Body":      utils.RenderMarkdown(detail.Description),
		"Answers":   answers,
		"CanAccept": user != nil && user.ID == detail.AuthorID,
		"CanAnswer": middleware.Authorize(user, models.RoleUser) == middleware.Allow,
	})
}

func (h *QuestionHandler) ShowAsk(c *gin.Context) {
	if !h.canAsk(c) {
		return
	}
	h.renderAsk(c, http.StatusOK, gin.H{})
}

// Ask handles the HTML form; tags arrive as repeated "tags" fields.
func (h *QuestionHandler) Ask(c *gin.Context) {
	if !h.canAsk(c) {
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	tags := c.PostFormArray("tags")
	if tags == nil {
		tags = []string{}
	}

	_, err := h.questions.Create(c.Request.Context(), middleware.CurrentUser(c), title, description, tags)
	if err != nil {
		code, msg := classify(err)
		logIfInternal(c, code, err)
		h.renderAsk(c, code, gin.H{
			"Error":       msg,
			"Form":        gin.H{"Title": title, "Description": description},
			"SelectedTag": tags,
		})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *QuestionHandler) canAsk(c *gin.Context) bool {
	if middleware.Authorize(middleware.CurrentUser(c), models.RoleUser) != middleware.Allow {
		RenderError(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
		return false
	}
	return true
}

func (h *QuestionHandler) renderAsk(c *gin.Context, code int, data gin.H) {
	tags, err := h.questions.Tags(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	data["Title"] = "Ask a question"
	data["Tags"] = tags
	Render(c, code, "question/ask.html", data)
}

// List GET /api/questions
func (h *QuestionHandler) List(c *gin.Context) {
	questions, err := h.questions.List(c.Request.Context(), c.Query("tag"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// Create POST /api/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	question, err := h.questions.Create(c.Request.Context(), middleware.CurrentUser(c), req.Title, req.Description, tagList(req.Tags))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Question created successfully",
		"id":      question.ID,
	})
}

// Get GET /api/questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.questions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Tags GET /api/tags
func (h *QuestionHandler) Tags(c *gin.Context) {
	tags, err := h.questions.Tags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]gin.H, len(tags))
	for i, t := range tags {
		result[i] = gin.H{"id": t.ID, "name": t.Name, "color": t.Color}
	}
	c.JSON(http.StatusOK, result)
}
