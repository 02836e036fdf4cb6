package router

import (
	"stackit/internal/handlers"
	"stackit/internal/middleware"
	"stackit/internal/models"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Questions     *handlers.QuestionHandler
	Answers       *handlers.AnswerHandler
	Notifications *handlers.NotificationHandler
	Admin         *handlers.AdminHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	// 页面路由 (Pages)
	r.GET("/", h.Questions.Index)              // 首页 - 问题列表
	r.GET("/question/:id", h.Questions.Detail) // 问题详情页
	r.GET("/register", h.Auth.ShowRegister)    // 注册页面
	r.POST("/register", h.Auth.Register)       // 提交注册 (表单或 JSON)
	r.GET("/login", h.Auth.ShowLogin)          // 登录页面
	r.POST("/login", h.Auth.Login)             // 提交登录 (表单或 JSON)
	r.GET("/logout", h.Auth.Logout)            // 退出登录

	// 需要登录的页面 (Session pages)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/ask", h.Questions.ShowAsk)                                                            // 提问页面
		authorized.POST("/ask", h.Questions.Ask)                                                               // 提交提问
		authorized.GET("/notifications", h.Notifications.Page)                                                 // 通知列表
		authorized.POST("/question/:id/answer", middleware.RequirePageRole(models.RoleUser), h.Answers.Create) // 表单回答
		authorized.POST("/answer/:id/vote", middleware.RequirePageRole(models.RoleUser), h.Answers.VoteForm)   // 表单投票
	}

	api := r.Group("/api")
	{
		api.GET("/questions", middleware.RequireRole(models.RoleGuest), h.Questions.List) // 问题列表，游客可访问
		api.GET("/questions/:id", h.Questions.Get)                                        // 问题详情
		api.GET("/tags", h.Questions.Tags)                                                // 标签列表

		user := api.Group("")
		user.Use(middleware.RequireRole(models.RoleUser))
		{
			user.POST("/questions", h.Questions.Create)           // 提问
			user.POST("/questions/:id/answers", h.Answers.Create) // 回答
			user.POST("/answers/:id/vote", h.Answers.Vote)        // 投票
			user.POST("/answers/:id/accept", h.Answers.Accept)    // 采纳回答
		}

		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireLogin())
		{
			notifications.GET("", h.Notifications.List)                   // 我的通知
			notifications.POST("/:id/read", h.Notifications.Read)         // 标记单条已读
			notifications.POST("/mark_all_read", h.Notifications.ReadAll) // 全部标记已读
		}

		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.DELETE("/questions/:id/delete", h.Admin.DeleteQuestion) // 删除问题
			admin.DELETE("/answers/:id/delete", h.Admin.DeleteAnswer)     // 删除回答
			admin.PUT("/users/:id/role", h.Admin.UpdateRole)              // 修改角色
		}
	}

	r.NoRoute(handlers.NotFound)
}
