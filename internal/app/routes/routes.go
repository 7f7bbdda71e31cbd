package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unirecords/internal/app/controllers"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth     *controllers.AuthController
	User     *controllers.UserController
	Students *controllers.StudentController
	Alumni   *controllers.AlumniController
	Advisors *controllers.AdvisorController
	Projects *controllers.ProjectController
	Import   *controllers.ImportController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	admin := authMiddleware.RoleRequired(string(models.RoleAdmin))

	// --- Public routes ---
	api.POST("/auth/login", c.Auth.Login)
	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewSuccess(gin.H{"status": "ok", "time": time.Now().UTC()}, ""))
	})

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/profile", c.User.GetProfile)
		authenticated.PUT("/auth/change-password", c.User.ChangePassword)

		students := authenticated.Group("/students")
		{
			students.GET("", c.Students.GetStudents)
			students.GET("/:id", c.Students.GetStudentByID)
			students.POST("", admin, c.Students.CreateStudent)
			students.PUT("/status/batch", admin, c.Students.BatchUpdateStatus)
			students.POST("/graduate", admin, c.Students.GraduateStudents)
			students.PUT("/:id", admin, c.Students.UpdateStudent)
			students.DELETE("/:id", admin, c.Students.DeleteStudent)
		}

		alumni := authenticated.Group("/alumni")
		{
			alumni.GET("", c.Alumni.GetAlumni)
			alumni.GET("/:id", c.Alumni.GetAlumniByID)
			alumni.POST("", admin, c.Alumni.CreateAlumni)
			// Ownership is checked by the controller for non-admins.
			alumni.PUT("/:id", c.Alumni.UpdateAlumni)
			alumni.DELETE("/:id", admin, c.Alumni.DeleteAlumni)
		}

		advisors := authenticated.Group("/advisors")
		{
			advisors.GET("", c.Advisors.GetAdvisors)
			advisors.GET("/:id", c.Advisors.GetAdvisorByID)
			advisors.POST("", admin, c.Advisors.CreateAdvisor)
			advisors.PUT("/:id", admin, c.Advisors.UpdateAdvisor)
			advisors.DELETE("/:id", admin, c.Advisors.DeleteAdvisor)
		}

		authors := authMiddleware.RoleRequired(string(models.RoleAdmin), string(models.RoleStudent))
		reviewers := authMiddleware.RoleRequired(string(models.RoleAdmin), string(models.RoleAdvisor))

		projects := authenticated.Group("/projects")
		{
			projects.GET("", c.Projects.GetProjects)
			projects.GET("/:id", c.Projects.GetProjectByID)
			projects.POST("", authors, c.Projects.CreateProject)
			projects.PUT("/:id", authors, c.Projects.UpdateProject)
			projects.DELETE("/:id", admin, c.Projects.DeleteProject)
			projects.POST("/:id/comments", reviewers, c.Projects.AddComment)
		}

		authenticated.POST("/import/students", admin, c.Import.ImportStudents)
	}
}
