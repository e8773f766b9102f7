package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/libraryhub/internal/app/controllers"
	"github.com/yigit/libraryhub/internal/app/models"
	"github.com/yigit/libraryhub/internal/app/models/dto"
	"github.com/yigit/libraryhub/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	User     *controllers.UserController
	Author   *controllers.AuthorController
	Category *controllers.CategoryController
	Course   *controllers.CourseController
	Book     *controllers.BookController
	Lending  *controllers.LendingController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	users := v1.Group("/users")
	{
		// An admin token lets the caller create another admin
		users.POST("/register", authMiddleware.OptionalAuth(), c.User.Register)
		users.POST("/login", c.User.Login)
	}
	v1.GET("/authors", c.Author.ListAuthors)
	v1.GET("/category", c.Category.ListCategories)
	v1.GET("/course", c.Course.ListCourses)
	v1.GET("/books", c.Book.ListBooks)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	account := authenticated.Group("/users")
	{
		account.POST("/logout", c.User.Logout)
		account.PUT("/update-profile", c.User.UpdateProfile)
		account.DELETE("/delete-profile", c.User.DeleteProfile)
		account.GET("/all", authMiddleware.RoleRequired(models.RoleAdmin), c.User.ListUsers)
	}

	authors := authenticated.Group("/authors")
	{
		authors.POST("", c.Author.CreateAuthor)
		authors.GET("/by-email/:email", c.Author.GetAuthor)
		authors.PUT("/by-email/:email", c.Author.UpdateAuthor)
		authors.DELETE("/by-email/:email", c.Author.DeleteAuthor)
	}

	categories := authenticated.Group("/category")
	{
		categories.POST("", c.Category.CreateCategory)
		categories.GET("/by-name/:name", c.Category.GetCategory)
		categories.PUT("/by-name/:name", c.Category.UpdateCategory)
		categories.DELETE("/by-name/:name", c.Category.DeleteCategory)
	}

	courses := authenticated.Group("/course")
	{
		courses.POST("", c.Course.CreateCourse)
		courses.GET("/:name", c.Course.GetCourse)
		courses.PUT("/:name", c.Course.UpdateCourse)
		courses.DELETE("/:name", c.Course.DeleteCourse)
	}

	books := authenticated.Group("/books")
	{
		books.POST("", c.Book.CreateBook)
		books.GET("/:title", c.Book.GetBook)
		books.PUT("/:title", c.Book.UpdateBook)
		books.DELETE("/:title", c.Book.DeleteBook)
	}

	loans := authenticated.Group("/issued-books")
	{
		loans.GET("", authMiddleware.RoleRequired(models.RoleAdmin), c.Lending.ListIssuedBooks)
		loans.POST("", c.Lending.IssueBook)
		loans.POST("/return", c.Lending.ReturnBook)
	}

	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	})
}
