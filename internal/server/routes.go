package server

import (
	"JobBoard-backend/internal/auth"
	"JobBoard-backend/internal/controller/applicant"
	"JobBoard-backend/internal/controller/application"
	"JobBoard-backend/internal/controller/employer"
	"JobBoard-backend/internal/controller/file"
	"JobBoard-backend/internal/controller/job"
	"JobBoard-backend/internal/middleware"
	"JobBoard-backend/internal/model"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const uploadLimit = file.MaxUploadBytes

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	googleOauth := auth.NewGoogleOauthConfig(s.Config.GoogleClientID, s.Config.GoogleClientSecret, s.Config.OauthRedirectURL)
	gAuth := auth.NewOauthLoginHandler(s.Policy, googleOauth, auth.GoogleUserInfoEndpoint)
	lAuth := auth.NewLocalAuthHandler(s.Policy)
	logout := auth.NewLogoutController(s.Blacklist)

	fileController := file.NewFileController(s.DB, s.Storage)
	jobController := job.NewJobController(s.Policy)
	applicationController := application.NewApplicationController(s.Policy, fileController)
	employerController := employer.NewEmployerController(s.DB)
	applicantController := applicant.NewApplicantController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.Config.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SafeHeader(), middleware.RateLimiterMiddleware(s.Config.RateLimit, s.Redis))

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JwtBlacklistCheck(s.Blacklist))
	{
		v1.POST("register", lAuth.RegisterHandler)

		authRoute := v1.Group("/auth")
		{
			authRoute.POST("login", lAuth.LoginHandler)
			authRoute.POST("google/employer", gAuth.EmployerGoogleLoginHandler)
			authRoute.POST("google/applicant", gAuth.ApplicantGoogleLoginHandler)
			authRoute.GET("google/callback", gAuth.Callback)
			authRoute.POST("logout", middleware.RequireAuth(s.Policy), logout.LogoutHandler)
		}

		// Public or optionally authenticated routes
		optional := v1.Group("")
		{
			optional.Use(middleware.OptionalAuth(s.Policy))
			optional.GET("jobs", jobController.ListJobs)
			optional.GET("jobs/:id", jobController.GetJob)
			optional.GET("employers", employerController.ListEmployers)
			optional.GET("employers/:id", employerController.GetEmployer)
			optional.GET("files/:id", fileController.GetFile)
		}

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.Policy))

			needAuth.POST("jobs", jobController.CreateJob)
			needAuth.PUT("jobs/:id", jobController.UpdateJob)
			needAuth.PATCH("jobs/:id", jobController.UpdateJob)
			needAuth.DELETE("jobs/:id", jobController.DeleteJob)

			needAuth.GET("applications", applicationController.ListApplications)
			needAuth.GET("jobs/:id/applications", applicationController.ListApplications)
			needAuth.POST("jobs/:id/applications", middleware.SizeLimit(uploadLimit), applicationController.CreateApplication)
			needAuth.GET("jobs/:id/applications/:application_id", applicationController.GetApplication)
			needAuth.PUT("jobs/:id/applications/:application_id", applicationController.UpdateApplication)
			needAuth.PATCH("jobs/:id/applications/:application_id", applicationController.UpdateApplication)
			needAuth.DELETE("jobs/:id/applications/:application_id", applicationController.DeleteApplication)

			employerRoute := needAuth.Group("/employer")
			{
				employerRoute.Use(middleware.CheckRole(model.RoleEmployer))
				employerRoute.GET("profile", employerController.GetMyProfile)
				employerRoute.PUT("profile", employerController.EditMyProfile)
				employerRoute.PATCH("profile", employerController.EditMyProfile)
				employerRoute.DELETE("profile", employerController.DeleteMyProfile)
				employerRoute.POST("profile/logo", middleware.SizeLimit(uploadLimit), fileController.UploadLogo)
			}

			needAuth.GET("applicants", middleware.CheckRole(model.RoleEmployer), applicantController.ListApplicants)

			applicantRoute := needAuth.Group("/applicant")
			{
				applicantRoute.Use(middleware.CheckRole(model.RoleApplicant))
				applicantRoute.GET("profile", applicantController.GetMyProfile)
				applicantRoute.PUT("profile", applicantController.EditMyProfile)
				applicantRoute.PATCH("profile", applicantController.EditMyProfile)
				applicantRoute.POST("profile/resume", middleware.SizeLimit(uploadLimit), fileController.UploadResume)
			}
		}
	}

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
