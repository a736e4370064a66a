package main

import (
	handler "booklet-show/biz/adaptor/controller"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// customizedRegister registers customize routers.
func customizedRegister(r *server.Hertz) {
	r.GET("/ping", handler.Ping)

	userGroup := r.Group("/user")
	{
		userGroup.POST("/register", handler.Register)
		userGroup.POST("/login", handler.Login)
		userGroup.POST("/reset_password", handler.ResetPassword)
		userGroup.POST("/authorize", handler.AuthorizeUser)
		userGroup.GET("/has_any", handler.HasAnyUsers)
		userGroup.GET("/list", handler.ListUsers)
	}

	bookletGroup := r.Group("/booklet")
	{
		bookletGroup.POST("/create", handler.CreateBooklet)
		bookletGroup.GET("/get", handler.GetBooklet)
		bookletGroup.GET("/list", handler.ListBooklets)
		bookletGroup.POST("/update", handler.UpdateBooklet)
		bookletGroup.POST("/update_subject", handler.UpdateBookletSubject)

		questionGroup := bookletGroup.Group("/question")
		{
			questionGroup.POST("/add", handler.AddQuestion)
			questionGroup.POST("/update", handler.UpdateQuestion)
			questionGroup.POST("/remove", handler.RemoveQuestion)
		}
	}

	assignmentGroup := r.Group("/assignment")
	{
		assignmentGroup.POST("/create", handler.CreateAssignment)
		assignmentGroup.POST("/update", handler.UpdateAssignment)
		assignmentGroup.GET("/get", handler.GetAssignment)
		assignmentGroup.GET("/list", handler.ListAssignments)
		assignmentGroup.POST("/delete", handler.DeleteAssignment)
	}

	submissionGroup := r.Group("/submission")
	{
		submissionGroup.POST("/submit", handler.SubmitWork)
		submissionGroup.GET("/list", handler.ListSubmissions)
		submissionGroup.POST("/override_mark", handler.OverrideMark)
		submissionGroup.POST("/advance_status", handler.AdvanceStatus)
	}

	transferGroup := r.Group("/transfer")
	{
		transferGroup.POST("/import", handler.ImportData)
		transferGroup.GET("/export", handler.ExportData)
	}

	syncGroup := r.Group("/sync")
	{
		syncGroup.POST("/now", handler.SyncNow)
	}

	systemGroup := r.Group("/system")
	{
		systemGroup.POST("/factory_reset", handler.FactoryReset)
	}

	assetGroup := r.Group("/asset")
	{
		assetGroup.GET("/upload_url", handler.GetUploadUrl)
	}
}
