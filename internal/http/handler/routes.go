package handler

import (
	"github.com/gofiber/fiber/v2"

	"qlcc/internal/attachment"
	"qlcc/internal/workspace"
)

// RegisterRoutes attaches the probes, the preview route and the workspace API
// under /api/v1. Literal segments are registered before :id so they win.
func RegisterRoutes(app fiber.Router, reg *workspace.Registry, previews *attachment.PreviewRegistry, checks ...Check) {
	app.Get("/health", HealthCheck(checks...))
	app.Get("/healthz", LivenessProbe())
	app.Get("/previews/:token", ServePreview(previews))

	api := app.Group("/api/v1")
	api.Post("/workspaces", CreateWorkspace(reg))
	api.Delete("/workspaces/:ws", DeleteWorkspace(reg))

	docs := api.Group("/workspaces/:ws/documents")
	docs.Post("/staged", StageFile(reg))
	docs.Delete("/staged/:index", UnstageFile(reg))
	docs.Post("/attachments/:fileId/remove", MarkFileForRemoval(reg))
	docs.Post("/:id/attachments/:fileId/delete-dialog", RequestFileDelete(reg))
	docs.Delete("/:id/attachments/:fileId/delete-dialog", CancelFileDelete(reg))
	docs.Get("/:id/attachments/:fileId", DownloadFile(reg))
	docs.Delete("/:id/attachments/:fileId", DeleteFile(reg))

	kind := api.Group("/workspaces/:ws/:kind")
	kind.Get("/", ViewCollection(reg))
	kind.Patch("/filter", SetFilter(reg))
	kind.Delete("/filter", ClearFilters(reg))
	kind.Put("/page", SetPage(reg))
	kind.Post("/drawer", OpenDrawer(reg))
	kind.Post("/drawer/edit", SwitchToEdit(reg))
	kind.Delete("/drawer", CloseDrawer(reg))
	kind.Post("/submit", Submit(reg))
	kind.Post("/import", Import(reg))
	kind.Post("/delete-dialog", RequestDelete(reg))
	kind.Delete("/delete-dialog", CancelDelete(reg))
	kind.Post("/:id/status", ChangeStatus(reg))
	kind.Delete("/:id", DeleteEntity(reg))
}
