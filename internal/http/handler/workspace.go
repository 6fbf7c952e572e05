package handler

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"qlcc/internal/http/middleware"
	"qlcc/internal/model"
	"qlcc/internal/store"
	"qlcc/internal/workspace"
)

type workspaceResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

type pageRequest struct {
	Page *int `json:"page"`
	Size *int `json:"size"`
}

type drawerRequest struct {
	Mode   string `json:"mode"`
	ID     *int64 `json:"id"`
	FileID *int64 `json:"fileId"`
}

type deleteDialogRequest struct {
	ID int64 `json:"id"`
}

// CreateWorkspace godoc
// @Summary Create a workspace
// @Tags workspaces
// @Produce json
// @Success 201 {object} workspaceResponse
// @Router /api/v1/workspaces [post]
func CreateWorkspace(reg *workspace.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w, err := reg.Create(c.UserContext())
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(workspaceResponse{
			ID:        w.ID,
			CreatedAt: w.CreatedAt,
		})
	}
}

// DeleteWorkspace disposes a workspace and revokes its previews.
func DeleteWorkspace(reg *workspace.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := reg.Dispose(c.Params("ws")); err != nil {
			return writeDomainError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ViewCollection godoc
// @Summary Render a collection
// @Tags collections
// @Produce json
// @Param ws path string true "workspace id"
// @Param kind path string true "collection"
// @Router /api/v1/workspaces/{ws}/{kind} [get]
func ViewCollection(reg *workspace.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w, r, err := resolve(c, reg)
		if err != nil {
			return writeDomainError(c, err)
		}
		var view any
		if model.Kind(r.Kind()) == model.KindDocument {
			view, err = w.Docs.View(c.UserContext())
		} else {
			view, err = r.Snapshot(c.UserContext())
		}
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(view)
	}
}

// SetFilter merges the JSON body into the filter criteria.
func SetFilter(reg *workspace.Registry) fiber.Handler {
	return withResource(reg, func(c *fiber.Ctx, _ *workspace.Workspace, r store.Resource) error {
		if err := r.SetFilterJSON(c.Body()); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func ClearFilters(reg *workspace.Registry) fiber.Handler {
	return withResource(reg, func(c *fiber.Ctx, _ *workspace.Workspace, r store.Resource) error {
		r.ClearFilters()
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// SetPage applies size before page, since a size change resets the page.
func SetPage(reg *workspace.Registry) fiber.Handler {
	return withResource(reg, func(c *fiber.Ctx, _ *workspace.Workspace, r store.Resource) error {
		var req pageRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}
		if req.Size != nil {
			if err := r.SetItemsPerPage(*req.Size); err != nil {
				return err
			}
		}
		if req.Page != nil {
			if err := r.SetCurrentPage(c.UserContext(), *req.Page); err != nil {
				return err
			}
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func OpenDrawer(reg *workspace.Registry) fiber.Handler {
	return withResource(reg, func(c *fiber.Ctx, _ *workspace.Workspace, r store.Resource) error {
		var req drawerRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}
		mode, err := store.ParseMode(req.Mode)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_MODE", err.Error())
		}
		if err := r.OpenDrawer(c.UserContext(), mode, req.ID, req.FileID); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func SwitchToEdit(reg *workspace.Registry) fiber.Handler {
	return withResource(reg, func(c *fiber.Ctx, _ *workspace.Workspace, r store.Resource) error {
		if err := r.SwitchToEdit(); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func CloseDrawer(reg *workspace.Registry) fiber.Handler {
	return withResource(reg, func(c *fiber.Ctx, _ *workspace.Workspace, r store.Resource) error {
		r.CloseDrawer()
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// Submit godoc
// @Summary Save the open drawer
// @Description Adds in add mode, updates in edit or upload mode. The body holds the entity fields.
// @Tags collections
// @Accept json
// @Produce json
// @Router /api/v1/workspaces/{ws}/{kind}/submit [post]
func Submit(reg *workspace.Registry) fiber.Handler {
	return withResource(reg, func(c *fiber.Ctx, w *workspace.Workspace, r store.Resource) error {
		actor := middleware.ActorFrom(c)
		var (
			saved any
			err   error
		)
		if model.Kind(r.Kind()) == model.KindDocument {
			saved, err = w.Docs.Submit(c.UserContext(), actor, c.Body())
		} else {
			saved, err = r.SubmitJSON(c.UserContext(), actor, c.Body())
		}
		if err != nil {
			return err
		}
		return c.JSON(saved)
	})
}

func Import(reg *workspace.Registry) fiber.Handler {
	return withResource(reg, func(c *fiber.Ctx, _ *workspace.Workspace, r store.Resource) error {
		saved, err := r.ImportJSON(c.UserContext(), middleware.ActorFrom(c), c.Body())
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	})
}

func ChangeStatus(reg *workspace.Registry) fiber.Handler {
	return withResource(reg, func(c *fiber.Ctx, _ *workspace.Workspace, r store.Resource) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		saved, err := r.ChangeStatusJSON(c.UserContext(), middleware.ActorFrom(c), id, c.Body())
		if err != nil {
			return err
		}
		return c.JSON(saved)
	})
}

func RequestDelete(reg *workspace.Registry) fiber.Handler {
	return withResource(reg, func(c *fiber.Ctx, _ *workspace.Workspace, r store.Resource) error {
		var req deleteDialogRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil || req.ID <= 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
		}
		r.RequestDelete(req.ID)
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func CancelDelete(reg *workspace.Registry) fiber.Handler {
	return withResource(reg, func(c *fiber.Ctx, _ *workspace.Workspace, r store.Resource) error {
		r.CancelDelete()
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// DeleteEntity removes the entity named by the open delete dialog.
func DeleteEntity(reg *workspace.Registry) fiber.Handler {
	return withResource(reg, func(c *fiber.Ctx, w *workspace.Workspace, r store.Resource) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		actor := middleware.ActorFrom(c)
		var err error
		if model.Kind(r.Kind()) == model.KindDocument {
			err = w.Docs.Delete(c.UserContext(), actor, id)
		} else {
			err = r.Delete(c.UserContext(), actor, id)
		}
		if err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// resolve finds the workspace and the collection named by the path.
func resolve(c *fiber.Ctx, reg *workspace.Registry) (*workspace.Workspace, store.Resource, error) {
	w, err := reg.Get(c.Params("ws"))
	if err != nil {
		return nil, nil, err
	}
	kind := c.Params("kind")
	r, ok := w.Resource(model.Kind(kind))
	if !ok {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "unknown collection "+kind)
	}
	return w, r, nil
}

// withResource resolves the path and maps any error fn returns.
func withResource(reg *workspace.Registry, fn func(*fiber.Ctx, *workspace.Workspace, store.Resource) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w, r, err := resolve(c, reg)
		if err != nil {
			return writeDomainError(c, err)
		}
		if err := fn(c, w, r); err != nil {
			return writeDomainError(c, err)
		}
		return nil
	}
}

func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
