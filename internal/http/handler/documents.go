package handler

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"qlcc/internal/attachment"
	"qlcc/internal/http/middleware"
	"qlcc/internal/workspace"
)

// StageFile godoc
// @Summary Stage a file for the open document drawer
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "file"
// @Success 201 {object} attachment.Staged
// @Router /api/v1/workspaces/{ws}/documents/staged [post]
func StageFile(reg *workspace.Registry) fiber.Handler {
	return withWorkspace(reg, func(c *fiber.Ctx, w *workspace.Workspace) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		staged, err := w.Files.StageFile(attachment.File{Name: fh.Filename, MimeType: ct, Data: data})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(staged)
	})
}

func UnstageFile(reg *workspace.Registry) fiber.Handler {
	return withWorkspace(reg, func(c *fiber.Ctx, w *workspace.Workspace) error {
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INDEX", "invalid index")
		}
		if err := w.Files.UnstageFile(index); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// MarkFileForRemoval drops a persisted file from the drawer. Storage is only
// touched when the drawer is submitted.
func MarkFileForRemoval(reg *workspace.Registry) fiber.Handler {
	return withWorkspace(reg, func(c *fiber.Ctx, w *workspace.Workspace) error {
		fileID, ok := paramID(c, "fileId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid file id")
		}
		w.Files.MarkPersistedForRemoval(fileID)
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func RequestFileDelete(reg *workspace.Registry) fiber.Handler {
	return withWorkspace(reg, func(c *fiber.Ctx, w *workspace.Workspace) error {
		ref, ok := fileRef(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		w.Files.RequestFileDelete(ref)
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func CancelFileDelete(reg *workspace.Registry) fiber.Handler {
	return withWorkspace(reg, func(c *fiber.Ctx, w *workspace.Workspace) error {
		w.Files.CancelFileDelete()
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// DeleteFile godoc
// @Summary Delete one attachment right away
// @Description Requires a prior delete-dialog request for the same file.
// @Tags documents
// @Produce json
// @Router /api/v1/workspaces/{ws}/documents/{id}/attachments/{fileId} [delete]
func DeleteFile(reg *workspace.Registry) fiber.Handler {
	return withWorkspace(reg, func(c *fiber.Ctx, w *workspace.Workspace) error {
		ref, ok := fileRef(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := w.Docs.DeleteFileImmediately(c.UserContext(), middleware.ActorFrom(c), ref)
		if err != nil {
			return err
		}
		return c.JSON(doc)
	})
}

// DownloadFile godoc
// @Summary Download a stored attachment
// @Tags documents
// @Produce octet-stream
// @Param ws path string true "workspace id"
// @Param id path int true "document id"
// @Param fileId path int true "attachment id"
// @Router /api/v1/workspaces/{ws}/documents/{id}/attachments/{fileId} [get]
func DownloadFile(reg *workspace.Registry) fiber.Handler {
	return withWorkspace(reg, func(c *fiber.Ctx, w *workspace.Workspace) error {
		ref, ok := fileRef(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, a, err := w.Docs.Download(c.UserContext(), ref)
		if err != nil {
			return err
		}
		ct := a.MimeType
		if ct == "" {
			ct = "application/octet-stream"
		}
		size := -1
		if a.SizeBytes > 0 {
			size = int(a.SizeBytes)
		}
		c.Set(fiber.HeaderContentType, ct)
		c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(a.Name))
		return c.SendStream(rc, size)
	})
}

// ServePreview streams a staged file behind its temporary token.
func ServePreview(previews *attachment.PreviewRegistry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := previews.Open(c.Params("token"))
		if !ok {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "preview expired or revoked")
		}
		c.Set(fiber.HeaderContentType, p.MimeType)
		c.Set(fiber.HeaderContentDisposition, "inline; filename="+strconv.Quote(p.Name))
		c.Set(fiber.HeaderCacheControl, "private, no-store")
		return c.Send(p.Data)
	}
}

func withWorkspace(reg *workspace.Registry, fn func(*fiber.Ctx, *workspace.Workspace) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w, err := reg.Get(c.Params("ws"))
		if err != nil {
			return writeDomainError(c, err)
		}
		if err := fn(c, w); err != nil {
			return writeDomainError(c, err)
		}
		return nil
	}
}

func fileRef(c *fiber.Ctx) (attachment.FileRef, bool) {
	docID, ok := paramID(c, "id")
	if !ok {
		return attachment.FileRef{}, false
	}
	fileID, ok := paramID(c, "fileId")
	if !ok {
		return attachment.FileRef{}, false
	}
	return attachment.FileRef{DocumentID: docID, FileID: fileID}, true
}
