package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/secondchance/secondchance-backend/internal/model"
	"github.com/secondchance/secondchance-backend/internal/service"
	"github.com/secondchance/secondchance-backend/internal/storage"
)

type ItemHandler struct {
	svc   service.ItemService
	store storage.Store
}

func NewItemHandler(svc service.ItemService, store storage.Store) *ItemHandler {
	return &ItemHandler{svc: svc, store: store}
}

type ItemResponse struct {
	UID         uint64  `json:"uid"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Condition   string  `json:"condition"`
	Zipcode     string  `json:"zipcode"`
	Image       string  `json:"image"`
	Comments    string  `json:"comments"`
	AgeDays     float64 `json:"age_days"`
	AgeYears    float64 `json:"age_years"`
	DateAdded   int64   `json:"date_added"`
	UpdatedAt   string  `json:"updatedAt"`
}

type CreateItemRequest struct {
	Name        string    `json:"name" form:"name"`
	Description string    `json:"description" form:"description"`
	Category    string    `json:"category" form:"category"`
	Condition   string    `json:"condition" form:"condition"`
	Zipcode     string    `json:"zipcode" form:"zipcode"`
	Image       string    `json:"image" form:"image"`
	Comments    string    `json:"comments" form:"comments"`
	AgeDays     flexFloat `json:"age_days" form:"age_days"`
}

type UpdateItemRequest struct {
	Name        *string    `json:"name" form:"name"`
	Description *string    `json:"description" form:"description"`
	Category    *string    `json:"category" form:"category"`
	Condition   *string    `json:"condition" form:"condition"`
	Zipcode     *string    `json:"zipcode" form:"zipcode"`
	Image       *string    `json:"image" form:"image"`
	Comments    *string    `json:"comments" form:"comments"`
	AgeDays     *flexFloat `json:"age_days" form:"age_days"`
}

func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("failed to fetch items"))
	}
	resp := make([]ItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toItemResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ItemHandler) Create(c echo.Context) error {
	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid request"))
	}

	in := service.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Condition:   req.Condition,
		Zipcode:     req.Zipcode,
		Image:       req.Image,
		Comments:    req.Comments,
		AgeDays:     float64(req.AgeDays),
	}

	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("failed to read uploaded file"))
		}
		defer src.Close()

		// Stored names are generated, never taken from the client.
		name := uuid.NewString() + safeExt(fh.Filename)
		ref, err := h.store.Save(c.Request().Context(), name, fh.Header.Get("Content-Type"), src)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("failed to store image"))
		}
		in.Image = ref
	}

	item, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("failed to create item"))
	}
	return c.JSON(http.StatusCreated, toItemResponse(item))
}

func (h *ItemHandler) Get(c echo.Context) error {
	item, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("Item not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("failed to fetch item"))
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) Update(c echo.Context) error {
	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid request"))
	}

	err := h.svc.Update(c.Request().Context(), c.Param("id"), service.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Condition:   req.Condition,
		Zipcode:     req.Zipcode,
		Image:       req.Image,
		Comments:    req.Comments,
		AgeDays:     (*float64)(req.AgeDays),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("Item not found"))
		case errors.Is(err, service.ErrNothingStored):
			return c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Upload failed"})
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("failed to update item"))
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Successful upload"})
}

func (h *ItemHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("Item not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("failed to delete item"))
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Deletion successful"})
}

func toItemResponse(item *model.Item) ItemResponse {
	return ItemResponse{
		UID:         item.UID,
		ID:          item.ItemID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Condition:   item.Condition,
		Zipcode:     item.Zipcode,
		Image:       item.Image,
		Comments:    item.Comments,
		AgeDays:     item.AgeDays,
		AgeYears:    item.AgeYears,
		DateAdded:   item.DateAdded,
		UpdatedAt:   item.UpdatedAt.Format(time.RFC3339),
	}
}

// flexFloat accepts both JSON numbers and quoted decimal strings, since
// form-based clients send age_days as a string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return f.UnmarshalParam(s)
	}
	return json.Unmarshal(b, (*float64)(f))
}

// UnmarshalParam implements echo's BindUnmarshaler for form fields.
func (f *flexFloat) UnmarshalParam(param string) error {
	if param == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,9}$`)

// safeExt keeps the client filename's extension only when it is a plain
// alphanumeric suffix.
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if !extPattern.MatchString(ext) {
		return ""
	}
	return ext
}
