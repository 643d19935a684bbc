package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/secondchance/secondchance-backend/internal/model"
	"github.com/secondchance/secondchance-backend/internal/service"
)

type fakeItemService struct {
	items   map[string]*model.Item
	created *service.CreateItemInput
	updated *service.UpdateItemInput
}

func newFakeItemService() *fakeItemService {
	return &fakeItemService{items: map[string]*model.Item{}}
}

func (f *fakeItemService) List(ctx context.Context) ([]model.Item, error) {
	out := make([]model.Item, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeItemService) Create(ctx context.Context, in service.CreateItemInput) (*model.Item, error) {
	f.created = &in
	item := &model.Item{
		UID:     1,
		ItemID:  "1",
		Name:    in.Name,
		Image:   in.Image,
		AgeDays: in.AgeDays,
	}
	f.items[item.ItemID] = item
	return item, nil
}

func (f *fakeItemService) Get(ctx context.Context, itemID string) (*model.Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, service.ErrNotFound
	}
	return item, nil
}

func (f *fakeItemService) Update(ctx context.Context, itemID string, in service.UpdateItemInput) error {
	if _, ok := f.items[itemID]; !ok {
		return service.ErrNotFound
	}
	f.updated = &in
	return nil
}

func (f *fakeItemService) Delete(ctx context.Context, itemID string) error {
	if _, ok := f.items[itemID]; !ok {
		return service.ErrNotFound
	}
	delete(f.items, itemID)
	return nil
}

type fakeStore struct {
	savedName string
	savedData string
}

func (f *fakeStore) Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	data, _ := io.ReadAll(r)
	f.savedName = name
	f.savedData = string(data)
	return "/images/" + name, nil
}

func itemRequest(t *testing.T, h echo.HandlerFunc, method, body, contentType, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestItemGetNotFound(t *testing.T) {
	h := NewItemHandler(newFakeItemService(), &fakeStore{})

	rec := itemRequest(t, h.Get, http.MethodGet, "", "", "99")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error != "Item not found" {
		t.Errorf("unexpected error %q", resp.Error)
	}
}

func TestItemListReturnsArray(t *testing.T) {
	svc := newFakeItemService()
	svc.items["1"] = &model.Item{ItemID: "1", Name: "Chair"}
	h := NewItemHandler(svc, &fakeStore{})

	rec := itemRequest(t, h.List, http.MethodGet, "", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []ItemResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected a bare array body: %v", err)
	}
	if len(resp) != 1 || resp[0].Name != "Chair" {
		t.Errorf("unexpected list %+v", resp)
	}
}

func TestItemCreateMultipart(t *testing.T) {
	svc := newFakeItemService()
	store := &fakeStore{}
	h := NewItemHandler(svc, store)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("name", "Chair")
	mw.WriteField("age_days", "730")
	fw, _ := mw.CreateFormFile("file", "../../etc/passwd.png")
	fw.Write([]byte("image bytes"))
	mw.Close()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/items", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.created == nil {
		t.Fatal("service not called")
	}
	if svc.created.Name != "Chair" || svc.created.AgeDays != 730 {
		t.Errorf("unexpected input %+v", svc.created)
	}
	if store.savedData != "image bytes" {
		t.Errorf("file not stored: %q", store.savedData)
	}
	if strings.Contains(store.savedName, "/") || strings.Contains(store.savedName, "passwd") {
		t.Errorf("stored name derived from client filename: %q", store.savedName)
	}
	if !strings.HasSuffix(store.savedName, ".png") {
		t.Errorf("expected extension kept on %q", store.savedName)
	}
	if svc.created.Image != "/images/"+store.savedName {
		t.Errorf("image reference not recorded: %q", svc.created.Image)
	}
}

func TestItemUpdateAgeDaysAsString(t *testing.T) {
	svc := newFakeItemService()
	svc.items["12"] = &model.Item{ItemID: "12"}
	h := NewItemHandler(svc, &fakeStore{})

	rec := itemRequest(t, h.Update, http.MethodPut, `{"age_days":"365"}`, echo.MIMEApplicationJSON, "12")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp MessageResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Message != "Successful upload" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if svc.updated == nil || svc.updated.AgeDays == nil || *svc.updated.AgeDays != 365 {
		t.Errorf("age_days string not bound: %+v", svc.updated)
	}
	if svc.updated.Name != nil {
		t.Error("absent field bound as present")
	}
}

func TestItemUpdateNotFound(t *testing.T) {
	h := NewItemHandler(newFakeItemService(), &fakeStore{})

	rec := itemRequest(t, h.Update, http.MethodPut, `{"name":"x"}`, echo.MIMEApplicationJSON, "99")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestItemDelete(t *testing.T) {
	svc := newFakeItemService()
	svc.items["1"] = &model.Item{ItemID: "1"}
	h := NewItemHandler(svc, &fakeStore{})

	rec := itemRequest(t, h.Delete, http.MethodDelete, "", "", "1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp MessageResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Message != "Deletion successful" {
		t.Errorf("unexpected message %q", resp.Message)
	}

	rec = itemRequest(t, h.Delete, http.MethodDelete, "", "", "1")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", rec.Code)
	}
}
