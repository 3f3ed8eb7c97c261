package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/studytrack/task-system/internal/core/domain"
	"github.com/studytrack/task-system/internal/core/ports"
)

type stubModuleService struct {
	modules   []domain.Module
	module    *domain.Module
	err       error
	lastOwner string
	lastID    string
	lastPatch ports.ModulePatch
	deleted   bool
}

func (s *stubModuleService) List(_ context.Context, ownerID string) ([]domain.Module, error) {
	s.lastOwner = ownerID
	return s.modules, s.err
}

func (s *stubModuleService) Get(_ context.Context, id, ownerID string) (*domain.Module, error) {
	s.lastID, s.lastOwner = id, ownerID
	return s.module, s.err
}

func (s *stubModuleService) Create(_ context.Context, ownerID, title, description string) (*domain.Module, error) {
	s.lastOwner = ownerID
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Module{ID: "mod_1", Title: title, Description: description, OwnerID: ownerID}, nil
}

func (s *stubModuleService) Update(_ context.Context, id, ownerID string, patch ports.ModulePatch) (*domain.Module, error) {
	s.lastID, s.lastOwner, s.lastPatch = id, ownerID, patch
	return s.module, s.err
}

func (s *stubModuleService) Delete(_ context.Context, id, ownerID string) error {
	s.lastID, s.lastOwner = id, ownerID
	s.deleted = s.err == nil
	return s.err
}

func TestModuleHandler_List(t *testing.T) {
	svc := &stubModuleService{modules: []domain.Module{{ID: "mod_1", Title: "Algebra", OwnerID: "user_1"}}}
	h := NewModuleHandler(svc)

	c, rec := authedContext(http.MethodGet, "/modules", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.lastOwner != "user_1" {
		t.Fatalf("owner not taken from claims: %q", svc.lastOwner)
	}

	var modules []domain.Module
	if err := json.Unmarshal(rec.Body.Bytes(), &modules); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(modules) != 1 || modules[0].Title != "Algebra" {
		t.Fatalf("unexpected body: %+v", modules)
	}
}

func TestModuleHandler_Create(t *testing.T) {
	svc := &stubModuleService{}
	h := NewModuleHandler(svc)

	c, rec := authedContext(http.MethodPost, "/modules", `{"title":"Algebra","description":"notes"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastOwner != "user_1" {
		t.Fatalf("owner not taken from claims: %q", svc.lastOwner)
	}
}

func TestModuleHandler_Create_MissingTitle(t *testing.T) {
	h := NewModuleHandler(&stubModuleService{})

	c, _ := authedContext(http.MethodPost, "/modules", `{"description":"no title"}`)
	err := h.Create(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestModuleHandler_Get_NotFound(t *testing.T) {
	h := NewModuleHandler(&stubModuleService{err: domain.ErrModuleNotFound})

	c, _ := authedContext(http.MethodGet, "/modules/mod_x", "")
	c.SetParamNames("id")
	c.SetParamValues("mod_x")

	if err := h.Get(c); !errors.Is(err, domain.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound passthrough, got %v", err)
	}
}

func TestModuleHandler_Update_ForwardsPatch(t *testing.T) {
	svc := &stubModuleService{module: &domain.Module{ID: "mod_1", Title: "Algebra II"}}
	h := NewModuleHandler(svc)

	c, rec := authedContext(http.MethodPut, "/modules/mod_1", `{"title":"Algebra II"}`)
	c.SetParamNames("id")
	c.SetParamValues("mod_1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastPatch.Title == nil || *svc.lastPatch.Title != "Algebra II" {
		t.Fatalf("title not forwarded: %+v", svc.lastPatch)
	}
	if svc.lastPatch.Description != nil {
		t.Fatalf("absent field should stay nil: %+v", svc.lastPatch)
	}
}

func TestModuleHandler_Delete(t *testing.T) {
	svc := &stubModuleService{}
	h := NewModuleHandler(svc)

	c, rec := authedContext(http.MethodDelete, "/modules/mod_1", "")
	c.SetParamNames("id")
	c.SetParamValues("mod_1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !svc.deleted || svc.lastID != "mod_1" {
		t.Fatalf("delete not forwarded: %+v", svc)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "module and tasks deleted" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestModuleHandler_NoClaims(t *testing.T) {
	h := NewModuleHandler(&stubModuleService{})

	handlers := map[string]echo.HandlerFunc{
		"list":   h.List,
		"get":    h.Get,
		"create": h.Create,
		"update": h.Update,
		"delete": h.Delete,
	}
	for name, fn := range handlers {
		t.Run(name, func(t *testing.T) {
			c, _ := newJSONContext(http.MethodGet, "/modules", "")
			err := fn(c)
			if code := httpCode(t, err); code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", code)
			}
		})
	}
}
