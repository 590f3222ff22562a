package groupapp

import (
	"context"
	"errors"
	"testing"
	"yatube/internal/adapters/database"
	"yatube/internal/config"
	"yatube/internal/core/apperr"
)

func newService(t *testing.T) *GroupService {
	t.Helper()
	db, err := config.OpenDB("sqlite://:memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewGroupService(database.NewGroupRepositoryDatabase(db))
}

func TestCreateGroup(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	g, err := svc.CreateGroup(ctx, "Test Group", "", "desc")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if g.Slug != "test-group" {
		t.Fatalf("slug = %q, want derived from title", g.Slug)
	}

	if _, err := svc.CreateGroup(ctx, "Another", "test-slug", ""); err != nil {
		t.Fatalf("CreateGroup with explicit slug: %v", err)
	}
	got, err := svc.GetBySlug(ctx, "test-slug")
	if err != nil || got.Title != "Another" {
		t.Fatalf("GetBySlug = %+v, %v", got, err)
	}

	byID, err := svc.GetByID(ctx, g.ID)
	if err != nil || byID.Slug != "test-group" {
		t.Fatalf("GetByID = %+v, %v", byID, err)
	}

	all, _ := svc.ListGroups(ctx)
	if len(all) != 2 || all[0].Title != "Another" {
		t.Fatalf("ListGroups = %+v, want ordered by title", all)
	}
}

func TestCreateGroupRejects(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if _, err := svc.CreateGroup(ctx, "Test", "test-slug", ""); err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	tests := []struct {
		name, title, slug, field string
	}{
		{"duplicate slug", "Other", "test-slug", "slug"},
		{"bad slug", "Other", "Has Spaces", "slug"},
		{"missing title", "", "fine", "title"},
		{"title without latin letters", "Группа", "", "slug"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateGroup(ctx, tc.title, tc.slug, "")
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if apperr.Fields(err)[tc.field] == "" {
				t.Fatalf("Fields = %v, want %s error", apperr.Fields(err), tc.field)
			}
		})
	}

	if _, err := svc.GetBySlug(ctx, "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetBySlug missing: err = %v", err)
	}
}
