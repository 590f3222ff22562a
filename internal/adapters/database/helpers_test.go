package database

import (
	"context"
	"testing"
	"time"
	"yatube/internal/config"
	"yatube/internal/core/group"
	"yatube/internal/core/post"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB("sqlite://:memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *user.User {
	t.Helper()
	u, err := NewUserRepositoryDatabase(db).Create(context.Background(), &user.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		Password: "x",
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func seedGroup(t *testing.T, db *gorm.DB, slug string) *group.Group {
	t.Helper()
	g, err := NewGroupRepositoryDatabase(db).Create(context.Background(), &group.Group{
		Title:       "Group " + slug,
		Slug:        slug,
		Description: "about " + slug,
	})
	if err != nil {
		t.Fatalf("create group %s: %v", slug, err)
	}
	return g
}

func seedPost(t *testing.T, db *gorm.DB, author *user.User, g *group.Group, text string, at time.Time) *post.Post {
	t.Helper()
	p := &post.Post{Text: text, AuthorID: author.ID, CreatedAt: at}
	if g != nil {
		p.GroupID = &g.ID
	}
	created, err := NewPostRepositoryDatabase(db).Create(context.Background(), p)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return created
}
