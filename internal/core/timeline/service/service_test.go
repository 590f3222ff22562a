package timelineapp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	"yatube/internal/adapters/database"
	"yatube/internal/config"
	"yatube/internal/core/apperr"
	followerapp "yatube/internal/core/follower/service"
	"yatube/internal/core/group"
	"yatube/internal/core/post"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	follows   *followerapp.FollowerService
	timelines *TimelineService
	clock     time.Time
}

func newFixture(t *testing.T) *fixture {
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

	follows := followerapp.NewFollowerService(database.NewFollowerRepositoryDatabase(db))
	return &fixture{
		db:      db,
		follows: follows,
		timelines: NewTimelineService(
			database.NewTimelineRepositoryDatabase(db),
			database.NewGroupRepositoryDatabase(db),
			database.NewUserRepositoryDatabase(db),
			follows,
		),
		clock: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) user(t *testing.T, username string) *user.User {
	t.Helper()
	u := &user.User{ID: uuid.Must(uuid.NewV4()), Username: username, Password: "x"}
	if err := f.db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (f *fixture) post(t *testing.T, author *user.User, g *group.Group, text string) *post.Post {
	t.Helper()
	f.clock = f.clock.Add(time.Minute)
	p := &post.Post{Text: text, AuthorID: author.ID, CreatedAt: f.clock}
	if g != nil {
		p.GroupID = &g.ID
	}
	if err := f.db.Omit("Author", "Group").Create(p).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

func (f *fixture) follow(t *testing.T, viewer, author *user.User) {
	t.Helper()
	if err := f.follows.FollowUser(context.Background(), viewer.ID.String(), author.ID.String()); err != nil {
		t.Fatalf("follow: %v", err)
	}
}

func TestFeedShowsOnlyFollowedAuthors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v := f.user(t, "viewer")
	b := f.user(t, "bee")
	c := f.user(t, "cee")
	d := f.user(t, "dee")
	f.follow(t, v, b)
	f.follow(t, v, c)

	f.post(t, b, nil, "b1")
	f.post(t, d, nil, "d1")
	f.post(t, c, nil, "c1")
	f.post(t, b, nil, "b2")
	f.post(t, d, nil, "d2")

	feed, err := f.timelines.Feed(ctx, v.ID.String(), 1)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	want := []string{"b2", "c1", "b1"}
	if len(feed.Items) != len(want) {
		t.Fatalf("feed has %d posts, want %d", len(feed.Items), len(want))
	}
	for i, item := range feed.Items {
		if item.Text != want[i] {
			t.Fatalf("feed[%d] = %q, want %q", i, item.Text, want[i])
		}
		if item.Author.Username == "dee" {
			t.Fatal("unfollowed author leaked into feed")
		}
	}

	dFeed, err := f.timelines.Feed(ctx, d.ID.String(), 1)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(dFeed.Items) != 0 || dFeed.TotalCount != 0 || dFeed.HasNext {
		t.Fatalf("feed of someone following nobody = %+v", dFeed.Meta)
	}
}

func TestFeedPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v := f.user(t, "viewer")
	b := f.user(t, "bee")
	f.follow(t, v, b)
	for i := 1; i <= 15; i++ {
		f.post(t, b, nil, fmt.Sprintf("post %d", i))
	}

	tests := []struct {
		page    int
		wantLen int
		hasNext bool
	}{
		{1, 10, true},
		{2, 5, false},
		{3, 0, false},
	}
	for _, tc := range tests {
		feed, err := f.timelines.Feed(ctx, v.ID.String(), tc.page)
		if err != nil {
			t.Fatalf("Feed(page %d): %v", tc.page, err)
		}
		if len(feed.Items) != tc.wantLen || feed.HasNext != tc.hasNext {
			t.Fatalf("page %d: %d items hasNext=%v, want %d hasNext=%v",
				tc.page, len(feed.Items), feed.HasNext, tc.wantLen, tc.hasNext)
		}
		if feed.NumPages != 2 || feed.TotalCount != 15 {
			t.Fatalf("page %d: meta = %+v", tc.page, feed.Meta)
		}
	}

	first, _ := f.timelines.Feed(ctx, v.ID.String(), 1)
	if first.Items[0].Text != "post 15" {
		t.Fatalf("newest post first: got %q", first.Items[0].Text)
	}
}

func TestFeedFollowsGraphChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v := f.user(t, "viewer")
	b := f.user(t, "bee")
	f.post(t, b, nil, "hello")

	before, _ := f.timelines.Feed(ctx, v.ID.String(), 1)
	f.follow(t, v, b)
	during, _ := f.timelines.Feed(ctx, v.ID.String(), 1)
	if err := f.follows.UnfollowUser(ctx, v.ID.String(), b.ID.String()); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	after, _ := f.timelines.Feed(ctx, v.ID.String(), 1)

	if len(before.Items) != 0 || len(during.Items) != 1 || len(after.Items) != 0 {
		t.Fatalf("feed sizes before/during/after = %d/%d/%d, want 0/1/0",
			len(before.Items), len(during.Items), len(after.Items))
	}
}

func TestGroupAndProfileListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := &group.Group{Title: "Test group", Slug: "test-slug", Description: "d"}
	if err := f.db.Create(g).Error; err != nil {
		t.Fatalf("create group: %v", err)
	}
	auth := f.user(t, "auth")
	other := f.user(t, "other")
	f.post(t, auth, g, "in group")
	f.post(t, auth, nil, "no group")
	f.post(t, other, nil, "someone else")

	gp, err := f.timelines.GroupPosts(ctx, "test-slug", 1)
	if err != nil {
		t.Fatalf("GroupPosts: %v", err)
	}
	if gp.Group.Slug != "test-slug" || len(gp.Page.Items) != 1 || gp.Page.Items[0].Text != "in group" {
		t.Fatalf("GroupPosts = %+v", gp.Page.Items)
	}
	if _, err := f.timelines.GroupPosts(ctx, "missing", 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown group: err = %v, want ErrNotFound", err)
	}

	f.follow(t, other, auth)
	profile, err := f.timelines.ProfilePosts(ctx, "auth", other.ID.String(), 1)
	if err != nil {
		t.Fatalf("ProfilePosts: %v", err)
	}
	if profile.PostsCount != 2 || !profile.Following || len(profile.Page.Items) != 2 {
		t.Fatalf("ProfilePosts = count %d following %v items %d", profile.PostsCount, profile.Following, len(profile.Page.Items))
	}

	own, _ := f.timelines.ProfilePosts(ctx, "auth", auth.ID.String(), 1)
	anon, _ := f.timelines.ProfilePosts(ctx, "auth", "", 1)
	if own.Following || anon.Following {
		t.Fatal("Following must be false for the author and for anonymous viewers")
	}

	index, _ := f.timelines.Index(ctx, 1)
	if len(index.Items) != 3 || index.Items[0].Text != "someone else" {
		t.Fatalf("Index = %d items", len(index.Items))
	}
}
