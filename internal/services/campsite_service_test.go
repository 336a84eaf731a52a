package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestDiffAmenities(t *testing.T) {
	tests := []struct {
		name       string
		current    []int64
		desired    []int64
		wantRemove []int64
		wantAdd    []int64
	}{
		{"no change", []int64{1, 2}, []int64{2, 1}, nil, nil},
		{"add only", nil, []int64{3, 1, 3}, nil, []int64{1, 3}},
		{"remove all", []int64{1, 2}, nil, []int64{1, 2}, nil},
		{"swap", []int64{1, 2}, []int64{2, 4}, []int64{1}, []int64{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remove, add := diffAmenities(tt.current, tt.desired)
			if !reflect.DeepEqual(remove, tt.wantRemove) || !reflect.DeepEqual(add, tt.wantAdd) {
				t.Fatalf("got remove=%v add=%v, want remove=%v add=%v", remove, add, tt.wantRemove, tt.wantAdd)
			}
		})
	}
}

func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		url string
		ok  bool
	}{
		{"https://cdn.example.com/site.jpg", true},
		{"photos/lake.JPEG", true},
		{"pic.Png?size=large", true},
		{"pic.gif", false},
		{"noextension", false},
		{"", false},
		{"archive.png.zip", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := validateImageURL(tt.url)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func createAmenities(t *testing.T, env *testEnv, names ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(names))
	for _, n := range names {
		a, err := env.campsite.CreateAmenity(context.Background(), staffRC, CreateAmenityRequest{Name: n})
		if err != nil {
			t.Fatalf("create amenity %s: %v", n, err)
		}
		ids = append(ids, a.ID)
	}
	return ids
}

func TestCreateAndUpdateCampsite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := createAmenities(t, env, "Water", "Power", "Shade")

	created, err := env.campsite.CreateCampsite(ctx, staffRC, CreateCampsiteRequest{
		SiteNumber:    "B7",
		Description:   "Lakeside",
		PricePerNight: 32.499,
		MaxOccupancy:  4,
		AmenityIDs:    []int64{ids[0], ids[1], ids[0]},
		ImageURLs:     []string{"b7.jpg"},
	})
	if err != nil {
		t.Fatalf("CreateCampsite: %v", err)
	}
	if created.PricePerNight != 32.5 || !created.Available {
		t.Errorf("unexpected campsite: %+v", created)
	}
	if len(created.Amenities) != 2 || len(created.Images) != 1 || created.Images[0].ImageURL != "b7.jpg" {
		t.Fatalf("unexpected children: amenities=%+v images=%+v", created.Amenities, created.Images)
	}

	desired := []int64{ids[1], ids[2]}
	newImages := []string{"b7-a.png", "b7-b.jpeg"}
	price := 40.0
	updated, err := env.campsite.UpdateCampsite(ctx, staffRC, created.ID, UpdateCampsiteRequest{
		PricePerNight: &price,
		AmenityIDs:    &desired,
		ImageURLs:     &newImages,
	})
	if err != nil {
		t.Fatalf("UpdateCampsite: %v", err)
	}
	if updated.PricePerNight != 40 || updated.SiteNumber != "B7" || updated.Description != "Lakeside" {
		t.Errorf("partial update lost fields: %+v", updated)
	}
	var got []int64
	for _, a := range updated.Amenities {
		got = append(got, a.ID)
	}
	if !reflect.DeepEqual(got, desired) {
		t.Errorf("amenities = %v, want %v", got, desired)
	}
	if len(updated.Images) != 2 {
		t.Errorf("images = %+v", updated.Images)
	}
}

func TestUpdateCampsiteRejectsUnknownAmenity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := createAmenities(t, env, "Water")

	site, err := env.campsite.CreateCampsite(ctx, staffRC, CreateCampsiteRequest{
		SiteNumber: "C1", PricePerNight: 10, MaxOccupancy: 2, AmenityIDs: ids,
	})
	if err != nil {
		t.Fatal(err)
	}

	desired := []int64{ids[0] + 100}
	name := "C1-renamed"
	_, err = env.campsite.UpdateCampsite(ctx, staffRC, site.ID, UpdateCampsiteRequest{SiteNumber: &name, AmenityIDs: &desired})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	after, err := env.campsite.GetCampsite(ctx, site.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.SiteNumber != "C1" || len(after.Amenities) != 1 {
		t.Fatalf("campsite changed despite failure: %+v", after)
	}
}

func TestCampsiteWritesRequireStaff(t *testing.T) {
	env := newTestEnv(t)
	rc, _ := env.camper(t, "guest")
	ctx := context.Background()

	if _, err := env.campsite.CreateCampsite(ctx, rc, CreateCampsiteRequest{SiteNumber: "X", PricePerNight: 1, MaxOccupancy: 1}); !errors.Is(err, ErrForbidden) {
		t.Errorf("create: expected ErrForbidden, got %v", err)
	}
	if _, err := env.campsite.UpdateCampsite(ctx, rc, 1, UpdateCampsiteRequest{}); !errors.Is(err, ErrForbidden) {
		t.Errorf("update: expected ErrForbidden, got %v", err)
	}
	if _, err := env.campsite.CreateAmenity(ctx, rc, CreateAmenityRequest{Name: "Wifi"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("amenity: expected ErrForbidden, got %v", err)
	}
}

func TestCreateCampsiteValidation(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name string
		req  CreateCampsiteRequest
	}{
		{"blank site number", CreateCampsiteRequest{SiteNumber: " ", PricePerNight: 10, MaxOccupancy: 2}},
		{"zero price", CreateCampsiteRequest{SiteNumber: "A", PricePerNight: 0, MaxOccupancy: 2}},
		{"no occupancy", CreateCampsiteRequest{SiteNumber: "A", PricePerNight: 10}},
		{"gif image", CreateCampsiteRequest{SiteNumber: "A", PricePerNight: 10, MaxOccupancy: 2, ImageURLs: []string{"a.gif"}}},
		{"unknown amenity", CreateCampsiteRequest{SiteNumber: "A", PricePerNight: 10, MaxOccupancy: 2, AmenityIDs: []int64{77}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.campsite.CreateCampsite(context.Background(), staffRC, tt.req); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
	list, err := env.campsite.ListCampsites(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("invalid requests created %d campsites", len(list))
	}
}

func TestCreateAmenityRejectsDuplicate(t *testing.T) {
	env := newTestEnv(t)
	createAmenities(t, env, "Fire pit")
	_, err := env.campsite.CreateAmenity(context.Background(), staffRC, CreateAmenityRequest{Name: "Fire pit"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAddReview(t *testing.T) {
	env := newTestEnv(t)
	rc, _ := env.camper(t, "reviewer")
	site := env.site(t, 25)
	ctx := context.Background()
	comment := "Quiet and shady"

	review, err := env.campsite.AddReview(ctx, rc, site.ID, CreateReviewRequest{Rating: 5, Comment: &comment})
	if err != nil {
		t.Fatalf("AddReview: %v", err)
	}
	if review.Username != "reviewer" || review.Rating != 5 || review.Comment == nil || *review.Comment != comment {
		t.Fatalf("unexpected review: %+v", review)
	}

	for _, rating := range []int{0, 6} {
		if _, err := env.campsite.AddReview(ctx, rc, site.ID, CreateReviewRequest{Rating: rating}); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("rating %d: expected ErrInvalidInput, got %v", rating, err)
		}
	}
	if _, err := env.campsite.AddReview(ctx, rc, site.ID+9, CreateReviewRequest{Rating: 3}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing campsite, got %v", err)
	}

	detail, err := env.campsite.GetCampsite(ctx, site.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Reviews) != 1 {
		t.Fatalf("expected the review on the campsite, got %+v", detail.Reviews)
	}
}

func TestGetCampsiteNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.campsite.GetCampsite(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	list, err := env.campsite.ListCampsites(context.Background())
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v %v", list, err)
	}
}
