package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ivannaromanovych/product-categories/internal/fixture"
	"github.com/ivannaromanovych/product-categories/internal/model"
)

func TestJoin_ResolvesCategoryAndOwner(t *testing.T) {
	products := Join(fixture.Default())

	if len(products) != 9 {
		t.Fatalf("Join() returned %d products, want 9", len(products))
	}

	bread := products[1]
	want := model.EnrichedProduct{
		Product:  model.Product{ID: 2, Name: "Bread", CategoryID: 1},
		Category: &model.Category{ID: 1, Title: "Grocery", Icon: "🍞", OwnerID: 2},
		User:     &model.User{ID: 2, Name: "Anna", Sex: model.SexFemale},
	}
	if diff := cmp.Diff(want, bread); diff != "" {
		t.Errorf("Join()[1] mismatch (-want +got):\n%s", diff)
	}
}

func TestJoin_PreservesProductOrder(t *testing.T) {
	tables := fixture.Default()
	products := Join(tables)

	for i, p := range products {
		if p.ID != tables.Products[i].ID {
			t.Errorf("Join()[%d].ID = %d, want %d", i, p.ID, tables.Products[i].ID)
		}
	}
}

func TestJoin_ReferenceProperties(t *testing.T) {
	for _, p := range Join(fixture.Default()) {
		if p.Category != nil && p.Category.ID != p.CategoryID {
			t.Errorf("product %d: category.id = %d, want %d", p.ID, p.Category.ID, p.CategoryID)
		}
		if p.Category != nil && p.User != nil && p.User.ID != p.Category.OwnerID {
			t.Errorf("product %d: user.id = %d, want %d", p.ID, p.User.ID, p.Category.OwnerID)
		}
	}
}

func TestJoin_UnresolvedReferences(t *testing.T) {
	tables := &model.Tables{
		Users: []model.User{{ID: 1, Name: "Roma", Sex: model.SexMale}},
		Categories: []model.Category{
			{ID: 1, Title: "Drinks", Icon: "🍺", OwnerID: 1},
			{ID: 2, Title: "Orphaned", Icon: "❓", OwnerID: 99},
		},
		Products: []model.Product{
			{ID: 1, Name: "Milk", CategoryID: 1},
			{ID: 2, Name: "Lost", CategoryID: 42},
			{ID: 3, Name: "Stray", CategoryID: 2},
		},
	}

	products := Join(tables)

	if products[0].Category == nil || products[0].User == nil {
		t.Fatalf("Milk should resolve fully, got %+v", products[0])
	}
	if products[1].Category != nil || products[1].User != nil {
		t.Errorf("missing category should give nil category and nil user, got %+v", products[1])
	}
	if products[2].Category == nil {
		t.Fatal("Stray should resolve its category")
	}
	if products[2].User != nil {
		t.Errorf("missing owner should give nil user, got %+v", products[2].User)
	}
}

func TestJoin_DoesNotAliasFixtures(t *testing.T) {
	tables := fixture.Default()
	products := Join(tables)

	tables.Categories[0].Title = "Changed"
	tables.Users[1].Name = "Changed"

	if products[1].Category.Title != "Grocery" {
		t.Errorf("category title = %q after fixture change, want %q", products[1].Category.Title, "Grocery")
	}
	if products[1].User.Name != "Anna" {
		t.Errorf("user name = %q after fixture change, want %q", products[1].User.Name, "Anna")
	}
}

func TestJoin_NilAndEmpty(t *testing.T) {
	if got := Join(nil); got == nil || len(got) != 0 {
		t.Errorf("Join(nil) = %#v, want empty non-nil slice", got)
	}
	if got := Join(&model.Tables{}); len(got) != 0 {
		t.Errorf("Join(empty) returned %d products, want 0", len(got))
	}
}

func TestJoin_FirstMatchWinsOnDuplicateIDs(t *testing.T) {
	tables := &model.Tables{
		Users: []model.User{
			{ID: 1, Name: "First", Sex: model.SexMale},
			{ID: 1, Name: "Second", Sex: model.SexFemale},
		},
		Categories: []model.Category{{ID: 1, Title: "A", OwnerID: 1}},
		Products:   []model.Product{{ID: 1, Name: "P", CategoryID: 1}},
	}

	got := Join(tables)[0].User.Name
	if got != "First" {
		t.Errorf("owner = %q, want %q", got, "First")
	}
}

func TestResolveOwner_NilCategory(t *testing.T) {
	if u := resolveOwner(fixture.Default().Users, nil); u != nil {
		t.Errorf("resolveOwner(nil) = %+v, want nil", u)
	}
}
